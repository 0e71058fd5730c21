package cjs

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/inline"
)

// replaceUmdPatterns swaps every UMD guard for its CommonJS branch and
// inlines the factory function around it when possible. It reports
// whether the tree changed.
func (p *pass) replaceUmdPatterns(d *detection) bool {
	t := p.tree
	changed := false
	for _, u := range d.umd {
		if !p.attached(u.Anchor) {
			p.functionsDeleted(u.Anchor)
			continue
		}
		parent := t.Parent(u.Anchor)
		if u.Branch == ast.NoNode {
			t.Detach(u.Anchor)
			p.functionsDeleted(u.Anchor)
			changed = true
			continue
		}

		var repl ast.NodeID
		if t.Kind(u.Branch) == ast.Block && t.HasOneChild(u.Branch) {
			repl = t.Detach(t.First(u.Branch))
		} else {
			repl = t.Detach(u.Branch)
		}
		t.ReplaceWith(u.Anchor, repl)
		p.functionsDeleted(u.Anchor)
		changed = true

		block := parent
		if t.Kind(block) == ast.ExprResult {
			block = t.Parent(block)
		}
		if t.Kind(block) == ast.Block && t.HasOneChild(parent) {
			p.inlineFactory(block)
		}
	}
	return changed
}

// inlineFactory handles the body of
//
//	(function(root, factory) { module.exports = factory(); })(this, function() {...})
//
// once the guard is gone: the wrapper call is replaced by the wrapper's
// statements, and an immediately called factory is inlined as well.
func (p *pass) inlineFactory(body ast.NodeID) {
	t := p.tree
	fn := t.Parent(body)
	call := t.Parent(fn)
	if t.Kind(fn) != ast.Function || t.Kind(call) != ast.Call || t.First(call) != fn {
		return
	}
	if p.module == "" || !p.attached(call) || t.ReferencesOwnArguments(fn) {
		return
	}
	callRoot := t.Parent(call)
	if t.IsNot(callRoot) {
		callRoot = t.Parent(callRoot)
	}
	if t.Kind(callRoot) != ast.ExprResult {
		return
	}

	label := p.label("factory")
	stmts := inline.FunctionToBlock(t, fn, call, label, "", p.ids)
	stmts = p.inlineFactoryCall(stmts, fn, label)

	target := t.Parent(callRoot)
	t.AddChildrenAfter(t.RemoveChildren(stmts), callRoot)
	t.Detach(callRoot)
	p.functionsChanged(target)
	p.functionsDeleted(call)
}

// inlineFactoryCall recognises
//
//	{ var f = function() {...}; f(); }
//	{ var f = function() {...}; X = f(); }
//
// and inlines the call of f. In the second form the result goes to a new
// `var <module>_iife<N>` that X is then assigned from.
func (p *pass) inlineFactoryCall(stmts, wrapper ast.NodeID, label string) ast.NodeID {
	t := p.tree
	if t.Kind(stmts) != ast.Block || !t.HasTwoChildren(stmts) {
		return stmts
	}
	decl, stmt := t.First(stmts), t.Second(stmts)
	name := t.First(decl)
	if t.Kind(decl) != ast.Var || !t.HasOneChild(decl) || t.Kind(name) != ast.Name ||
		!t.HasOneChild(name) || t.Kind(t.First(name)) != ast.Function || t.Kind(stmt) != ast.ExprResult {
		return stmts
	}
	factory := t.First(name)
	expr := t.First(stmt)

	var call ast.NodeID
	assigned := ""
	switch {
	case t.Kind(expr) == ast.Assign && t.Kind(t.Second(expr)) == ast.Call:
		call = t.Second(expr)
		assigned = p.label("iife")
	case t.Kind(expr) == ast.Call:
		call = expr
	default:
		return stmts
	}
	if callee := t.First(call); t.Kind(callee) != ast.Name || t.Str(callee) != t.Str(name) {
		return stmts
	}

	out := inline.FunctionToBlock(t, factory, call, label, assigned, p.ids)
	if assigned == "" {
		return out
	}

	span := t.Span(wrapper)
	result := t.NewDecl(ast.Var, assigned, ast.NoNode, span)
	if first := t.First(out); first != ast.NoNode && t.IsExprAssign(first) {
		if target := t.First(t.First(first)); t.Kind(target) == ast.Name && t.Str(target) == assigned {
			t.AddChildToFront(t.First(result), t.Detach(t.Second(t.First(first))))
			t.ReplaceWith(first, result)
		}
	}
	if t.Parent(result) == ast.NoNode {
		t.AddChildToFront(out, result)
	}
	t.ReplaceChild(expr, t.Second(expr), t.NewName(assigned, t.Span(call)))
	t.AddChildToBack(out, t.Detach(stmt))
	return out
}
