package cjs

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/symbols"
)

// rewriter redirects imports and, for modules, turns exports and globals
// into properties of the module namespace. Work that would disturb the
// traversal is queued and applied when the SCRIPT is left, in this order:
// classes are anonymised, converted functions are hoisted, export sites
// are rewritten and require calls are replaced.
type rewriter struct {
	*pass
	syms    *symbols.Table
	full    bool
	exports []ExportInfo
	// defaultConst allows marking the default export @const.
	defaultConst bool

	requires  []ast.NodeID
	classes   []ast.NodeID
	hoist     []ast.NodeID
	fixedDocs map[*jsdoc.Info]bool
}

func (p *pass) rewrite(full bool, exports []ExportInfo, defaultConst bool) {
	r := &rewriter{
		pass:         p,
		syms:         symbols.Build(p.tree, p.root, p.opts.Externs),
		full:         full,
		exports:      exports,
		defaultConst: defaultConst,
		fixedDocs:    make(map[*jsdoc.Info]bool),
	}
	ast.Traverse(p.tree, p.root, ast.Funcs{LeaveFn: func(n, parent ast.NodeID) {
		if p.tree.Parent(n) != parent {
			return
		}
		r.visit(n, parent)
	}})
}

func (r *rewriter) visit(n, parent ast.NodeID) {
	t := r.tree
	switch t.Kind(n) {
	case ast.Script:
		r.finish()
		return

	case ast.Call:
		if isImport(t, n) {
			r.requires = append(r.requires, n)
		}

	case ast.Var, ast.Let, ast.Const:
		if r.visitDeclaration(n, parent) {
			return
		}

	case ast.Name:
		r.visitName(n, parent)

	case ast.GetProp:
		if t.MatchesQualifiedName(n, qModuleID) && !r.opts.Path.IsZero() && r.isFree(n, nameModule) {
			repl := t.NewString(r.opts.Path.String(), t.Span(n))
			t.ReplaceWith(n, repl)
			return
		}

	case ast.Unary:
		if r.full && t.IsTypeof(n) {
			arg := t.First(n)
			if t.Kind(arg) == ast.Name && (t.Str(arg) == nameModule || t.Str(arg) == nameExports) && r.isFree(arg, t.Str(arg)) {
				t.ReplaceWith(n, t.NewString("object", t.Span(n)))
				return
			}
		}
	}
	r.fixTypes(n)
}

// isFree reports whether name is undeclared or ambient as seen from n.
func (r *rewriter) isFree(n ast.NodeID, name string) bool {
	v := r.syms.Lookup(n, name)
	return v == nil || v.IsAmbient()
}

// visitDeclaration splits `var a, b;` and drops `var x = x;`. It reports
// whether n was removed.
func (r *rewriter) visitDeclaration(n, parent ast.NodeID) bool {
	t := r.tree
	if t.ChildCount(n) > 1 && t.Kind(parent) == ast.For && t.First(parent) == n && t.Kind(n) == ast.Var {
		hoistForInit(t, n, parent)
		parent = t.Parent(n)
	}
	if t.ChildCount(n) > 1 && !isForHead(t, n) {
		for _, decl := range splitDeclaration(t, n) {
			r.visit(t.First(decl), decl)
		}
		if t.Parent(n) != parent {
			return true
		}
	}

	name := t.First(n)
	if init := t.First(name); t.Kind(name) == ast.Name && t.Kind(init) == ast.Name && t.Str(init) == t.Str(name) {
		// остаётся от развёрнутого UMD: var exports = exports;
		t.Detach(n)
		return true
	}
	return false
}

// hoistForInit moves `var a = 1, b = 2` out of a for loop head so the
// declarators can be rewritten one by one:
//
//	for (var i = 0, n = 5; i < n; i++) {}
//	var i = 0, n = 5;
//	for (; i < n; i++) {}
func hoistForInit(t *ast.Tree, decl, loop ast.NodeID) {
	anchor := loop
	for t.Kind(t.Parent(anchor)) == ast.Label {
		anchor = t.Parent(anchor)
	}
	if !t.IsStatementBlock(t.Parent(anchor)) {
		return
	}
	t.ReplaceWith(decl, t.NewEmpty(t.Span(decl)))
	t.AddChildBefore(decl, anchor)
}

func isForHead(t *ast.Tree, decl ast.NodeID) bool {
	parent := t.Parent(decl)
	return t.Kind(parent).IsForLoop() && t.First(parent) == decl
}

// splitDeclaration turns `var a = 1, b;` into `var a = 1; var b;` and
// returns the declarations in order. decl keeps the last declarator.
func splitDeclaration(t *ast.Tree, decl ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	doc := t.Doc(decl)
	for t.Second(decl) != ast.NoNode {
		nd := t.New(t.Kind(decl), t.Span(decl), t.Detach(t.First(decl)))
		if doc != nil {
			t.SetDoc(nd, doc.Clone())
		}
		t.AddChildBefore(nd, decl)
		out = append(out, nd)
	}
	return append(out, decl)
}

func (r *rewriter) visitName(n, parent ast.NodeID) {
	t := r.tree
	if t.Kind(parent).IsNameDeclaration() && t.ChildCount(parent) > 1 && !isForHead(t, parent) {
		// разберётся при посещении объявления
		return
	}
	name := t.Str(n)
	if name == "" {
		return
	}
	v := r.syms.Lookup(n, name)
	if v == nil || v.Node == ast.NoNode {
		return
	}
	// var angular = angular; справа глобальная ссылка
	if v.Node != n && t.IsAncestor(v.Node, n) && v.Scope == r.syms.ScopeOf(n) {
		return
	}
	r.maybeUpdateName(n, v)
}

// finish applies the queued work once the whole file has been visited.
func (r *rewriter) finish() {
	t := r.tree
	for _, cls := range r.classes {
		if name := t.First(cls); t.Kind(name) == ast.Name {
			t.ReplaceWith(name, t.NewEmpty(t.Span(name)))
		}
	}

	// функция, ставшая самим экспортом, идёт первой
	for i := 1; i < len(r.hoist); i++ {
		if target := t.First(t.First(r.hoist[i])); t.MatchesQualifiedName(target, r.ownDefault()) {
			fn := r.hoist[i]
			r.hoist = append(r.hoist[:i], r.hoist[i+1:]...)
			r.hoist = append([]ast.NodeID{fn}, r.hoist...)
			break
		}
	}
	for i := len(r.hoist) - 1; i >= 0; i-- {
		r.hoistToTop(r.hoist[i])
	}

	for _, e := range r.exports {
		r.visitExport(e)
	}
	for _, call := range r.requires {
		r.visitRequire(call)
	}
}

// hoistToTop moves stmt to the start of the file, after the namespace
// declaration when there is one.
func (r *rewriter) hoistToTop(stmt ast.NodeID) {
	t := r.tree
	if t.Parent(stmt) == ast.NoNode {
		return
	}
	first := t.First(r.root)
	if first != ast.NoNode && t.Kind(first) == ast.Var && r.module != "" && t.Str(t.First(first)) == r.module {
		if first != stmt && t.Next(first) != stmt {
			t.AddChildAfter(t.Detach(stmt), first)
		}
		return
	}
	if first != stmt {
		t.AddChildToFront(r.root, t.Detach(stmt))
	}
}

// visitRequire replaces a require call with the imported namespace. A
// declaration that only aliases the import is dropped: every reference to
// it has been redirected already.
func (r *rewriter) visitRequire(call ast.NodeID) {
	t := r.tree
	if t.Parent(call) == ast.NoNode || !r.attached(call) {
		return
	}
	if decl := r.aliasDeclaration(call); decl != ast.NoNode {
		t.Detach(decl)
		return
	}
	ref := t.NewQName(r.baseProperty(r.importedModule(call)), t.Span(call))
	t.ReplaceWith(call, ref)
}

// aliasDeclaration returns the statement for
//
//	var a = require('a');
//	var b = require('a').b;
//	var {c, d} = require('a');
//
// or NoNode when call is used any other way.
func (r *rewriter) aliasDeclaration(call ast.NodeID) ast.NodeID {
	t := r.tree
	val := call
	if t.Kind(t.Parent(val)) == ast.GetProp {
		val = t.Parent(val)
	}
	holder := t.Parent(val)
	var decl ast.NodeID
	switch {
	case t.Kind(holder) == ast.Name && t.First(holder) == val:
		decl = t.Parent(holder)
	case t.Kind(holder) == ast.DestructuringLHS && t.Second(holder) == val && simplePattern(t, t.First(holder)):
		decl = t.Parent(holder)
	default:
		return ast.NoNode
	}
	if !t.Kind(decl).IsNameDeclaration() || !t.HasOneChild(decl) || !t.IsStatementBlock(t.Parent(decl)) {
		return ast.NoNode
	}
	return decl
}

// simplePattern reports `{a, b: c}` patterns whose every binding is an
// import alias.
func simplePattern(t *ast.Tree, pat ast.NodeID) bool {
	if t.Kind(pat) != ast.ObjectPattern {
		return false
	}
	for key := t.First(pat); key != ast.NoNode; key = t.Next(key) {
		if t.Kind(key) != ast.StringKey || t.HasFlag(key, ast.FlagQuoted) || t.Kind(t.First(key)) != ast.Name {
			return false
		}
	}
	return true
}
