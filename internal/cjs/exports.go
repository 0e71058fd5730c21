package cjs

import (
	"strings"

	"cjsflat/internal/ast"
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/symbols"
)

// moduleImportName returns the namespace expression a require alias
// stands for, or "" when decl is not one:
//
//	var a = require('a');       // module$a.default
//	var b = require('a').b;     // module$a.default.b
//	var {c} = require('a');     // module$a.default.c
func (r *rewriter) moduleImportName(decl ast.NodeID) string {
	t := r.tree
	if decl == ast.NoNode {
		return ""
	}
	parent := t.Parent(decl)
	rv, suffix := ast.NoNode, ""
	switch {
	case parent == ast.NoNode:
		return ""
	case t.Kind(parent) == ast.StringKey && t.First(parent) == decl:
		pat := t.Parent(parent)
		if t.Kind(pat) != ast.ObjectPattern || t.Kind(t.Parent(pat)) != ast.DestructuringLHS || t.HasFlag(parent, ast.FlagQuoted) {
			return ""
		}
		rv, suffix = t.Next(pat), "."+t.Str(parent)
	default:
		rv = t.RValueOfLValue(decl)
	}
	switch {
	case rv == ast.NoNode:
		return ""
	case isImport(t, rv):
		return r.baseProperty(r.importedModule(rv)) + suffix
	case t.Kind(rv) == ast.GetProp && isImport(t, t.First(rv)):
		return r.baseProperty(r.importedModule(t.First(rv))) + "." + t.Str(rv) + suffix
	}
	return ""
}

// exportedName finds the export property the binding v is published as.
// isSite reports that n is the exported value itself, which visitExport
// handles. Otherwise the result is name when v is not exported.
func (r *rewriter) exportedName(n ast.NodeID, name string, v *symbols.Var) (exported string, isSite bool) {
	t := r.tree
	if v == nil || v.Node == ast.NoNode {
		return name, false
	}
	base := r.ownDefault()

	for _, e := range r.exports {
		root := qnameRoot(t, e.Node)
		rv := t.RValueOfLValue(root)
		if rv == ast.NoNode {
			continue
		}
		target := r.exportedNameNode(e)
		if rv == n || (n != ast.NoNode && target == n && (t.IsFunctionExpression(rv) || isClassExpression(t, rv))) {
			return "", true
		}
		qname := t.QualifiedName(root)

		if t.Kind(rv) == ast.ObjectLit {
			if qname != qModuleExp {
				return name, false
			}
			for key := t.First(rv); key != ast.NoNode; key = t.Next(key) {
				if t.Kind(key) != ast.StringKey || t.HasFlag(key, ast.FlagQuoted) || !isIdentifierName(t.Str(key)) {
					continue
				}
				val := t.First(key)
				if !t.IsQualifiedName(val) {
					continue
				}
				if val == n {
					return "", true
				}
				if valVar := r.syms.Lookup(val, t.QualifiedName(val)); valVar != nil && valVar.Node == v.Node {
					return base + "." + t.Str(key), false
				}
			}
			continue
		}

		if v.Node == target {
			prefix := nameExports
			switch {
			case strings.HasPrefix(qname, nameModule):
				prefix = qModuleExp
			case strings.HasPrefix(qname, "this"):
				prefix = "this"
			}
			return base + strings.TrimPrefix(qname, prefix), false
		}
	}
	return name, false
}

// exportedNameNode returns the declaring NAME of the value exported at e,
// or the name slot of an exported function or class literal.
func (r *rewriter) exportedNameNode(e ExportInfo) ast.NodeID {
	t := r.tree
	rv := t.RValueOfLValue(qnameRoot(t, e.Node))
	if rv == ast.NoNode {
		return ast.NoNode
	}
	if t.IsFunctionExpression(rv) || isClassExpression(t, rv) {
		return t.First(rv)
	}
	qname := t.QualifiedName(rv)
	if qname == "" {
		return ast.NoNode
	}
	v := r.syms.Lookup(e.Node, qname)
	if v == nil {
		return ast.NoNode
	}
	return v.Node
}

func isClassExpression(t *ast.Tree, n ast.NodeID) bool {
	return t.Kind(n) == ast.Class && !t.IsClassDeclaration(n)
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '$' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80:
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// visitExport rewrites one export site to the module namespace:
//
//	exports.foo = 1;            // module$a.default.foo = 1;
//	module.exports = f();       // /** @const */ module$a.default = f();
//	module.exports = {a: 1};    // module$a.default.a = 1;
//
// An export of a variable that was itself renamed to the export property
// is dropped.
func (r *rewriter) visitExport(e ExportInfo) {
	t := r.tree
	if !r.attached(e.Node) {
		return
	}
	root := qnameRoot(t, e.Node)
	rv := t.RValueOfLValue(root)
	assign := t.Parent(root)
	isAssign := t.Kind(assign) == ast.Assign && t.First(assign) == root
	isStmt := isAssign && t.Kind(t.Parent(assign)) == ast.ExprResult
	isModuleExports := t.MatchesQualifiedName(root, qModuleExp)

	if isModuleExports && t.Kind(rv) == ast.ObjectLit && isStmt {
		r.expandObjectLit(root)
		return
	}

	var rvVar *symbols.Var
	if rv != ast.NoNode && t.IsQualifiedName(rv) {
		rvVar = r.syms.Lookup(e.Node, t.QualifiedName(rv))
	}
	if isStmt && (t.Kind(rv) == ast.Name || t.Kind(rv) == ast.GetProp) && rvVar != nil && rvVar.Node != ast.NoNode &&
		(t.EnclosingScript(rvVar.Node) == ast.NoNode || (t.Parent(rvVar.Node) != ast.NoNode && !rvVar.IsParam())) {
		t.Detach(t.Parent(assign))
		return
	}

	updated := t.NewQName(r.ownDefault(), t.Span(e.Node))
	isConst := r.defaultConst && root == e.Node && t.IsLValue(e.Node)

	if isModuleExports && rv != ast.NoNode && isAssign && !isStmt &&
		t.Kind(rv) == ast.Name && rvVar != nil && rvVar.IsGlobal() {
		// X !== undefined && (module.exports = X)  ->  X !== undefined && module$a.default
		t.ReplaceWith(assign, updated)
		return
	}
	t.ReplaceWith(e.Node, updated)
	if p := t.Parent(updated); isConst && t.Kind(p) == ast.Assign && t.First(p) == updated {
		doc := t.Doc(p).Clone()
		if doc == nil {
			doc = &jsdoc.Info{}
		}
		doc.MarkConst()
		t.SetDoc(p, doc)
	}
}

// expandObjectLit splits `module.exports = {a: x, b() {}}` into one
// assignment per property. Accessors move into the `default` slot of the
// namespace declaration.
func (r *rewriter) expandObjectLit(export ast.NodeID) {
	t := r.tree
	stmt := t.Parent(t.Parent(export))
	insertAfter := stmt
	lit := t.RValueOfLValue(export)

	for key := t.First(lit); key != ast.NoNode; {
		next := t.Next(key)
		span := t.Span(key)
		var lhs, value ast.NodeID
		switch t.Kind(key) {
		case ast.StringKey:
			lhs = r.memberTarget(export, key)
			value = t.Detach(t.First(key))
		case ast.MemberFunctionDef:
			lhs = r.memberTarget(export, key)
			value = t.Detach(t.First(key))
		case ast.ComputedProp:
			lhs = t.New(ast.GetElem, span, t.CloneTree(export), t.Detach(t.First(key)))
			value = t.Detach(t.First(key))
		case ast.GetterDef, ast.SetterDef:
			if slot := r.defaultSlot(); slot != ast.NoNode {
				t.AddChildToBack(slot, t.Detach(key))
			}
		case ast.Spread:
			// {...o} -> Object.assign(module.exports, o)
			call := t.NewCall(t.NewQName("Object.assign", span), span, t.CloneTree(export), t.Detach(t.First(key)))
			value = call
		}

		var expr ast.NodeID
		switch {
		case lhs != ast.NoNode:
			expr = t.NewExprResult(t.NewAssign(lhs, value, span))
			if doc := t.Doc(key); doc != nil {
				t.SetDoc(t.First(expr), doc.Clone())
			}
			t.AddChildAfter(expr, insertAfter)
			r.visitExport(ExportInfo{Node: t.First(lhs)})
		case value != ast.NoNode:
			expr = t.NewExprResult(value)
			t.AddChildAfter(expr, insertAfter)
			r.visitExport(ExportInfo{Node: t.Second(value)})
		}
		if expr != ast.NoNode && t.Parent(expr) != ast.NoNode {
			insertAfter = expr
		}
		key = next
	}
	t.Detach(stmt)
}

// memberTarget builds `module.exports.key` or `module.exports["key"]`.
func (r *rewriter) memberTarget(export, key ast.NodeID) ast.NodeID {
	t := r.tree
	span := t.Span(key)
	if t.HasFlag(key, ast.FlagQuoted) {
		return t.New(ast.GetElem, span, t.CloneTree(export), t.NewString(t.Str(key), span))
	}
	return t.NewGetProp(t.CloneTree(export), t.Str(key), span)
}

// defaultSlot returns the object literal of `default` in the namespace
// declaration, or NoNode when the declaration has none.
func (r *rewriter) defaultSlot() ast.NodeID {
	t := r.tree
	v := r.syms.Global().Own(r.module)
	if v == nil || v.Node == ast.NoNode {
		return ast.NoNode
	}
	lit := t.First(v.Node)
	if t.Kind(lit) != ast.ObjectLit {
		return ast.NoNode
	}
	for key := t.First(lit); key != ast.NoNode; key = t.Next(key) {
		if t.Kind(key) == ast.StringKey && t.Str(key) == defaultProp {
			if val := t.First(key); t.Kind(val) == ast.ObjectLit {
				return val
			}
		}
	}
	return ast.NoNode
}
