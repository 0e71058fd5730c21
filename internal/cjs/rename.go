package cjs

import (
	"strings"

	"cjsflat/internal/ast"
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/symbols"
)

// maybeUpdateName redirects one NAME. In order of precedence:
//  1. a reference to a require alias becomes the imported namespace;
//  2. in modules, a name that is exported becomes the export property;
//  3. in modules, any other file-global gets a $$<module> suffix.
func (r *rewriter) maybeUpdateName(n ast.NodeID, v *symbols.Var) {
	t := r.tree
	imported := r.moduleImportName(v.Node)
	name := t.Str(n)

	if imported != "" && n != v.Node {
		r.updateName(n, imported, false, false)
		return
	}
	if !r.full {
		return
	}

	exported, isSite := r.exportedName(n, name, v)
	parent := t.Parent(n)
	if isSite && (n != v.Node || t.Kind(parent) == ast.Class) {
		// само место экспорта, его перепишет visitExport
		if t.Kind(parent) == ast.Class && t.First(parent) == n {
			r.classes = append(r.classes, parent)
		}
		return
	}

	switch {
	case imported == "" && !isSite && exported != name && !v.IsParam():
		isConst := r.defaultConst && exported == r.ownDefault() &&
			qnameRoot(t, n) == n && t.IsLValue(n)
		r.updateName(n, exported, true, isConst)
	case v.IsGlobal():
		if name == r.module || name == nameExports {
			return
		}
		if r.opts.ExportTestFunctions && isTestFunctionName(name) {
			return
		}
		r.updateName(n, name+globalSuffix+r.module, false, false)
	}
}

// isTestFunctionName matches the names a test runner looks up globally.
func isTestFunctionName(name string) bool {
	switch name {
	case "setUp", "tearDown", "setUpPage", "tearDownPage":
		return true
	}
	return strings.HasPrefix(name, "test")
}

// updateName renames the NAME n. A dotted newName cannot take the place
// of a declared name, so class, function and variable declarations are
// turned into assignments. requireExpr forces that conversion for
// classes and functions even for a plain name.
func (r *rewriter) updateName(n ast.NodeID, newName string, requireExpr, isConst bool) {
	t := r.tree
	parent := t.Parent(n)
	qualified := strings.Contains(newName, ".")
	existing := r.syms.Lookup(n, newName)
	span := t.Span(n)

	switch t.Kind(parent) {
	case ast.Class:
		switch {
		case t.First(parent) == n && (qualified || requireExpr):
			r.classes = append(r.classes, parent)
			r.toExpression(parent, newName, qualified || existing != nil, ast.Let, isConst)
		case t.Index(n) == 1:
			t.ReplaceWith(n, t.NewQName(newName, span))
		default:
			t.SetStr(n, newName)
		}

	case ast.Function:
		if !(qualified || requireExpr) {
			t.SetStr(n, newName)
			return
		}
		if t.IsFunctionExpression(parent) {
			// var foo = function foo() {};
			return
		}
		t.SetStr(n, "")
		stmt := r.toExpression(parent, newName, qualified || existing != nil, ast.Var, isConst)
		r.hoist = append(r.hoist, stmt)

	case ast.Var, ast.Let, ast.Const:
		if t.ChildCount(parent) > 1 && !isForHead(t, parent) {
			splitDeclaration(t, parent)
			parent = t.Parent(n)
		}
		switch {
		case isForHead(t, parent):
			r.renameForHead(n, parent, newName, qualified)
		case qualified:
			r.declarationToAssign(n, parent, newName, isConst)
		case existing != nil && existing.Node != n:
			// уже объявлена снаружи: присваивание вместо объявления
			if !t.HasChildren(n) {
				t.Detach(parent)
				return
			}
			assign := t.NewAssign(t.NewName(newName, span), t.Detach(t.First(n)), span)
			if doc := t.Doc(parent); doc != nil {
				t.SetDoc(parent, nil)
				t.SetDoc(assign, doc)
			}
			t.ReplaceWith(parent, t.NewExprResult(assign))
		default:
			t.SetStr(n, newName)
		}

	default:
		if qualified && r.renamePatternBinding(n, newName) {
			return
		}
		var ref ast.NodeID
		if qualified {
			ref = t.NewQName(newName, span)
		} else {
			ref = t.NewName(newName, span)
		}
		if doc := t.Doc(n); doc != nil {
			t.SetDoc(n, nil)
			t.SetDoc(ref, doc)
		}
		t.ReplaceWith(n, ref)
		r.fixTypes(ref)
		if kids := t.RemoveChildren(n); len(kids) > 0 {
			t.AddChildrenToFront(ref, kids)
		}
	}
}

// toExpression replaces the class or function declaration decl with
// `newName = decl;`, or with `let|var newName = decl;` when newName is a
// plain name nobody declares yet. It returns the new statement.
func (r *rewriter) toExpression(decl ast.NodeID, newName string, assign bool, kind ast.Kind, isConst bool) ast.NodeID {
	t := r.tree
	span := t.Span(decl)
	hole := t.New(ast.Null, span)
	var stmt ast.NodeID
	if !assign {
		stmt = t.NewDecl(kind, newName, hole, span)
		t.ReplaceWith(decl, stmt)
		t.ReplaceWith(hole, decl)
		return stmt
	}
	expr := t.NewAssign(t.NewQName(newName, span), hole, span)
	stmt = t.NewExprResult(expr)
	t.ReplaceWith(decl, stmt)
	t.ReplaceWith(hole, decl)
	doc := t.Doc(decl).Clone()
	t.SetDoc(decl, nil)
	if isConst {
		if doc == nil {
			doc = &jsdoc.Info{}
		}
		doc.MarkConst()
	}
	if doc != nil {
		t.SetDoc(expr, doc)
		r.fixTypes(expr)
	}
	return stmt
}

// declarationToAssign rewrites `var x = v;` to `a.b = v;`. A declaration
// without a value or JSDoc is dropped.
func (r *rewriter) declarationToAssign(n, decl ast.NodeID, newName string, isConst bool) {
	t := r.tree
	span := t.Span(n)
	doc := t.Doc(decl)
	if !t.HasChildren(n) && doc == nil {
		t.Detach(decl)
		return
	}
	ref := t.NewQName(newName, span)
	t.SetDoc(decl, nil)
	if !t.HasChildren(n) {
		t.SetDoc(ref, doc)
		t.ReplaceWith(decl, t.NewExprResult(ref))
		return
	}
	assign := t.NewAssign(ref, t.Detach(t.First(n)), span)
	t.ReplaceWith(decl, t.NewExprResult(assign))
	doc = doc.Clone()
	if isConst {
		if doc == nil {
			doc = &jsdoc.Info{}
		}
		doc.MarkConst()
	}
	if doc != nil {
		t.SetDoc(assign, doc)
		r.fixTypes(assign)
	}
}

// renameForHead handles a declarator in a loop head, where no statement
// can take the place of the declaration.
func (r *rewriter) renameForHead(n, decl ast.NodeID, newName string, qualified bool) {
	t := r.tree
	if !qualified || t.ChildCount(decl) > 1 {
		t.SetStr(n, newName)
		return
	}
	span := t.Span(n)
	ref := t.NewQName(newName, span)
	switch {
	case t.Kind(t.Parent(decl)) != ast.For:
		// for (var x in o) -> for (a.b in o)
		t.ReplaceWith(decl, ref)
	case t.HasChildren(n):
		t.ReplaceWith(decl, t.NewAssign(ref, t.Detach(t.First(n)), span))
	default:
		t.ReplaceWith(decl, t.NewEmpty(span))
	}
}

// renamePatternBinding handles a name bound by a destructuring
// declaration, where a dotted target is not allowed:
//
//	var {a} = o;
//	var {a: a$$module$m} = o; module$m.default.a = a$$module$m;
func (r *rewriter) renamePatternBinding(n ast.NodeID, newName string) bool {
	t := r.tree
	if !t.IsLValue(n) {
		return false
	}
	decl := ast.NoNode
	for p := t.Parent(n); p != ast.NoNode; p = t.Parent(p) {
		if t.Kind(p).IsNameDeclaration() {
			decl = p
			break
		}
		if k := t.Kind(p); k != ast.ObjectPattern && k != ast.ArrayPattern && k != ast.StringKey &&
			k != ast.DefaultValue && k != ast.Rest && k != ast.DestructuringLHS && k != ast.ComputedProp {
			return false
		}
	}
	if decl == ast.NoNode || !t.IsStatementBlock(t.Parent(decl)) {
		return false
	}
	span := t.Span(n)
	local := t.Str(n) + globalSuffix + r.module
	t.SetStr(n, local)
	assign := t.NewAssign(t.NewQName(newName, span), t.NewName(local, span), span)
	t.AddChildAfter(t.NewExprResult(assign), decl)
	return true
}
