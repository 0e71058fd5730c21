package symbols

import (
	"cjsflat/internal/ast"
)

// Build creates scopes for every scope root under root and declares all
// bindings. externs are ambient globals visible to the script.
func Build(tree *ast.Tree, root ast.NodeID, externs []string) *Table {
	t := newTable(tree)
	b := builder{table: t, tree: tree}
	t.global = t.Scopes.New(ScopeGlobal, nil, root)
	t.roots[root] = t.global
	for _, name := range externs {
		t.global.declare(t.Vars.New(&Var{Name: name, Node: ast.NoNode, Kind: VarAmbient, Decl: DeclExtern}))
	}
	b.stack = []*Scope{t.global}
	for c := tree.First(root); c != ast.NoNode; c = tree.Next(c) {
		ast.Traverse(tree, c, &b)
	}
	return t
}

type builder struct {
	table *Table
	tree  *ast.Tree
	stack []*Scope
}

func (b *builder) current() *Scope { return b.stack[len(b.stack)-1] }

func (b *builder) push(kind ScopeKind, root ast.NodeID) *Scope {
	s := b.table.Scopes.New(kind, b.current(), root)
	b.table.roots[root] = s
	b.stack = append(b.stack, s)
	return s
}

func (b *builder) Enter(id, parent ast.NodeID) bool {
	t := b.tree
	switch t.Kind(id) {
	case ast.Function:
		name := t.First(id)
		if t.IsFunctionDeclaration(id) {
			b.declare(b.current(), name, DeclFunction)
		}
		b.push(ScopeFunction, id)
		if !t.IsFunctionDeclaration(id) && t.Str(name) != "" {
			b.declare(b.current(), name, DeclFunctionName)
		}
		for p := t.First(t.Second(id)); p != ast.NoNode; p = t.Next(p) {
			b.declarePattern(b.current(), p, DeclParam)
		}
	case ast.Class:
		if t.IsClassDeclaration(id) {
			b.declare(b.current(), t.First(id), DeclClass)
		}
	case ast.Block:
		if !isMergedBlock(t, id) {
			b.push(ScopeBlock, id)
		}
	case ast.For, ast.ForIn, ast.ForOf, ast.Switch:
		b.push(ScopeBlock, id)
	case ast.Catch:
		b.push(ScopeCatch, id)
		if param := t.First(id); !t.Is(param, ast.Empty) {
			b.declarePattern(b.current(), param, DeclCatch)
		}
	case ast.Var, ast.Let, ast.Const:
		decl, target := DeclVar, b.current().HoistScope()
		switch t.Kind(id) {
		case ast.Let:
			decl, target = DeclLet, b.current()
		case ast.Const:
			decl, target = DeclConst, b.current()
		}
		for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
			if t.Is(c, ast.DestructuringLHS) {
				b.declarePattern(target, t.First(c), decl)
			} else {
				b.declare(target, c, decl)
			}
		}
	}
	return true
}

func (b *builder) Leave(id, parent ast.NodeID) {
	if s := b.table.roots[id]; s != nil && s == b.current() && len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// isMergedBlock reports blocks that share the scope of their parent: a
// function body and the statement list of a switch case.
func isMergedBlock(t *ast.Tree, id ast.NodeID) bool {
	switch t.Kind(t.Parent(id)) {
	case ast.Function, ast.Case, ast.DefaultCase:
		return true
	}
	return false
}

func (b *builder) declare(scope *Scope, name ast.NodeID, decl DeclKind) {
	if !b.tree.Is(name, ast.Name) || b.tree.Str(name) == "" {
		return
	}
	kind := VarLocal
	switch {
	case decl == DeclParam:
		kind = VarParam
	case scope.IsGlobal():
		kind = VarGlobal
	}
	v, fresh := scope.declare(&Var{Name: b.tree.Str(name), Node: name, Kind: kind, Decl: decl})
	if fresh {
		b.table.Vars.New(v)
		b.table.byNode[name] = v
		return
	}
	if v.Kind == VarAmbient {
		// объявление в скрипте перекрывает внешнее
		v.Node, v.Kind, v.Decl = name, kind, decl
		b.table.byNode[name] = v
	}
}

// declarePattern declares every NAME bound by a parameter or destructuring
// pattern.
func (b *builder) declarePattern(scope *Scope, id ast.NodeID, decl DeclKind) {
	t := b.tree
	switch t.Kind(id) {
	case ast.Name:
		b.declare(scope, id, decl)
	case ast.DefaultValue, ast.Rest:
		b.declarePattern(scope, t.First(id), decl)
	case ast.ArrayPattern:
		for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
			b.declarePattern(scope, c, decl)
		}
	case ast.ObjectPattern:
		for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
			switch t.Kind(c) {
			case ast.StringKey:
				b.declarePattern(scope, t.First(c), decl)
			case ast.ComputedProp:
				b.declarePattern(scope, t.Second(c), decl)
			case ast.Rest:
				b.declarePattern(scope, c, decl)
			}
		}
	}
}
