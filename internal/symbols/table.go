package symbols

import (
	"cjsflat/internal/ast"
)

// Table aggregates the scopes and vars built for one script.
type Table struct {
	Scopes *Scopes
	Vars   *Vars

	tree   *ast.Tree
	global *Scope
	roots  map[ast.NodeID]*Scope
	byNode map[ast.NodeID]*Var
}

func newTable(tree *ast.Tree) *Table {
	return &Table{
		Scopes: NewScopes(0),
		Vars:   NewVars(0),
		tree:   tree,
		roots:  make(map[ast.NodeID]*Scope),
		byNode: make(map[ast.NodeID]*Var),
	}
}

// Global returns the script scope.
func (t *Table) Global() *Scope { return t.global }

// ScopeFor returns the scope rooted at node, or nil.
func (t *Table) ScopeFor(root ast.NodeID) *Scope { return t.roots[root] }

// ScopeOf returns the scope a reference at n is resolved in: the scope of
// the nearest enclosing scope root. A scope root itself belongs to its
// parent scope, and the name of a function declaration to the scope that
// contains the function.
func (t *Table) ScopeOf(n ast.NodeID) *Scope {
	tree := t.tree
	cur := tree.Parent(n)
	if cur != ast.NoNode && tree.Is(cur, ast.Function) && tree.First(cur) == n && tree.IsFunctionDeclaration(cur) {
		cur = tree.Parent(cur)
	}
	for ; cur != ast.NoNode; cur = tree.Parent(cur) {
		if s := t.roots[cur]; s != nil {
			return s
		}
	}
	return t.global
}

// Resolve returns the var a NAME node refers to, or nil when it is an
// undeclared global.
func (t *Table) Resolve(name ast.NodeID) *Var {
	return t.ScopeOf(name).Lookup(t.tree.Str(name))
}

// Lookup resolves name as seen from node at.
func (t *Table) Lookup(at ast.NodeID, name string) *Var {
	return t.ScopeOf(at).Lookup(name)
}

// DeclaredBy returns the var whose declaring node is name.
func (t *Table) DeclaredBy(name ast.NodeID) *Var {
	return t.byNode[name]
}

// InGlobalHoistScope reports whether n is outside every function.
func (t *Table) InGlobalHoistScope(n ast.NodeID) bool {
	return t.ScopeOf(n).HoistScope().IsGlobal()
}
