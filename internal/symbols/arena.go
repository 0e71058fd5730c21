package symbols

import (
	"cjsflat/internal/ast"
)

// Scopes stores all allocated scopes; index 0 is reserved for NoScopeID.
type Scopes struct {
	data []*Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity int) *Scopes {
	if capacity <= 0 {
		capacity = 32
	}
	return &Scopes{data: make([]*Scope, 1, capacity+1)}
}

// New allocates a new scope under parent (nil for the global scope).
func (s *Scopes) New(kind ScopeKind, parent *Scope, root ast.NodeID) *Scope {
	scope := &Scope{
		ID:        toScopeID(len(s.data)),
		Kind:      kind,
		Parent:    parent,
		Root:      root,
		nameIndex: make(map[string]*Var),
	}
	s.data = append(s.data, scope)
	if parent != nil {
		parent.Children = append(parent.Children, scope)
	}
	return scope
}

// Get returns the scope or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Data exposes the scopes without the sentinel.
func (s *Scopes) Data() []*Scope {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}

// Vars stores declared variables.
type Vars struct {
	data []*Var
}

// NewVars creates a var arena with optional capacity hint.
func NewVars(capacity int) *Vars {
	if capacity <= 0 {
		capacity = 64
	}
	return &Vars{data: make([]*Var, 1, capacity+1)}
}

// New stores v and assigns its ID.
func (s *Vars) New(v *Var) *Var {
	if v == nil {
		panic("symbols.Vars.New: nil var")
	}
	v.ID = toVarID(len(s.data))
	s.data = append(s.data, v)
	return v
}

// Get returns a var or nil for an invalid ID.
func (s *Vars) Get(id VarID) *Var {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Len reports number of stored vars excluding the sentinel.
func (s *Vars) Len() int { return len(s.data) - 1 }

// Data exposes the vars without the sentinel.
func (s *Vars) Data() []*Var {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}
