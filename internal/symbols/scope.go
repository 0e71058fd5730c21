package symbols

import (
	"cjsflat/internal/ast"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // SCRIPT
	ScopeFunction           // parameters and body of a function
	ScopeBlock              // block, loop head or switch
	ScopeCatch              // catch parameter
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	ID       ScopeID
	Kind     ScopeKind
	Parent   *Scope
	Root     ast.NodeID
	Children []*Scope

	nameIndex map[string]*Var
	vars      []*Var
}

func (s *Scope) IsGlobal() bool   { return s.Kind == ScopeGlobal }
func (s *Scope) IsFunction() bool { return s.Kind == ScopeFunction }

// IsHoist reports whether `var` declarations land in this scope.
func (s *Scope) IsHoist() bool { return s.Kind == ScopeGlobal || s.Kind == ScopeFunction }

// HoistScope returns the closest function or global scope.
func (s *Scope) HoistScope() *Scope {
	for c := s; c != nil; c = c.Parent {
		if c.IsHoist() {
			return c
		}
	}
	return nil
}

// Own returns the variable declared directly in s.
func (s *Scope) Own(name string) *Var {
	return s.nameIndex[name]
}

// Lookup resolves name through s and its ancestors.
func (s *Scope) Lookup(name string) *Var {
	for c := s; c != nil; c = c.Parent {
		if v := c.nameIndex[name]; v != nil {
			return v
		}
	}
	return nil
}

// Vars returns the variables in declaration order.
func (s *Scope) Vars() []*Var {
	return s.vars
}

func (s *Scope) declare(v *Var) (*Var, bool) {
	if prev := s.nameIndex[v.Name]; prev != nil {
		return prev, false
	}
	v.Scope = s
	s.nameIndex[v.Name] = v
	s.vars = append(s.vars, v)
	return v, true
}
