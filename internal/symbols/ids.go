package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// VarID identifies a variable inside the table arena.
type VarID uint32

const (
	// NoVarID marks the absence of a variable reference.
	NoVarID VarID = 0
)

// IsValid reports whether the var ID refers to an allocated variable.
func (id VarID) IsValid() bool { return id != NoVarID }

func toScopeID(n int) ScopeID {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	return ScopeID(v)
}

func toVarID(n int) VarID {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("vars arena overflow: %w", err))
	}
	return VarID(v)
}
