package symbols

import (
	"cjsflat/internal/ast"
)

// VarKind classifies where a binding lives.
type VarKind uint8

const (
	VarInvalid VarKind = iota
	VarLocal
	VarGlobal
	VarAmbient // declared by externs, not by the script
	VarParam
)

func (k VarKind) String() string {
	switch k {
	case VarLocal:
		return "local"
	case VarGlobal:
		return "global"
	case VarAmbient:
		return "ambient"
	case VarParam:
		return "param"
	default:
		return "invalid"
	}
}

// DeclKind records the syntax that introduced a binding.
type DeclKind uint8

const (
	DeclNone DeclKind = iota
	DeclVar
	DeclLet
	DeclConst
	DeclFunction
	DeclFunctionName // name of a function expression, visible inside it
	DeclClass
	DeclParam
	DeclCatch
	DeclExtern
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclFunctionName:
		return "function-name"
	case DeclClass:
		return "class"
	case DeclParam:
		return "param"
	case DeclCatch:
		return "catch"
	case DeclExtern:
		return "extern"
	default:
		return "none"
	}
}

// Var is one binding. Two references denote the same entity iff they
// resolve to the same *Var, i.e. the same declaring node.
type Var struct {
	ID    VarID
	Name  string
	Node  ast.NodeID // declaring NAME, NoNode for ambient vars
	Kind  VarKind
	Decl  DeclKind
	Scope *Scope
}

func (v *Var) IsGlobal() bool  { return v != nil && v.Scope != nil && v.Scope.IsGlobal() }
func (v *Var) IsAmbient() bool { return v != nil && v.Kind == VarAmbient }
func (v *Var) IsParam() bool   { return v != nil && v.Kind == VarParam }
