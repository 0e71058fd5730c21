package ast

import (
	"strings"

	"cjsflat/internal/token"
)

// IsStatementBlock reports SCRIPT and BLOCK.
func (t *Tree) IsStatementBlock(id NodeID) bool {
	k := t.Kind(id)
	return k == Script || k == Block
}

// IsControlStructure reports statements that own nested statement lists.
func (t *Tree) IsControlStructure(id NodeID) bool {
	switch t.Kind(id) {
	case If, For, ForIn, ForOf, While, Do, Switch, Case, DefaultCase, Try, Catch, Label:
		return true
	default:
		return false
	}
}

// IsQualifiedName reports NAME, THIS and GETPROP chains over them.
func (t *Tree) IsQualifiedName(id NodeID) bool {
	switch t.Kind(id) {
	case Name:
		return t.Str(id) != ""
	case This, Super:
		return true
	case GetProp:
		return t.IsQualifiedName(t.First(id))
	default:
		return false
	}
}

// QualifiedName returns "a.b.c" for a qualified name, "" otherwise.
func (t *Tree) QualifiedName(id NodeID) string {
	switch t.Kind(id) {
	case Name:
		return t.Str(id)
	case This:
		return "this"
	case Super:
		return "super"
	case GetProp:
		base := t.QualifiedName(t.First(id))
		if base == "" {
			return ""
		}
		return base + "." + t.Str(id)
	default:
		return ""
	}
}

// MatchesQualifiedName compares without allocating the joined name.
func (t *Tree) MatchesQualifiedName(id NodeID, qname string) bool {
	switch t.Kind(id) {
	case Name:
		s := t.Str(id)
		return s != "" && s == qname
	case This:
		return qname == "this"
	case Super:
		return qname == "super"
	case GetProp:
		prop := t.Str(id)
		if len(qname) <= len(prop)+1 || !strings.HasSuffix(qname, prop) || qname[len(qname)-len(prop)-1] != '.' {
			return false
		}
		return t.MatchesQualifiedName(t.First(id), qname[:len(qname)-len(prop)-1])
	default:
		return false
	}
}

// BaseQualifiedNameNode returns the root NAME/THIS of a GETPROP chain.
func (t *Tree) BaseQualifiedNameNode(id NodeID) NodeID {
	for t.Kind(id) == GetProp {
		id = t.First(id)
	}
	return id
}

// IsLValue reports whether id is written by its parent.
func (t *Tree) IsLValue(id NodeID) bool {
	parent := t.Parent(id)
	if parent == NoNode {
		return false
	}
	switch t.Kind(parent) {
	case Assign, Update:
		return t.First(parent) == id
	case Var, Let, Const, ParamList, ArrayPattern, Rest:
		return true
	case Function, Class, Catch, ForIn, ForOf:
		return t.First(parent) == id && t.Kind(id) != Empty
	case DefaultValue, DestructuringLHS:
		return t.First(parent) == id
	case StringKey:
		return t.Kind(t.Parent(parent)) == ObjectPattern
	case ComputedProp:
		return t.Kind(t.Parent(parent)) == ObjectPattern && t.Second(parent) == id
	case Unary:
		return t.Op(parent) == token.KwDelete
	default:
		return false
	}
}

// RValueOfLValue returns the value assigned to id, if any.
func (t *Tree) RValueOfLValue(id NodeID) NodeID {
	parent := t.Parent(id)
	switch t.Kind(parent) {
	case Assign:
		if t.First(parent) == id {
			return t.Second(parent)
		}
	case Var, Let, Const:
		return t.First(id)
	case DestructuringLHS, DefaultValue:
		if t.First(parent) == id {
			return t.Second(parent)
		}
	}
	return NoNode
}

// IsExprAssign reports `a = b;` statements.
func (t *Tree) IsExprAssign(id NodeID) bool {
	if t.Kind(id) != ExprResult {
		return false
	}
	c := t.First(id)
	return t.Kind(c) == Assign && t.Op(c) == token.Assign
}

// IsExprCall reports `f();` statements.
func (t *Tree) IsExprCall(id NodeID) bool {
	return t.Kind(id) == ExprResult && t.Kind(t.First(id)) == Call
}

// IsNot reports the `!` operator.
func (t *Tree) IsNot(id NodeID) bool {
	return t.Kind(id) == Unary && t.Op(id) == token.Bang
}

// IsTypeof reports the `typeof` operator.
func (t *Tree) IsTypeof(id NodeID) bool {
	return t.Kind(id) == Unary && t.Op(id) == token.KwTypeof
}

// IsDeclarationParent reports nodes whose children may be declarations.
func (t *Tree) IsDeclarationParent(id NodeID) bool {
	switch t.Kind(id) {
	case Script, Block, Label, Case, DefaultCase:
		return true
	default:
		return false
	}
}

// IsFunctionDeclaration reports named functions in statement position.
func (t *Tree) IsFunctionDeclaration(id NodeID) bool {
	return t.Kind(id) == Function && !t.HasFlag(id, FlagArrow) &&
		t.Str(t.First(id)) != "" && t.IsDeclarationParent(t.Parent(id))
}

// IsFunctionExpression reports any function that is not a declaration.
func (t *Tree) IsFunctionExpression(id NodeID) bool {
	return t.Kind(id) == Function && !t.IsFunctionDeclaration(id)
}

// IsClassDeclaration reports named classes in statement position.
func (t *Tree) IsClassDeclaration(id NodeID) bool {
	return t.Kind(id) == Class && t.Kind(t.First(id)) == Name && t.IsDeclarationParent(t.Parent(id))
}

// FunctionName returns the NAME child of a function or class.
func (t *Tree) FunctionName(fn NodeID) NodeID { return t.First(fn) }

// FunctionParams returns the PARAM_LIST of fn.
func (t *Tree) FunctionParams(fn NodeID) NodeID { return t.Second(fn) }

// FunctionBody returns the BLOCK (or expression) body of fn.
func (t *Tree) FunctionBody(fn NodeID) NodeID { return t.Last(fn) }

// EnclosingScript walks up to the SCRIPT; NoNode for detached subtrees.
func (t *Tree) EnclosingScript(id NodeID) NodeID {
	for id != NoNode {
		if t.Kind(id) == Script {
			return id
		}
		id = t.Parent(id)
	}
	return NoNode
}

// EnclosingFunction returns the nearest FUNCTION ancestor (excluding id).
func (t *Tree) EnclosingFunction(id NodeID) NodeID {
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		if t.Kind(p) == Function {
			return p
		}
	}
	return NoNode
}

// IsAncestor reports whether anc is id or one of its ancestors.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for ; id != NoNode; id = t.Parent(id) {
		if id == anc {
			return true
		}
	}
	return false
}

// ReferencesOwnArguments reports whether fn reads `arguments`, looking
// through arrow functions but not into nested ordinary functions.
func (t *Tree) ReferencesOwnArguments(fn NodeID) bool {
	found := false
	PreOrder(t, t.FunctionBody(fn), func(n NodeID) bool {
		if found {
			return false
		}
		if t.Kind(n) == Function && !t.HasFlag(n, FlagArrow) {
			return false
		}
		if t.Kind(n) == Name && t.Str(n) == "arguments" {
			found = true
		}
		return true
	})
	return found
}

// ReferencesThis reports whether fn uses `this`, looking through arrows.
func (t *Tree) ReferencesThis(fn NodeID) bool {
	found := false
	PreOrder(t, t.FunctionBody(fn), func(n NodeID) bool {
		if found {
			return false
		}
		if t.Kind(n) == Function && !t.HasFlag(n, FlagArrow) {
			return false
		}
		if t.Kind(n) == This {
			found = true
		}
		return true
	})
	return found
}

// IsSideEffectFree reports literals, names, `this` and function literals.
func (t *Tree) IsSideEffectFree(id NodeID) bool {
	switch t.Kind(id) {
	case Name, This, Null, True, False, Number, String, Regexp, Function:
		return true
	case Unary:
		op := t.Op(id)
		return (op == token.Bang || op == token.Minus || op == token.Plus || op == token.KwVoid || op == token.KwTypeof) &&
			t.IsSideEffectFree(t.First(id))
	case ArrayLit, ObjectLit:
		for c := t.First(id); c != NoNode; c = t.Next(c) {
			switch t.Kind(c) {
			case StringKey:
				if !t.IsSideEffectFree(t.First(c)) {
					return false
				}
			case MemberFunctionDef, GetterDef, SetterDef, Empty:
			default:
				if !t.IsSideEffectFree(c) {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}
