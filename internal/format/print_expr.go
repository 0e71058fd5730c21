package format

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/parser"
	"cjsflat/internal/token"
)

// Уровни приоритета выражений; больше: сильнее.
const (
	precComma   = 0
	precAssign  = 1
	precHook    = 2
	precBinary  = 2 // + parser.BinaryPrecedence(op)
	precUnary   = 14
	precPostfix = 15
	precMember  = 17
	precPrimary = 18
)

func (p *printer) precOf(id ast.NodeID) int {
	t := p.tree
	switch t.Kind(id) {
	case ast.Binary:
		if t.Op(id) == token.Comma {
			return precComma
		}
		return precBinary + parser.BinaryPrecedence(t.Op(id))
	case ast.Assign, ast.Spread, ast.Rest, ast.DefaultValue:
		return precAssign
	case ast.Hook:
		return precHook
	case ast.Unary:
		return precUnary
	case ast.Update:
		if t.HasFlag(id, ast.FlagPostfix) {
			return precPostfix
		}
		return precUnary
	case ast.Call, ast.New, ast.GetProp, ast.GetElem:
		return precMember
	case ast.Function:
		if t.HasFlag(id, ast.FlagArrow) {
			return precAssign
		}
	}
	return precPrimary
}

func (p *printer) printExpr(id ast.NodeID, minPrec int) {
	p.doc(id)
	paren := p.precOf(id) < minPrec || id == p.parenLeft
	if paren {
		p.writer.WriteByte('(')
		saved := p.parenLeft
		p.parenLeft = ast.NoNode
		p.printExprBare(id)
		p.parenLeft = saved
		p.writer.WriteByte(')')
		return
	}
	p.printExprBare(id)
}

func (p *printer) printExprBare(id ast.NodeID) {
	t, w := p.tree, p.writer
	switch t.Kind(id) {
	case ast.Name:
		w.WriteString(t.Str(id))
	case ast.This:
		w.WriteString("this")
	case ast.Super:
		w.WriteString("super")
	case ast.Null:
		w.WriteString("null")
	case ast.True:
		w.WriteString("true")
	case ast.False:
		w.WriteString("false")
	case ast.Number, ast.Regexp:
		w.WriteString(t.Str(id))
	case ast.String:
		w.WriteString(quoteString(t.Str(id)))
	case ast.Empty:
	case ast.Binary:
		prec := p.precOf(id)
		p.printExpr(t.First(id), prec)
		if op := t.Op(id); op == token.Comma {
			w.WriteString(", ")
		} else {
			w.WriteByte(' ')
			w.WriteString(op.String())
			w.WriteByte(' ')
		}
		p.printExpr(t.Second(id), prec+1)
	case ast.Assign:
		p.printExpr(t.First(id), precMember)
		w.WriteByte(' ')
		w.WriteString(t.Op(id).String())
		w.WriteByte(' ')
		p.printExpr(t.Second(id), precAssign)
	case ast.Hook:
		p.printExpr(t.First(id), precHook+1)
		w.WriteString(" ? ")
		p.printExpr(t.Second(id), precAssign)
		w.WriteString(" : ")
		p.printExpr(t.Child(id, 2), precAssign)
	case ast.Unary:
		op := t.Op(id)
		w.WriteString(op.String())
		operand := t.First(id)
		if op.IsKeyword() || p.needsOperatorSpace(op, operand) {
			w.WriteByte(' ')
		}
		p.printExpr(operand, precUnary)
	case ast.Update:
		if t.HasFlag(id, ast.FlagPostfix) {
			p.printExpr(t.First(id), precMember)
			w.WriteString(t.Op(id).String())
			return
		}
		w.WriteString(t.Op(id).String())
		if p.needsOperatorSpace(t.Op(id), t.First(id)) {
			w.WriteByte(' ')
		}
		p.printExpr(t.First(id), precUnary)
	case ast.Call:
		callee := t.First(id)
		if t.HasFlag(id, ast.FlagFreeCall) && (t.Is(callee, ast.GetProp) || t.Is(callee, ast.GetElem)) {
			w.WriteString("(0, ")
			p.printExpr(callee, precAssign)
			w.WriteByte(')')
		} else {
			p.printExpr(callee, precMember)
		}
		p.printArgs(t.Next(callee))
	case ast.New:
		w.WriteString("new ")
		callee := t.First(id)
		if p.chainHasCall(callee) {
			w.WriteByte('(')
			p.printExpr(callee, precComma)
			w.WriteByte(')')
		} else {
			p.printExpr(callee, precMember)
		}
		p.printArgs(t.Next(callee))
	case ast.GetProp:
		obj := t.First(id)
		if t.Is(obj, ast.Number) {
			w.WriteByte('(')
			p.printExpr(obj, precComma)
			w.WriteByte(')')
		} else {
			p.printExpr(obj, precMember)
		}
		w.WriteByte('.')
		w.WriteString(t.Str(id))
	case ast.GetElem:
		p.printExpr(t.First(id), precMember)
		w.WriteByte('[')
		p.printExpr(t.Second(id), precComma)
		w.WriteByte(']')
	case ast.Spread, ast.Rest:
		w.WriteString("...")
		p.printExpr(t.First(id), precAssign)
	case ast.DefaultValue:
		p.printExpr(t.First(id), precMember)
		w.WriteString(" = ")
		p.printExpr(t.Second(id), precAssign)
	case ast.ArrayLit, ast.ArrayPattern:
		p.printArray(id)
	case ast.ObjectLit, ast.ObjectPattern:
		p.printObject(id)
	case ast.Function:
		p.printFunction(id)
	case ast.Class:
		p.printClass(id)
	default:
		// оператор внутри выражения не встречается в корректном дереве
		w.WriteString("/* " + t.Kind(id).String() + " */")
	}
}

// needsOperatorSpace avoids gluing `- -x` into `--x` and `+ ++x` into `+++x`.
func (p *printer) needsOperatorSpace(op token.Kind, operand ast.NodeID) bool {
	t := p.tree
	var next token.Kind
	switch {
	case t.Is(operand, ast.Unary):
		next = t.Op(operand)
	case t.Is(operand, ast.Update) && !t.HasFlag(operand, ast.FlagPostfix):
		next = t.Op(operand)
	default:
		return false
	}
	plus := func(k token.Kind) bool { return k == token.Plus || k == token.PlusPlus }
	minus := func(k token.Kind) bool { return k == token.Minus || k == token.MinusMinus }
	return plus(op) && plus(next) || minus(op) && minus(next)
}

func (p *printer) chainHasCall(id ast.NodeID) bool {
	t := p.tree
	for {
		switch t.Kind(id) {
		case ast.Call:
			return true
		case ast.GetProp, ast.GetElem:
			id = t.First(id)
		default:
			return false
		}
	}
}

// printArgs prints `(a, b)` starting at the first argument node.
func (p *printer) printArgs(first ast.NodeID) {
	w := p.writer
	w.WriteByte('(')
	for a := first; a != ast.NoNode; a = p.tree.Next(a) {
		if a != first {
			w.WriteString(", ")
		}
		p.printExpr(a, precAssign)
	}
	w.WriteByte(')')
}

func (p *printer) printArray(id ast.NodeID) {
	t, w := p.tree, p.writer
	w.WriteByte('[')
	for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
		if c != t.First(id) {
			w.WriteString(", ")
		}
		p.printExpr(c, precAssign)
	}
	if last := t.Last(id); last != ast.NoNode && t.Is(last, ast.Empty) {
		w.WriteByte(',')
	}
	w.WriteByte(']')
}
