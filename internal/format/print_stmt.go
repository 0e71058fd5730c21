package format

import (
	"cjsflat/internal/ast"
)

func (p *printer) printStatements(parent ast.NodeID) {
	for c := p.tree.First(parent); c != ast.NoNode; c = p.tree.Next(c) {
		p.printStatement(c)
		p.writer.Newline()
	}
}

func (p *printer) printStatement(id ast.NodeID) {
	t, w := p.tree, p.writer
	switch t.Kind(id) {
	case ast.Block:
		p.printBlock(id)
	case ast.ExprResult:
		expr := t.First(id)
		p.withParenLeft(expr, func() { p.printExpr(expr, precComma) })
		w.WriteByte(';')
	case ast.Var, ast.Let, ast.Const:
		p.printDeclaration(id)
		w.WriteByte(';')
	case ast.Empty:
		w.WriteByte(';')
	case ast.Function:
		p.doc(id)
		p.printFunction(id)
	case ast.Class:
		p.doc(id)
		p.printClass(id)
	case ast.If:
		p.printIf(id)
	case ast.For:
		w.WriteString("for (")
		init, cond, update := t.Child(id, 0), t.Child(id, 1), t.Child(id, 2)
		p.printForInit(init)
		w.WriteByte(';')
		if !t.Is(cond, ast.Empty) {
			w.WriteByte(' ')
			p.printExpr(cond, precComma)
		}
		w.WriteByte(';')
		if !t.Is(update, ast.Empty) {
			w.WriteByte(' ')
			p.printExpr(update, precComma)
		}
		w.WriteString(") ")
		p.printBlock(t.Child(id, 3))
	case ast.ForIn, ast.ForOf:
		w.WriteString("for (")
		p.printForInit(t.First(id))
		if t.Is(id, ast.ForIn) {
			w.WriteString(" in ")
			p.printExpr(t.Second(id), precComma)
		} else {
			w.WriteString(" of ")
			p.printExpr(t.Second(id), precAssign)
		}
		w.WriteString(") ")
		p.printBlock(t.Child(id, 2))
	case ast.While:
		w.WriteString("while (")
		p.printExpr(t.First(id), precComma)
		w.WriteString(") ")
		p.printBlock(t.Second(id))
	case ast.Do:
		w.WriteString("do ")
		p.printBlock(t.First(id))
		w.WriteString(" while (")
		p.printExpr(t.Second(id), precComma)
		w.WriteString(");")
	case ast.Return, ast.Throw:
		if t.Is(id, ast.Return) {
			w.WriteString("return")
		} else {
			w.WriteString("throw")
		}
		if v := t.First(id); v != ast.NoNode {
			w.WriteByte(' ')
			p.printExpr(v, precComma)
		}
		w.WriteByte(';')
	case ast.Break, ast.Continue:
		if t.Is(id, ast.Break) {
			w.WriteString("break")
		} else {
			w.WriteString("continue")
		}
		if label := t.First(id); label != ast.NoNode {
			w.WriteByte(' ')
			w.WriteString(t.Str(label))
		}
		w.WriteByte(';')
	case ast.Label:
		w.WriteString(t.Str(t.First(id)))
		w.WriteString(": ")
		p.printStatement(t.Second(id))
	case ast.Try:
		w.WriteString("try ")
		p.printBlock(t.First(id))
		if c := t.Second(id); t.Is(c, ast.Catch) {
			w.WriteString(" catch ")
			if param := t.First(c); !t.Is(param, ast.Empty) {
				w.WriteByte('(')
				p.printExpr(param, precAssign)
				w.WriteString(") ")
			}
			p.printBlock(t.Second(c))
		}
		if fin := t.Child(id, 2); fin != ast.NoNode {
			w.WriteString(" finally ")
			p.printBlock(fin)
		}
	case ast.Switch:
		p.printSwitch(id)
	case ast.Debugger:
		w.WriteString("debugger;")
	default:
		// выражение на месте оператора
		p.printExpr(id, precComma)
		w.WriteByte(';')
	}
}

func (p *printer) printBlock(id ast.NodeID) {
	w := p.writer
	if !p.tree.HasChildren(id) {
		w.WriteString("{}")
		return
	}
	w.WriteByte('{')
	w.Newline()
	w.IndentPush()
	p.printStatements(id)
	w.IndentPop()
	w.WriteByte('}')
}

func (p *printer) printIf(id ast.NodeID) {
	t, w := p.tree, p.writer
	w.WriteString("if (")
	p.printExpr(t.First(id), precComma)
	w.WriteString(") ")
	p.printBlock(t.Second(id))
	els := t.Child(id, 2)
	if els == ast.NoNode {
		return
	}
	w.WriteString(" else ")
	if t.HasFlag(els, ast.FlagSynthetic) && t.HasOneChild(els) && t.Is(t.First(els), ast.If) {
		p.printIf(t.First(els))
		return
	}
	p.printBlock(els)
}

func (p *printer) printSwitch(id ast.NodeID) {
	t, w := p.tree, p.writer
	w.WriteString("switch (")
	p.printExpr(t.First(id), precComma)
	w.WriteString(") {")
	w.Newline()
	w.IndentPush()
	for c := t.Second(id); c != ast.NoNode; c = t.Next(c) {
		body := t.Last(c)
		if t.Is(c, ast.Case) {
			w.WriteString("case ")
			p.printExpr(t.First(c), precComma)
			w.WriteByte(':')
		} else {
			w.WriteString("default:")
		}
		w.Newline()
		w.IndentPush()
		p.printStatements(body)
		w.IndentPop()
	}
	w.IndentPop()
	w.WriteByte('}')
}

func (p *printer) printDeclaration(id ast.NodeID) {
	t, w := p.tree, p.writer
	p.doc(id)
	switch t.Kind(id) {
	case ast.Let:
		w.WriteString("let ")
	case ast.Const:
		w.WriteString("const ")
	default:
		w.WriteString("var ")
	}
	for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
		if c != t.First(id) {
			w.WriteString(", ")
		}
		p.doc(c)
		var target, init ast.NodeID
		if t.Is(c, ast.DestructuringLHS) {
			target, init = t.First(c), t.Second(c)
			p.printExpr(target, precAssign)
		} else {
			w.WriteString(t.Str(c))
			init = t.First(c)
		}
		if init != ast.NoNode {
			w.WriteString(" = ")
			p.printExpr(init, precAssign)
		}
	}
}

func (p *printer) printForInit(id ast.NodeID) {
	switch p.tree.Kind(id) {
	case ast.Empty:
	case ast.Var, ast.Let, ast.Const:
		p.printDeclaration(id)
	default:
		p.printExpr(id, precComma)
	}
}

// withParenLeft runs fn with the leftmost leaf of expr marked for
// parenthesising when it is a function, class or object literal.
func (p *printer) withParenLeft(expr ast.NodeID, fn func()) {
	saved := p.parenLeft
	p.parenLeft = ast.NoNode
	if left := p.leftmost(expr); left != ast.NoNode {
		switch p.tree.Kind(left) {
		case ast.ObjectPattern:
			// `({a} = b)` нельзя разрывать скобками вокруг шаблона
			p.parenLeft = expr
		case ast.ObjectLit, ast.Class:
			p.parenLeft = left
		case ast.Function:
			if !p.tree.HasFlag(left, ast.FlagArrow) {
				p.parenLeft = left
			}
		}
	}
	fn()
	p.parenLeft = saved
}

// leftmost follows the nodes that are printed first in expr.
func (p *printer) leftmost(id ast.NodeID) ast.NodeID {
	t := p.tree
	for {
		switch t.Kind(id) {
		case ast.Call, ast.GetProp, ast.GetElem, ast.Binary, ast.Assign, ast.Hook:
			id = t.First(id)
		case ast.Update:
			if !t.HasFlag(id, ast.FlagPostfix) {
				return id
			}
			id = t.First(id)
		default:
			return id
		}
	}
}
