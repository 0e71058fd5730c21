package format

import (
	"cjsflat/internal/ast"
)

func (p *printer) printFunction(id ast.NodeID) {
	t, w := p.tree, p.writer
	name, params, body := t.Child(id, 0), t.Child(id, 1), t.Child(id, 2)
	if t.HasFlag(id, ast.FlagArrow) {
		p.printParams(params)
		w.WriteString(" => ")
		if t.Is(body, ast.Block) {
			p.printBlock(body)
			return
		}
		p.withParenLeft(body, func() { p.printExpr(body, precAssign) })
		return
	}
	w.WriteString("function")
	if n := t.Str(name); n != "" {
		w.WriteByte(' ')
		w.WriteString(n)
	}
	p.printParams(params)
	w.WriteByte(' ')
	p.printBlock(body)
}

func (p *printer) printParams(list ast.NodeID) {
	w := p.writer
	w.WriteByte('(')
	for c := p.tree.First(list); c != ast.NoNode; c = p.tree.Next(c) {
		if c != p.tree.First(list) {
			w.WriteString(", ")
		}
		p.printExpr(c, precAssign)
	}
	w.WriteByte(')')
}

func (p *printer) printClass(id ast.NodeID) {
	t, w := p.tree, p.writer
	name, super, members := t.Child(id, 0), t.Child(id, 1), t.Child(id, 2)
	w.WriteString("class")
	if t.Is(name, ast.Name) {
		w.WriteByte(' ')
		w.WriteString(t.Str(name))
	}
	if !t.Is(super, ast.Empty) {
		w.WriteString(" extends ")
		p.printExpr(super, precMember)
	}
	if !t.HasChildren(members) {
		w.WriteString(" {}")
		return
	}
	w.WriteString(" {")
	w.Newline()
	w.IndentPush()
	for m := t.First(members); m != ast.NoNode; m = t.Next(m) {
		p.printMember(m)
		w.Newline()
	}
	w.IndentPop()
	w.WriteByte('}')
}

func (p *printer) printObject(id ast.NodeID) {
	t, w := p.tree, p.writer
	w.WriteByte('{')
	for m := t.First(id); m != ast.NoNode; m = t.Next(m) {
		if m != t.First(id) {
			w.WriteString(", ")
		}
		p.printMember(m)
	}
	w.WriteByte('}')
}

// printMember prints one object literal, pattern or class member.
func (p *printer) printMember(m ast.NodeID) {
	t, w := p.tree, p.writer
	p.doc(m)
	if t.HasFlag(m, ast.FlagStatic) {
		w.WriteString("static ")
	}
	switch t.Kind(m) {
	case ast.StringKey:
		value := t.First(m)
		if t.HasFlag(m, ast.FlagShorthand) && p.shorthandFits(t.Str(m), value) {
			p.printExpr(value, precAssign)
			return
		}
		w.WriteString(propertyKey(t.Str(m), t.HasFlag(m, ast.FlagQuoted)))
		w.WriteString(": ")
		p.printExpr(value, precAssign)
	case ast.MemberFunctionDef, ast.GetterDef, ast.SetterDef:
		switch t.Kind(m) {
		case ast.GetterDef:
			w.WriteString("get ")
		case ast.SetterDef:
			w.WriteString("set ")
		}
		w.WriteString(propertyKey(t.Str(m), t.HasFlag(m, ast.FlagQuoted)))
		p.printMethodTail(t.First(m))
	case ast.ComputedProp:
		w.WriteByte('[')
		p.printExpr(t.First(m), precAssign)
		w.WriteByte(']')
		if t.HasFlag(m, ast.FlagMethod) {
			p.printMethodTail(t.Second(m))
			return
		}
		w.WriteString(": ")
		p.printExpr(t.Second(m), precAssign)
	default:
		p.printExprBare(m)
	}
}

func (p *printer) printMethodTail(fn ast.NodeID) {
	p.printParams(p.tree.Child(fn, 1))
	p.writer.WriteByte(' ')
	p.printBlock(p.tree.Child(fn, 2))
}

// shorthandFits reports whether `{key}` still means `{key: value}`.
func (p *printer) shorthandFits(key string, value ast.NodeID) bool {
	t := p.tree
	if t.Is(value, ast.DefaultValue) {
		value = t.First(value)
	}
	return t.Is(value, ast.Name) && t.Str(value) == key && t.Doc(value) == nil
}
