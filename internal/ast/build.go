package ast

import (
	"strings"

	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

// Constructors for nodes the rewriter synthesises. Each takes the span of
// the source node it stands in for.

func (t *Tree) NewName(name string, span source.Span) NodeID {
	return t.NewStr(Name, name, span)
}

func (t *Tree) NewString(value string, span source.Span) NodeID {
	return t.NewStr(String, value, span)
}

func (t *Tree) NewNumber(text string, span source.Span) NodeID {
	return t.NewStr(Number, text, span)
}

func (t *Tree) NewGetProp(obj NodeID, prop string, span source.Span) NodeID {
	return t.NewStr(GetProp, prop, span, obj)
}

// NewQName builds a NAME / GETPROP chain for a dotted name; a leading
// "this" becomes THIS.
func (t *Tree) NewQName(qname string, span source.Span) NodeID {
	parts := strings.Split(qname, ".")
	var n NodeID
	if parts[0] == "this" {
		n = t.New(This, span)
	} else {
		n = t.NewName(parts[0], span)
	}
	for _, p := range parts[1:] {
		n = t.NewGetProp(n, p, span)
	}
	return n
}

func (t *Tree) NewAssign(target, value NodeID, span source.Span) NodeID {
	return t.NewOp(Assign, token.Assign, span, target, value)
}

func (t *Tree) NewExprResult(expr NodeID) NodeID {
	return t.New(ExprResult, t.Span(expr), expr)
}

// NewDecl builds `var name = init;` (init may be NoNode).
func (t *Tree) NewDecl(kind Kind, name string, init NodeID, span source.Span) NodeID {
	nameNode := t.NewName(name, span)
	if init != NoNode {
		t.AddChildToBack(nameNode, init)
	}
	return t.New(kind, span, nameNode)
}

func (t *Tree) NewCall(callee NodeID, span source.Span, args ...NodeID) NodeID {
	return t.New(Call, span, append([]NodeID{callee}, args...)...)
}

func (t *Tree) NewBlock(span source.Span, stmts ...NodeID) NodeID {
	return t.New(Block, span, stmts...)
}

func (t *Tree) NewLabel(name string, body NodeID, span source.Span) NodeID {
	return t.New(Label, span, t.NewStr(LabelName, name, span), body)
}

func (t *Tree) NewBreak(label string, span source.Span) NodeID {
	if label == "" {
		return t.New(Break, span)
	}
	return t.New(Break, span, t.NewStr(LabelName, label, span))
}

func (t *Tree) NewEmpty(span source.Span) NodeID {
	return t.New(Empty, span)
}

func (t *Tree) NewObjectLit(span source.Span, members ...NodeID) NodeID {
	return t.New(ObjectLit, span, members...)
}

func (t *Tree) NewStringKey(key string, value NodeID, span source.Span) NodeID {
	return t.NewStr(StringKey, key, span, value)
}

func (t *Tree) NewUnary(op token.Kind, operand NodeID, span source.Span) NodeID {
	return t.NewOp(Unary, op, span, operand)
}

func (t *Tree) NewBinary(op token.Kind, left, right NodeID, span source.Span) NodeID {
	return t.NewOp(Binary, op, span, left, right)
}

// NewFunction builds `function name(params) {body}`; name may be empty.
func (t *Tree) NewFunction(name string, params []NodeID, body NodeID, span source.Span) NodeID {
	return t.New(Function, span,
		t.NewName(name, span),
		t.New(ParamList, span, params...),
		body)
}
