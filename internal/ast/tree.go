package ast

import (
	"fmt"

	"cjsflat/internal/jsdoc"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

// Tree owns the nodes of one parsed file.
type Tree struct {
	nodes *Arena[Node]
	File  source.FileID
}

// NewTree creates an empty tree for file.
func NewTree(file source.FileID, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{nodes: NewArena[Node](capHint), File: file}
}

// Node returns the node for id; it panics on NoNode.
func (t *Tree) Node(id NodeID) *Node {
	n := t.nodes.Get(uint32(id))
	if n == nil {
		panic(fmt.Sprintf("ast: invalid node id %d", id))
	}
	return n
}

// Len returns the number of allocated nodes, attached or not.
func (t *Tree) Len() uint32 { return t.nodes.Len() }

func (t *Tree) Kind(id NodeID) Kind {
	if id == NoNode {
		return Invalid
	}
	return t.Node(id).Kind
}

func (t *Tree) Is(id NodeID, k Kind) bool { return id != NoNode && t.Node(id).Kind == k }

func (t *Tree) Str(id NodeID) string            { return t.Node(id).Str }
func (t *Tree) SetStr(id NodeID, s string)      { t.Node(id).Str = s }
func (t *Tree) Op(id NodeID) token.Kind         { return t.Node(id).Op }
func (t *Tree) Span(id NodeID) source.Span      { return t.Node(id).Span }
func (t *Tree) Doc(id NodeID) *jsdoc.Info       { return t.Node(id).Doc }
func (t *Tree) SetDoc(id NodeID, d *jsdoc.Info) { t.Node(id).Doc = d }
func (t *Tree) HasFlag(id NodeID, f Flags) bool { return t.Node(id).Has(f) }

func (t *Tree) SetFlag(id NodeID, f Flags, on bool) {
	n := t.Node(id)
	if on {
		n.Flags |= f
	} else {
		n.Flags &^= f
	}
}

func (t *Tree) Parent(id NodeID) NodeID { return t.Node(id).parent }
func (t *Tree) First(id NodeID) NodeID  { return t.Node(id).first }
func (t *Tree) Last(id NodeID) NodeID   { return t.Node(id).last }
func (t *Tree) Next(id NodeID) NodeID   { return t.Node(id).next }
func (t *Tree) Prev(id NodeID) NodeID   { return t.Node(id).prev }

// Second returns the second child or NoNode.
func (t *Tree) Second(id NodeID) NodeID {
	if f := t.First(id); f != NoNode {
		return t.Next(f)
	}
	return NoNode
}

// Child returns the i-th child (0-based) or NoNode.
func (t *Tree) Child(id NodeID, i int) NodeID {
	c := t.First(id)
	for ; c != NoNode && i > 0; i-- {
		c = t.Next(c)
	}
	return c
}

// Children returns a snapshot of the child list.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.First(id); c != NoNode; c = t.Next(c) {
		out = append(out, c)
	}
	return out
}

func (t *Tree) ChildCount(id NodeID) int {
	n := 0
	for c := t.First(id); c != NoNode; c = t.Next(c) {
		n++
	}
	return n
}

func (t *Tree) HasChildren(id NodeID) bool { return t.First(id) != NoNode }

func (t *Tree) HasOneChild(id NodeID) bool {
	f := t.First(id)
	return f != NoNode && t.Next(f) == NoNode
}

func (t *Tree) HasTwoChildren(id NodeID) bool {
	s := t.Second(id)
	return s != NoNode && t.Next(s) == NoNode
}

// Index returns the position of id among its siblings, or -1 when detached.
func (t *Tree) Index(id NodeID) int {
	if t.Parent(id) == NoNode {
		return -1
	}
	i := 0
	for c := t.Prev(id); c != NoNode; c = t.Prev(c) {
		i++
	}
	return i
}

// New allocates a detached node with the given children appended.
func (t *Tree) New(kind Kind, span source.Span, children ...NodeID) NodeID {
	id := NodeID(t.nodes.Allocate(Node{Kind: kind, Span: span}))
	for _, c := range children {
		if c != NoNode {
			t.AddChildToBack(id, c)
		}
	}
	return id
}

// NewStr allocates a node that carries a string payload.
func (t *Tree) NewStr(kind Kind, s string, span source.Span, children ...NodeID) NodeID {
	id := t.New(kind, span, children...)
	t.Node(id).Str = s
	return id
}

// NewOp allocates an operator node.
func (t *Tree) NewOp(kind Kind, op token.Kind, span source.Span, children ...NodeID) NodeID {
	id := t.New(kind, span, children...)
	t.Node(id).Op = op
	return id
}
