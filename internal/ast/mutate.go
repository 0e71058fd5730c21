package ast

import "fmt"

func (t *Tree) mustBeDetached(id NodeID) {
	if n := t.Node(id); n.parent != NoNode || n.next != NoNode || n.prev != NoNode {
		panic(fmt.Sprintf("ast: node %d (%s) is still attached to %d", id, n.Kind, n.parent))
	}
}

// Detach unlinks id from its parent and returns it.
func (t *Tree) Detach(id NodeID) NodeID {
	n := t.Node(id)
	if n.parent == NoNode {
		return id
	}
	p := t.Node(n.parent)
	if n.prev != NoNode {
		t.Node(n.prev).next = n.next
	} else {
		p.first = n.next
	}
	if n.next != NoNode {
		t.Node(n.next).prev = n.prev
	} else {
		p.last = n.prev
	}
	n.parent, n.next, n.prev = NoNode, NoNode, NoNode
	return id
}

// ReplaceWith puts repl (detached) where id is; id ends up detached.
func (t *Tree) ReplaceWith(id, repl NodeID) {
	parent := t.Parent(id)
	if parent == NoNode {
		panic(fmt.Sprintf("ast: cannot replace detached node %d", id))
	}
	t.ReplaceChild(parent, id, repl)
}

// ReplaceChild swaps child old of parent for repl (detached).
func (t *Tree) ReplaceChild(parent, old, repl NodeID) {
	if t.Parent(old) != parent {
		panic(fmt.Sprintf("ast: node %d is not a child of %d", old, parent))
	}
	if old == repl {
		return
	}
	t.mustBeDetached(repl)
	o, r := t.Node(old), t.Node(repl)
	r.parent, r.prev, r.next = parent, o.prev, o.next
	p := t.Node(parent)
	if o.prev != NoNode {
		t.Node(o.prev).next = repl
	} else {
		p.first = repl
	}
	if o.next != NoNode {
		t.Node(o.next).prev = repl
	} else {
		p.last = repl
	}
	o.parent, o.prev, o.next = NoNode, NoNode, NoNode
}

func (t *Tree) AddChildToFront(parent, child NodeID) {
	t.mustBeDetached(child)
	p, c := t.Node(parent), t.Node(child)
	c.parent = parent
	c.next = p.first
	if p.first != NoNode {
		t.Node(p.first).prev = child
	} else {
		p.last = child
	}
	p.first = child
}

func (t *Tree) AddChildToBack(parent, child NodeID) {
	t.mustBeDetached(child)
	p, c := t.Node(parent), t.Node(child)
	c.parent = parent
	c.prev = p.last
	if p.last != NoNode {
		t.Node(p.last).next = child
	} else {
		p.first = child
	}
	p.last = child
}

// AddChildAfter inserts child right after sibling.
func (t *Tree) AddChildAfter(child, sibling NodeID) {
	t.mustBeDetached(child)
	s := t.Node(sibling)
	if s.parent == NoNode {
		panic(fmt.Sprintf("ast: sibling %d is detached", sibling))
	}
	c := t.Node(child)
	c.parent, c.prev, c.next = s.parent, sibling, s.next
	if s.next != NoNode {
		t.Node(s.next).prev = child
	} else {
		t.Node(s.parent).last = child
	}
	s.next = child
}

// AddChildBefore inserts child right before sibling.
func (t *Tree) AddChildBefore(child, sibling NodeID) {
	t.mustBeDetached(child)
	s := t.Node(sibling)
	if s.parent == NoNode {
		panic(fmt.Sprintf("ast: sibling %d is detached", sibling))
	}
	c := t.Node(child)
	c.parent, c.prev, c.next = s.parent, s.prev, sibling
	if s.prev != NoNode {
		t.Node(s.prev).next = child
	} else {
		t.Node(s.parent).first = child
	}
	s.prev = child
}

// AddChildrenToFront inserts kids, in order, before the current first child.
func (t *Tree) AddChildrenToFront(parent NodeID, kids []NodeID) {
	for i := len(kids) - 1; i >= 0; i-- {
		t.AddChildToFront(parent, kids[i])
	}
}

// AddChildrenAfter inserts kids, in order, after sibling.
func (t *Tree) AddChildrenAfter(kids []NodeID, sibling NodeID) {
	at := sibling
	for _, k := range kids {
		t.AddChildAfter(k, at)
		at = k
	}
}

// RemoveChildren detaches every child of parent and returns them in order.
func (t *Tree) RemoveChildren(parent NodeID) []NodeID {
	kids := t.Children(parent)
	for _, k := range kids {
		t.Detach(k)
	}
	return kids
}

// CloneTree deep-copies id and its subtree; the copy is detached.
func (t *Tree) CloneTree(id NodeID) NodeID {
	src := *t.Node(id)
	cp := t.New(src.Kind, src.Span)
	n := t.Node(cp)
	n.Op, n.Flags, n.Str, n.Doc = src.Op, src.Flags, src.Str, src.Doc.Clone()
	for c := src.first; c != NoNode; c = t.Next(c) {
		t.AddChildToBack(cp, t.CloneTree(c))
	}
	return cp
}

// CloneNode copies id without its children.
func (t *Tree) CloneNode(id NodeID) NodeID {
	src := *t.Node(id)
	cp := t.New(src.Kind, src.Span)
	n := t.Node(cp)
	n.Op, n.Flags, n.Str, n.Doc = src.Op, src.Flags, src.Str, src.Doc.Clone()
	return cp
}
