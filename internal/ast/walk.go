package ast

// PreOrder visits root and its descendants; returning false from visit
// skips the children of that node. The next sibling is read before the
// children are visited, so visit may replace the node it is given.
func PreOrder(t *Tree, root NodeID, visit func(NodeID) bool) {
	if root == NoNode || !visit(root) {
		return
	}
	for c := t.First(root); c != NoNode; {
		next := t.Next(c)
		PreOrder(t, c, visit)
		c = next
	}
}

// Visitor is driven by Traverse.
type Visitor interface {
	// Enter is called before the children; false skips them and Leave.
	Enter(id, parent NodeID) bool
	// Leave is called after all children have been visited.
	Leave(id, parent NodeID)
}

// Traverse walks root in post order. Like PreOrder, it remembers the next
// sibling before descending, so Leave may detach or replace id.
func Traverse(t *Tree, root NodeID, v Visitor) {
	traverse(t, root, t.Parent(root), v)
}

func traverse(t *Tree, id, parent NodeID, v Visitor) {
	if !v.Enter(id, parent) {
		return
	}
	for c := t.First(id); c != NoNode; {
		next := t.Next(c)
		traverse(t, c, id, v)
		c = next
	}
	v.Leave(id, parent)
}

// Funcs adapts two closures to Visitor; either may be nil.
type Funcs struct {
	EnterFn func(id, parent NodeID) bool
	LeaveFn func(id, parent NodeID)
}

func (f Funcs) Enter(id, parent NodeID) bool {
	if f.EnterFn == nil {
		return true
	}
	return f.EnterFn(id, parent)
}

func (f Funcs) Leave(id, parent NodeID) {
	if f.LeaveFn != nil {
		f.LeaveFn(id, parent)
	}
}
