package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cjsflat/internal/ast"
	"cjsflat/internal/source"
)

// CheckTree checks the links of the subtree under root:
// 1) root has no parent, every child points back at its parent
// 2) prev/next chains agree in both directions and end at first/last
// 3) no node is reachable twice
func CheckTree(t *ast.Tree, root ast.NodeID) error {
	if t == nil || root == ast.NoNode {
		return fmt.Errorf("nil tree or root")
	}
	if p := t.Parent(root); p != ast.NoNode {
		return fmt.Errorf("root %d has parent %d", root, p)
	}
	seen := make(map[ast.NodeID]struct{}, t.Len())
	return checkNode(t, root, seen)
}

func checkNode(t *ast.Tree, id ast.NodeID, seen map[ast.NodeID]struct{}) error {
	if _, dup := seen[id]; dup {
		return fmt.Errorf("node %d (%s) reachable twice", id, t.Kind(id))
	}
	seen[id] = struct{}{}

	prev := ast.NoNode
	for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
		if p := t.Parent(c); p != id {
			return fmt.Errorf("child %d (%s) of %d (%s) points at parent %d", c, t.Kind(c), id, t.Kind(id), p)
		}
		if t.Prev(c) != prev {
			return fmt.Errorf("child %d (%s) of %d has prev %d, want %d", c, t.Kind(c), id, t.Prev(c), prev)
		}
		if err := checkNode(t, c, seen); err != nil {
			return err
		}
		prev = c
	}
	if t.Last(id) != prev {
		return fmt.Errorf("node %d (%s) has last %d, want %d", id, t.Kind(id), t.Last(id), prev)
	}
	return nil
}

// CheckSpans checks the spans of a freshly parsed tree against its file:
// 1) every span belongs to sf and lies within its content
// 2) non-empty sibling spans start in source order
func CheckSpans(t *ast.Tree, root ast.NodeID, sf *source.File) error {
	if t == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkSpan(t, root, sf.ID, lenContent)
}

func checkSpan(t *ast.Tree, id ast.NodeID, file source.FileID, limit uint32) error {
	sp := t.Span(id)
	if sp.File != file {
		return fmt.Errorf("node %d (%s) span file mismatch: got=%d want=%d", id, t.Kind(id), sp.File, file)
	}
	if sp.Start > sp.End || sp.End > limit {
		return fmt.Errorf("node %d (%s) span %v out of bounds (content %d)", id, t.Kind(id), sp, limit)
	}
	var last uint32
	for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
		if cs := t.Span(c); !cs.Empty() {
			if cs.Start < last {
				return fmt.Errorf("span %v of %s starts before its previous sibling (%d)", cs, t.Kind(c), last)
			}
			last = cs.Start
		}
		if err := checkSpan(t, c, file, limit); err != nil {
			return err
		}
	}
	return nil
}
