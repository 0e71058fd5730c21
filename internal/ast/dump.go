package ast

import (
	"fmt"
	"strings"
)

// Dump renders the subtree as an indented outline, one node per line:
//
//	SCRIPT
//	  EXPR_RESULT
//	    CALL
//	      NAME require
//	      STRING "./a"
func Dump(t *Tree, root NodeID) string {
	var b strings.Builder
	dumpNode(&b, t, root, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, t *Tree, id NodeID, depth int) {
	n := t.Node(id)
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	switch n.Kind {
	case String:
		fmt.Fprintf(b, " %q", n.Str)
	case Assign, Binary, Unary, Update:
		b.WriteString(" " + n.Op.String())
	default:
		if n.Str != "" {
			b.WriteString(" " + n.Str)
		}
	}
	if n.Doc != nil {
		b.WriteString(" " + n.Doc.String())
	}
	b.WriteByte('\n')
	for c := n.first; c != NoNode; c = t.Next(c) {
		dumpNode(b, t, c, depth+1)
	}
}
