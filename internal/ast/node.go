package ast

import (
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

// NodeID addresses a node inside its Tree. NoNode is the zero value.
type NodeID uint32

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

// Flags are per-node boolean properties.
type Flags uint16

const (
	// FlagFreeCall marks a call whose callee is not a property access and must
	// be emitted without a receiver, e.g. the result of inlining require.ensure.
	FlagFreeCall Flags = 1 << iota
	// FlagQuoted marks a quoted object literal key.
	FlagQuoted
	// FlagShorthand marks {a} style keys in literals and patterns.
	FlagShorthand
	FlagArrow
	FlagStatic
	FlagPostfix
	// FlagSynthetic marks blocks the parser invented around single statements.
	FlagSynthetic
	// FlagMethod marks a COMPUTED_PROP written as `[k]() {}`.
	FlagMethod
)

// Node is one syntax tree node.
type Node struct {
	Kind Kind
	// Op is the operator of ASSIGN, BINARY, UNARY and UPDATE nodes.
	Op    token.Kind
	Flags Flags
	// Str holds names (NAME, LABEL_NAME, FUNCTION-less keys), the property
	// of GETPROP, decoded STRING values, NUMBER and REGEXP source text.
	Str  string
	Span source.Span
	Doc  *jsdoc.Info

	parent NodeID
	first  NodeID
	last   NodeID
	next   NodeID
	prev   NodeID
}

// Has reports whether all bits of f are set.
func (n *Node) Has(f Flags) bool { return n.Flags&f == f }
