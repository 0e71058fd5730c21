package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole run
	ScopePass                    // run phases: scan, rewrite, order, write
	ScopeModule                  // one input file
	ScopeNode                    // steps inside one file: parse, process, print
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeModule:
		return "module"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event is one record written by a Tracer.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Name     string // "parse", "module:lib/a.js"
	Detail   string
	Elapsed  time.Duration // set on KindSpanEnd
	Failed   bool
	Extra    map[string]string
}
