package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only failed spans
	LevelPhase               // driver and pass boundaries
	LevelDetail              // plus one span per module
	LevelDebug               // everything
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of the given scope pass the level.
// Failed spans bypass it at every level but LevelOff.
// Module spans sit below pass spans in the hierarchy but are the more
// verbose of the two, so LevelPhase drops them.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope == ScopeDriver || scope == ScopePass
	case LevelDetail:
		return scope != ScopeNode
	case LevelDebug:
		return true
	}
	return false
}
