package diag

import "cjsflat/internal/source"

// Reporter receives diagnostics from the lexer, the parser and the
// rewrite. BagReporter collects them; DedupReporter filters repeats.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter appends to Bag, subject to its limit.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// NopReporter drops everything; used for lookups that must stay silent.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
