package diag

import "cjsflat/internal/source"

// DedupReporter forwards each (code, severity, span, message) once. The
// rewrite revisits nodes across detector iterations and would otherwise
// report the same problem every time.
type DedupReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := reportKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}
