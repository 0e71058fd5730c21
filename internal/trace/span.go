package trace

import (
	"sync/atomic"
	"time"
)

var globalSpans atomic.Uint64

// Span is an open begin/end pair. The zero value and nil are valid and
// record nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	silent  bool // begin was filtered; only a failure is written
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return &Span{}
	}
	sp := &Span{
		tracer:  t,
		id:      globalSpans.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
		silent:  !t.Level().ShouldEmit(scope),
	}
	if !sp.silent {
		t.Emit(Event{
			Time:     sp.started,
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   sp.id,
			ParentID: parent,
			Name:     name,
		})
	}
	return sp
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	return s.end(detail, false)
}

// Fail closes the span as failed. Failures are written even when the
// span's scope is filtered out.
func (s *Span) Fail(err error) time.Duration {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return s.end(detail, true)
}

func (s *Span) end(detail string, failed bool) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	dur := time.Since(s.started)
	if s.silent && !failed {
		return dur
	}
	s.tracer.Emit(Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  dur,
		Failed:   failed,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra attaches a key/value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Point writes an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(Event{Time: time.Now(), Kind: KindPoint, Scope: scope, ParentID: parent, Name: name, Detail: detail})
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
