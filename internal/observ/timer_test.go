package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("parse")
	tm.End(i, "12 nodes")
	tm.Time("rewrite", func() {})
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "12 nodes" {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %.3f below phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
}

func TestSum(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Count: 1}, {Name: "rewrite", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "rewrite", DurationMS: 3}, {Name: "print", DurationMS: 1, Count: 1}}}
	got := Sum(a, b)
	if got.TotalMS != 7 || len(got.Phases) != 3 {
		t.Fatalf("Sum = %+v", got)
	}
	if rw := got.Phases[1]; rw.Name != "rewrite" || rw.DurationMS != 5 || rw.Count != 2 {
		t.Fatalf("rewrite phase = %+v", rw)
	}
	if s := got.Summary(); !strings.Contains(s, "x2") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}
