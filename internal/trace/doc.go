// Package trace records begin/end events for the phases of a rewrite run.
//
// A run opens a driver span and a pass span for each run phase (scan,
// rewrite, order, write). Every input file gets a module span under its
// phase, and the steps inside a file (parse, process, print) get node
// spans:
//
//	cjsflat rewrite --trace=- --trace-level=detail src/
//
// Levels filter by scope. LevelPhase keeps driver and pass spans,
// LevelDetail adds per-module spans, LevelDebug keeps everything.
//
// The tracer is carried through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "scan", trace.ParentFrom(ctx))
//	defer sp.End("")
package trace
