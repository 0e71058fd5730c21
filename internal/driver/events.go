package driver

import "time"

// EventKind tells what an Event reports.
type EventKind int

const (
	// EventPhaseStart and EventPhaseEnd bracket a run phase (scan,
	// rewrite, order, write).
	EventPhaseStart EventKind = iota
	EventPhaseEnd
	// EventFileDone is sent once per input after its rewrite finished or
	// was served from the cache.
	EventFileDone
)

// Event is one progress notification of a run.
type Event struct {
	Kind    EventKind
	Phase   string
	Path    string
	Index   int // position in Result.Files
	Total   int
	Cached  bool
	Failed  bool
	Elapsed time.Duration
}

// Observer receives events. It is called from worker goroutines and must
// be safe for concurrent use.
type Observer func(Event)

func (o Observer) emit(ev Event) {
	if o != nil {
		o(ev)
	}
}
