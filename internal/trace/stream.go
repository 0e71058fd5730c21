package trace

import (
	"bufio"
	"io"
	"sync"
	"sync/atomic"
)

var globalSeq atomic.Uint64

// StreamTracer formats each event as it arrives and writes it through a
// buffer. Close flushes the buffer and closes the writer when it is an
// io.Closer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, buf: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) && !ev.Failed {
		return
	}
	ev.Seq = globalSeq.Add(1)
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибки записи трассы не должны ронять прогон
	_, _ = t.buf.Write(data) //nolint:errcheck
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Flush()
}

func (t *StreamTracer) Close() error {
	err := t.Flush()
	if c, ok := t.w.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
