package format

import "strings"

// Writer is the output buffer of the printer. Indentation is written
// lazily, in front of the first byte of each line.
type Writer struct {
	buf   []byte
	unit  string
	depth int
	bol   bool // в начале строки
}

func NewWriter(opt Options, sizeHint int) *Writer {
	opt = opt.withDefaults()
	unit := strings.Repeat(" ", opt.IndentWidth)
	if opt.UseTabs {
		unit = "\t"
	}
	return &Writer{buf: make([]byte, 0, sizeHint), unit: unit}
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) indent() {
	if w.bol {
		for range w.depth {
			w.buf = append(w.buf, w.unit...)
		}
		w.bol = false
	}
}

func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.indent()
	w.buf = append(w.buf, s...)
	w.bol = strings.HasSuffix(s, "\n")
}

// WriteByte never fails; the error is there for io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.indent()
	w.buf = append(w.buf, b)
	w.bol = b == '\n'
	return nil
}

// Space separates tokens unless the output is empty or already ends in
// whitespace.
func (w *Writer) Space() {
	switch w.LastByte() {
	case 0, ' ', '\t', '\n':
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the current line; consecutive calls do not add blank lines.
func (w *Writer) Newline() {
	if last := w.LastByte(); last != 0 && last != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.bol = true
}

// LastByte returns the last byte written, or 0 for empty output.
func (w *Writer) LastByte() byte {
	if n := len(w.buf); n > 0 {
		return w.buf[n-1]
	}
	return 0
}

func (w *Writer) IndentPush() { w.depth++ }

func (w *Writer) IndentPop() {
	if w.depth > 0 {
		w.depth--
	}
}
