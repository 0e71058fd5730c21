package diagfmt

import (
	"encoding/json"
	"io"

	"cjsflat/internal/diag"
	"cjsflat/internal/source"
)

// LocationJSON is a span with an optional 1-based line/column range.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Name     string       `json:"name,omitempty"` // JSC_* name, if the code has one
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:      displayPath(b.fs, span.File, b.opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if name := d.Code.Name(); name != out.Code {
		out.Name = name
	}
	// заметки таймингов и есть их содержимое
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	return out
}

// BuildDiagnosticsOutput converts at most opts.Max diagnostics of bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for i := range items {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(&items[i]))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as an indented DiagnosticsOutput document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
