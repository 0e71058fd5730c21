package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cjsflat/internal/diag"
	"cjsflat/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note func(a ...any) string
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		if !on {
			return fmt.Sprint
		}
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty печатает диагностики в порядке bag.Items() (bag.Sort() вызывается заранее):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	  12 | var a = require(x);
//	     |         ^~~~~~~~~~
//	  note: <path>:<line>:<col>: <message>
//
// Diagnostics without a known file, and I/O and timing diagnostics, print
// only the header.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		if f == nil || !sourceBound(d.Code) {
			fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity), p.code(d.Code.ID()), d.Message)
		} else {
			start, _ := fs.Resolve(d.Primary)
			fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
				displayPath(fs, f.ID, opts.PathMode), start.Line, start.Col,
				p.severity(d.Severity), p.code(d.Code.ID()), d.Message)
			writeSnippet(w, f, fs, d.Primary, opts, p)
		}

		if !opts.ShowNotes && d.Code != diag.ObsTimings {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil || d.Code == diag.ObsTimings {
				fmt.Fprintf(w, "  %s %s\n", p.note("note:"), n.Msg)
				continue
			}
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note("note:"),
				displayPath(fs, nf.ID, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}
}

// sourceBound reports codes whose span points into source text. I/O and
// observability codes carry run-level spans.
func sourceBound(c diag.Code) bool {
	return c < diag.IOLoadFileError || (c >= diag.ProjInfo && c < diag.ObsInfo)
}

func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette) {
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(opts.Context, 0)) //nolint:gosec // non-negative
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	if lines := uint32(len(f.LineIdx)) + 1; last > lines { //nolint:gosec // bounded in Add
		last = lines
	}
	gw := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if ln > start.Line && ln == last && text == "" {
			break
		}
		shown := text
		if opts.Width > 0 {
			shown = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter(fmt.Sprintf("%*d |", gw+2, ln)), shown)
		if ln != start.Line {
			continue
		}
		to := len(text)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(text))
		}
		from := min(int(start.Col-1), len(text))
		fmt.Fprintf(w, "%s %s\n", p.gutter(fmt.Sprintf("%*s |", gw+2, "")),
			p.caret(underline(text, from, to)))
	}
}

// underline builds the marker line for text[from:to]. Tabs are kept so the
// marker stays aligned under the source, wide runes take two cells.
func underline(text string, from, to int) string {
	var b strings.Builder
	for _, r := range text[:from] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	b.WriteByte('^')
	if to > from {
		if n := runewidth.StringWidth(text[from:to]); n > 1 {
			b.WriteString(strings.Repeat("~", n-1))
		}
	}
	return b.String()
}
