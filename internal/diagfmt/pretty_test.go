package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cjsflat/internal/diag"
	"cjsflat/internal/source"
)

func TestPrettyLayout(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib/a.js", []byte("var s = \"unterminated string\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "a.js:1:9: ERROR LEX1002: Unterminated string literal\n" +
		"  1 | var s = \"unterminated string\n" +
		"    |         ^~~~~~~~~~~~~~~~~~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/test.js", []byte("var x = \"unterminated string\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name   string
		mode   PathMode
		prefix string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.js:1:9:"},
		{"Relative path", PathModeRelative, "src/test.js:1:9:"},
		{"Basename only", PathModeBasename, "test.js:1:9:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.HasPrefix(output, tt.prefix) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.prefix, output)
			}
			if !strings.Contains(output, "ERROR LEX1002") {
				t.Errorf("Expected severity and code in output:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Relative path - as is", "lib/test.js", "lib/test.js:"},
		{"Under base - relative", "/work/lib/test.js", "lib/test.js:"},
		{"Long path elsewhere - basename", "/very/long/absolute/path/to/some/nested/directory/file.js", "file.js:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("var x = 42\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar,
				source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if output := buf.String(); !strings.HasPrefix(output, tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("var b = require(\"./b\");\nexports = b;\nexports.c = 1;\n"))

	bag := diag.NewBag(4)
	d := diag.New(diag.SevWarning, diag.CjsSuspiciousExportsAssign,
		source.Span{File: fileID, Start: 24, End: 31}, "Suspicious re-assignment of \"exports\" variable")
	d = d.WithNote(source.Span{File: fileID, Start: 8, End: 15}, "value comes from here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	for _, want := range []string{
		"a.js:2:1: WARNING CJS3002:",
		"  1 | var b = require(\"./b\");\n",
		"  2 | exports = b;\n    | ^~~~~~~\n",
		"  3 | exports.c = 1;\n",
		"  note: a.js:1:9: value comes from here\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ProjNoInputs, source.Span{}, "no input files"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "ERROR PRJ5002: no input files\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "Unexpected token"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestUnderlineWide(t *testing.T) {
	text := "\tvar 名前 = 1;"
	// "名前" занимает четыре колонки
	from := strings.Index(text, "名")
	got := underline(text, from, from+len("名前"))
	if got != "\t    ^~~~" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyWideSnippet(t *testing.T) {
	fs := source.NewFileSet()
	src := "var 名前x = 1;\n"
	fileID := fs.AddVirtual("a.js", []byte(src))
	start := uint32(strings.Index(src, "名"))
	end := uint32(strings.Index(src, " ="))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: start, End: end}, "Unexpected token"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	// пять колонок: два широких символа и x
	if want := "  1 | var 名前x = 1;\n    |     ^~~~~\n"; !strings.Contains(buf.String(), want) {
		t.Fatalf("expected %q in output:\n%s", want, buf.String())
	}
}

func TestPrettyRunLevel(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.js", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{}, "failed to write out.js: denied"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: failed to write out.js: denied\n" {
		t.Fatalf("got %q", got)
	}
}
