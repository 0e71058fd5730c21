package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"cjsflat/internal/diag"
	"cjsflat/internal/source"
)

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib/a.js", []byte("var a = 1;\nvar s = \"unterminated\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 19, End: 32},
		"Unterminated string literal",
	))

	output := decodeJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "LEX1002" {
		t.Errorf("Expected code=LEX1002, got %s", d.Code)
	}
	if d.Name != "" {
		t.Errorf("Expected no symbolic name, got %s", d.Name)
	}
	if d.Location.File != "a.js" {
		t.Errorf("Expected file=a.js, got %s", d.Location.File)
	}
	if d.Location.StartByte != 19 || d.Location.EndByte != 32 {
		t.Errorf("Expected bytes 19-32, got %d-%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 9 {
		t.Errorf("Expected 2:9, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

func TestJSONWithNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("var b = require(\"./b\");"))

	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.CjsModuleLoadWarning,
		source.Span{File: fileID, Start: 16, End: 21}, "Failed to load module \"./b\"")
	d = d.WithNote(source.Span{File: fileID, Start: 8, End: 15}, "required here")
	bag.Add(d)

	output := decodeJSON(t, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	got := output.Diagnostics[0]
	if got.Name != "JSC_JS_MODULE_LOAD_WARNING" {
		t.Errorf("Expected symbolic name, got %q", got.Name)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "required here" {
		t.Fatalf("Unexpected notes: %+v", got.Notes)
	}
	if got.Notes[0].Location.StartCol != 9 {
		t.Errorf("Expected note col 9, got %d", got.Notes[0].Location.StartCol)
	}

	output = decodeJSON(t, bag, fs, JSONOpts{})
	if len(output.Diagnostics[0].Notes) != 0 {
		t.Errorf("Notes must be omitted without IncludeNotes")
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("var x = 42"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.SynExpectSemicolon,
		source.Span{File: fileID, Start: 10, End: 10}, "Missing semicolon"))

	loc := decodeJSON(t, bag, fs, JSONOpts{}).Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 || loc.EndLine != 0 || loc.EndCol != 0 {
		t.Errorf("Expected no line/col, got %+v", loc)
	}
	if loc.StartByte != 10 {
		t.Errorf("Expected start_byte=10, got %d", loc.StartByte)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("a b c d e"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken,
			source.Span{File: fileID, Start: i * 2, End: i*2 + 1}, "Unexpected token"))
	}

	output := decodeJSON(t, bag, fs, JSONOpts{Max: 3})
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}
	if output := decodeJSON(t, bag, fs, JSONOpts{}); output.Count != 5 {
		t.Errorf("Expected 5 diagnostics without limit, got %d", output.Count)
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/a.js", []byte("x"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "Unexpected token"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/a.js"},
		{PathModeRelative, "src/a.js"},
		{PathModeBasename, "a.js"},
		{PathModeAuto, "src/a.js"},
	}
	for _, tt := range tests {
		got := decodeJSON(t, bag, fs, JSONOpts{PathMode: tt.mode}).Diagnostics[0].Location.File
		if got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"": PathModeAuto, "abs": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename,
	} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %d, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Error("unknown mode accepted")
	}
}
