package diag

import (
	"strings"
	"testing"

	"cjsflat/internal/source"
)

func TestCodeIDsAndNames(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		name string
	}{
		{LexUnknownChar, "LEX1001", "LEX1001"},
		{SynUnexpectedToken, "SYN2001", "SYN2001"},
		{CjsUnknownRequireEnsure, "CJS3001", "JSC_COMMONJS_UNKNOWN_REQUIRE_ENSURE_ERROR"},
		{CjsSuspiciousExportsAssign, "CJS3002", "JSC_COMMONJS_SUSPICIOUS_EXPORTS_ASSIGNMENT"},
		{CjsModuleLoadWarning, "CJS3003", "JSC_JS_MODULE_LOAD_WARNING"},
		{UnknownCode, "E0000", "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Name(); got != tt.name {
			t.Errorf("%d.Name() = %q, want %q", tt.code, got, tt.name)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unexpected fallback title %q", Code(9999).Title())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 3, End: 7}
	r.Report(CjsModuleLoadWarning, SevWarning, sp, "x", nil)
	r.Report(CjsModuleLoadWarning, SevWarning, sp, "x", nil)
	r.Report(CjsModuleLoadWarning, SevWarning, sp, "y", nil)
	if bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %d", bag.Len())
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 10, End: 11}, "b"))
	bag.Add(NewWarningf(CjsModuleLoadWarning, source.Span{Start: 1, End: 2}, "Failed to load module %q", "./x"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 10, End: 11}, "b"))
	if bag.Add(NewError(SynUnexpectedToken, source.Span{}, "overflow")) {
		t.Fatal("bag accepted a diagnostic past its limit")
	}
	bag.Sort()
	if bag.Items()[0].Code != CjsModuleLoadWarning {
		t.Errorf("sort order wrong: %+v", bag.Items())
	}
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("dedup left %d items", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("severity queries wrong")
	}
	bag.Filter(func(d Diagnostic) bool { return d.Severity < SevError })
	if bag.HasErrors() {
		t.Error("filter kept errors")
	}
}

func TestHasWarningsIgnoresErrors(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SynUnexpectedToken, source.Span{}, "bad"))
	if bag.HasWarnings() {
		t.Error("error counted as warning")
	}
	bag.Add(NewWarningf(CjsModuleLoadWarning, source.Span{}, "unknown %s", "x"))
	if !bag.HasWarnings() {
		t.Error("warning not reported")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib/a.js", []byte("var a;\nrequire.ensure();\n"))
	diags := []Diagnostic{
		New(SevWarning, CjsUnknownRequireEnsure, source.Span{File: id, Start: 7, End: 23}, "Unrecognized require.ensure call:\nbad").
			WithNote(source.Span{File: id, Start: 0, End: 3}, "declared here"),
	}
	got := FormatShort(diags, fs, true)
	want := strings.Join([]string{
		"note CJS3001 lib/a.js:1:1 declared here",
		"warning CJS3001 lib/a.js:2:1 Unrecognized require.ensure call: bad",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
