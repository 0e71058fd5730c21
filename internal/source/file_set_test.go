package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.js", []byte("var a;\nvar bb;\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{4, LineCol{1, 5}},
		{6, LineCol{1, 7}},
		{7, LineCol{2, 1}},
		{15, LineCol{3, 1}},
		{16, LineCol{4, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.js", []byte("one\ntwo\nthree")))
	for i, want := range []string{"one", "two", "three", ""} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Errorf("line %d: got %q, want %q", i+1, got, want)
		}
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	in := []byte("\xEF\xBB\xBFa\r\nb\rc")
	out, bom := removeBOM(in)
	if !bom {
		t.Fatal("expected BOM to be detected")
	}
	out, crlf := normalizeCRLF(out)
	if !crlf {
		t.Fatal("expected CRLF to be normalized")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("got %q", out)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath("./lib/../lib/a.js"); got != "lib/a.js" {
		t.Fatalf("got %q", got)
	}
}
