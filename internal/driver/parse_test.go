package driver

import (
	"context"
	"path/filepath"
	"testing"

	"cjsflat/internal/token"
)

func TestParseAndTokenize(t *testing.T) {
	_, files := writeTree(t, map[string]string{"a.js": "var x = 1;"})

	pr, err := Parse(files[0], 10)
	if err != nil {
		t.Fatal(err)
	}
	if pr.Bag.Len() != 0 || pr.Tree.ChildCount(pr.Root) != 1 {
		t.Fatalf("parse: %d diagnostics, %d statements", pr.Bag.Len(), pr.Tree.ChildCount(pr.Root))
	}

	tr, err := Tokenize(files[0], 10)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(tr.Tokens); n != 6 || tr.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("tokens = %v", tr.Tokens)
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "none.js"), 10); err == nil {
		t.Fatal("expected load error")
	}
}

func TestParseDir(t *testing.T) {
	dir, _ := writeTree(t, map[string]string{
		"a.js":              "var a;",
		"sub/b.js":          "var b = ;",
		"node_modules/x.js": "var x;",
		"notes.txt":         "",
	})
	_, results, err := ParseDir(context.Background(), dir, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("%d results, want 2", len(results))
	}
	if results[0].Bag.HasErrors() || !results[1].Bag.HasErrors() {
		t.Fatalf("errors: a=%v b=%v", results[0].Bag.Items(), results[1].Bag.Items())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := [32]byte{1, 2, 3}
	var out ScanPayload
	if ok, err := cache.Get("scan", key, &out); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := cache.Put("scan", key, ScanPayload{Schema: diskCacheSchemaVersion, Type: 2}); err != nil {
		t.Fatal(err)
	}
	if ok, err := cache.Get("scan", key, &out); !ok || err != nil || out.Type != 2 {
		t.Fatalf("Get = %v %v %+v", ok, err, out)
	}

	var nilCache *DiskCache
	if ok, err := nilCache.Get("scan", key, &out); ok || err != nil {
		t.Fatal("nil cache should miss")
	}
}
