package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cjsflat/internal/diag"
	"cjsflat/internal/modpath"
)

func writeTree(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, src := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return dir, paths
}

func outputs(res *Result) map[string]string {
	out := make(map[string]string, len(res.Files))
	for _, fr := range res.Files {
		out[fr.Module.String()] = fr.Output
	}
	return out
}

var project3 = map[string]string{
	"lib/a.js": "var b = require(\"./b\");\nvar g = require(\"./g\");\nexports.y = b.x + g.x;",
	"lib/b.js": "exports.x = 1;",
	"lib/g.js": "goog.provide(\"g\");\ng.x = 2;",
}

func TestRewriteFiles(t *testing.T) {
	dir, files := writeTree(t, project3)
	res, err := RewriteFiles(context.Background(), Request{Files: files, BaseDir: dir, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Diagnostics().Items())
	}
	got := outputs(res)
	want := map[string]string{
		"lib/a.js": "var module$lib$a = {default: {}};\nmodule$lib$a.default.y = module$lib$b.default.x + module$lib$g.x;\n",
		"lib/b.js": "var module$lib$b = {default: {}};\nmodule$lib$b.default.x = 1;\n",
		"lib/g.js": "goog.provide(\"g\");\ng.x = 2;\n",
	}
	for path, w := range want {
		if got[path] != w {
			t.Errorf("%s:\n%s\nwant:\n%s", path, got[path], w)
		}
	}

	var order []string
	for _, i := range res.Order {
		order = append(order, res.Files[i].Module.String())
	}
	if strings.Join(order, " ") != "lib/b.js lib/g.js lib/a.js" {
		t.Fatalf("order = %v", order)
	}
	if res.Stats.Rewritten != 3 || res.Stats.Cached != 0 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	for _, fr := range res.Files {
		if fr.Module.String() == "lib/g.js" && fr.Type != modpath.TypeGoog {
			t.Fatalf("g.js classified as %v", fr.Type)
		}
	}
}

func TestRewriteFilesCache(t *testing.T) {
	dir, files := writeTree(t, project3)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	req := Request{Files: files, BaseDir: dir, Cache: cache}

	first, err := RewriteFiles(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RewriteFiles(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if second.Stats.Cached != 3 {
		t.Fatalf("second run stats = %+v", second.Stats)
	}
	a, b := outputs(first), outputs(second)
	for path := range a {
		if a[path] != b[path] {
			t.Errorf("%s differs after cache:\n%s\nvs\n%s", path, a[path], b[path])
		}
	}

	// смена типа g.js должна сбросить кэш для всех
	if err := os.WriteFile(filepath.Join(dir, "lib", "g.js"), []byte("exports.x = 2;"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := RewriteFiles(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if third.Stats.Cached != 0 {
		t.Fatalf("third run stats = %+v", third.Stats)
	}
	if got := outputs(third)["lib/a.js"]; !strings.Contains(got, "module$lib$g.default.x") {
		t.Fatalf("a.js not rewritten against new g.js:\n%s", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := RewriteFiles(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Stats.Cached != 0 {
		t.Fatalf("cache not dropped: %+v", fourth.Stats)
	}
}

func TestRewriteFilesCachedDiagnostics(t *testing.T) {
	dir, files := writeTree(t, map[string]string{
		"a.js": "var m = require(\"./missing\");\nexports.x = m;",
	})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	req := Request{Files: files, BaseDir: dir, Cache: cache}
	for run := range 2 {
		res, err := RewriteFiles(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		fr := res.Files[0]
		if fr.Cached != (run == 1) {
			t.Fatalf("run %d: Cached = %v", run, fr.Cached)
		}
		items := fr.Bag.Items()
		if len(items) != 1 || items[0].Code != diag.CjsModuleLoadWarning || items[0].Primary.File != fr.FileID {
			t.Fatalf("run %d: diagnostics = %+v", run, items)
		}
	}
}

func TestRewriteFilesFailures(t *testing.T) {
	dir, files := writeTree(t, map[string]string{
		"ok.js":  "exports.a = 1;",
		"bad.js": "exports.a = ;",
	})
	files = append(files, filepath.Join(dir, "gone.js"))
	res, err := RewriteFiles(context.Background(), Request{Files: files, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Failed != 2 || res.Stats.Rewritten != 1 || len(res.Order) != 1 {
		t.Fatalf("stats = %+v, order = %v", res.Stats, res.Order)
	}
	codes := map[diag.Code]bool{}
	for _, d := range res.Diagnostics().Items() {
		codes[d.Code] = true
	}
	if !codes[diag.IOLoadFileError] {
		t.Fatalf("missing load error: %v", res.Diagnostics().Items())
	}
	if !res.HasErrors() {
		t.Fatal("HasErrors = false")
	}
}

func TestRewriteFilesNoInputs(t *testing.T) {
	res, err := RewriteFiles(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if items := res.Bag.Items(); len(items) != 1 || items[0].Code != diag.ProjNoInputs {
		t.Fatalf("diagnostics = %v", items)
	}
}

func TestRewriteFilesCycle(t *testing.T) {
	dir, files := writeTree(t, map[string]string{
		"a.js": "var b = require(\"./b\");\nexports.f = function() { return b.g(); };",
		"b.js": "var a = require(\"./a\");\nexports.g = function() { return a; };",
	})
	res, err := RewriteFiles(context.Background(), Request{Files: files, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Order) != 2 {
		t.Fatalf("order = %v", res.Order)
	}
	n := 0
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ProjImportCycle {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("%d cycle warnings, want 2: %v", n, res.Bag.Items())
	}
}

func TestRewriteFilesForceAndRoots(t *testing.T) {
	dir, files := writeTree(t, map[string]string{
		"src/legacy.js": "var helper = 1;",
		"src/main.js":   "var l = require(\"./legacy\");\nexports.h = l;",
	})
	res, err := RewriteFiles(context.Background(), Request{
		Files:   files,
		BaseDir: dir,
		Roots:   []string{"src"},
		Force:   func(p string) bool { return strings.HasSuffix(p, "legacy.js") },
	})
	if err != nil {
		t.Fatal(err)
	}
	got := outputs(res)
	if want := "var module$legacy = {default: {}};\nvar helper$$module$legacy = 1;\n"; got["legacy.js"] != want {
		t.Errorf("legacy.js:\n%s\nwant:\n%s", got["legacy.js"], want)
	}
	if want := "var module$main = {default: {}};\nmodule$main.default.h = module$legacy.default;\n"; got["main.js"] != want {
		t.Errorf("main.js:\n%s\nwant:\n%s", got["main.js"], want)
	}
}

func TestRewriteFilesObserverAndTimings(t *testing.T) {
	dir, files := writeTree(t, project3)
	var mu sync.Mutex
	done := 0
	phases := map[string]int{}
	res, err := RewriteFiles(context.Background(), Request{
		Files:   files,
		BaseDir: dir,
		Timings: true,
		Observer: func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			switch ev.Kind {
			case EventFileDone:
				done++
			case EventPhaseEnd:
				phases[ev.Phase]++
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if done != 3 || phases["scan"] != 1 || phases["rewrite"] != 1 || phases["order"] != 1 {
		t.Fatalf("done = %d, phases = %v", done, phases)
	}
	for _, fr := range res.Files {
		found := false
		for _, d := range fr.Bag.Items() {
			found = found || d.Code == diag.ObsTimings
		}
		if !found {
			t.Fatalf("%s has no timings diagnostic", fr.Path)
		}
	}
	if len(res.Timing.Phases) == 0 {
		t.Fatal("empty run timing")
	}
}

func TestRewriteFilesCancelled(t *testing.T) {
	dir, files := writeTree(t, project3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RewriteFiles(ctx, Request{Files: files, BaseDir: dir}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRewriteSource(t *testing.T) {
	fr, err := RewriteSource(context.Background(), "lib/x.js", []byte("module.exports = 1;"), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if want := "var module$lib$x = {};\nmodule$lib$x.default = 1;\n"; fr.Output != want {
		t.Fatalf("output:\n%s\nwant:\n%s", fr.Output, want)
	}
	if !fr.Summary.IsCommonJS || fr.Summary.ModuleName != "module$lib$x" {
		t.Fatalf("summary = %+v", fr.Summary)
	}
}

func TestBundleAndWrite(t *testing.T) {
	dir, files := writeTree(t, project3)
	res, err := RewriteFiles(context.Background(), Request{Files: files, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	bundle := Bundle(res)
	if i, j := strings.Index(bundle, "// lib/b.js"), strings.Index(bundle, "// lib/a.js"); i < 0 || j < i {
		t.Fatalf("bundle order wrong:\n%s", bundle)
	}

	out := t.TempDir()
	written := WriteOutputs(context.Background(), res, out)
	if len(written) != 3 || res.Bag.HasErrors() {
		t.Fatalf("written = %v, diags = %v", written, res.Bag.Items())
	}
	data, err := os.ReadFile(filepath.Join(out, "lib", "b.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "module$lib$b.default.x = 1;") {
		t.Fatalf("b.js on disk:\n%s", data)
	}

	bundlePath := filepath.Join(out, "dist", "app.js")
	if err := WriteBundle(context.Background(), res, bundlePath); err != nil {
		t.Fatal(err)
	}
}
