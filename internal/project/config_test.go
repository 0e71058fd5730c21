package project

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), `
[project]
name = "shop"
roots = ["src"]

[rewrite]
inputs = ["src/**/*.js"]
force = ["src/legacy.js"]
externs = ["module"]

[output]
bundle = "dist/app.js"
`)
	sub := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(sub)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Project.Name != "shop" || !reflect.DeepEqual(cfg.Project.Roots, []string{"src"}) {
		t.Fatalf("project section = %+v", cfg.Project)
	}
	if cfg.Output.Dir != "" || cfg.Output.Bundle != "dist/app.js" || !cfg.Output.JSDoc {
		t.Fatalf("output section = %+v", cfg.Output)
	}
	if got := cfg.Abs("src"); got != filepath.Join(root, "src") {
		t.Fatalf("Abs(src) = %q", got)
	}
	if !cfg.IsForced(filepath.Join(root, "src", "legacy.js")) || cfg.IsForced(filepath.Join(root, "src", "a.js")) {
		t.Fatal("force patterns not applied")
	}
}

func TestDiscoverDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Dir != dir || cfg.Output.Dir != "out" {
		t.Fatalf("default config = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[project\nname = 1", "failed to parse TOML"},
		{"unknown-key", "[rewrite]\ninptus = []", "unknown key"},
		{"empty-inputs", "[rewrite]\ninputs = []", "inputs is empty"},
		{"bad-pattern", "[rewrite]\ninputs = [\"[\"]", "bad pattern"},
		{"dir-and-bundle", "[output]\ndir = \"out\"\nbundle = \"b.js\"", "both dir and bundle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ConfigName)
	writeFile(t, path, string(data))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if !reflect.DeepEqual(cfg.Rewrite, want.Rewrite) || !reflect.DeepEqual(cfg.Output, want.Output) {
		t.Fatalf("round trip changed config:\n%s", data)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{"**/*.js", "a.js", true},
		{"**/*.js", "lib/x/a.js", true},
		{"src/**/*.js", "src/a.js", true},
		{"src/**/*.js", "lib/a.js", false},
		{"./src/*.js", "src/a.js", true},
		{"src/*.js", "src/x/a.js", false},
		{"src/legacy.js", "src/legacy.js", true},
	}
	for _, tt := range tests {
		if got := Match(tt.pattern, tt.name); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestInputFiles(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"src/a.js", "src/b/c.js", "src/readme.md", "node_modules/x/i.js", "out/a.js", ".git/h.js"} {
		writeFile(t, filepath.Join(root, f), "")
	}
	cfg := Default()
	cfg.Dir = root
	files, err := cfg.InputFiles()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "src/a.js"), filepath.Join(root, "src/b/c.js")}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("InputFiles = %v, want %v", files, want)
	}
}
