package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigName is the file FindConfig looks for.
const ConfigName = "cjsflat.toml"

// Config mirrors cjsflat.toml. Relative paths in it are relative to Dir.
type Config struct {
	Project ProjectSection `toml:"project"`
	Rewrite RewriteSection `toml:"rewrite"`
	Output  OutputSection  `toml:"output"`

	// Path of the file the config was read from; empty for Default().
	Path string `toml:"-"`
	// Dir is the directory of Path, or the working directory.
	Dir string `toml:"-"`
}

type ProjectSection struct {
	Name  string   `toml:"name"`
	Roots []string `toml:"roots"`
}

type RewriteSection struct {
	Inputs              []string `toml:"inputs"`
	Force               []string `toml:"force"`
	Externs             []string `toml:"externs"`
	ExportTestFunctions bool     `toml:"export_test_functions"`
}

type OutputSection struct {
	Dir    string `toml:"dir"`
	Bundle string `toml:"bundle"`
	JSDoc  bool   `toml:"jsdoc"`
}

// Default is the configuration used without a cjsflat.toml.
func Default() Config {
	return Config{
		Project: ProjectSection{Name: "app", Roots: []string{"."}},
		Rewrite: RewriteSection{Inputs: []string{"**/*.js"}},
		Output:  OutputSection{Dir: "out", JSDoc: true},
		Dir:     ".",
	}
}

// FindConfig walks up from startDir to the nearest cjsflat.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig reads path over Default(): keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
	}
	if meta.IsDefined("output", "bundle") && !meta.IsDefined("output", "dir") {
		cfg.Output.Dir = ""
	}
	cfg.Path = path
	cfg.Dir = filepath.Dir(path)
	return cfg, cfg.Validate()
}

// Discover loads the nearest cjsflat.toml above startDir, or returns
// Default() rooted at startDir when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		cfg := Default()
		if startDir != "" {
			cfg.Dir = startDir
		}
		return cfg, nil
	}
	return LoadConfig(path)
}

func (c Config) Validate() error {
	if len(c.Rewrite.Inputs) == 0 {
		return fmt.Errorf("%s: [rewrite].inputs is empty", c.nameForErrors())
	}
	for _, pat := range append(append([]string{}, c.Rewrite.Inputs...), c.Rewrite.Force...) {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("%s: bad pattern %q: %w", c.nameForErrors(), pat, err)
		}
	}
	if c.Output.Dir != "" && c.Output.Bundle != "" {
		return fmt.Errorf("%s: [output] has both dir and bundle", c.nameForErrors())
	}
	return nil
}

func (c Config) nameForErrors() string {
	if c.Path == "" {
		return ConfigName
	}
	return c.Path
}

// Abs resolves a config-relative path.
func (c Config) Abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// InputFiles expands [rewrite].inputs under Dir, leaving out anything
// already inside the output directory.
func (c Config) InputFiles() ([]string, error) {
	files, err := ExpandInputs(c.Dir, c.Rewrite.Inputs)
	if err != nil {
		return nil, err
	}
	if c.Output.Dir == "" {
		return files, nil
	}
	outDir := filepath.Clean(c.Abs(c.Output.Dir))
	kept := files[:0]
	for _, f := range files {
		if rel, err := filepath.Rel(outDir, f); err == nil && !strings.HasPrefix(rel, "..") {
			continue
		}
		kept = append(kept, f)
	}
	return kept, nil
}

// IsForced reports whether file matches [rewrite].force.
func (c Config) IsForced(file string) bool {
	rel, err := filepath.Rel(c.Dir, file)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Rewrite.Force {
		if Match(pat, rel) {
			return true
		}
	}
	return false
}

// Encode renders c as TOML; `cjsflat init` writes Encode(Default()).
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
