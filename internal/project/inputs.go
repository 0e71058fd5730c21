package project

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandInputs returns the files under dir matching any of the patterns,
// sorted and without duplicates. Patterns use path.Match syntax on
// slash-separated paths relative to dir, plus "**" for any number of
// directories. node_modules and dot-directories are skipped unless a
// pattern names them.
func ExpandInputs(dir string, patterns []string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	seen := make(map[string]struct{})
	var out []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && skipDir(d.Name()) && !mentioned(patterns, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		for _, pat := range patterns {
			if Match(pat, rel) {
				if _, dup := seen[p]; !dup {
					seen[p] = struct{}{}
					out = append(out, p)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func skipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != ".")
}

func mentioned(patterns []string, dir string) bool {
	for _, p := range patterns {
		if strings.Contains(p, dir) {
			return true
		}
	}
	return false
}

// Match is path.Match over slash-separated names with "**" matching zero
// or more whole segments.
func Match(pattern, name string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pat, name []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if matchSegments(pat[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pat[0], name[0]); err != nil || !ok {
			return false
		}
		pat, name = pat[1:], name[1:]
	}
	return len(name) == 0
}
