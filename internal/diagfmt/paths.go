package diagfmt

import (
	"path/filepath"
	"strings"

	"cjsflat/internal/source"
)

// autoPathLimit is the length above which PathModeAuto falls back to the
// basename of an absolute path outside the base directory.
const autoPathLimit = 40

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	p := f.Path
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(p)); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, err := source.RelativePath(p, fs.BaseDir()); err == nil {
			return rel
		}
	case PathModeBasename:
		return source.BaseName(p)
	case PathModeAuto:
		if !filepath.IsAbs(filepath.FromSlash(p)) {
			return p
		}
		if base := fs.BaseDir(); base != "" {
			if rel, err := source.RelativePath(p, base); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
		if len(p) > autoPathLimit {
			return source.BaseName(p)
		}
	}
	return p
}
