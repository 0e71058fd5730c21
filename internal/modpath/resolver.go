package modpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cjsflat/internal/diag"
	"cjsflat/internal/source"
)

// Resolver maps input files to module paths and require() literals to the
// files they name. It is safe for concurrent use once built.
type Resolver struct {
	roots []string
	mu    sync.RWMutex
	known map[string]struct{}
	// lenient accepts every literal when no inputs were registered.
	lenient bool
}

// NewResolver creates a resolver stripping roots (filesystem or slash paths)
// from file paths. When inputs is empty every import resolves.
func NewResolver(roots []string, inputs []string) *Resolver {
	r := &Resolver{known: make(map[string]struct{}), lenient: len(inputs) == 0}
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		r.roots = append(r.roots, filepath.ToSlash(filepath.Clean(root)))
	}
	for _, in := range inputs {
		r.Add(in)
	}
	return r
}

// Add registers an input file and returns its module path.
func (r *Resolver) Add(file string) Path {
	p := r.PathFor(file)
	if !p.IsZero() {
		r.mu.Lock()
		r.known[p.p] = struct{}{}
		r.lenient = false
		r.mu.Unlock()
	}
	return p
}

// PathFor maps a file path to its module path, stripping the longest
// matching root.
func (r *Resolver) PathFor(file string) Path {
	clean := filepath.ToSlash(filepath.Clean(file))
	best := ""
	for _, root := range r.roots {
		if root == "." {
			continue
		}
		if pathWithin(root, clean) && len(root) > len(best) {
			best = root
		}
	}
	if best != "" {
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, best), "/")
	}
	return NewPath(clean)
}

// Resolve finds the module a require() literal in from refers to. On
// failure it reports JSC_JS_MODULE_LOAD_WARNING at span and returns false.
func (r *Resolver) Resolve(from Path, literal string, span source.Span, rep diag.Reporter) (Path, bool) {
	var target string
	switch {
	case IsRelative(literal):
		target = path.Join(from.Dir(), literal)
	default:
		target = strings.TrimPrefix(literal, "/")
	}
	target = NewPath(target).p
	if strings.HasPrefix(target, "../") || target == ".." || target == "" {
		r.reportLoad(literal, span, rep)
		return Path{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lenient {
		if path.Ext(target) == "" {
			target += ".js"
		}
		return NewPath(target), true
	}
	for _, cand := range candidates(target) {
		if _, ok := r.known[cand]; ok {
			return Path{p: cand}, true
		}
	}
	r.reportLoad(literal, span, rep)
	return Path{}, false
}

func (r *Resolver) reportLoad(literal string, span source.Span, rep diag.Reporter) {
	if rep == nil {
		return
	}
	rep.Report(diag.CjsModuleLoadWarning, diag.SevWarning, span,
		fmt.Sprintf("Failed to load module %q", literal), nil)
}

func candidates(target string) []string {
	if path.Ext(target) == ".js" {
		return []string{target}
	}
	return []string{target, target + ".js", target + "/index.js"}
}

func pathWithin(root, p string) bool {
	if root == "" || p == "" {
		return false
	}
	return p == root || strings.HasPrefix(p, root+"/")
}
