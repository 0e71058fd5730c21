package project

import (
	"cjsflat/internal/source"
)

// ImportMeta is one resolved require() of a module.
type ImportMeta struct {
	Path string // module path of the target, "lib/b.js"
	Span source.Span
}

// ModuleMeta is what the driver learns about an input after rewriting it;
// the dependency graph is built from these.
type ModuleMeta struct {
	Path        string // module path, "lib/a.js"
	Name        string // canonical global, "module$lib$a"
	File        string // path on disk
	Span        source.Span
	Imports     []ImportMeta
	IsCommonJS  bool
	ContentHash Digest
}
