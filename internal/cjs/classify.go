package cjs

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/modpath"
)

// Classify reports how other files have to reference this one. The tree
// is not modified. Only opts.Externs and opts.ForceModule are used.
func Classify(tree *ast.Tree, root ast.NodeID, opts Options) modpath.ModuleType {
	p := newPass(tree, root, Options{Externs: opts.Externs}, &Result{})
	p.scan = true
	d := p.detect()
	switch {
	case d.isCommonJS() || opts.ForceModule:
		return modpath.TypeCommonJS
	case d.googMarker:
		return modpath.TypeGoog
	default:
		return modpath.TypeScript
	}
}
