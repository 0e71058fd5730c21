package cjs

import (
	"cjsflat/internal/ast"
)

// Process rewrites the SCRIPT root of tree in place. Diagnostics go to
// opts.Reporter; the returned Result tells what was found and changed.
func Process(tree *ast.Tree, root ast.NodeID, opts Options) Result {
	res := Result{}
	p := newPass(tree, root, opts, &res)
	res.ModuleName = p.module

	d := p.detect()
	res.IsCommonJS = d.isCommonJS()
	res.IsModule = res.IsCommonJS || opts.ForceModule
	full := res.IsModule && p.module != ""

	var exports []ExportInfo
	defaultConst := true
	if res.IsModule {
		p.reportErrors(d)
		if full {
			d = p.normalize(d)
			defaultConst = p.initializeModule(d)
			exports = append(p.filter(d.moduleExports), p.filter(d.exports)...)
		}
	}
	p.rewrite(full, exports, defaultConst)
	return res
}

// normalize removes UMD guards and IIFE wrappers until the detector
// finds no more guards or nothing changes. Every round removes at least
// one guard, call or function literal, so the loop ends.
func (p *pass) normalize(d *detection) *detection {
	for len(d.umd) > 0 {
		changed := p.replaceUmdPatterns(d)
		if p.removeIIFEWrapper() {
			changed = true
		}
		if !changed {
			break
		}
		d = p.detect()
	}
	return d
}
