package cjs

import (
	"fmt"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/source"
	"cjsflat/internal/symbols"
)

// detection is the result of one detector run. Nothing in it survives a
// mutation of the tree.
type detection struct {
	moduleExports []ExportInfo
	exports       []ExportInfo
	umd           []UmdPattern
	errors        []pendingError
	googMarker    bool
}

type pendingError struct {
	span source.Span
	msg  string
}

// isCommonJS reports at least one export site and no goog marker.
func (d *detection) isCommonJS() bool {
	return (len(d.exports) > 0 || len(d.moduleExports) > 0) && !d.googMarker
}

func (d *detection) findUmd(anchor ast.NodeID) int {
	for i, u := range d.umd {
		if u.Anchor == anchor {
			return i
		}
	}
	return -1
}

func (d *detection) addUmd(anchor, branch ast.NodeID, replace bool) {
	if i := d.findUmd(anchor); i >= 0 {
		if !replace {
			return
		}
		d.umd = append(d.umd[:i], d.umd[i+1:]...)
	}
	d.umd = append(d.umd, UmdPattern{Anchor: anchor, Branch: branch})
}

// filter drops export sites that are no longer part of the file.
func (p *pass) filter(in []ExportInfo) []ExportInfo {
	var out []ExportInfo
	for _, e := range in {
		if p.attached(e.Node) {
			out = append(out, e)
		}
	}
	return out
}

// detect walks the file once. require.ensure calls and standalone
// require statements are rewritten on the way; everything else is only
// recorded.
func (p *pass) detect() *detection {
	p.res.Iterations++
	d := &detection{}
	syms := symbols.Build(p.tree, p.root, p.opts.Externs)
	ast.Traverse(p.tree, p.root, ast.Funcs{LeaveFn: func(n, parent ast.NodeID) {
		if p.tree.Parent(n) != parent {
			return
		}
		p.detectNode(d, syms, n, parent)
	}})
	return d
}

func (p *pass) detectNode(d *detection, syms *symbols.Table, n, parent ast.NodeID) {
	t := p.tree
	scope := syms.ScopeOf(n)

	if scope.IsGlobal() && t.Kind(n) == ast.ExprResult &&
		(t.IsControlStructure(parent) || t.IsStatementBlock(parent)) {
		if call := t.First(n); t.Kind(call) == ast.Call {
			callee := t.First(call)
			if t.MatchesQualifiedName(callee, "goog.provide") || t.MatchesQualifiedName(callee, "goog.module") {
				d.googMarker = true
			}
		}
	}

	if !p.scan && t.Kind(n) == ast.Call && t.MatchesQualifiedName(t.First(n), qRequireEns) {
		p.requireEnsure(n)
	}

	switch {
	case t.Kind(n) == ast.GetProp && t.MatchesQualifiedName(n, qModuleExp):
		if v := scope.Lookup(nameModule); v != nil && !v.IsAmbient() {
			break
		}
		d.moduleExports = append(d.moduleExports, ExportInfo{Node: n})
		if anchor := outermostIf(t, parent); anchor != ast.NoNode && (t.IsLValue(n) || inIfTest(t, n)) {
			d.addUmd(anchor, t.Second(enclosingIf(t, n)), true)
		}
	case t.Kind(n) == ast.GetProp && t.MatchesQualifiedName(n, qDefineAMD):
		if anchor := outermostIf(t, parent); anchor != ast.NoNode && (t.IsLValue(n) || inIfTest(t, n)) {
			d.addUmd(anchor, t.Child(anchor, 2), false)
		}
	}

	switch {
	case t.Kind(n) == ast.Name && t.Str(n) == nameExports:
		if v := scope.Lookup(nameExports); v != nil && !v.IsGlobal() {
			break
		}
		base := qnameRoot(t, n)
		if t.MatchesQualifiedName(base, nameExports) && t.IsLValue(base) {
			if isExportsIdiom(t, n) {
				d.exports = append(d.exports, ExportInfo{Node: n})
			} else if !d.googMarker {
				d.errors = append(d.errors, pendingError{span: t.Span(base),
					msg: "Suspicious re-assignment of \"exports\" variable. Did you actually intend to export something?"})
			}
			break
		}
		d.exports = append(d.exports, ExportInfo{Node: n})
		if anchor := outermostIf(t, parent); anchor != ast.NoNode && (t.IsLValue(n) || inIfTest(t, n)) {
			d.addUmd(anchor, t.Second(anchor), false)
		}
	case t.Kind(n) == ast.This && t.Kind(parent) == ast.GetProp && scope.IsGlobal():
		d.exports = append(d.exports, ExportInfo{Node: n})
	}

	if !p.scan && isImport(t, n) && t.Kind(parent) == ast.ExprResult && t.IsStatementBlock(t.Parent(parent)) {
		// загружается ради побочных эффектов; порядок файлов обеспечит сборщик
		p.importedModule(n)
		t.Detach(parent)
	}
}

// isExportsIdiom matches `exports = module.exports;` and
// `exports = module.exports = X;`.
func isExportsIdiom(t *ast.Tree, n ast.NodeID) bool {
	next := t.Next(n)
	if next == ast.NoNode || t.Kind(t.Parent(t.Parent(n))) != ast.ExprResult {
		return false
	}
	switch t.Kind(next) {
	case ast.GetProp:
		return t.MatchesQualifiedName(next, qModuleExp)
	case ast.Assign:
		return t.MatchesQualifiedName(t.First(next), qModuleExp)
	}
	return false
}

// reportErrors emits the suspicious-assignment warnings of d.
func (p *pass) reportErrors(d *detection) {
	for _, e := range d.errors {
		p.rep.Report(diag.CjsSuspiciousExportsAssign, diag.SevWarning, e.span, e.msg, nil)
	}
}

// requireEnsure turns `require.ensure(['a'], function(require) {...})`
// into a free call of the callback.
func (p *pass) requireEnsure(call ast.NodeID) {
	t := p.tree
	if n := t.ChildCount(call); n != 3 {
		p.ensureError(call, fmt.Sprintf("Expected the function to have 2 arguments but instead found %d", n))
		return
	}
	deps := t.Second(call)
	if t.Kind(deps) != ast.ArrayLit {
		p.ensureError(deps, "The first argument must be an array literal of string literals.")
		return
	}
	for dep := t.First(deps); dep != ast.NoNode; dep = t.Next(dep) {
		if t.Kind(dep) != ast.String {
			p.ensureError(dep, "The first argument must be an array literal of string literals.")
			return
		}
	}
	callback := t.Next(deps)
	if !isRequireCallback(t, callback) {
		p.ensureError(callback, "The second argument must be a function whose first argument is named \"require\".")
		return
	}

	t.Detach(callback)
	t.RemoveChildren(t.FunctionParams(callback))
	t.RemoveChildren(call)
	t.SetFlag(call, ast.FlagFreeCall, true)
	t.AddChildToFront(call, callback)
}

func isRequireCallback(t *ast.Tree, fn ast.NodeID) bool {
	if t.Kind(fn) != ast.Function {
		return false
	}
	params := t.FunctionParams(fn)
	if !t.HasOneChild(params) {
		return false
	}
	param := t.First(params)
	return t.Kind(param) == ast.Name && t.Str(param) == nameRequire
}

func (p *pass) ensureError(n ast.NodeID, detail string) {
	p.rep.Report(diag.CjsUnknownRequireEnsure, diag.SevWarning, p.tree.Span(n),
		"Unrecognized require.ensure call: "+detail, nil)
}

// outermostIf returns the outermost IF or HOOK above n without leaving
// the enclosing function.
func outermostIf(t *ast.Tree, n ast.NodeID) ast.NodeID {
	found := ast.NoNode
	for n != ast.NoNode && !isScopeBoundary(t, n) {
		parent := t.Parent(n)
		if parent == ast.NoNode {
			break
		}
		if k := t.Kind(parent); k == ast.If || k == ast.Hook {
			found = parent
		}
		n = parent
	}
	return found
}

// inIfTest reports whether n sits in the condition of an IF or HOOK.
func inIfTest(t *ast.Tree, n ast.NodeID) bool {
	for n != ast.NoNode && !isScopeBoundary(t, n) {
		parent := t.Parent(n)
		if parent == ast.NoNode {
			return false
		}
		if k := t.Kind(parent); (k == ast.If || k == ast.Hook) && t.First(parent) == n {
			return true
		}
		n = parent
	}
	return false
}

func enclosingIf(t *ast.Tree, n ast.NodeID) ast.NodeID {
	for ; n != ast.NoNode; n = t.Parent(n) {
		if k := t.Kind(n); k == ast.If || k == ast.Hook {
			return n
		}
	}
	return ast.NoNode
}

func isScopeBoundary(t *ast.Tree, n ast.NodeID) bool {
	k := t.Kind(n)
	return k == ast.Script || k == ast.Function
}
