package cjs

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/jsdoc"
)

// initializeModule drops the `exports = module.exports` aliases and
// declares the module namespace as the first statement:
//
//	/** @const */ var module$a = {/** @const */ default: {}};
//
// The `default` slot is only created when nothing assigns module.exports
// directly. It reports whether the default export may be marked @const,
// that is whether module.exports is assigned at most once.
func (p *pass) initializeModule(d *detection) bool {
	t := p.tree
	var keep []ExportInfo
	for _, e := range d.exports {
		if !p.attached(e.Node) {
			continue
		}
		n := e.Node
		next := t.Next(n)
		if !(qnameRoot(t, n) == n && t.Kind(t.Parent(n)) == ast.Assign &&
			t.Kind(t.Parent(t.Parent(n))) == ast.ExprResult && t.Prev(n) == ast.NoNode && next != ast.NoNode) {
			keep = append(keep, e)
			continue
		}
		switch {
		case t.Kind(next) == ast.GetProp && t.MatchesQualifiedName(next, qModuleExp):
			// exports = module.exports;
			for i, m := range d.moduleExports {
				if m.Node == next {
					d.moduleExports = append(d.moduleExports[:i], d.moduleExports[i+1:]...)
					break
				}
			}
			t.Detach(t.Parent(t.Parent(n)))
		case t.Kind(next) == ast.Assign && t.MatchesQualifiedName(t.First(next), qModuleExp):
			// exports = module.exports = X;
			t.ReplaceWith(t.Parent(n), t.Detach(next))
		default:
			keep = append(keep, e)
		}
	}
	d.exports = keep

	direct := 0
	for _, e := range d.moduleExports {
		if !p.attached(e.Node) {
			continue
		}
		if qnameRoot(t, e.Node) == e.Node && t.Kind(t.Parent(e.Node)) == ast.Assign {
			if rv := t.RValueOfLValue(e.Node); rv == ast.NoNode || t.Kind(rv) != ast.ObjectLit {
				direct++
			}
		}
	}

	span := t.Span(p.root)
	ns := t.NewObjectLit(span)
	if direct == 0 {
		key := t.NewStringKey(defaultProp, t.NewObjectLit(span), span)
		t.SetDoc(key, jsdoc.NewConst())
		t.AddChildToFront(ns, key)
	}
	decl := t.NewDecl(ast.Var, p.module, ns, span)
	t.SetDoc(decl, jsdoc.NewConst())
	t.AddChildToFront(p.root, decl)
	p.res.Initialized = true
	return direct < 2
}
