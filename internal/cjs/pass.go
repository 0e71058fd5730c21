package cjs

import (
	"fmt"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/modpath"
	"cjsflat/internal/source"
	"cjsflat/internal/uid"
)

// pass holds the per-file state shared by the phases.
type pass struct {
	tree   *ast.Tree
	root   ast.NodeID
	opts   Options
	rep    diag.Reporter
	ids    *uid.Supplier
	module string // "" when the file has no module path
	res    *Result

	// resolved import literals
	imports map[string]resolved
	// scan leaves the tree untouched: no require.ensure or standalone
	// require rewriting during detection.
	scan bool
}

type resolved struct {
	name string
	ok   bool
}

func newPass(tree *ast.Tree, root ast.NodeID, opts Options, res *Result) *pass {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Resolver == nil {
		opts.Resolver = modpath.NewResolver(nil, nil)
	}
	p := &pass{
		tree:    tree,
		root:    root,
		opts:    opts,
		rep:     diag.NewDedupReporter(opts.Reporter),
		ids:     opts.IDs,
		module:  opts.Path.ModuleName(),
		res:     res,
		imports: make(map[string]resolved),
	}
	if p.ids == nil {
		p.ids = uid.New()
	}
	return p
}

// isImport reports `require("x")` with exactly one string argument.
func isImport(t *ast.Tree, n ast.NodeID) bool {
	if t.Kind(n) != ast.Call || !t.HasTwoChildren(n) {
		return false
	}
	callee := t.First(n)
	return t.Kind(callee) == ast.Name && t.Str(callee) == nameRequire && t.Kind(t.Second(n)) == ast.String
}

// importedModule returns the canonical module name a require call refers
// to. Unresolved literals get a name derived from the literal itself.
func (p *pass) importedModule(call ast.NodeID) string {
	name, _ := p.resolveLiteral(p.tree.Str(p.tree.Second(call)), p.tree.Span(call), p.rep)
	return name
}

// resolveLiteral reports load failures to rep only the first time a
// literal is seen.
func (p *pass) resolveLiteral(literal string, span source.Span, rep diag.Reporter) (string, bool) {
	if r, ok := p.imports[literal]; ok {
		return r.name, r.ok
	}
	r := resolved{}
	if target, ok := p.opts.Resolver.Resolve(p.opts.Path, literal, span, rep); ok {
		r = resolved{name: target.ModuleName(), ok: true}
		p.res.Requires = append(p.res.Requires, Require{Literal: literal, Path: target, Span: span})
	} else {
		r.name = modpath.ForFile(literal)
	}
	p.imports[literal] = r
	return r.name, r.ok
}

// baseProperty is the expression other files use for moduleName's value.
func (p *pass) baseProperty(moduleName string) string {
	return p.opts.Registry.BaseProperty(moduleName)
}

// ownDefault is this file's default export, always with `.default`.
func (p *pass) ownDefault() string {
	return p.module + "." + defaultProp
}

func (p *pass) label(kind string) string {
	return fmt.Sprintf("%s_%s%d", p.module, kind, p.ids.Next())
}

// functionsDeleted records every function literal under n.
func (p *pass) functionsDeleted(n ast.NodeID) {
	p.res.Deleted = append(p.res.Deleted, p.functionSpans(n)...)
}

func (p *pass) functionsChanged(n ast.NodeID) {
	p.res.Changed = append(p.res.Changed, p.functionSpans(n)...)
}

func (p *pass) functionSpans(n ast.NodeID) []source.Span {
	var out []source.Span
	ast.PreOrder(p.tree, n, func(id ast.NodeID) bool {
		if p.tree.Kind(id) == ast.Function {
			out = append(out, p.tree.Span(id))
		}
		return true
	})
	return out
}

// attached reports whether n is still part of the file.
func (p *pass) attached(n ast.NodeID) bool {
	return p.tree.EnclosingScript(n) == p.root
}

// qnameRoot walks up from n to the outermost qualified name it starts:
// for `exports` in `exports.a.b = 1` that is `exports.a.b`.
func qnameRoot(t *ast.Tree, n ast.NodeID) ast.NodeID {
	for p := t.Parent(n); t.Kind(p) == ast.GetProp && t.IsQualifiedName(p); p = t.Parent(n) {
		n = p
	}
	return n
}
