package cjs

import (
	"fmt"
	"strings"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/modpath"
)

// fixTypes renames the type references in n's JSDoc the same way value
// references are renamed. Each comment is fixed once.
func (r *rewriter) fixTypes(n ast.NodeID) {
	doc := r.tree.Doc(n)
	if doc == nil || r.fixedDocs[doc] {
		return
	}
	r.fixedDocs[doc] = true
	for _, te := range doc.Types() {
		for _, part := range te.Names() {
			r.fixTypeName(n, part)
		}
	}
}

func (r *rewriter) fixTypeName(n ast.NodeID, part *jsdoc.TypePart) {
	name := part.Text
	if modpath.IsPathIdentifier(name) {
		// {./lib/a.Foo} -> module$lib$a.default.Foo
		end := len(name)
		if i := strings.IndexByte(name[strings.LastIndexByte(name, '/'):], '.'); i >= 0 {
			end = strings.LastIndexByte(name, '/') + i
		}
		literal, local := name[:end], name[end:]
		module, ok := r.resolveLiteral(literal, r.tree.Span(n), diag.NopReporter{})
		if !ok {
			r.rep.Report(diag.CjsUnresolvedTypeAnnotation, diag.SevWarning, r.tree.Span(n),
				fmt.Sprintf("Type annotation %q refers to an unknown module", name), nil)
		}
		part.Text = r.baseProperty(module) + local
		return
	}

	// любой префикс a.b.c может быть импортом или экспортом
	for end := 0; end < len(name); {
		if i := strings.IndexByte(name[end+1:], '.'); i >= 0 {
			end += i + 1
		} else {
			end = len(name)
		}
		base, suffix := name[:end], name[end:]
		v := r.syms.Lookup(n, base)
		if v == nil || v.Node == ast.NoNode {
			continue
		}
		if imported := r.moduleImportName(v.Node); imported != "" {
			part.Text = imported + suffix
			return
		}
		if r.full {
			if exported, isSite := r.exportedName(ast.NoNode, "", v); !isSite && exported != "" && exported != name {
				part.Text = exported + suffix
				return
			}
		}
	}

	if !r.full {
		return
	}
	base, rest := name, ""
	if i := strings.IndexByte(name, '.'); i >= 0 {
		base, rest = name[:i], name[i:]
	}
	if base == r.module || base == nameExports {
		return
	}
	if v := r.syms.Lookup(n, base); v != nil && v.IsGlobal() && v.Node != ast.NoNode {
		part.Text = base + globalSuffix + r.module + rest
	}
}
