package inline

import (
	"fmt"

	"cjsflat/internal/ast"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
	"cjsflat/internal/uid"
)

type param struct {
	node ast.NodeID // NAME, pattern, DEFAULT_VALUE or REST from the cloned PARAM_LIST
	arg  ast.NodeID // NoNode when the call passes fewer arguments
	rest []ast.NodeID
}

type bindings struct {
	params  []param
	extra   []ast.NodeID // arguments past the last parameter
	hasThis bool         // fn.call(...) form
	thisArg ast.NodeID   // NoNode for `fn.call()`
}

func collectBindings(t *ast.Tree, fn, clone, call ast.NodeID) *bindings {
	b := &bindings{}
	args := t.Children(call)[1:]
	// A callee other than fn (usually a NAME bound to it) is a plain call.
	if callee := t.First(call); t.Kind(callee) == ast.GetProp && t.Str(callee) == "call" && t.First(callee) == fn {
		b.hasThis = true
		if len(args) > 0 {
			b.thisArg, args = args[0], args[1:]
		}
	}

	for i, p := range t.Children(t.FunctionParams(clone)) {
		switch {
		case t.Kind(p) == ast.Rest:
			if i < len(args) {
				b.params = append(b.params, param{node: p, rest: args[i:]})
			} else {
				b.params = append(b.params, param{node: p})
			}
			args = nil
		case i < len(args):
			b.params = append(b.params, param{node: p, arg: args[i]})
		default:
			b.params = append(b.params, param{node: p})
		}
	}
	if n := len(b.params); n < len(args) {
		b.extra = args[n:]
	}
	return b
}

// bind rewrites references in block and returns the statements that have
// to run before it, in evaluation order.
func (b *bindings) bind(t *ast.Tree, block ast.NodeID, ids *uid.Supplier) []ast.NodeID {
	simple := map[string]bool{}
	for _, p := range b.params {
		if t.Kind(p.node) == ast.Name {
			simple[t.Str(p.node)] = true
		}
	}
	refs, written := collectRefs(t, block, simple)

	var prelude []ast.NodeID
	if b.hasThis {
		prelude = append(prelude, b.bindThis(t, block, ids)...)
	}

	for _, p := range b.params {
		span := t.Span(p.node)
		switch t.Kind(p.node) {
		case ast.Name:
			name := t.Str(p.node)
			arg := p.arg
			if arg == ast.NoNode {
				arg = undefined(t, span)
			}
			if written[name] || needsAlias(t, arg, len(refs[name])) {
				prelude = append(prelude, t.NewDecl(ast.Var, name, t.CloneTree(arg), span))
				continue
			}
			for _, ref := range refs[name] {
				t.ReplaceWith(ref, t.CloneTree(arg))
			}
		case ast.DefaultValue:
			prelude = append(prelude, bindDefault(t, p, ids)...)
		case ast.Rest:
			elems := make([]ast.NodeID, len(p.rest))
			for i, a := range p.rest {
				elems[i] = t.CloneTree(a)
			}
			target := t.Detach(t.First(p.node))
			prelude = append(prelude, declare(t, target, t.New(ast.ArrayLit, span, elems...)))
		default:
			init := undefined(t, span)
			if p.arg != ast.NoNode {
				init = t.CloneTree(p.arg)
			}
			prelude = append(prelude, declare(t, t.Detach(p.node), init))
		}
	}

	for _, a := range b.extra {
		if !t.IsSideEffectFree(a) {
			prelude = append(prelude, t.NewExprResult(t.CloneTree(a)))
		}
	}
	return prelude
}

func (b *bindings) bindThis(t *ast.Tree, block ast.NodeID, ids *uid.Supplier) []ast.NodeID {
	arg := b.thisArg
	if arg != ast.NoNode && t.Kind(arg) == ast.This {
		return nil
	}
	refs := collectThis(t, block)
	if arg == ast.NoNode {
		for _, ref := range refs {
			t.ReplaceWith(ref, undefined(t, t.Span(ref)))
		}
		return nil
	}
	if t.IsSideEffectFree(arg) && !createsObject(t, arg) {
		for _, ref := range refs {
			t.ReplaceWith(ref, t.CloneTree(arg))
		}
		return nil
	}
	if len(refs) == 0 {
		if t.IsSideEffectFree(arg) {
			return nil
		}
		return []ast.NodeID{t.NewExprResult(t.CloneTree(arg))}
	}
	name := fmt.Sprintf("jscomp$this$%d", ids.Next())
	for _, ref := range refs {
		t.ReplaceWith(ref, t.NewName(name, t.Span(ref)))
	}
	return []ast.NodeID{t.NewDecl(ast.Var, name, t.CloneTree(arg), t.Span(arg))}
}

// bindDefault handles `p = dflt`: the default only applies when the
// argument is missing or undefined.
func bindDefault(t *ast.Tree, p param, ids *uid.Supplier) []ast.NodeID {
	target := t.Detach(t.First(p.node))
	dflt := t.Detach(t.First(p.node))
	span := t.Span(p.node)
	arg := p.arg
	switch {
	case arg == ast.NoNode:
		return []ast.NodeID{declare(t, target, dflt)}
	case definitelyDefined(t, arg):
		return []ast.NodeID{declare(t, target, t.CloneTree(arg))}
	}

	var out []ast.NodeID
	probe := arg
	if t.Kind(arg) != ast.Name {
		tmp := fmt.Sprintf("jscomp$inline$%d", ids.Next())
		out = append(out, t.NewDecl(ast.Var, tmp, t.CloneTree(arg), span))
		probe = t.NewName(tmp, span)
	}
	test := t.NewBinary(token.EqEqEq, t.CloneTree(probe), undefined(t, span), span)
	hook := t.New(ast.Hook, span, test, dflt, t.CloneTree(probe))
	return append(out, declare(t, target, hook))
}

// declare builds `var target = init;` for a NAME or a pattern.
func declare(t *ast.Tree, target, init ast.NodeID) ast.NodeID {
	span := t.Span(target)
	if t.Kind(target) == ast.Name {
		t.AddChildToBack(target, init)
		return t.New(ast.Var, span, target)
	}
	return t.New(ast.Var, span, t.New(ast.DestructuringLHS, span, target, init))
}

func undefined(t *ast.Tree, span source.Span) ast.NodeID {
	return t.NewUnary(token.KwVoid, t.NewNumber("0", span), span)
}

// needsAlias decides whether arg must be evaluated once into a variable
// instead of being copied to each reference.
func needsAlias(t *ast.Tree, arg ast.NodeID, refs int) bool {
	if !t.IsSideEffectFree(arg) {
		return true
	}
	return refs > 0 && createsObject(t, arg)
}

// createsObject reports literals that evaluate to a fresh object, so
// copying them would break identity.
func createsObject(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.Function, ast.Class, ast.ObjectLit, ast.ArrayLit, ast.Regexp:
		return true
	default:
		return false
	}
}

func definitelyDefined(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.Number, ast.String, ast.True, ast.False, ast.Null, ast.This,
		ast.Function, ast.Class, ast.ObjectLit, ast.ArrayLit, ast.Regexp:
		return true
	default:
		return false
	}
}

// collectRefs finds NAME nodes for the given parameter names anywhere in
// root. A name that is assigned or declared again is reported in written;
// such parameters always get a variable.
func collectRefs(t *ast.Tree, root ast.NodeID, names map[string]bool) (map[string][]ast.NodeID, map[string]bool) {
	refs := map[string][]ast.NodeID{}
	written := map[string]bool{}
	if len(names) == 0 {
		return refs, written
	}
	ast.PreOrder(t, root, func(n ast.NodeID) bool {
		if t.Kind(n) != ast.Name || !names[t.Str(n)] {
			return true
		}
		name := t.Str(n)
		if t.IsLValue(n) {
			written[name] = true
		} else {
			refs[name] = append(refs[name], n)
		}
		return true
	})
	return refs, written
}

// collectThis returns the THIS nodes bound by the function itself, looking
// through arrows.
func collectThis(t *ast.Tree, root ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	ast.PreOrder(t, root, func(n ast.NodeID) bool {
		switch t.Kind(n) {
		case ast.Function:
			return t.HasFlag(n, ast.FlagArrow)
		case ast.Class:
			return false
		case ast.This:
			out = append(out, n)
		}
		return true
	})
	return out
}
