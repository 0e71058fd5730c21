package cjs

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/inline"
)

// removeIIFEWrapper replaces a file that is one immediately invoked
// function with the function's statements:
//
//	;(function() {...})();
//	!function() {...}();
//	(function() {...}).call(this);
//
// Only `this` and `exports` are accepted as the receiver of `.call`.
func (p *pass) removeIIFEWrapper() bool {
	t := p.tree
	n := t.First(p.root)
	for n != ast.NoNode && t.Kind(n) == ast.Empty {
		n = t.Next(n)
	}
	if n == ast.NoNode || t.Kind(n) != ast.ExprResult || t.Next(n) != ast.NoNode {
		return false
	}
	expr := t.First(n)
	if t.IsNot(expr) {
		expr = t.First(expr)
	}
	if t.Kind(expr) != ast.Call {
		return false
	}
	call := expr

	var fn ast.NodeID
	switch callee := t.First(call); {
	case t.Kind(callee) == ast.Function:
		fn = callee
	case t.Kind(callee) == ast.GetProp && t.Str(callee) == "call" && t.Kind(t.First(callee)) == ast.Function:
		fn = t.First(callee)
		recv := t.Second(call)
		if recv == ast.NoNode || (t.Kind(recv) != ast.This && !t.MatchesQualifiedName(recv, nameExports)) {
			return false
		}
	default:
		return false
	}
	if t.ReferencesOwnArguments(fn) || p.module == "" {
		return false
	}

	block := inline.FunctionToBlock(t, fn, call, p.module+"_iifeWrapper", "", p.ids)
	t.RemoveChildren(p.root)
	t.AddChildrenToFront(p.root, t.RemoveChildren(block))
	p.functionsDeleted(fn)
	return true
}
