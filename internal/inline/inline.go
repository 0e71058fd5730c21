package inline

import (
	"fmt"

	"cjsflat/internal/ast"
	"cjsflat/internal/uid"
)

// FunctionToBlock copies the body of fn into a detached BLOCK that can take
// the place of call. call invokes fn directly, through a name bound to it,
// or as `fn.call(thisArg, ...)`. Neither fn nor call is modified.
//
// Parameters are bound to the arguments: simple values are substituted
// into the body, everything else becomes `var param = arg;` at the top of
// the block. When resultName is set, `return x` becomes an assignment to
// resultName (the caller declares it). Returns other than the last
// statement turn into `break label;` and the block is wrapped in `label:`.
func FunctionToBlock(t *ast.Tree, fn, call ast.NodeID, label, resultName string, ids *uid.Supplier) ast.NodeID {
	if t.Kind(fn) != ast.Function || t.Kind(call) != ast.Call {
		panic(fmt.Sprintf("inline: want FUNCTION and CALL, got %s and %s", t.Kind(fn), t.Kind(call)))
	}
	if ids == nil {
		ids = uid.New()
	}
	clone := t.CloneTree(fn)
	block := detachBody(t, clone)

	b := collectBindings(t, fn, clone, call)
	prelude := b.bind(t, block, ids)
	t.AddChildrenToFront(block, prelude)

	return replaceReturns(t, block, resultName, label)
}

// detachBody pulls the body out of the cloned function; an arrow's
// expression body is wrapped as `{ return expr; }`.
func detachBody(t *ast.Tree, fn ast.NodeID) ast.NodeID {
	body := t.Detach(t.FunctionBody(fn))
	if t.Kind(body) == ast.Block {
		return body
	}
	span := t.Span(body)
	return t.NewBlock(span, t.New(ast.Return, span, body))
}
