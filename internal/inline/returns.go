package inline

import (
	"cjsflat/internal/ast"
)

// replaceReturns removes the function's own RETURN statements from block.
// A trailing return becomes a plain statement; any other return jumps to
// the end of the labelled block.
func replaceReturns(t *ast.Tree, block ast.NodeID, resultName, label string) ast.NodeID {
	returns := ownReturns(t, block)
	if len(returns) == 0 {
		return block
	}
	if last := t.Last(block); last == returns[len(returns)-1] {
		convertLastReturn(t, last, resultName)
		returns = returns[:len(returns)-1]
	}
	if len(returns) == 0 {
		return block
	}
	if label == "" {
		panic("inline: early return needs a label")
	}
	for _, ret := range returns {
		replaceWithBreak(t, ret, resultName, label)
	}
	span := t.Span(block)
	return t.NewBlock(span, t.NewLabel(label, block, span))
}

// ownReturns lists returns in source order, skipping nested functions.
func ownReturns(t *ast.Tree, root ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	ast.PreOrder(t, root, func(n ast.NodeID) bool {
		switch t.Kind(n) {
		case ast.Function, ast.Class:
			return false
		case ast.Return:
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}

func convertLastReturn(t *ast.Tree, ret ast.NodeID, resultName string) {
	stmts := resultStatements(t, ret, resultName)
	if len(stmts) == 0 {
		t.Detach(ret)
		return
	}
	t.ReplaceWith(ret, stmts[0])
}

func replaceWithBreak(t *ast.Tree, ret ast.NodeID, resultName, label string) {
	stmts := append(resultStatements(t, ret, resultName), t.NewBreak(label, t.Span(ret)))
	parent := t.Parent(ret)
	if t.IsStatementBlock(parent) {
		t.AddChildrenAfter(stmts, ret)
		t.Detach(ret)
		return
	}
	t.ReplaceWith(ret, t.NewBlock(t.Span(ret), stmts...))
}

// resultStatements turns `return x` into `resultName = x;`, or into `x;`
// when there is no result and x may have side effects.
func resultStatements(t *ast.Tree, ret ast.NodeID, resultName string) []ast.NodeID {
	span := t.Span(ret)
	value := t.First(ret)
	if value != ast.NoNode {
		t.Detach(value)
	}
	if resultName != "" {
		if value == ast.NoNode {
			value = undefined(t, span)
		}
		return []ast.NodeID{t.NewExprResult(t.NewAssign(t.NewName(resultName, span), value, span))}
	}
	if value == ast.NoNode || t.IsSideEffectFree(value) {
		return nil
	}
	return []ast.NodeID{t.NewExprResult(value)}
}
