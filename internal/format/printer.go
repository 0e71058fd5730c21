package format

import (
	"fmt"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// JSDoc prints attached JSDoc blocks in front of their nodes.
	JSDoc bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	tree   *ast.Tree
	writer *Writer
	opt    Options
	// parenLeft is the leftmost node of the current expression statement or
	// arrow body when it would otherwise be read as a declaration or block.
	parenLeft ast.NodeID
}

// Print renders the subtree at root as JavaScript source.
func Print(tree *ast.Tree, root ast.NodeID, opt Options) string {
	opt = opt.withDefaults()
	p := printer{
		tree:      tree,
		writer:    NewWriter(opt, int(tree.Len())*8),
		opt:       opt,
		parenLeft: ast.NoNode,
	}
	switch {
	case tree.Is(root, ast.Script):
		p.printStatements(root)
	case isStatement(tree.Kind(root)):
		p.printStatement(root)
	default:
		p.printExpr(root, precComma)
	}
	p.writer.Newline()
	return string(p.writer.Bytes())
}

// CheckRoundTrip prints the parsed file and re-parses the output, ensuring
// the tree shape is unchanged.
func CheckRoundTrip(sf *source.File, opt Options, maxDiag int) (ok bool, msg string) {
	origBag := diag.NewBag(maxDiag)
	orig := parser.Parse(sf, parser.Options{Reporter: diag.BagReporter{Bag: origBag}, MaxErrors: uint(max(maxDiag, 0))})
	if origBag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}

	printed := Print(orig.Tree, orig.Root, opt)

	fs2 := source.NewFileSetWithBase("")
	fid := fs2.AddVirtual(sf.Path, []byte(printed))
	newBag := diag.NewBag(maxDiag)
	again := parser.Parse(fs2.Get(fid), parser.Options{Reporter: diag.BagReporter{Bag: newBag}})
	if newBag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}

	a := shapeOf(orig.Tree, orig.Root)
	b := shapeOf(again.Tree, again.Root)
	if len(a) != len(b) {
		return false, fmt.Sprintf("fmt-check: node count differs after round-trip (%d vs %d)", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return false, fmt.Sprintf("fmt-check: node %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	return true, "fmt-check: OK"
}

type nodeShape struct {
	kind  ast.Kind
	str   string
	depth int
}

func shapeOf(t *ast.Tree, root ast.NodeID) []nodeShape {
	var out []nodeShape
	var walk func(id ast.NodeID, depth int)
	walk = func(id ast.NodeID, depth int) {
		out = append(out, nodeShape{kind: t.Kind(id), str: t.Str(id), depth: depth})
		for c := t.First(id); c != ast.NoNode; c = t.Next(c) {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return out
}

func isStatement(k ast.Kind) bool {
	switch k {
	case ast.Block, ast.ExprResult, ast.Var, ast.Let, ast.Const, ast.Empty, ast.If,
		ast.For, ast.ForIn, ast.ForOf, ast.While, ast.Do, ast.Return, ast.Throw,
		ast.Break, ast.Continue, ast.Label, ast.Try, ast.Switch, ast.Debugger:
		return true
	}
	return false
}

// doc writes the node's JSDoc, if printing is enabled.
func (p *printer) doc(id ast.NodeID) {
	if !p.opt.JSDoc {
		return
	}
	if info := p.tree.Doc(id); info != nil {
		p.writer.WriteString(info.String())
		p.writer.WriteByte(' ')
	}
}
