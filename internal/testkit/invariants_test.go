package testkit

import (
	"strings"
	"testing"

	"cjsflat/internal/ast"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
)

func TestParsedTreesHold(t *testing.T) {
	for _, src := range []string{
		"var a = require(\"./a\"), b = 2;\nexports.b = function(x) { return a(x); };\n",
		"module.exports = {get a() { return 1; }, b: [1, 2]};",
		"for (var i = 0; i < 3; i++) { if (i) continue; }",
	} {
		fs := source.NewFileSet()
		id := fs.AddVirtual("a.js", []byte(src))
		res := parser.Parse(fs.Get(id), parser.Options{})
		if err := CheckTree(res.Tree, res.Root); err != nil {
			t.Errorf("%q: %v", src, err)
		}
		if err := CheckSpans(res.Tree, res.Root, fs.Get(id)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTreeRejectsInnerRoot(t *testing.T) {
	tree := ast.NewTree(0, 0)
	child := tree.NewName("x", source.Span{})
	tree.New(ast.Script, source.Span{}, tree.NewExprResult(child))
	if err := CheckTree(tree, child); err == nil || !strings.Contains(err.Error(), "has parent") {
		t.Fatalf("got %v", err)
	}
}

func TestCheckSpansRejects(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("0123456789"))
	sf := fs.Get(id)

	tree := ast.NewTree(id, 0)
	root := tree.New(ast.Script, source.Span{File: id, Start: 0, End: 10},
		tree.NewName("a", source.Span{File: id, Start: 5, End: 6}),
		tree.NewName("b", source.Span{File: id, Start: 1, End: 2}))
	if err := CheckSpans(tree, root, sf); err == nil || !strings.Contains(err.Error(), "previous sibling") {
		t.Errorf("unordered siblings: got %v", err)
	}

	tree = ast.NewTree(id, 0)
	root = tree.New(ast.Script, source.Span{File: id, Start: 0, End: 20})
	if err := CheckSpans(tree, root, sf); err == nil || !strings.Contains(err.Error(), "out of bounds") {
		t.Errorf("span past content: got %v", err)
	}
}
