package ast

import (
	"strings"
	"testing"

	"cjsflat/internal/jsdoc"
	"cjsflat/internal/source"
)

func checkLinks(t *testing.T, tr *Tree, id NodeID) {
	t.Helper()
	var prev NodeID
	for c := tr.First(id); c != NoNode; c = tr.Next(c) {
		if tr.Parent(c) != id {
			t.Fatalf("child %d of %d has parent %d", c, id, tr.Parent(c))
		}
		if tr.Prev(c) != prev {
			t.Fatalf("child %d prev = %d, want %d", c, tr.Prev(c), prev)
		}
		prev = c
		checkLinks(t, tr, c)
	}
	if tr.Last(id) != prev {
		t.Fatalf("node %d last = %d, want %d", id, tr.Last(id), prev)
	}
}

func names(tr *Tree, id NodeID) string {
	var parts []string
	for _, c := range tr.Children(id) {
		parts = append(parts, tr.Str(c))
	}
	return strings.Join(parts, ",")
}

func TestMutations(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	root := tr.New(Script, sp, tr.NewName("b", sp), tr.NewName("d", sp))
	b, d := tr.First(root), tr.Last(root)

	tr.AddChildToFront(root, tr.NewName("a", sp))
	tr.AddChildAfter(tr.NewName("c", sp), b)
	tr.AddChildToBack(root, tr.NewName("e", sp))
	if got := names(tr, root); got != "a,b,c,d,e" {
		t.Fatalf("after inserts: %s", got)
	}
	tr.AddChildBefore(tr.NewName("x", sp), b)
	tr.Detach(tr.Prev(b))
	tr.ReplaceWith(d, tr.NewName("D", sp))
	if tr.Parent(d) != NoNode || tr.EnclosingScript(d) != NoNode {
		t.Fatal("replaced node still attached")
	}
	if got := names(tr, root); got != "a,b,c,D,e" {
		t.Fatalf("after replace: %s", got)
	}
	kids := tr.RemoveChildren(root)
	if tr.HasChildren(root) || len(kids) != 5 {
		t.Fatalf("RemoveChildren left %d", tr.ChildCount(root))
	}
	tr.AddChildrenToFront(root, kids[3:])
	tr.AddChildrenToFront(root, kids[:1])
	tr.AddChildrenAfter(kids[1:3], kids[0])
	if got := names(tr, root); got != "a,b,c,D,e" {
		t.Fatalf("after re-adding: %s", got)
	}
	if tr.Index(kids[2]) != 2 || tr.Child(root, 4) != kids[4] {
		t.Fatal("Index/Child disagree")
	}
	checkLinks(t, tr, root)
}

func TestAttachTwicePanics(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	n := tr.NewName("a", sp)
	root := tr.New(Block, sp, n)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	tr.AddChildToBack(root, n)
}

func TestCloneTree(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	q := tr.NewQName("module.exports.foo", sp)
	tr.SetDoc(q, jsdoc.NewConst())
	cp := tr.CloneTree(q)
	if tr.QualifiedName(cp) != "module.exports.foo" {
		t.Fatalf("clone = %q", tr.QualifiedName(cp))
	}
	tr.Doc(cp).Tags[0].Name = "type"
	if !tr.Doc(q).IsConst() {
		t.Fatal("clone shares JSDoc with original")
	}
	if tr.Parent(cp) != NoNode {
		t.Fatal("clone must be detached")
	}
}

func TestQualifiedNames(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	tests := []string{"a", "a.b", "module.exports.x.y", "this.z"}
	for _, q := range tests {
		n := tr.NewQName(q, sp)
		if !tr.IsQualifiedName(n) || tr.QualifiedName(n) != q || !tr.MatchesQualifiedName(n, q) {
			t.Errorf("%s: qualified name round trip failed", q)
		}
		if tr.MatchesQualifiedName(n, q+"x") || tr.MatchesQualifiedName(n, "x"+q) {
			t.Errorf("%s: matched a different name", q)
		}
	}
	call := tr.New(Call, sp, tr.NewName("f", sp))
	if tr.IsQualifiedName(tr.NewGetProp(call, "x", sp)) {
		t.Error("call().x is not a qualified name")
	}
	base := tr.BaseQualifiedNameNode(tr.NewQName("a.b.c", sp))
	if tr.Kind(base) != Name || tr.Str(base) != "a" {
		t.Errorf("base = %s", tr.Str(base))
	}
}

func TestLValues(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	target := tr.NewQName("exports.a", sp)
	value := tr.NewName("v", sp)
	assign := tr.NewAssign(target, value, sp)
	tr.NewExprResult(assign)
	if !tr.IsLValue(target) || tr.IsLValue(value) {
		t.Fatal("assignment lvalue detection wrong")
	}
	if tr.RValueOfLValue(target) != value {
		t.Fatal("rvalue of assignment target")
	}
	decl := tr.NewDecl(Var, "x", tr.NewName("init", sp), sp)
	nameNode := tr.First(decl)
	if !tr.IsLValue(nameNode) || tr.Str(tr.RValueOfLValue(nameNode)) != "init" {
		t.Fatal("declaration lvalue detection wrong")
	}
}

func TestTraverseAllowsReplacement(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	root := tr.New(Script, sp, tr.NewName("a", sp), tr.NewName("b", sp), tr.NewName("c", sp))
	var seen []string
	Traverse(tr, root, Funcs{LeaveFn: func(id, parent NodeID) {
		if tr.Kind(id) != Name {
			return
		}
		seen = append(seen, tr.Str(id))
		if tr.Str(id) == "b" {
			tr.ReplaceWith(id, tr.NewName("B", sp))
		}
	}})
	if strings.Join(seen, "") != "abc" || names(tr, root) != "a,B,c" {
		t.Fatalf("seen %v, tree %s", seen, names(tr, root))
	}
}

func TestDump(t *testing.T) {
	var sp source.Span
	tr := NewTree(0, 0)
	call := tr.NewCall(tr.NewName("require", sp), sp, tr.NewString("./a", sp))
	root := tr.New(Script, sp, tr.NewExprResult(call))
	want := "SCRIPT\n  EXPR_RESULT\n    CALL\n      NAME require\n      STRING \"./a\"\n"
	if got := Dump(tr, root); got != want {
		t.Errorf("got:\n%s", got)
	}
}

func TestArenaPointersStable(t *testing.T) {
	a := NewArena[int](0)
	first := a.Get(a.Allocate(7))
	for i := range 1000 {
		a.Allocate(i)
	}
	if *first != 7 || a.Len() != 1001 || a.Get(0) != nil || a.Get(2000) != nil {
		t.Fatal("arena lost a value")
	}
}
