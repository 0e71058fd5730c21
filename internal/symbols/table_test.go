package symbols

import (
	"testing"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
)

func build(t *testing.T, src string, externs ...string) (*ast.Tree, ast.NodeID, *Table) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("scope.js", []byte(src))
	bag := diag.NewBag(0)
	tree, root := parser.ParseFile(fs, id, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	table := Build(tree, root, externs)
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return tree, root, table
}

// findNames returns every NAME node with the given string, in source order.
func findNames(tree *ast.Tree, root ast.NodeID, name string) []ast.NodeID {
	var out []ast.NodeID
	ast.PreOrder(tree, root, func(id ast.NodeID) bool {
		if tree.Is(id, ast.Name) && tree.Str(id) == name {
			out = append(out, id)
		}
		return true
	})
	return out
}

func TestGlobalAndAmbient(t *testing.T) {
	tree, root, table := build(t, "var a = 1; function f() {} use(module, a, f);", "module", "exports")
	g := table.Global()
	if !g.IsGlobal() || g.Root != root {
		t.Fatalf("global scope = %+v", g)
	}
	if v := g.Own("a"); v == nil || v.Kind != VarGlobal || v.Decl != DeclVar {
		t.Errorf("a = %+v", v)
	}
	if v := g.Own("f"); v == nil || v.Decl != DeclFunction {
		t.Errorf("f = %+v", v)
	}
	uses := findNames(tree, root, "module")
	if v := table.Resolve(uses[0]); !v.IsAmbient() || v.Node != ast.NoNode {
		t.Errorf("module = %+v", v)
	}
	if v := table.Resolve(findNames(tree, root, "use")[0]); v != nil {
		t.Errorf("undeclared name resolved to %+v", v)
	}
}

func TestScriptDeclarationOverridesExtern(t *testing.T) {
	tree, root, table := build(t, "var module = {}; module.x = 1;", "module")
	names := findNames(tree, root, "module")
	v := table.Resolve(names[1])
	if v == nil || v.Kind != VarGlobal || v.Node != names[0] {
		t.Fatalf("module = %+v", v)
	}
	if table.DeclaredBy(names[0]) != v {
		t.Error("DeclaredBy mismatch")
	}
}

func TestHoistingAndBlocks(t *testing.T) {
	src := `
function outer(p, {q}, ...r) {
  if (p) { var hoisted = 1; let inner = 2; }
  for (let i = 0; i < 1; i++) { i; }
  try {} catch (e) { e; }
  return hoisted;
}
x = function named() { return named; };
`
	tree, root, table := build(t, src)
	fn := tree.First(root)
	fs := table.ScopeFor(fn)
	if fs == nil || !fs.IsFunction() {
		t.Fatalf("function scope missing")
	}
	for _, name := range []string{"p", "q", "r"} {
		if v := fs.Own(name); v == nil || v.Kind != VarParam {
			t.Errorf("param %s = %+v", name, v)
		}
	}
	if v := fs.Own("hoisted"); v == nil || v.Kind != VarLocal || v.Decl != DeclVar {
		t.Errorf("hoisted = %+v", v)
	}
	if fs.Own("inner") != nil {
		t.Error("let leaked into the function scope")
	}
	inner := findNames(tree, root, "inner")[0]
	if s := table.ScopeOf(inner); s.Kind != ScopeBlock || s.Own("inner") == nil {
		t.Errorf("inner declared in %v", s.Kind)
	}

	iUses := findNames(tree, root, "i")
	last := iUses[len(iUses)-1]
	if v := table.Resolve(last); v == nil || v.Node != iUses[0] || v.Decl != DeclLet {
		t.Errorf("loop var resolved to %+v", v)
	}

	eUses := findNames(tree, root, "e")
	if v := table.Resolve(eUses[1]); v == nil || v.Decl != DeclCatch || v.Scope.Kind != ScopeCatch {
		t.Errorf("catch param resolved to %+v", v)
	}

	named := findNames(tree, root, "named")
	if v := table.Resolve(named[1]); v == nil || v.Decl != DeclFunctionName || v.IsGlobal() {
		t.Errorf("function expression name = %+v", v)
	}
	if table.Global().Own("named") != nil {
		t.Error("function expression name leaked to global scope")
	}
	if table.Global().Own("outer") == nil {
		t.Error("function declaration missing from global scope")
	}
}

func TestScopeOfFunctionDeclarationName(t *testing.T) {
	tree, root, table := build(t, "function f(f) {}")
	fn := tree.First(root)
	if s := table.ScopeOf(tree.First(fn)); !s.IsGlobal() {
		t.Errorf("declaration name resolved in %v scope", s.Kind)
	}
	if s := table.ScopeOf(fn); !s.IsGlobal() {
		t.Errorf("function node belongs to %v scope", s.Kind)
	}
	param := tree.First(tree.Second(fn))
	if v := table.Resolve(param); v == nil || !v.IsParam() {
		t.Errorf("param = %+v", v)
	}
}

func TestShadowingAndGlobalHoist(t *testing.T) {
	tree, root, table := build(t, "var exports = 1; (function(exports) { this.a = exports; })(); this.b = 2;")
	uses := findNames(tree, root, "exports")
	if v := table.Resolve(uses[2]); v == nil || v.Kind != VarParam {
		t.Errorf("shadowed exports = %+v", v)
	}
	var thisNodes []ast.NodeID
	ast.PreOrder(tree, root, func(id ast.NodeID) bool {
		if tree.Is(id, ast.This) {
			thisNodes = append(thisNodes, id)
		}
		return true
	})
	if table.InGlobalHoistScope(thisNodes[0]) {
		t.Error("this inside function reported global")
	}
	if !table.InGlobalHoistScope(thisNodes[1]) {
		t.Error("top-level this not global")
	}
}

func TestSwitchCasesShareScope(t *testing.T) {
	tree, root, table := build(t, "switch (x) { case 1: let a = 1; break; default: a; }")
	uses := findNames(tree, root, "a")
	v := table.Resolve(uses[1])
	if v == nil || v.Node != uses[0] {
		t.Fatalf("case binding not shared: %+v", v)
	}
	if v.Scope.Root != tree.First(root) {
		t.Errorf("let owned by %v", tree.Kind(v.Scope.Root))
	}
}
