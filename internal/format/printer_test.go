package format

import (
	"strings"
	"testing"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
)

func parseSource(t *testing.T, src string) (*source.File, *ast.Tree, ast.NodeID) {
	t.Helper()
	fs := source.NewFileSetWithBase("")
	fileID := fs.AddVirtual("fmt.js", []byte(src))
	bag := diag.NewBag(128)
	tree, root := parser.ParseFile(fs, fileID, bag)
	if bag.HasErrors() {
		issues := make([]string, 0, bag.Len())
		for _, d := range bag.Items() {
			issues = append(issues, d.Code.ID()+": "+d.Message)
		}
		t.Fatalf("parse failed: %v", issues)
	}
	return fs.Get(fileID), tree, root
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"require", `var a=require('./a');`, `var a = require("./a");`},
		{"else-if", `if(a)b();else if(c)d();else{e()}`, "if (a) {\n  b();\n} else if (c) {\n  d();\n} else {\n  e();\n}"},
		{"iife-call", `(function(){ var x = 1; }).call(this)`, "(function() {\n  var x = 1;\n}).call(this);"},
		{"bang-iife", `!function(){}()`, `!function() {}();`},
		{"object", `x = {a: 1, "b-c": 2, d, e() {}, get f() { return 1; }, [k]: 3, [m]() {}, ...r}`,
			"x = {a: 1, \"b-c\": 2, d, e() {}, get f() {\n  return 1;\n}, [k]: 3, [m]() {}, ...r};"},
		{"pattern-assign", `({a, b: [c]} = d);`, `({a, b: [c]} = d);`},
		{"comma-in-assign", `a = (b, c)`, `a = (b, c);`},
		{"binary-parens", `(a + b) * c - (d - e)`, `(a + b) * c - (d - e);`},
		{"left-assoc", `(a - b) - c`, `a - b - c;`},
		{"unary-space", `- -x, + ++y, typeof z, !w`, `- -x, + ++y, typeof z, !w;`},
		{"new", `new (f())(); new Foo; new a.B(1)`, "new (f())();\nnew Foo();\nnew a.B(1);"},
		{"arrow-object", `x => ({})`, `(x) => ({});`},
		{"arrow-callee", `(() => 1)()`, `(() => 1)();`},
		{"hook", `a = b ? c : (d, e)`, `a = b ? c : (d, e);`},
		{"for", `for (var i = 0; i < n; i++) {}`, `for (var i = 0; i < n; i++) {}`},
		{"for-in", `for (k in o) f(k)`, "for (k in o) {\n  f(k);\n}"},
		{"switch", `switch (x) { case 1: a(); break; default: b(); }`, "switch (x) {\n  case 1:\n    a();\n    break;\n  default:\n    b();\n}"},
		{"strings", `'a"b\n '`, `"a\"b\n\u2028";`},
		{"paragraph-separator", "x = 'p q'", `x = "p\u2029q";`},
		{"class", `class A extends B { static m() {} }`, "class A extends B {\n  static m() {}\n}"},
		{"try", `try{a()}catch(e){}finally{}`, "try {\n  a();\n} catch (e) {} finally {}"},
		{"label", `a: for(;;) break a;`, "a: for (;;) {\n  break a;\n}"},
		{"holes", `[a, , b]; [c, ,]`, "[a, , b];\n[c, ,];"},
		{"number-prop", `(1).toString()`, `(1).toString();`},
		{"params", `function f({a}, b = 1, ...c) { return; }`, "function f({a}, b = 1, ...c) {\n  return;\n}"},
		{"do", `do x++; while (x < 3)`, "do {\n  x++;\n} while (x < 3);"},
		{"regexp", `x = /a\/b/g.test(y)`, `x = /a\/b/g.test(y);`},
		{"destructuring-var", `var {a, b: c = 2} = x, [d] = y;`, `var {a, b: c = 2} = x, [d] = y;`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tree, root := parseSource(t, tt.src)
			got := strings.TrimSuffix(Print(tree, root, Options{}), "\n")
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestPrintJSDoc(t *testing.T) {
	src := "/** @const */ var a = {/** @const */ b: 1};\n/** @type {Foo} */ exports.c = 2;\n/** @param {x} y */ function f(y) {}"
	_, tree, root := parseSource(t, src)

	with := Print(tree, root, Options{JSDoc: true})
	want := "/** @const */ var a = {/** @const */ b: 1};\n/** @type {Foo} */ exports.c = 2;\n/** @param {x} y */ function f(y) {}\n"
	if with != want {
		t.Errorf("with jsdoc:\n%s\nwant:\n%s", with, want)
	}

	without := Print(tree, root, Options{})
	if strings.Contains(without, "/**") {
		t.Errorf("jsdoc printed while disabled:\n%s", without)
	}
}

func TestPrintFreeCall(t *testing.T) {
	_, tree, root := parseSource(t, `a.b(1);`)
	call := tree.First(tree.First(root))
	tree.SetFlag(call, ast.FlagFreeCall, true)
	if got := Print(tree, root, Options{}); got != "(0, a.b)(1);\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintShorthandAfterRename(t *testing.T) {
	_, tree, root := parseSource(t, `x = {foo};`)
	obj := tree.Second(tree.First(tree.First(root)))
	tree.SetStr(tree.First(tree.First(obj)), "foo$$module$a")
	if got := Print(tree, root, Options{}); got != "x = {foo: foo$$module$a};\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintIndent(t *testing.T) {
	_, tree, root := parseSource(t, `if (a) { b(); }`)
	if got := Print(tree, root, Options{UseTabs: true}); got != "if (a) {\n\tb();\n}\n" {
		t.Errorf("tabs: %q", got)
	}
	if got := Print(tree, root, Options{IndentWidth: 4}); got != "if (a) {\n    b();\n}\n" {
		t.Errorf("width 4: %q", got)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	sources := []string{
		`var a = require('./a'), b = a.b;`,
		`module.exports = function(x) { return x * (x + 1); };`,
		`(function(root, factory) { if (typeof define == 'function' && define.amd) { define([], factory); } else if (typeof module === 'object') { module.exports = factory(); } else { root.X = factory(); } })(this, function() { return {}; });`,
		`!function(){ exports.x = 1 }()`,
		`class A { constructor() { this.a = [1, , 2]; } get b() { return 1; } }`,
		`outer: for (const [k, v] of m) { if (!k) continue outer; }`,
		`x = a ? b : c ? d : e; y = (a, b); z = -(-w); q = new (g())();`,
		`try { f() } catch { g() }`,
		`var o = {'quoted': 1, 2: 3, [k]: v, ...rest};`,
	}
	for _, src := range sources {
		sf, _, _ := parseSource(t, src)
		if ok, msg := CheckRoundTrip(sf, Options{JSDoc: true}, 16); !ok {
			t.Errorf("%s\n%s", src, msg)
		}
	}
}
