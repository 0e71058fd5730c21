package cjs

import "testing"

func TestRewriteShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "for-init",
			src:  "for (var i = 0, n = 2; i < n; i++) {}\nexports.x = 1;",
			want: "var module$lib$a = {default: {}};\nvar i$$module$lib$a = 0;\nvar n$$module$lib$a = 2;\nfor (; i$$module$lib$a < n$$module$lib$a; i$$module$lib$a++) {}\nmodule$lib$a.default.x = 1;",
		},
		{
			name: "for-in",
			src:  "for (var k in o) f(k);\nexports.x = 1;",
			want: "var module$lib$a = {default: {}};\nfor (var k$$module$lib$a in o) {\n  f(k$$module$lib$a);\n}\nmodule$lib$a.default.x = 1;",
		},
		{
			name: "class-export",
			src:  "class Foo {}\nmodule.exports = Foo;",
			want: "var module$lib$a = {};\nmodule$lib$a.default = class {};",
		},
		{
			name: "class-rename",
			src:  "class Base {}\nclass Foo extends Base {}\nexports.Foo = Foo;",
			want: "var module$lib$a = {default: {}};\nclass Base$$module$lib$a {}\nmodule$lib$a.default.Foo = class extends Base$$module$lib$a {};",
		},
		{
			name: "pattern-export",
			src:  "var {a} = o;\nexports.a = a;",
			want: "var module$lib$a = {default: {}};\nvar {a: a$$module$lib$a} = o;\nmodule$lib$a.default.a = a$$module$lib$a;",
		},
		{
			name: "getter-export",
			src:  "module.exports = {get a() { return 1; }, b: 2};",
			want: "var module$lib$a = {default: {get a() {\n  return 1;\n}}};\nmodule$lib$a.default.b = 2;",
		},
		{
			name: "spread-export",
			src:  "module.exports = {...o, b: 2};",
			want: "var module$lib$a = {default: {}};\nObject.assign(module$lib$a.default, o);\nmodule$lib$a.default.b = 2;",
		},
		{
			name: "quoted-key-export",
			src:  "module.exports = {\"a-b\": 1};",
			want: "var module$lib$a = {default: {}};\nmodule$lib$a.default[\"a-b\"] = 1;",
		},
		{
			name: "method-export",
			src:  "module.exports = {m() { return 1; }};",
			want: "var module$lib$a = {default: {}};\nmodule$lib$a.default.m = function() {\n  return 1;\n};",
		},
		{
			name: "uninitialised-export",
			src:  "var x;\nexports.x = x;",
			want: "var module$lib$a = {default: {}};",
		},
		{
			name: "property-reexport",
			src:  "var b = require(\"./b\");\nexports.c = b.c;",
			want: "var module$lib$a = {default: {}};\nmodule$lib$a.default.c = module$lib$b.default.c;",
		},
		{
			name: "self-alias-in-function",
			src:  "exports.f = function() { var y = y; return y; };",
			want: "var module$lib$a = {default: {}};\nmodule$lib$a.default.f = function() {\n  return y;\n};",
		},
		{
			name: "nested-global",
			src:  "var count = 0;\nexports.inc = function() { count++; return count; };",
			want: "var module$lib$a = {default: {}};\nvar count$$module$lib$a = 0;\nmodule$lib$a.default.inc = function() {\n  count$$module$lib$a++;\n  return count$$module$lib$a;\n};",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := process(t, "lib/a.js", tt.src, Options{})
			if got := r.String(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestIsTestFunctionName(t *testing.T) {
	for name, want := range map[string]bool{
		"testFoo": true, "test": true, "setUp": true, "tearDownPage": true,
		"helper": false, "Test": false, "setup": false,
	} {
		if got := isTestFunctionName(name); got != want {
			t.Errorf("isTestFunctionName(%q) = %v, want %v", name, got, want)
		}
	}
}
