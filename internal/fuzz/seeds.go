package fuzztests

import (
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для корпуса
	maxFuzzInput = 1 << 16
)

// moduleSeeds cover the shapes the rewrite recognises.
var moduleSeeds = []string{
	"",
	"var x = 1;\n",
	"module.exports = 1;\n",
	"exports.a = 1; exports.b = function () { return exports.a; };\n",
	"var a = require('./a'); module.exports = { a: a, b: a.b };\n",
	"module.exports = { a, b() {}, 'c': 3 };\n",
	"const {x, y: z} = require('./dep'); exports.z = z;\n",
	"require.ensure(['./a'], function (require) { var a = require('./a'); });\n",
	"exports = module.exports = function f() {};\n",
	"(function (root, factory) {\n" +
		"  if (typeof define === 'function' && define.amd) define([], factory);\n" +
		"  else if (typeof module === 'object' && module.exports) module.exports = factory();\n" +
		"  else root.lib = factory();\n" +
		"})(this, function () { return {}; });\n",
	"(function () { var x = 1; module.exports = x; })();\n",
	"!function (e) { module.exports = e(); }(function () { return 1; });\n",
	"/** @type {./a} */ var t; /** @param {!module:b} p */ function f(p) {}\n",
	"if (typeof module !== 'undefined') { module.exports = 1; }\n",
	"function testFoo() {} function setUp() {}\n",
	"var s = `tpl ${a} x`; var r = /a[/]b/g; var n = 0x1f + .5e3;\n",
	"class A extends B { static m() { return super.m(); } } module.exports = A;\n",
	"module.exports.default = 1; exports.x = () => ({});\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range moduleSeeds {
		f.Add([]byte(s))
	}
}

func clampInput(src []byte) []byte {
	if len(src) <= maxFuzzInput {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxFuzzInput]...)
}
