package cjs

import (
	"strings"
	"testing"

	"cjsflat/internal/modpath"
	"cjsflat/internal/uid"
)

const umdFactory = `(function(root, factory) {
  if (typeof define === "function" && define.amd) {
    define([], factory);
  } else if (typeof module === "object" && module.exports) {
    module.exports = factory();
  } else {
    root.Foo = factory();
  }
})(this, function() {
  return {x: 1};
});`

const umdInline = `var Foo = function() {};
if (typeof module !== "undefined" && module.exports) {
  module.exports = Foo;
} else if (typeof define === "function" && define.amd) {
  define([], function() { return Foo; });
} else {
  window.Foo = Foo;
}`

const iifeUmd = `;(function() {
  var Foo = function() {};
  if (typeof module !== "undefined" && module.exports) {
    module.exports = Foo;
  } else {
    window.Foo = Foo;
  }
}).call(this);`

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		deleted int
		rounds  int
	}{
		{"umd-factory", umdFactory, "var module$lib$a = {};\nmodule$lib$a.default = {x: 1};", 2, 2},
		{"umd-inline", umdInline, "var module$lib$a = {};\nmodule$lib$a.default = function() {};", 1, 2},
		{"iife-umd", iifeUmd, "var module$lib$a = {};\nmodule$lib$a.default = function() {};", 2, 2},
		{
			"ternary",
			"var f = function() {};\ntypeof module === \"object\" && module.exports ? module.exports = f : window.f = f;",
			"var module$lib$a = {};\nmodule$lib$a.default = function() {};",
			0, 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := process(t, "lib/a.js", tt.src, Options{})
			if got := r.String(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
			if len(r.res.Deleted) != tt.deleted {
				t.Errorf("%d deleted functions, want %d", len(r.res.Deleted), tt.deleted)
			}
			if r.res.Iterations != tt.rounds {
				t.Errorf("%d detector runs, want %d", r.res.Iterations, tt.rounds)
			}
		})
	}
}

// Detection on output that was already normalised finds nothing left to
// unwrap.
func TestNormalizeFixedPoint(t *testing.T) {
	for _, src := range []string{umdFactory, umdInline, iifeUmd} {
		r := process(t, "lib/a.js", src, Options{})
		p := newPass(r.tree, r.root, Options{Path: modpath.NewPath("lib/a.js")}, &Result{})
		if d := p.detect(); len(d.umd) != 0 {
			t.Fatalf("%d UMD patterns left in:\n%s", len(d.umd), r)
		}
		d := p.detect()
		if changed := p.replaceUmdPatterns(d); changed {
			t.Fatalf("second replacement changed the tree:\n%s", r)
		}
	}
}

func TestNormalizeKeepsArgumentsReader(t *testing.T) {
	src := `(function() {
  var args = arguments;
  if (typeof module === "object" && module.exports) {
    module.exports = args;
  }
})();`
	r := process(t, "lib/a.js", src, Options{})
	got := r.String()
	if !strings.Contains(got, "(function() {") || !strings.Contains(got, "arguments") {
		t.Fatalf("wrapper reading arguments was inlined:\n%s", got)
	}
	if strings.Contains(got, "module.exports") {
		t.Fatalf("export not rewritten:\n%s", got)
	}
}

func TestNormalizeNeedsModulePath(t *testing.T) {
	tree, root := parse(t, "anon.js", umdInline)
	res := Process(tree, root, Options{})
	if !res.IsCommonJS || res.Iterations != 1 || len(res.Deleted) != 0 {
		t.Fatalf("IsCommonJS=%v Iterations=%d Deleted=%d", res.IsCommonJS, res.Iterations, len(res.Deleted))
	}
}

func TestNormalizeSharedLabels(t *testing.T) {
	// метки factory/iife берутся из общего счётчика
	ids := uid.New()
	process(t, "lib/a.js", umdFactory, Options{IDs: ids})
	process(t, "lib/b.js", umdFactory, Options{IDs: ids})
	if got := ids.Next(); got != 4 {
		t.Fatalf("supplier at %d after two files, want 4", got)
	}
}
