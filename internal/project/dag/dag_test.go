package dag

import (
	"reflect"
	"testing"

	"cjsflat/internal/diag"
	"cjsflat/internal/project"
	"cjsflat/internal/source"
)

func meta(path string, imports ...string) project.ModuleMeta {
	m := project.ModuleMeta{Path: path, File: "src/" + path, Name: "module$" + path}
	for _, imp := range imports {
		m.Imports = append(m.Imports, project.ImportMeta{Path: imp})
	}
	return m
}

func nodesOf(metas []project.ModuleMeta, rep diag.Reporter) []ModuleNode {
	nodes := make([]ModuleNode, len(metas))
	for i, m := range metas {
		nodes[i] = ModuleNode{Meta: m, Reporter: rep}
	}
	return nodes
}

func TestBuildIndexIncludesImports(t *testing.T) {
	idx := BuildIndex([]project.ModuleMeta{meta("main.js", "lib/math.js", "lib/util.js"), meta("lib/util.js")})
	want := []string{"lib/math.js", "lib/util.js", "main.js"}
	if !reflect.DeepEqual(idx.IDToName, want) {
		t.Fatalf("IDToName = %v, want %v", idx.IDToName, want)
	}
	for i, name := range want {
		if idx.NameToID[name] != ModuleID(i) {
			t.Fatalf("NameToID[%q] = %d, want %d", name, idx.NameToID[name], i)
		}
	}
}

func TestBuildGraph(t *testing.T) {
	metas := []project.ModuleMeta{
		meta("app.js", "util.js", "core.js", "util.js", "app.js"),
		meta("core.js", "util.js", "ext.js"),
		meta("util.js"),
	}
	idx := BuildIndex(metas)
	g, _ := BuildGraph(idx, nodesOf(metas, nil))

	app, core, ext, util := idx.NameToID["app.js"], idx.NameToID["core.js"], idx.NameToID["ext.js"], idx.NameToID["util.js"]
	if got := g.Edges[app]; !reflect.DeepEqual(got, []ModuleID{core, util}) {
		t.Fatalf("app edges = %v", idx.Names(got))
	}
	if got := g.Edges[core]; !reflect.DeepEqual(got, []ModuleID{ext, util}) {
		t.Fatalf("core edges = %v", idx.Names(got))
	}
	if g.Present[ext] || !g.Present[util] {
		t.Fatalf("Present = %v", g.Present)
	}
}

func TestBuildGraphDuplicate(t *testing.T) {
	a := meta("x.js")
	a.Span = source.Span{File: 1, End: 3}
	b := meta("x.js")
	b.File = "lib/x.js"
	bag := diag.NewBag(0)
	idx := BuildIndex([]project.ModuleMeta{a, b})
	_, slots := BuildGraph(idx, nodesOf([]project.ModuleMeta{a, b}, diag.BagReporter{Bag: bag}))

	if bag.Len() != 1 || bag.Items()[0].Code != diag.ProjDuplicateName {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	if slot := slots[idx.NameToID["x.js"]]; slot.Meta.Span != a.Span {
		t.Fatal("slot should keep the first input")
	}
}

func TestDependencyOrder(t *testing.T) {
	metas := []project.ModuleMeta{
		meta("b.js", "c.js"),
		meta("a.js", "b.js", "d.js"),
		meta("c.js"),
		meta("d.js", "c.js"),
	}
	idx := BuildIndex(metas)
	g, _ := BuildGraph(idx, nodesOf(metas, nil))
	order, cycles := DependencyOrder(g)
	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles %v", cycles)
	}
	want := []string{"c.js", "b.js", "d.js", "a.js"}
	if got := idx.Names(order); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestDependencyOrderCycle(t *testing.T) {
	metas := []project.ModuleMeta{
		meta("a.js", "b.js"),
		meta("b.js", "c.js"),
		meta("c.js", "a.js"),
		meta("d.js", "a.js"),
	}
	idx := BuildIndex(metas)
	bag := diag.NewBag(0)
	g, slots := BuildGraph(idx, nodesOf(metas, diag.BagReporter{Bag: bag}))
	order, cycles := DependencyOrder(g)

	if got := idx.Names(order); !reflect.DeepEqual(got, []string{"c.js", "b.js", "a.js", "d.js"}) {
		t.Fatalf("order = %v", got)
	}
	if len(cycles) != 1 || !reflect.DeepEqual(idx.Names(cycles[0]), []string{"a.js", "b.js", "c.js"}) {
		t.Fatalf("cycles = %v", cycles)
	}

	ReportCycles(idx, slots, cycles)
	if bag.Len() != 3 {
		t.Fatalf("%d cycle warnings, want 3", bag.Len())
	}
	if d := bag.Items()[0]; d.Code != diag.ProjImportCycle || d.Severity != diag.SevWarning {
		t.Fatalf("diagnostic = %+v", d)
	}
}
