package dag

import (
	"fmt"
	"slices"
	"strings"

	"cjsflat/internal/diag"
	"cjsflat/internal/project"
)

// Graph holds require edges between modules: Edges[from] lists the
// modules from requires, sorted. Present is false for import targets that
// are not inputs of the run.
type Graph struct {
	Edges   [][]ModuleID
	Present []bool
}

type ModuleNode struct {
	Meta     project.ModuleMeta
	Reporter diag.Reporter
}

type ModuleSlot struct {
	Meta     project.ModuleMeta
	Reporter diag.Reporter
	Present  bool
}

// BuildGraph places nodes into slots by module path. A second input with
// the same module path is reported as ProjDuplicateName and left out.
func BuildGraph(idx ModuleIndex, nodes []ModuleNode) (Graph, []ModuleSlot) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ModuleID, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]ModuleSlot, nodeCount)
	for i, name := range idx.IDToName {
		slots[i].Meta.Path = name
	}

	for _, node := range nodes {
		meta := node.Meta
		id, ok := idx.NameToID[meta.Path]
		if meta.Path == "" || !ok {
			continue
		}
		slot := &slots[int(id)]
		if slot.Present {
			if node.Reporter != nil {
				node.Reporter.Report(diag.ProjDuplicateName, diag.SevError, meta.Span,
					fmt.Sprintf("%s and %s both map to module %s", slot.Meta.File, meta.File, meta.Name),
					[]diag.Note{{Span: slot.Meta.Span, Msg: "first input with this module path"}})
			}
			continue
		}
		slot.Meta = meta
		slot.Reporter = node.Reporter
		slot.Present = true
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present {
			continue
		}
		seen := make(map[ModuleID]struct{}, len(slot.Meta.Imports))
		for _, dep := range slot.Meta.Imports {
			to, ok := idx.NameToID[dep.Path]
			if !ok || to == ModuleID(from) {
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[from] = append(g.Edges[from], to)
		}
		slices.Sort(g.Edges[from])
	}
	return g, slots
}

// ReportCycles warns every module on a require cycle. Cycles are legal in
// CommonJS, but the module evaluated first sees a partially filled
// namespace of the other.
func ReportCycles(idx ModuleIndex, slots []ModuleSlot, cycles [][]ModuleID) {
	for _, cycle := range cycles {
		names := idx.Names(cycle)
		summary := strings.Join(append(names, names[0]), " -> ")
		for _, id := range cycle {
			slot := slots[int(id)]
			if slot.Reporter == nil {
				continue
			}
			msg := fmt.Sprintf("module %s is part of a require cycle: %s", slot.Meta.Path, summary)
			slot.Reporter.Report(diag.ProjImportCycle, diag.SevWarning, slot.Meta.Span, msg, nil)
		}
	}
}
