package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"cjsflat/internal/ast"
	"cjsflat/internal/cjs"
	"cjsflat/internal/diag"
	"cjsflat/internal/format"
	"cjsflat/internal/modpath"
	"cjsflat/internal/observ"
	"cjsflat/internal/project"
	"cjsflat/internal/project/dag"
	"cjsflat/internal/source"
	"cjsflat/internal/trace"
	"cjsflat/internal/uid"
)

// Source is an input that does not come from disk.
type Source struct {
	Path    string
	Content []byte
}

// Request describes one rewrite run.
type Request struct {
	Files   []string
	Sources []Source
	// BaseDir is what module paths are relative to; Roots are relative
	// to it as well.
	BaseDir string
	Roots   []string
	// Force marks inputs to be rewritten as modules without exports.
	Force               func(path string) bool
	Externs             []string
	ExportTestFunctions bool
	JSDoc               bool
	MaxDiagnostics      int
	Jobs                int
	Cache               *DiskCache
	Observer            Observer
	// Timings attaches ObsTimings diagnostics to every file and the run.
	Timings bool
	// IDs numbers synthetic labels; nil gives the run its own supplier.
	IDs *uid.Supplier
}

// Summary is the part of cjs.Result a file keeps after the run. It is
// cached with the output.
type Summary struct {
	IsCommonJS bool
	IsModule   bool
	ModuleName string
	Deleted    []source.Span
	Changed    []source.Span
	Iterations int
	Requires   []string // module paths
}

type FileResult struct {
	Path    string
	Module  modpath.Path
	FileID  source.FileID
	Type    modpath.ModuleType
	Output  string
	Bag     *diag.Bag
	Summary Summary
	Cached  bool
	// Failed is set when the file could not be loaded or parsed; it has
	// no output.
	Failed bool
	Timing *observ.Report
}

type Stats struct {
	Rewritten int
	Cached    int
	Failed    int
}

type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Order indexes Files so that every module follows the modules it
	// requires. Failed files are left out.
	Order []int
	// Bag holds run-level diagnostics: missing inputs, module name
	// clashes, require cycles, timings.
	Bag    *diag.Bag
	Stats  Stats
	Timing observ.Report
}

// HasErrors reports an error in any file or in the run.
func (r *Result) HasErrors() bool {
	if r.Bag.HasErrors() {
		return true
	}
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics merges every bag of the run, sorted.
func (r *Result) Diagnostics() *diag.Bag {
	all := diag.NewBag(0)
	for i := range r.Files {
		all.Merge(r.Files[i].Bag)
	}
	all.Merge(r.Bag)
	all.Sort()
	return all
}

type fileState struct {
	path   string
	id     source.FileID
	loaded bool
	forced bool
	tree   *ast.Tree
	root   ast.NodeID
	timer  *observ.Timer
}

type runner struct {
	req      Request
	fileSet  *source.FileSet
	resolver *modpath.Resolver
	registry *modpath.Registry
	ids      *uid.Supplier
	tracer   trace.Tracer
	states   []fileState
	res      *Result
	// digest of every setting shared by all files
	optsDigest project.Digest
}

// RewriteFiles rewrites req.Files and req.Sources into flat globals. The
// returned error is reserved for cancellation; everything that went
// wrong with an input is a diagnostic in the result.
func RewriteFiles(ctx context.Context, req Request) (*Result, error) {
	tr := trace.FromContext(ctx)
	runSpan := trace.Begin(tr, trace.ScopeDriver, "rewrite", trace.ParentFrom(ctx))
	ctx = trace.WithParent(ctx, runSpan)

	r := newRunner(req, tr)
	res := r.res
	start := r.begin("load")
	r.load()
	r.end("load", start)
	if len(r.states) == 0 {
		res.Bag.Add(diag.NewError(diag.ProjNoInputs, source.Span{}, "no input files"))
		runSpan.End("no inputs")
		return res, nil
	}

	phases := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"scan", r.scan},
		{"rewrite", r.rewrite},
		{"order", func(context.Context) error { r.order(); return nil }},
	}
	for _, ph := range phases {
		start := r.begin(ph.name)
		sp := trace.Begin(tr, trace.ScopePass, ph.name, runSpan.ID())
		err := ph.fn(trace.WithParent(ctx, sp))
		r.end(ph.name, start)
		if err != nil {
			sp.Fail(err)
			runSpan.Fail(err)
			return res, err
		}
		sp.End("")
	}

	r.finishTimings()
	runSpan.WithExtra("files", strconv.Itoa(len(res.Files))).
		WithExtra("cached", strconv.Itoa(res.Stats.Cached)).
		End(fmt.Sprintf("%d rewritten, %d failed", res.Stats.Rewritten, res.Stats.Failed))
	return res, nil
}

// RewriteSource rewrites a single in-memory file with the settings of req.
func RewriteSource(ctx context.Context, path string, src []byte, req Request) (*FileResult, error) {
	req.Files = nil
	req.Sources = []Source{{Path: path, Content: src}}
	res, err := RewriteFiles(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Files) == 0 {
		return nil, fmt.Errorf("%s: not rewritten", path)
	}
	fr := res.Files[0]
	fr.Bag.Merge(res.Bag)
	return &fr, nil
}

func newRunner(req Request, tr trace.Tracer) *runner {
	if req.BaseDir == "" {
		req.BaseDir = "."
	}
	ids := req.IDs
	if ids == nil {
		ids = uid.New()
	}
	roots := append([]string(nil), req.Roots...)
	externs := append([]string(nil), req.Externs...)
	sort.Strings(externs)
	return &runner{
		req:      req,
		fileSet:  source.NewFileSetWithBase(req.BaseDir),
		resolver: modpath.NewResolver(roots, nil),
		registry: modpath.NewRegistry(),
		ids:      ids,
		tracer:   tr,
		res: &Result{
			Bag: diag.NewBag(0),
		},
		optsDigest: project.HashStrings(
			strconv.Itoa(int(diskCacheSchemaVersion)),
			"roots="+strings.Join(roots, ","),
			"externs="+strings.Join(externs, ","),
			"tests="+strconv.FormatBool(req.ExportTestFunctions),
			"jsdoc="+strconv.FormatBool(req.JSDoc),
		),
	}
}

// load reads the inputs and assigns module paths.
func (r *runner) load() {
	req := r.req
	n := len(req.Files) + len(req.Sources)
	r.res.FileSet = r.fileSet
	r.res.Files = make([]FileResult, n)
	r.states = make([]fileState, n)

	bags := make([]*diag.Bag, n)
	for i := range bags {
		bags[i] = diag.NewBag(req.MaxDiagnostics)
	}
	ids := loadFiles(r.fileSet, req.Files, bags[:len(req.Files)])
	for i, path := range req.Files {
		id, ok := ids[path]
		r.states[i] = fileState{path: path, id: id, loaded: ok}
	}
	for j, src := range req.Sources {
		i := len(req.Files) + j
		id := r.fileSet.AddVirtual(src.Path, src.Content)
		r.states[i] = fileState{path: src.Path, id: id, loaded: true}
	}

	for i := range r.states {
		st := &r.states[i]
		st.timer = observ.NewTimer()
		st.root = ast.NoNode
		fr := &r.res.Files[i]
		fr.Path, fr.Bag, fr.FileID = st.path, bags[i], st.id
		if !st.loaded {
			fr.Failed = true
			continue
		}
		fr.Module = r.resolver.Add(r.modulePathOf(st.path))
		st.forced = req.Force != nil && req.Force(st.path)
	}
}

// modulePathOf makes path relative to BaseDir when it lies inside it.
func (r *runner) modulePathOf(path string) string {
	if !filepath.IsAbs(path) && !filepath.IsAbs(r.req.BaseDir) {
		if rel, err := filepath.Rel(r.req.BaseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return path
	}
	absBase, err1 := filepath.Abs(r.req.BaseDir)
	absPath, err2 := filepath.Abs(path)
	if err1 != nil || err2 != nil {
		return path
	}
	if rel, err := filepath.Rel(absBase, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// scan classifies every input so that rewrites can tell which imports
// need `.default`.
func (r *runner) scan(ctx context.Context) error {
	parent := trace.ParentFrom(ctx)
	return forEachFile(ctx, len(r.states), r.req.Jobs, func(_ context.Context, i int) error {
		st, fr := &r.states[i], &r.res.Files[i]
		if fr.Failed {
			return nil
		}
		sp := trace.Begin(r.tracer, trace.ScopeModule, "module:"+fr.Module.String(), parent)
		file := r.fileSet.Get(st.id)
		key := project.Combine(file.Hash, project.HashStrings("scan", r.req.externsKey()))

		var cached ScanPayload
		if ok, _ := r.req.Cache.Get("scan", key, &cached); ok && cached.Schema == diskCacheSchemaVersion {
			fr.Type = modpath.ModuleType(cached.Type)
		} else {
			if err := r.parse(st, fr, sp.ID()); err != nil {
				sp.Fail(err)
				return err
			}
			if fr.Failed {
				fr.Type = modpath.TypeScript
				sp.End("parse errors")
				return nil
			}
			fr.Type = cjs.Classify(st.tree, st.root, cjs.Options{Externs: r.req.Externs})
			r.cachePut("scan", key, ScanPayload{Schema: diskCacheSchemaVersion, Type: uint8(fr.Type)}, sp)
		}
		if st.forced {
			fr.Type = modpath.TypeCommonJS
		}
		r.registry.Set(fr.Module.ModuleName(), fr.Type)
		sp.End(fr.Type.String())
		return nil
	})
}

func (req Request) externsKey() string {
	externs := append([]string(nil), req.Externs...)
	sort.Strings(externs)
	return strings.Join(externs, ",")
}

// parse fills st.tree once; a file with syntax errors is marked failed.
func (r *runner) parse(st *fileState, fr *FileResult, parent uint64) error {
	if st.tree != nil {
		return nil
	}
	sp := trace.Begin(r.tracer, trace.ScopeNode, "parse", parent)
	idx := st.timer.Begin("parse")
	tree, root, err := parseInto(r.fileSet.Get(st.id), fr.Bag, r.req.MaxDiagnostics)
	st.timer.End(idx, "")
	if err != nil {
		sp.Fail(err)
		return err
	}
	st.tree, st.root = tree, root
	if fr.Bag.HasErrors() {
		fr.Failed = true
		sp.End("syntax errors")
		return nil
	}
	sp.End("")
	return nil
}

// registryDigest covers the module path and type of every input: a
// change in either can change how other files reference it.
func (r *runner) registryDigest() project.Digest {
	entries := make([]string, 0, len(r.res.Files))
	for i := range r.res.Files {
		fr := &r.res.Files[i]
		if fr.Module.IsZero() {
			continue
		}
		entries = append(entries, fr.Module.String()+"="+fr.Type.String())
	}
	sort.Strings(entries)
	return project.HashStrings(entries...)
}

func (r *runner) rewrite(ctx context.Context) error {
	parent := trace.ParentFrom(ctx)
	registry := r.registryDigest()
	total := len(r.states)
	return forEachFile(ctx, total, r.req.Jobs, func(_ context.Context, i int) error {
		st, fr := &r.states[i], &r.res.Files[i]
		started := time.Now()
		defer func() {
			r.req.Observer.emit(Event{Kind: EventFileDone, Phase: "rewrite", Path: fr.Path, Index: i,
				Total: total, Cached: fr.Cached, Failed: fr.Failed, Elapsed: time.Since(started)})
		}()
		if fr.Failed {
			return nil
		}
		sp := trace.Begin(r.tracer, trace.ScopeModule, "module:"+fr.Module.String(), parent)
		file := r.fileSet.Get(st.id)
		key := project.Combine(file.Hash, r.optsDigest, registry,
			project.HashStrings(fr.Module.String(), strconv.FormatBool(st.forced)))

		var cached RewritePayload
		if ok, _ := r.req.Cache.Get("rewrite", key, &cached); ok && cached.Schema == diskCacheSchemaVersion {
			r.restore(fr, &cached)
			st.tree = nil
			sp.WithExtra("cached", "true").End("")
			return nil
		}

		if err := r.parse(st, fr, sp.ID()); err != nil {
			sp.Fail(err)
			return err
		}
		if fr.Failed {
			sp.End("syntax errors")
			return nil
		}
		r.process(st, fr, sp.ID())
		if !fr.Bag.HasErrors() {
			r.cachePut("rewrite", key, RewritePayload{
				Schema:      diskCacheSchemaVersion,
				Output:      fr.Output,
				Diagnostics: cacheDiagnostics(fr.Bag.Items()),
				Summary:     fr.Summary,
			}, sp)
		}
		sp.WithExtra("iterations", strconv.Itoa(fr.Summary.Iterations)).End("")
		return nil
	})
}

func (r *runner) process(st *fileState, fr *FileResult, parent uint64) {
	sp := trace.Begin(r.tracer, trace.ScopeNode, "process", parent)
	idx := st.timer.Begin("process")
	out := cjs.Process(st.tree, st.root, cjs.Options{
		Path:                fr.Module,
		Resolver:            r.resolver,
		Registry:            r.registry,
		Reporter:            diag.BagReporter{Bag: fr.Bag},
		IDs:                 r.ids,
		ForceModule:         st.forced,
		ExportTestFunctions: r.req.ExportTestFunctions,
		Externs:             r.req.Externs,
	})
	st.timer.End(idx, fmt.Sprintf("%d iterations", out.Iterations))
	sp.End("")

	fr.Summary = Summary{
		IsCommonJS: out.IsCommonJS,
		IsModule:   out.IsModule,
		ModuleName: out.ModuleName,
		Deleted:    out.Deleted,
		Changed:    out.Changed,
		Iterations: out.Iterations,
	}
	for _, req := range out.Requires {
		fr.Summary.Requires = append(fr.Summary.Requires, req.Path.String())
	}

	sp = trace.Begin(r.tracer, trace.ScopeNode, "print", parent)
	idx = st.timer.Begin("print")
	fr.Output = format.Print(st.tree, st.root, format.Options{JSDoc: r.req.JSDoc})
	st.timer.End(idx, "")
	sp.End("")
	st.tree = nil
}

func (r *runner) restore(fr *FileResult, p *RewritePayload) {
	fr.Cached = true
	fr.Output = p.Output
	fr.Summary = p.Summary
	fr.Summary.Deleted = restoreSpans(fr.FileID, p.Summary.Deleted)
	fr.Summary.Changed = restoreSpans(fr.FileID, p.Summary.Changed)
	// диагностики разбора из scan уже лежат в кэше вместе с остальными
	fr.Bag = diag.NewBag(r.req.MaxDiagnostics)
	restoreDiagnostics(fr.Bag, fr.FileID, p.Diagnostics)
}

func (r *runner) cachePut(kind string, key project.Digest, v any, sp *trace.Span) {
	if r.req.Cache == nil {
		return
	}
	if err := r.req.Cache.Put(kind, key, v); err != nil {
		trace.Point(r.tracer, trace.ScopeModule, "cache", err.Error(), sp.ID())
	}
}

// order builds the require graph of the inputs and sorts them for
// concatenation.
func (r *runner) order() {
	files := r.res.Files
	metas := make([]project.ModuleMeta, 0, len(files))
	nodes := make([]dag.ModuleNode, 0, len(files))
	byPath := make(map[string]int, len(files))
	runRep := diag.BagReporter{Bag: r.res.Bag}
	for i := range files {
		fr := &files[i]
		switch {
		case fr.Failed:
			r.res.Stats.Failed++
			continue
		case fr.Cached:
			r.res.Stats.Cached++
		default:
			r.res.Stats.Rewritten++
		}
		file := r.fileSet.Get(fr.FileID)
		meta := project.ModuleMeta{
			Path:        fr.Module.String(),
			Name:        fr.Module.ModuleName(),
			File:        fr.Path,
			Span:        source.Span{File: fr.FileID},
			IsCommonJS:  fr.Summary.IsCommonJS,
			ContentHash: file.Hash,
		}
		for _, req := range fr.Summary.Requires {
			meta.Imports = append(meta.Imports, project.ImportMeta{Path: req, Span: meta.Span})
		}
		if _, dup := byPath[meta.Path]; !dup {
			byPath[meta.Path] = i
		}
		metas = append(metas, meta)
		nodes = append(nodes, dag.ModuleNode{Meta: meta, Reporter: runRep})
	}

	idx := dag.BuildIndex(metas)
	g, slots := dag.BuildGraph(idx, nodes)
	order, cycles := dag.DependencyOrder(g)
	dag.ReportCycles(idx, slots, cycles)
	for _, id := range order {
		r.res.Order = append(r.res.Order, byPath[idx.IDToName[int(id)]])
	}
}

func (r *runner) begin(phase string) time.Time {
	r.req.Observer.emit(Event{Kind: EventPhaseStart, Phase: phase, Total: len(r.states)})
	return time.Now()
}

func (r *runner) end(phase string, start time.Time) {
	r.req.Observer.emit(Event{Kind: EventPhaseEnd, Phase: phase, Total: len(r.states), Elapsed: time.Since(start)})
}

func (r *runner) finishTimings() {
	reports := make([]observ.Report, 0, len(r.states))
	for i := range r.states {
		rep := r.states[i].timer.Report()
		fr := &r.res.Files[i]
		fr.Timing = &rep
		reports = append(reports, rep)
		if r.req.Timings && !fr.Failed {
			appendTimingDiagnostic(fr.Bag, source.Span{File: fr.FileID}, timingPayload{
				Kind: "file", Path: fr.Path, Cached: fr.Cached, TotalMS: rep.TotalMS, Phases: rep.Phases,
			})
		}
	}
	r.res.Timing = observ.Sum(reports...)
	if r.req.Timings {
		appendTimingDiagnostic(r.res.Bag, source.Span{}, timingPayload{
			Kind: "run", TotalMS: r.res.Timing.TotalMS, Phases: r.res.Timing.Phases,
		})
	}
}
