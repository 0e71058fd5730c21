package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/source"
)

// ParseDirResult is the parse of one file of a directory.
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Tree   *ast.Tree
	Root   ast.NodeID
	Bag    *diag.Bag
}

// ListJSFiles returns the *.js files under dir, sorted, skipping
// node_modules.
func ListJSFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, ".js") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// forEachFile runs fn(ctx, i) for i in [0, n) on at most jobs goroutines.
// Every i gets its own result slot, so fn needs no locking for it.
func forEachFile(ctx context.Context, n, jobs int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// loadFiles adds files to fileSet. Files that fail to load are missing
// from ids and get an IOLoadFileError in their bag instead.
func loadFiles(fileSet *source.FileSet, files []string, bags []*diag.Bag) map[string]source.FileID {
	ids := make(map[string]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			bags[i].Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOLoadFileError,
				Message:  "failed to load file: " + err.Error(),
			})
			continue
		}
		ids[path] = id
	}
	return ids
}

// ParseDir parses every *.js file under dir in parallel.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListJSFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	bags := make([]*diag.Bag, len(files))
	for i := range bags {
		bags[i] = diag.NewBag(maxDiagnostics)
	}
	ids := loadFiles(fileSet, files, bags)

	results := make([]ParseDirResult, len(files))
	err = forEachFile(ctx, len(files), jobs, func(_ context.Context, i int) error {
		path := files[i]
		results[i] = ParseDirResult{Path: path, Bag: bags[i], Root: ast.NoNode}
		id, ok := ids[path]
		if !ok {
			return nil
		}
		tree, root, err := parseInto(fileSet.Get(id), bags[i], maxDiagnostics)
		if err != nil {
			return err
		}
		results[i].FileID, results[i].Tree, results[i].Root = id, tree, root
		return nil
	})
	return fileSet, results, err
}
