package driver

import (
	"fmt"

	"fortio.org/safecast"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Root    ast.NodeID
	Bag     *diag.Bag
}

// Parse reads and parses one file; syntax errors go to the result's bag.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	tree, root, err := parseInto(file, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{FileSet: fs, File: file, Tree: tree, Root: root, Bag: bag}, nil
}

func parseInto(file *source.File, bag *diag.Bag, maxDiagnostics int) (*ast.Tree, ast.NodeID, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, ast.NoNode, fmt.Errorf("max diagnostics: %w", err)
	}
	res := parser.Parse(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return res.Tree, res.Root, nil
}
