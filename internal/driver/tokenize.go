package driver

import (
	"cjsflat/internal/diag"
	"cjsflat/internal/lexer"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file up to and including EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: lexAll(file, bag), Bag: bag}, nil
}

func lexAll(file *source.File, bag *diag.Bag) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
