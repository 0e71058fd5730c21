package fuzztests

import (
	"testing"

	"cjsflat/internal/diag"
	"cjsflat/internal/lexer"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.js", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен продвигает курсор, иначе лексер завис
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if i > len(input)+1 {
				t.Fatalf("lexer did not reach EOF on %q", input)
			}
		}
	})
}
