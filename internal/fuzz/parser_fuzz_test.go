package fuzztests

import (
	"testing"
	"time"

	"cjsflat/internal/diag"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
	"cjsflat/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.js", input)
		bag := diag.NewBag(128)
		tree, root := parser.ParseFile(fs, fileID, bag)
		if err := testkit.CheckTree(tree, root); err != nil {
			t.Fatalf("broken tree for %q: %v", input, err)
		}
		if bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpans(tree, root, fs.Get(fileID)); err != nil {
			t.Fatalf("bad spans for %q: %v", input, err)
		}
	})
}

// FuzzParserNoHang tests that error recovery always makes progress.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("var a = "))               // missing initializer
	f.Add([]byte("function f( { return }")) // unclosed parameter list
	f.Add([]byte("({ a: 1, b: , })"))       // hole in object literal
	f.Add([]byte("if (x) else y;"))         // else without statement
	f.Add([]byte("{ { { { } } }"))          // unbalanced blocks
	f.Add([]byte("a = /unterminated"))      // regexp without close
	f.Add([]byte("`${`${`${"))              // nested template heads

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.js", input)
			_, _ = parser.ParseFile(fs, fileID, diag.NewBag(128))
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
