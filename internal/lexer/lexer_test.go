package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cjsflat/internal/diag"
	"cjsflat/internal/lexer"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %d",
			len(expected), len(tokens), input, tokensToString(tokens), bag.Len())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestRequireStatement(t *testing.T) {
	expectTokens(t, `var a = require('./a');`, []token.Kind{
		token.KwVar, token.Ident, token.Assign, token.Ident, token.LParen,
		token.StringLit, token.RParen, token.Semicolon,
	})
}

func TestOperatorsGreedy(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
	}{
		{"a >>>= b", []token.Kind{token.Ident, token.UShrAssign, token.Ident}},
		{"a !== b === c", []token.Kind{token.Ident, token.BangEqEq, token.Ident, token.EqEqEq, token.Ident}},
		{"(x) => x", []token.Kind{token.LParen, token.Ident, token.RParen, token.Arrow, token.Ident}},
		{"f(...args)", []token.Kind{token.Ident, token.LParen, token.Ellipsis, token.Ident, token.RParen}},
		{"a ?? b || !c", []token.Kind{token.Ident, token.QuestionQuestion, token.Ident, token.OrOr, token.Bang, token.Ident}},
		{"i++ + --j", []token.Kind{token.Ident, token.PlusPlus, token.Plus, token.MinusMinus, token.Ident}},
		{"a.b$c._d", []token.Kind{token.Ident, token.Dot, token.Ident, token.Dot, token.Ident}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.kinds)
		})
	}
}

func TestNumbers(t *testing.T) {
	for _, input := range []string{"0", "42", "3.14", ".5", "1e10", "2E-3", "0x1F", "0o17", "0b101", "017", "1_000", "10n", "1."} {
		t.Run(input, func(t *testing.T) {
			lx, bag := makeTestLexer(input)
			tok := lx.Next()
			if tok.Kind != token.NumberLit || tok.Text != input {
				t.Fatalf("got %v(%q)", tok.Kind, tok.Text)
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
		})
	}
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"0x", "1e+", "3in"} {
		t.Run(input, func(t *testing.T) {
			lx, bag := makeTestLexer(input)
			if tok := lx.Next(); tok.Kind != token.Invalid {
				t.Fatalf("got %v", tok.Kind)
			}
			if bag.Items()[0].Code != diag.LexBadNumber {
				t.Fatalf("got %+v", bag.Items())
			}
		})
	}
}

func TestStringValues(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"plain"`, "plain"},
		{`'single "quotes"'`, `single "quotes"`},
		{`"a\nb\t\\"`, "a\nb\t\\"},
		{`'\x41B\u{43}'`, "ABC"},
		{`'it\'s'`, "it's"},
		{"'line\\\ncont'", "linecont"},
		{`"привет"`, "привет"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != token.StringLit {
				t.Fatalf("got %v, diags %+v", tok.Kind, bag.Items())
			}
			if tok.Value != tt.value {
				t.Errorf("value = %q, want %q", tok.Value, tt.value)
			}
			if tok.Text != tt.input {
				t.Errorf("text = %q", tok.Text)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("'abc\nx")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("got %+v", bag.Items())
	}
}

func TestCommentsAndNewlines(t *testing.T) {
	lx, bag := makeTestLexer("a // one\n/** @const */ b /* x */ c /* a\nb */ d")
	a := lx.Next()
	if a.NewlineBefore {
		t.Error("first token has no newline before it")
	}
	b := lx.Next()
	if !b.NewlineBefore || len(b.Leading) != 2 {
		t.Fatalf("b: newline=%v leading=%+v", b.NewlineBefore, b.Leading)
	}
	doc, ok := b.DocComment()
	if !ok || doc.Text != "/** @const */" {
		t.Fatalf("doc = %+v, %v", doc, ok)
	}
	c := lx.Next()
	if c.NewlineBefore || len(c.Leading) != 1 || c.Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("c: %+v", c)
	}
	d := lx.Next()
	if !d.NewlineBefore {
		t.Error("newline inside block comment must count")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestEmptyBlockCommentIsNotDoc(t *testing.T) {
	lx, _ := makeTestLexer("/**/ x")
	tok := lx.Next()
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("got %+v", tok.Leading)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("x /* open")
	lx.Next()
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("got %v", tok.Kind)
	}
	if bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("got %+v", bag.Items())
	}
}

func TestRescanRegexp(t *testing.T) {
	lx, bag := makeTestLexer("x = /[/]a\\/b/gi.test(s)")
	lx.Next()
	lx.Next()
	slash := lx.Next()
	if slash.Kind != token.Slash {
		t.Fatalf("got %v", slash.Kind)
	}
	lx.Peek()
	re := lx.RescanRegexp(slash)
	if re.Kind != token.RegexpLit || re.Text != "/[/]a\\/b/gi" {
		t.Fatalf("got %v(%q)", re.Kind, re.Text)
	}
	if next := lx.Next(); next.Kind != token.Dot {
		t.Fatalf("after regexp got %v", next.Kind)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestKeywordsAndContextualWords(t *testing.T) {
	expectTokens(t, "let of = typeof module", []token.Kind{token.KwLet, token.Ident, token.Assign, token.KwTypeof, token.Ident})
}

func TestTemplateLiteralRejected(t *testing.T) {
	lx, bag := makeTestLexer("`x`")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Text != "a" || lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatal("peek consumed a token")
	}
	if tok := lx.Next(); tok.Kind != token.EOF || !tok.NewlineBefore {
		t.Fatalf("got %+v", tok)
	}
}
