package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// untilEOF cuts tokens after the first EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i := range tokens {
		if tokens[i].Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

func triviaKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	kinds := make([]string, len(tok.Leading))
	for i, tr := range tok.Leading {
		kinds[i] = tr.Kind.String()
	}
	return kinds
}

// FormatTokensPretty печатает по строке на токен:
//
//	  1: var             "var" at 1:1-1:4 (leading: DocBlock)
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range untilEOF(tokens) {
		start, end := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %s-%s", start, end)
		if kinds := triviaKinds(tok); kinds != nil {
			line += " (leading: " + strings.Join(kinds, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	tokens = untilEOF(tokens)
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaKinds(tok),
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
