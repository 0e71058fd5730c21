package token

import (
	"cjsflat/internal/source"
)

// TriviaKind classifies comments attached to tokens.
type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
	TriviaDocBlock // /** ... */
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocBlock:
		return "DocBlock"
	}
	return "Trivia"
}

// Trivia is a comment preceding a significant token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Value is the decoded content of a string literal.
	Value string
	// NewlineBefore is set when a line terminator precedes the token; the
	// parser needs it for automatic semicolon insertion.
	NewlineBefore bool
	Leading       []Trivia
}

// IsLiteral reports whether the token is a numeric, string or regexp literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, RegexpLit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentName reports whether the token may be used as a property name.
func (t Token) IsIdentName() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// IsContextual reports whether the token is the identifier word.
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// DocComment returns the last "/** */" comment in the leading trivia.
func (t Token) DocComment() (Trivia, bool) {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		if t.Leading[i].Kind == TriviaDocBlock {
			return t.Leading[i], true
		}
	}
	return Trivia{}, false
}
