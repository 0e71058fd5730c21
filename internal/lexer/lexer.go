package lexer

import (
	"cjsflat/internal/diag"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

type Lexer struct {
	file       *source.File
	cursor     Cursor
	opts       Options
	look       *token.Token   // 1 элементный буфер для токена
	hold       []token.Trivia // накопленные leading trivia
	sawNewline bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()
	newline := lx.sawNewline
	lx.sawNewline = false

	if lx.cursor.EOF() {
		return token.Token{
			Kind:          token.EOF,
			Span:          lx.emptySpan(),
			NewlineBefore: true,
			Leading:       lx.takeHold(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch == '`':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "template literals are not supported")
		tok = token.Token{Kind: token.Invalid, Span: sp, Text: "`"}
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.NewlineBefore = newline
	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// RescanRegexp re-reads tok, which must be a "/" or "/=" token, as a regular
// expression literal. The parser calls it where an expression operand is
// expected; any buffered lookahead is discarded.
func (lx *Lexer) RescanRegexp(tok token.Token) token.Token {
	lx.look = nil
	lx.hold = nil
	lx.sawNewline = false
	lx.cursor.Reset(Mark(tok.Span.Start))
	re := lx.scanRegexp()
	re.NewlineBefore = tok.NewlineBefore
	re.Leading = tok.Leading
	return re
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
