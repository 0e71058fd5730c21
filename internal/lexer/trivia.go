package lexer

import (
	"cjsflat/internal/diag"
	"cjsflat/internal/token"
)

// collectLeadingTrivia пропускает пробелы и переводы строк и собирает
// комментарии перед значимым токеном:
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности, как в JS)
//   - /** ... */ -> TriviaDocBlock (JSDoc)
//
// Any line terminator, including one inside a block comment, sets sawNewline.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r':
			lx.cursor.Bump()
		case b == '\n':
			lx.cursor.Bump()
			lx.sawNewline = true
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineComment()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment()
		case b >= utf8RuneSelf:
			r, _ := lx.peekRune()
			if r == 0x2028 || r == 0x2029 {
				lx.sawNewline = true
				lx.bumpRune()
				continue
			}
			if !isSpaceRune(r) {
				return
			}
			lx.bumpRune()
		default:
			return
		}
	}
}

func (lx *Lexer) scanLineComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaLineComment,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.Text(start),
	})
}

func (lx *Lexer) scanBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	kind := token.TriviaBlockComment
	// "/**/" is an empty plain comment, not a doc block.
	if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
		kind = token.TriviaDocBlock
	}
	closed := false
	for !lx.cursor.EOF() {
		if lx.cursor.EatString("*/") {
			closed = true
			break
		}
		if lx.cursor.Bump() == '\n' {
			lx.sawNewline = true
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.cursor.Text(start)})
}
