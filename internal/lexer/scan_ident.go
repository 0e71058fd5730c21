package lexer

import (
	"cjsflat/internal/diag"
	"cjsflat/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует IdentifierName и проверяет через LookupKeyword.
// Unicode escapes in identifiers are rejected.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
		}
		lx.bumpRune()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, _ := lx.peekRune()
		if !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadEscape, sp, "escape sequences in identifiers are not supported")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(start)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
