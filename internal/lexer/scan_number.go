package lexer

import (
	"cjsflat/internal/diag"
	"cjsflat/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., legacy 017, 1.0, .5, 1e-3, 1_000, 10n.
// Text keeps the literal verbatim; the printer never re-formats numbers.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
	}
	digits := func(ok func(byte) bool) int {
		n := 0
		for ok(lx.cursor.Peek()) || (n > 0 && lx.cursor.Peek() == '_') {
			lx.cursor.Bump()
			n++
		}
		return n
	}

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if digits(isHex) == 0 {
				return bad("expected hexadecimal digit")
			}
			return lx.finishNumber(start)
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if digits(isOct) == 0 {
				return bad("expected octal digit")
			}
			return lx.finishNumber(start)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if digits(isBin) == 0 {
				return bad("expected binary digit")
			}
			return lx.finishNumber(start)
		}
	}

	digits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		digits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if digits(isDec) == 0 {
			return bad("expected digit after exponent")
		}
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	lx.cursor.Eat('n')
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
	}
	return token.Token{Kind: token.NumberLit, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
}
