package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"cjsflat/internal/diag"
	"cjsflat/internal/token"
)

// scanString читает '...' или "..." и декодирует escape-последовательности в Value.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	var value strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return token.Token{
				Kind:  token.StringLit,
				Span:  lx.cursor.SpanFrom(start),
				Text:  lx.cursor.Text(start),
				Value: value.String(),
			}
		case b == '\\':
			lx.cursor.Bump()
			lx.scanEscape(&value)
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
		default:
			value.WriteByte(lx.cursor.Bump())
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
}

func (lx *Lexer) scanEscape(value *strings.Builder) {
	escStart := lx.cursor.Mark() - 1
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		value.WriteByte('\n')
	case 't':
		value.WriteByte('\t')
	case 'r':
		value.WriteByte('\r')
	case 'b':
		value.WriteByte('\b')
	case 'f':
		value.WriteByte('\f')
	case 'v':
		value.WriteByte('\v')
	case '0':
		if !isDec(lx.cursor.Peek()) {
			value.WriteByte(0)
			return
		}
		value.WriteByte('0')
	case '\n':
		// line continuation
	case 'x':
		if r, ok := lx.hexDigits(2); ok {
			value.WriteRune(r)
			return
		}
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid hexadecimal escape")
	case 'u':
		if lx.cursor.Eat('{') {
			m := lx.cursor.Mark()
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			r, err := strconv.ParseUint(lx.cursor.Text(m), 16, 32)
			if err != nil || !lx.cursor.Eat('}') || !utf8.ValidRune(rune(r)) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid unicode escape")
				return
			}
			value.WriteRune(rune(r))
			return
		}
		if r, ok := lx.hexDigits(4); ok {
			value.WriteRune(r)
			return
		}
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid unicode escape")
	case 0:
		// EOF, reported by the caller
	default:
		lx.cursor.Reset(lx.cursor.Mark() - 1)
		r, _ := lx.peekRune()
		lx.bumpRune()
		value.WriteRune(r)
	}
}

func (lx *Lexer) hexDigits(n uint32) (rune, bool) {
	for i := range n {
		if !isHex(lx.cursor.PeekAt(i)) {
			return 0, false
		}
	}
	m := lx.cursor.Mark()
	lx.cursor.Off += n
	v, err := strconv.ParseUint(lx.cursor.Text(m), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// scanRegexp reads /body/flags. Slashes inside classes do not terminate the body.
func (lx *Lexer) scanRegexp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	inClass := false
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegexp, sp, "unterminated regular expression literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
		}
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return token.Token{Kind: token.RegexpLit, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
		}
	}
}
