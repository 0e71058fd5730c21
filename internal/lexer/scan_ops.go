package lexer

import (
	"cjsflat/internal/diag"
	"cjsflat/internal/token"
)

// Жадность: сначала длинные последовательности, затем короткие.
var operators = []struct {
	text string
	kind token.Kind
}{
	{">>>=", token.UShrAssign},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{">>>", token.UShr},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"...", token.Ellipsis},
	{"=>", token.Arrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleOps = map[byte]token.Kind{
	'{': token.LBrace,
	'}': token.RBrace,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'?': token.Question,
	':': token.Colon,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'~': token.Tilde,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
	}
	for _, op := range operators {
		if lx.cursor.EatString(op.text) {
			return emit(op.kind)
		}
	}
	if k, ok := singleOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}
	lx.cursor.Bump()
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteByte(tok.Text))
	return tok
}
