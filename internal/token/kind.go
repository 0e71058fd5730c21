package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	NumberLit
	StringLit
	RegexpLit

	// keywords
	KwVar
	KwLet
	KwConst
	KwFunction
	KwClass
	KwExtends
	KwReturn
	KwIf
	KwElse
	KwFor
	KwIn
	KwWhile
	KwDo
	KwBreak
	KwContinue
	KwNew
	KwDelete
	KwTypeof
	KwVoid
	KwInstanceof
	KwThis
	KwSuper
	KwNull
	KwTrue
	KwFalse
	KwThrow
	KwTry
	KwCatch
	KwFinally
	KwSwitch
	KwCase
	KwDefault
	KwDebugger

	// punctuation
	LBrace   // {
	RBrace   // }
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Semicolon
	Comma
	Dot
	Ellipsis // ...
	Question
	Colon
	Arrow // =>

	// operators
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	PercentAssign
	ShlAssign  // <<=
	ShrAssign  // >>=
	UShrAssign // >>>=
	AmpAssign
	PipeAssign
	CaretAssign
	EqEq     // ==
	EqEqEq   // ===
	BangEq   // !=
	BangEqEq // !==
	Lt
	Gt
	LtEq
	GtEq
	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus
	MinusMinus
	Shl
	Shr
	UShr
	Amp
	Pipe
	Caret
	Bang
	Tilde
	AndAnd
	OrOr
	QuestionQuestion
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	NumberLit:        "NumberLit",
	StringLit:        "StringLit",
	RegexpLit:        "RegexpLit",
	KwVar:            "var",
	KwLet:            "let",
	KwConst:          "const",
	KwFunction:       "function",
	KwClass:          "class",
	KwExtends:        "extends",
	KwReturn:         "return",
	KwIf:             "if",
	KwElse:           "else",
	KwFor:            "for",
	KwIn:             "in",
	KwWhile:          "while",
	KwDo:             "do",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwNew:            "new",
	KwDelete:         "delete",
	KwTypeof:         "typeof",
	KwVoid:           "void",
	KwInstanceof:     "instanceof",
	KwThis:           "this",
	KwSuper:          "super",
	KwNull:           "null",
	KwTrue:           "true",
	KwFalse:          "false",
	KwThrow:          "throw",
	KwTry:            "try",
	KwCatch:          "catch",
	KwFinally:        "finally",
	KwSwitch:         "switch",
	KwCase:           "case",
	KwDefault:        "default",
	KwDebugger:       "debugger",
	LBrace:           "{",
	RBrace:           "}",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	Ellipsis:         "...",
	Question:         "?",
	Colon:            ":",
	Arrow:            "=>",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	UShrAssign:       ">>>=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Lt:               "<",
	Gt:               ">",
	LtEq:             "<=",
	GtEq:             ">=",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Shl:              "<<",
	Shr:              ">>",
	UShr:             ">>>",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Bang:             "!",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	QuestionQuestion: "??",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Invalid"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwVar && k <= KwDebugger
}

// IsAssignOp reports whether k is "=" or a compound assignment.
func (k Kind) IsAssignOp() bool {
	return k >= Assign && k <= CaretAssign
}
