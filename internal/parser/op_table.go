package parser

import (
	"cjsflat/internal/token"
)

// Таблица приоритетов для бинарных операторов; больше: сильнее.
const (
	precNone           = 0
	precCoalesce       = 1  // ??
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == != === !==
	precRelational     = 8  // < > <= >= instanceof in
	precShift          = 9  // << >> >>>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// binaryPrec returns the precedence of kind as a binary operator, or precNone.
func binaryPrec(kind token.Kind, noIn bool) int {
	switch kind {
	case token.QuestionQuestion:
		return precCoalesce
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.KwInstanceof:
		return precRelational
	case token.KwIn:
		if noIn {
			return precNone
		}
		return precRelational
	case token.Shl, token.Shr, token.UShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return precNone
	}
}

// BinaryPrecedence is exported for the printer.
func BinaryPrecedence(kind token.Kind) int {
	if kind == token.Comma {
		return -1
	}
	return binaryPrec(kind, false)
}

func isUnaryOp(kind token.Kind) bool {
	switch kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.KwTypeof, token.KwVoid, token.KwDelete:
		return true
	default:
		return false
	}
}
