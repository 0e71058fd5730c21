package parser

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

// parseExpression parses a comma sequence. noIn forbids a bare `in`
// operator (for-statement headers).
func (p *Parser) parseExpression(noIn bool) ast.NodeID {
	start := p.peek().Span
	expr := p.parseAssign(noIn)
	for p.at(token.Comma) {
		p.advance()
		right := p.parseAssign(noIn)
		expr = p.finish(p.tree.NewBinary(token.Comma, expr, right, start), start)
	}
	return expr
}

func (p *Parser) parseAssign(noIn bool) ast.NodeID {
	start := p.peek().Span
	lhs := p.parseConditional(noIn)
	tok := p.peek()
	if !tok.Kind.IsAssignOp() {
		return lhs
	}
	switch p.tree.Kind(lhs) {
	case ast.Name, ast.GetProp, ast.GetElem:
	case ast.ObjectLit, ast.ArrayLit:
		if tok.Kind != token.Assign {
			p.err(diag.SynInvalidAssignment, "compound assignment to a pattern")
		}
		lhs = p.toPattern(lhs)
	default:
		if p.tree.Kind(lhs) == ast.Function && p.tree.HasFlag(lhs, ast.FlagArrow) {
			return lhs
		}
		p.err(diag.SynInvalidAssignment, "invalid assignment target")
	}
	p.advance()
	rhs := p.parseAssign(noIn)
	return p.finish(p.tree.NewOp(ast.Assign, tok.Kind, start, lhs, rhs), start)
}

func (p *Parser) parseConditional(noIn bool) ast.NodeID {
	start := p.peek().Span
	cond := p.parseBinary(precCoalesce, noIn)
	if !p.eat(token.Question) {
		return cond
	}
	then := p.parseAssign(false)
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression")
	els := p.parseAssign(noIn)
	return p.finish(p.tree.New(ast.Hook, start, cond, then, els), start)
}

// parseBinary: precedence climbing over left-associative operators.
func (p *Parser) parseBinary(minPrec int, noIn bool) ast.NodeID {
	start := p.peek().Span
	left := p.parseUnary()
	for {
		op := p.peek().Kind
		prec := binaryPrec(op, noIn)
		if prec == precNone || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec+1, noIn)
		left = p.finish(p.tree.NewBinary(op, left, right, start), start)
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	tok := p.peek()
	switch {
	case isUnaryOp(tok.Kind):
		p.advance()
		operand := p.parseUnary()
		return p.finish(p.tree.NewUnary(tok.Kind, operand, tok.Span), tok.Span)
	case tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus:
		p.advance()
		operand := p.parseUnary()
		p.checkSimpleTarget(operand)
		return p.finish(p.tree.NewOp(ast.Update, tok.Kind, tok.Span, operand), tok.Span)
	}
	expr := p.parseLeftHandSide()
	next := p.peek()
	if (next.Kind == token.PlusPlus || next.Kind == token.MinusMinus) && !next.NewlineBefore {
		p.advance()
		p.checkSimpleTarget(expr)
		upd := p.tree.NewOp(ast.Update, next.Kind, tok.Span, expr)
		p.tree.SetFlag(upd, ast.FlagPostfix, true)
		return p.finish(upd, tok.Span)
	}
	return expr
}

func (p *Parser) checkSimpleTarget(id ast.NodeID) {
	switch p.tree.Kind(id) {
	case ast.Name, ast.GetProp, ast.GetElem:
	default:
		p.report(diag.SynInvalidAssignment, diag.SevError, p.tree.Span(id), "invalid increment/decrement operand")
	}
}

func (p *Parser) parseLeftHandSide() ast.NodeID {
	start := p.peek().Span
	var expr ast.NodeID
	if p.at(token.KwNew) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallTail(expr, start, true)
}

// parseCallTail consumes member accesses and, when calls is set, argument lists.
func (p *Parser) parseCallTail(expr ast.NodeID, start source.Span, calls bool) ast.NodeID {
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			name := p.peek()
			if !name.IsIdentName() {
				p.err(diag.SynExpectIdentifier, "expected property name after '.'")
				return expr
			}
			p.advance()
			expr = p.finish(p.tree.NewGetProp(expr, name.Text, start), start)
		case p.at(token.LBracket):
			p.advance()
			key := p.parseExpression(false)
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
			expr = p.finish(p.tree.New(ast.GetElem, start, expr, key), start)
		case calls && p.at(token.LParen):
			call := p.tree.New(ast.Call, start, expr)
			p.parseArguments(call)
			expr = p.finish(call, start)
		default:
			return expr
		}
	}
}

func (p *Parser) parseNew() ast.NodeID {
	start := p.advance().Span
	var callee ast.NodeID
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseCallTail(callee, p.tree.Span(callee), false)
	n := p.tree.New(ast.New, start, callee)
	if p.at(token.LParen) {
		p.parseArguments(n)
	}
	return p.finish(n, start)
}

func (p *Parser) parseArguments(call ast.NodeID) {
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			st := p.advance().Span
			p.tree.AddChildToBack(call, p.finish(p.tree.New(ast.Spread, st, p.parseAssign(false)), st))
		} else {
			p.tree.AddChildToBack(call, p.parseAssign(false))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments")
}

func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.KwThis:
		p.advance()
		return p.tree.New(ast.This, tok.Span)
	case token.KwSuper:
		p.advance()
		return p.tree.New(ast.Super, tok.Span)
	case token.KwNull:
		p.advance()
		return p.tree.New(ast.Null, tok.Span)
	case token.KwTrue:
		p.advance()
		return p.tree.New(ast.True, tok.Span)
	case token.KwFalse:
		p.advance()
		return p.tree.New(ast.False, tok.Span)
	case token.NumberLit:
		p.advance()
		return p.tree.NewNumber(tok.Text, tok.Span)
	case token.StringLit:
		p.advance()
		return p.tree.NewString(tok.Value, tok.Span)
	case token.Slash, token.SlashAssign:
		// '/' в позиции операнда: это регулярное выражение
		re := p.lx.RescanRegexp(tok)
		p.lastSpan = re.Span
		return p.tree.NewStr(ast.Regexp, re.Text, re.Span)
	case token.Ident:
		p.advance()
		name := p.tree.NewName(tok.Text, tok.Span)
		if p.at(token.Arrow) && !p.peek().NewlineBefore {
			return p.parseArrowBody(tok.Span, []ast.NodeID{name})
		}
		return name
	case token.LParen:
		return p.parseParenOrArrow()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		doc := docOf(tok)
		fn := p.parseFunction(false)
		p.attachDoc(fn, doc)
		return fn
	case token.KwClass:
		return p.parseClass(false)
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	if tok.Kind != token.EOF && tok.Kind != token.RBrace && tok.Kind != token.RParen && tok.Kind != token.Semicolon {
		p.advance()
	}
	return p.tree.NewName("", tok.Span)
}

// parseParenOrArrow parses `( expr )` or an arrow function's parameter list.
func (p *Parser) parseParenOrArrow() ast.NodeID {
	start := p.advance().Span
	if p.eat(token.RParen) {
		if !p.at(token.Arrow) {
			p.err(diag.SynUnexpectedToken, "expected '=>' after '()'")
		}
		return p.parseArrowBody(start, nil)
	}
	var items []ast.NodeID
	sawRest := false
	for {
		if p.at(token.Ellipsis) {
			st := p.advance().Span
			rest := p.tree.New(ast.Rest, st, p.parseBindingTarget())
			items = append(items, p.finish(rest, st))
			sawRest = true
			break
		}
		items = append(items, p.parseAssign(false))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if p.at(token.Arrow) && !p.peek().NewlineBefore {
		params := make([]ast.NodeID, len(items))
		for i, it := range items {
			params[i] = p.toPattern(it)
		}
		return p.parseArrowBody(start, params)
	}
	if sawRest {
		p.err(diag.SynUnexpectedToken, "rest element outside of arrow parameters")
	}
	expr := items[0]
	for _, it := range items[1:] {
		expr = p.tree.NewBinary(token.Comma, expr, it, start)
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	start := p.advance().Span
	arr := p.tree.New(ast.ArrayLit, start)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		switch {
		case p.at(token.Comma):
			p.tree.AddChildToBack(arr, p.tree.NewEmpty(p.peek().Span))
		case p.at(token.Ellipsis):
			st := p.advance().Span
			p.tree.AddChildToBack(arr, p.finish(p.tree.New(ast.Spread, st, p.parseAssign(false)), st))
		default:
			p.tree.AddChildToBack(arr, p.parseAssign(false))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	return p.finish(arr, start)
}
