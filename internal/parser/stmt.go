package parser

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/token"
)

func (p *Parser) parseStatement() ast.NodeID {
	tok := p.peek()
	doc := docOf(tok)
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return p.tree.NewEmpty(tok.Span)
	case token.KwVar, token.KwLet, token.KwConst:
		decl := p.parseDeclaration(false)
		p.consumeSemicolon()
		p.attachDoc(decl, doc)
		return p.finish(decl, tok.Span)
	case token.KwFunction:
		fn := p.parseFunction(true)
		p.attachDoc(fn, doc)
		return fn
	case token.KwClass:
		cls := p.parseClass(true)
		p.attachDoc(cls, doc)
		return cls
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		p.advance()
		cond := p.parseParenExpr()
		body := p.parseBody()
		return p.finish(p.tree.New(ast.While, tok.Span, cond, body), tok.Span)
	case token.KwDo:
		p.advance()
		body := p.parseBody()
		p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body")
		cond := p.parseParenExpr()
		p.eat(token.Semicolon)
		return p.finish(p.tree.New(ast.Do, tok.Span, body, cond), tok.Span)
	case token.KwReturn:
		p.advance()
		ret := p.tree.New(ast.Return, tok.Span)
		if !p.atStatementEnd() {
			p.tree.AddChildToBack(ret, p.parseExpression(false))
		}
		p.consumeSemicolon()
		return p.finish(ret, tok.Span)
	case token.KwThrow:
		p.advance()
		if p.peek().NewlineBefore {
			p.err(diag.SynExpectExpression, "illegal newline after throw")
		}
		expr := p.parseExpression(false)
		p.consumeSemicolon()
		return p.finish(p.tree.New(ast.Throw, tok.Span, expr), tok.Span)
	case token.KwBreak, token.KwContinue:
		p.advance()
		kind := ast.Break
		if tok.Kind == token.KwContinue {
			kind = ast.Continue
		}
		jump := p.tree.New(kind, tok.Span)
		if p.at(token.Ident) && !p.peek().NewlineBefore {
			label := p.advance()
			p.tree.AddChildToBack(jump, p.tree.NewStr(ast.LabelName, label.Text, label.Span))
		}
		p.consumeSemicolon()
		return p.finish(jump, tok.Span)
	case token.KwTry:
		return p.parseTry()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwDebugger:
		p.advance()
		p.consumeSemicolon()
		return p.finish(p.tree.New(ast.Debugger, tok.Span), tok.Span)
	}

	expr := p.parseExpression(false)
	if p.tree.Kind(expr) == ast.Name && p.tree.Span(expr) == tok.Span && p.at(token.Colon) {
		p.advance()
		body := p.parseStatement()
		return p.finish(p.tree.NewLabel(tok.Text, body, tok.Span), tok.Span)
	}
	p.consumeSemicolon()
	p.attachDoc(expr, doc)
	stmt := p.tree.New(ast.ExprResult, tok.Span, expr)
	return p.finish(stmt, tok.Span)
}

func (p *Parser) atStatementEnd() bool {
	tok := p.peek()
	return tok.Kind == token.Semicolon || tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore
}

func (p *Parser) parseBlock() ast.NodeID {
	open, _ := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	block := p.tree.New(ast.Block, open.Span)
	p.parseStatementsUntilBrace(block)
	return p.finish(block, open.Span)
}

func (p *Parser) parseStatementsUntilBrace(parent ast.NodeID) {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek().Span.Start
		if stmt := p.parseStatement(); stmt != ast.NoNode {
			p.tree.AddChildToBack(parent, stmt)
		}
		if p.peek().Span.Start == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
}

// parseBody parses a loop or branch body, wrapping single statements in a
// synthetic BLOCK.
func (p *Parser) parseBody() ast.NodeID {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	stmt := p.parseStatement()
	block := p.tree.NewBlock(p.tree.Span(stmt), stmt)
	p.tree.SetFlag(block, ast.FlagSynthetic, true)
	return block
}

func (p *Parser) parseParenExpr() ast.NodeID {
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	expr := p.parseExpression(false)
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	return expr
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.advance().Span
	cond := p.parseParenExpr()
	then := p.parseBody()
	n := p.tree.New(ast.If, start, cond, then)
	if p.eat(token.KwElse) {
		p.tree.AddChildToBack(n, p.parseBody())
	}
	return p.finish(n, start)
}

// parseDeclaration parses `var a = 1, {b} = c` without the semicolon.
func (p *Parser) parseDeclaration(noIn bool) ast.NodeID {
	tok := p.advance()
	kind := ast.Var
	switch tok.Kind {
	case token.KwLet:
		kind = ast.Let
	case token.KwConst:
		kind = ast.Const
	}
	decl := p.tree.New(kind, tok.Span)
	for {
		nameTok := p.peek()
		doc := docOf(nameTok)
		target := p.parseBindingTarget()
		var item ast.NodeID
		if p.tree.Kind(target) == ast.Name {
			item = target
			if p.eat(token.Assign) {
				p.tree.AddChildToBack(item, p.parseAssign(noIn))
			}
		} else {
			item = p.tree.New(ast.DestructuringLHS, nameTok.Span, target)
			if p.eat(token.Assign) {
				p.tree.AddChildToBack(item, p.parseAssign(noIn))
			}
			p.finish(item, nameTok.Span)
		}
		p.attachDoc(item, doc)
		p.tree.AddChildToBack(decl, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.finish(decl, tok.Span)
}

func (p *Parser) parseFor() ast.NodeID {
	start := p.advance().Span
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for")

	var init ast.NodeID
	switch {
	case p.at(token.Semicolon):
		init = p.tree.NewEmpty(p.peek().Span)
	case p.atOr(token.KwVar, token.KwLet, token.KwConst):
		init = p.parseDeclaration(true)
	default:
		init = p.parseExpression(true)
	}

	if p.at(token.KwIn) || p.atContextual("of") {
		kind := ast.ForIn
		if p.advance().Kind != token.KwIn {
			kind = ast.ForOf
		}
		if p.tree.Kind(init) == ast.ObjectLit || p.tree.Kind(init) == ast.ArrayLit {
			init = p.toPattern(init)
		}
		var obj ast.NodeID
		if kind == ast.ForOf {
			obj = p.parseAssign(false)
		} else {
			obj = p.parseExpression(false)
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		body := p.parseBody()
		return p.finish(p.tree.New(kind, start, init, obj, body), start)
	}

	p.expect(token.Semicolon, diag.SynBadForHeader, "expected ';' in for header")
	cond := p.tree.NewEmpty(p.peek().Span)
	if !p.at(token.Semicolon) {
		cond = p.parseExpression(false)
	}
	p.expect(token.Semicolon, diag.SynBadForHeader, "expected ';' in for header")
	update := p.tree.NewEmpty(p.peek().Span)
	if !p.at(token.RParen) {
		update = p.parseExpression(false)
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	body := p.parseBody()
	return p.finish(p.tree.New(ast.For, start, init, cond, update, body), start)
}

func (p *Parser) parseTry() ast.NodeID {
	start := p.advance().Span
	n := p.tree.New(ast.Try, start, p.parseBlock())
	if p.at(token.KwCatch) {
		cstart := p.advance().Span
		param := p.tree.NewEmpty(cstart)
		if p.eat(token.LParen) {
			param = p.parseBindingTarget()
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		}
		catch := p.tree.New(ast.Catch, cstart, param, p.parseBlock())
		p.tree.AddChildToBack(n, p.finish(catch, cstart))
	} else {
		p.tree.AddChildToBack(n, p.tree.NewEmpty(p.peek().Span))
	}
	if p.eat(token.KwFinally) {
		p.tree.AddChildToBack(n, p.parseBlock())
	} else if p.tree.Kind(p.tree.Second(n)) == ast.Empty {
		p.err(diag.SynUnexpectedToken, "expected 'catch' or 'finally'")
	}
	return p.finish(n, start)
}

func (p *Parser) parseSwitch() ast.NodeID {
	start := p.advance().Span
	disc := p.parseParenExpr()
	n := p.tree.New(ast.Switch, start, disc)
	p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch")
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		cstart := p.peek().Span
		var c ast.NodeID
		switch {
		case p.eat(token.KwCase):
			c = p.tree.New(ast.Case, cstart, p.parseExpression(false))
		case p.eat(token.KwDefault):
			c = p.tree.New(ast.DefaultCase, cstart)
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default'")
			p.advance()
			continue
		}
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'")
		body := p.tree.NewBlock(p.peek().Span)
		p.tree.SetFlag(body, ast.FlagSynthetic, true)
		for !p.atOr(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
			before := p.peek().Span.Start
			if stmt := p.parseStatement(); stmt != ast.NoNode {
				p.tree.AddChildToBack(body, stmt)
			}
			if p.peek().Span.Start == before {
				p.advance()
			}
		}
		p.tree.AddChildToBack(c, p.finish(body, p.tree.Span(body)))
		p.tree.AddChildToBack(n, p.finish(c, cstart))
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	return p.finish(n, start)
}
