package parser

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

// parseFunction parses `function name?(params) { body }`.
func (p *Parser) parseFunction(decl bool) ast.NodeID {
	start := p.advance().Span
	if p.at(token.Star) {
		p.err(diag.SynUnsupported, "generators are not supported")
		p.advance()
	}
	nameNode := p.tree.NewName("", p.peek().Span)
	if p.at(token.Ident) {
		tok := p.advance()
		p.tree.SetStr(nameNode, tok.Text)
		p.tree.Node(nameNode).Span = tok.Span
	} else if decl {
		p.err(diag.SynExpectIdentifier, "function statement requires a name")
	}
	params := p.parseParams()
	body := p.parseFunctionBody()
	fn := p.tree.New(ast.Function, start, nameNode, params, body)
	return p.finish(fn, start)
}

func (p *Parser) parseFunctionBody() ast.NodeID {
	return p.parseBlock()
}

// parseParams parses a parenthesised parameter list into PARAM_LIST.
func (p *Parser) parseParams() ast.NodeID {
	open, _ := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters")
	list := p.tree.New(ast.ParamList, open.Span)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		doc := docOf(p.peek())
		var param ast.NodeID
		if p.at(token.Ellipsis) {
			st := p.advance().Span
			param = p.finish(p.tree.New(ast.Rest, st, p.parseBindingTarget()), st)
		} else {
			param = p.parseBindingElement()
		}
		p.attachDoc(param, doc)
		p.tree.AddChildToBack(list, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters")
	return p.finish(list, open.Span)
}

func (p *Parser) parseArrowBody(start source.Span, params []ast.NodeID) ast.NodeID {
	p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>'")
	list := p.tree.New(ast.ParamList, start, params...)
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseFunctionBody()
	} else {
		body = p.parseAssign(false)
	}
	fn := p.tree.New(ast.Function, start, p.tree.NewName("", start), list, body)
	p.tree.SetFlag(fn, ast.FlagArrow, true)
	return p.finish(fn, start)
}

// parseBindingTarget parses a NAME or a destructuring pattern.
func (p *Parser) parseBindingTarget() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.tree.NewName(tok.Text, tok.Span)
	case token.LBrace:
		return p.parseObjectPattern()
	case token.LBracket:
		return p.parseArrayPattern()
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(tok))
	return p.tree.NewName("", tok.Span)
}

// parseBindingElement is a target with an optional `= default`.
func (p *Parser) parseBindingElement() ast.NodeID {
	start := p.peek().Span
	target := p.parseBindingTarget()
	if p.eat(token.Assign) {
		def := p.tree.New(ast.DefaultValue, start, target, p.parseAssign(false))
		return p.finish(def, start)
	}
	return target
}

func (p *Parser) parseObjectPattern() ast.NodeID {
	start := p.advance().Span
	pat := p.tree.New(ast.ObjectPattern, start)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mstart := p.peek().Span
		switch {
		case p.at(token.Ellipsis):
			p.advance()
			p.tree.AddChildToBack(pat, p.finish(p.tree.New(ast.Rest, mstart, p.parseBindingTarget()), mstart))
		case p.at(token.LBracket):
			p.advance()
			key := p.parseAssign(false)
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'")
			prop := p.tree.New(ast.ComputedProp, mstart, key, p.parseBindingElement())
			p.tree.AddChildToBack(pat, p.finish(prop, mstart))
		default:
			keyTok, quoted, ok := p.parsePropertyName()
			if !ok {
				break
			}
			var target ast.NodeID
			shorthand := false
			if p.eat(token.Colon) {
				target = p.parseBindingElement()
			} else {
				if keyTok.Kind != token.Ident {
					p.err(diag.SynExpectIdentifier, "shorthand property must be an identifier")
				}
				shorthand = true
				target = p.tree.NewName(keyTok.Text, keyTok.Span)
				if p.eat(token.Assign) {
					target = p.finish(p.tree.New(ast.DefaultValue, mstart, target, p.parseAssign(false)), mstart)
				}
			}
			key := p.tree.NewStr(ast.StringKey, propertyKey(keyTok), mstart, target)
			p.tree.SetFlag(key, ast.FlagQuoted, quoted)
			p.tree.SetFlag(key, ast.FlagShorthand, shorthand)
			p.tree.AddChildToBack(pat, p.finish(key, mstart))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after object pattern")
	return p.finish(pat, start)
}

func (p *Parser) parseArrayPattern() ast.NodeID {
	start := p.advance().Span
	pat := p.tree.New(ast.ArrayPattern, start)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		switch {
		case p.at(token.Comma):
			p.tree.AddChildToBack(pat, p.tree.NewEmpty(p.peek().Span))
		case p.at(token.Ellipsis):
			st := p.advance().Span
			p.tree.AddChildToBack(pat, p.finish(p.tree.New(ast.Rest, st, p.parseBindingTarget()), st))
		default:
			p.tree.AddChildToBack(pat, p.parseBindingElement())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after array pattern")
	return p.finish(pat, start)
}

// toPattern reinterprets an expression parsed before `=` or `=>` as a
// binding or assignment pattern.
func (p *Parser) toPattern(id ast.NodeID) ast.NodeID {
	t := p.tree
	switch t.Kind(id) {
	case ast.Name, ast.GetProp, ast.GetElem, ast.Empty, ast.Rest, ast.DefaultValue:
		return id
	case ast.Assign:
		if t.Op(id) != token.Assign {
			break
		}
		target, value := t.First(id), t.Second(id)
		t.Detach(target)
		t.Detach(value)
		def := t.New(ast.DefaultValue, t.Span(id), p.toPattern(target), value)
		return def
	case ast.Spread:
		inner := t.Detach(t.First(id))
		return t.New(ast.Rest, t.Span(id), p.toPattern(inner))
	case ast.ArrayLit:
		pat := t.New(ast.ArrayPattern, t.Span(id))
		for _, c := range t.RemoveChildren(id) {
			t.AddChildToBack(pat, p.toPattern(c))
		}
		return pat
	case ast.ObjectLit:
		pat := t.New(ast.ObjectPattern, t.Span(id))
		for _, m := range t.RemoveChildren(id) {
			switch t.Kind(m) {
			case ast.StringKey:
				v := t.Detach(t.First(m))
				t.AddChildToBack(m, p.toPattern(v))
				t.AddChildToBack(pat, m)
			case ast.ComputedProp:
				v := t.Detach(t.Second(m))
				t.AddChildToBack(m, p.toPattern(v))
				t.AddChildToBack(pat, m)
			case ast.Spread:
				t.AddChildToBack(pat, p.toPattern(m))
			default:
				p.report(diag.SynInvalidAssignment, diag.SevError, t.Span(m), "invalid destructuring target")
			}
		}
		return pat
	}
	p.report(diag.SynInvalidAssignment, diag.SevError, t.Span(id), "invalid destructuring target")
	return id
}

// parseClass parses `class Name? (extends Expr)? { members }`.
func (p *Parser) parseClass(decl bool) ast.NodeID {
	start := p.advance().Span
	name := p.tree.NewEmpty(p.peek().Span)
	if p.at(token.Ident) {
		tok := p.advance()
		name = p.tree.NewName(tok.Text, tok.Span)
	} else if decl {
		p.err(diag.SynExpectIdentifier, "class statement requires a name")
	}
	super := p.tree.NewEmpty(p.peek().Span)
	if p.eat(token.KwExtends) {
		sstart := p.peek().Span
		super = p.parseCallTail(p.parseLeftHandSideNoCall(), sstart, true)
	}
	members := p.tree.New(ast.ClassMembers, p.peek().Span)
	p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body")
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		mstart := p.peek().Span
		doc := docOf(p.peek())
		static := false
		if p.atContextual("static") {
			tok := p.advance()
			if p.at(token.LParen) {
				p.tree.AddChildToBack(members, p.finishMethod(ast.MemberFunctionDef, tok, false, mstart, doc))
				continue
			}
			static = true
		}
		member := p.parseMethodLike(mstart, doc)
		if member == ast.NoNode {
			p.err(diag.SynUnexpectedToken, "expected class member")
			p.advance()
			continue
		}
		p.tree.SetFlag(member, ast.FlagStatic, static)
		p.tree.AddChildToBack(members, member)
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after class body")
	p.finish(members, p.tree.Span(members))
	cls := p.tree.New(ast.Class, start, name, super, members)
	return p.finish(cls, start)
}

func (p *Parser) parseLeftHandSideNoCall() ast.NodeID {
	if p.at(token.KwNew) {
		return p.parseNew()
	}
	return p.parsePrimary()
}
