package parser

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

func (p *Parser) parseObjectLiteral() ast.NodeID {
	start := p.advance().Span
	obj := p.tree.New(ast.ObjectLit, start)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mstart := p.peek().Span
		doc := docOf(p.peek())
		var member ast.NodeID
		switch {
		case p.at(token.Ellipsis):
			p.advance()
			member = p.finish(p.tree.New(ast.Spread, mstart, p.parseAssign(false)), mstart)
		case p.at(token.LBracket):
			member = p.parseComputedMember(mstart, true)
		case p.atAccessorPrefix():
			member = p.parseMethodLike(mstart, doc)
		default:
			keyTok, quoted, ok := p.parsePropertyName()
			if !ok {
				p.advance()
				continue
			}
			switch {
			case p.at(token.LParen):
				member = p.finishMethod(ast.MemberFunctionDef, keyTok, quoted, mstart, doc)
			case p.eat(token.Colon):
				value := p.parseAssign(false)
				member = p.tree.NewStringKey(propertyKey(keyTok), value, mstart)
				p.tree.SetFlag(member, ast.FlagQuoted, quoted)
			default:
				if keyTok.Kind != token.Ident {
					p.err(diag.SynUnexpectedToken, "expected ':' after property name")
				}
				value := p.tree.NewName(keyTok.Text, keyTok.Span)
				if p.eat(token.Assign) {
					// {a = 1} допустимо только как шаблон деструктуризации
					value = p.finish(p.tree.New(ast.DefaultValue, mstart, value, p.parseAssign(false)), mstart)
				}
				member = p.tree.NewStringKey(keyTok.Text, value, mstart)
				p.tree.SetFlag(member, ast.FlagShorthand, true)
			}
			p.finish(member, mstart)
		}
		p.attachDoc(member, doc)
		p.tree.AddChildToBack(obj, member)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after object literal")
	return p.finish(obj, start)
}

// atAccessorPrefix reports `get`/`set` used as an accessor keyword rather
// than as a property name. It needs the token after the word, so it
// relies on the word being followed by a property-name token.
func (p *Parser) atAccessorPrefix() bool {
	return p.atContextual("get") || p.atContextual("set")
}

// parseMethodLike parses get/set accessors, computed members and methods.
func (p *Parser) parseMethodLike(start source.Span, doc *jsdoc.Info) ast.NodeID {
	if p.at(token.LBracket) {
		return p.parseComputedMember(start, false)
	}
	keyTok, quoted, ok := p.parsePropertyName()
	if !ok {
		return ast.NoNode
	}
	if (keyTok.Text == "get" || keyTok.Text == "set") && keyTok.Kind == token.Ident && !quoted && p.startsPropertyName() {
		kind := ast.GetterDef
		if keyTok.Text == "set" {
			kind = ast.SetterDef
		}
		if p.at(token.LBracket) {
			p.err(diag.SynUnsupported, "computed accessors are not supported")
		}
		nameTok, q, _ := p.parsePropertyName()
		return p.finishMethod(kind, nameTok, q, start, doc)
	}
	switch {
	case p.at(token.LParen):
		return p.finishMethod(ast.MemberFunctionDef, keyTok, quoted, start, doc)
	case p.eat(token.Colon):
		value := p.parseAssign(false)
		member := p.tree.NewStringKey(propertyKey(keyTok), value, start)
		p.tree.SetFlag(member, ast.FlagQuoted, quoted)
		return p.finish(member, start)
	default:
		value := p.tree.NewName(keyTok.Text, keyTok.Span)
		member := p.tree.NewStringKey(keyTok.Text, value, start)
		p.tree.SetFlag(member, ast.FlagShorthand, true)
		return p.finish(member, start)
	}
}

func (p *Parser) startsPropertyName() bool {
	tok := p.peek()
	return tok.IsIdentName() || tok.Kind == token.StringLit || tok.Kind == token.NumberLit || tok.Kind == token.LBracket
}

// parseComputedMember parses `[key]: value` (literals only) or `[key]() {}`.
func (p *Parser) parseComputedMember(start source.Span, allowValue bool) ast.NodeID {
	p.advance()
	key := p.parseAssign(false)
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	if allowValue && p.eat(token.Colon) {
		value := p.parseAssign(false)
		return p.finish(p.tree.New(ast.ComputedProp, start, key, value), start)
	}
	fstart := p.peek().Span
	params := p.parseParams()
	body := p.parseFunctionBody()
	fn := p.finish(p.tree.New(ast.Function, fstart, p.tree.NewName("", fstart), params, body), fstart)
	prop := p.tree.New(ast.ComputedProp, start, key, fn)
	p.tree.SetFlag(prop, ast.FlagMethod, true)
	return p.finish(prop, start)
}

func (p *Parser) finishMethod(kind ast.Kind, keyTok token.Token, quoted bool, start source.Span, doc *jsdoc.Info) ast.NodeID {
	fstart := p.peek().Span
	params := p.parseParams()
	body := p.parseFunctionBody()
	fn := p.finish(p.tree.New(ast.Function, fstart, p.tree.NewName("", fstart), params, body), fstart)
	member := p.tree.NewStr(kind, propertyKey(keyTok), start, fn)
	p.tree.SetFlag(member, ast.FlagQuoted, quoted)
	p.attachDoc(member, doc)
	return p.finish(member, start)
}

// parsePropertyName reads an identifier, keyword, string or number key.
func (p *Parser) parsePropertyName() (token.Token, bool, bool) {
	tok := p.peek()
	switch {
	case tok.IsIdentName(), tok.Kind == token.NumberLit:
		p.advance()
		return tok, false, true
	case tok.Kind == token.StringLit:
		p.advance()
		return tok, true, true
	}
	p.err(diag.SynExpectIdentifier, "expected property name, got "+describe(tok))
	return tok, false, false
}

func propertyKey(tok token.Token) string {
	if tok.Kind == token.StringLit {
		return tok.Value
	}
	return tok.Text
}
