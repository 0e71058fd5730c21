package parser

import (
	"slices"

	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/jsdoc"
	"cjsflat/internal/lexer"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree *ast.Tree
	Root ast.NodeID
	// Errors is the number of syntax errors reported.
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	tree     *ast.Tree
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// Parse разбирает один файл целиком и возвращает SCRIPT.
func Parse(file *source.File, opts Options) Result {
	p := Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		tree: ast.NewTree(file.ID, uint(len(file.Content)/4)),
		file: file,
		opts: opts,
	}
	p.lastSpan = source.Span{File: file.ID}
	root := p.parseScript()
	return Result{Tree: p.tree, Root: root, Errors: p.opts.CurrentErrors}
}

// ParseFile parses fileID, reporting into bag.
func ParseFile(fs *source.FileSet, fileID source.FileID, bag *diag.Bag) (*ast.Tree, ast.NodeID) {
	res := Parse(fs.Get(fileID), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Tree, res.Root
}

func (p *Parser) parseScript() ast.NodeID {
	start := p.lx.Peek().Span
	root := p.tree.New(ast.Script, start)
	for !p.at(token.EOF) {
		before := p.lx.Peek().Span.Start
		stmt := p.parseStatement()
		if stmt != ast.NoNode {
			p.tree.AddChildToBack(root, stmt)
		}
		if p.lx.Peek().Span.Start == before && !p.at(token.EOF) {
			p.advance() // защита от зацикливания на мусоре
		}
	}
	p.tree.Node(root).Span = start.Cover(p.lx.Peek().Span)
	return root
}

func (p *Parser) peek() token.Token { return p.lx.Peek() }

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) atContextual(word string) bool {
	return p.lx.Peek().IsContextual(word)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен; если нет: репортим.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// consumeSemicolon implements automatic semicolon insertion.
func (p *Parser) consumeSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	tok := p.peek()
	if tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore {
		return
	}
	p.err(diag.SynExpectSemicolon, "missing ';' before "+describe(tok))
}

func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter != nil && !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
}

// finish stretches the node span from start to the last consumed token.
func (p *Parser) finish(id ast.NodeID, start source.Span) ast.NodeID {
	p.tree.Node(id).Span = start.Cover(p.lastSpan)
	return id
}

// docOf parses the JSDoc comment attached to tok, if any.
func docOf(tok token.Token) *jsdoc.Info {
	if tr, ok := tok.DocComment(); ok {
		return jsdoc.Parse(tr.Text)
	}
	return nil
}

func (p *Parser) attachDoc(id ast.NodeID, doc *jsdoc.Info) {
	if doc != nil && p.tree.Doc(id) == nil {
		p.tree.SetDoc(id, doc)
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.NumberLit, token.StringLit:
		return "'" + tok.Text + "'"
	default:
		return "'" + tok.Kind.String() + "'"
	}
}
