package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cjsflat/internal/lexer"
	"cjsflat/internal/parser"
	"cjsflat/internal/source"
	"cjsflat/internal/token"
)

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("require(\"./b\");\n"))
	res := parser.Parse(fs.Get(id), parser.Options{})

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Tree, res.Root, fs); err != nil {
		t.Fatal(err)
	}
	want := "SCRIPT (span: 1:1-2:1)\n" +
		"└─ EXPR_RESULT (span: 1:1-1:16)\n" +
		"   └─ CALL (span: 1:1-1:15)\n" +
		"      ├─ NAME require (span: 1:1-1:8)\n" +
		"      └─ STRING \"./b\" (span: 1:9-1:14)\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("x = 1;"))
	res := parser.Parse(fs.Get(id), parser.Options{})

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.Tree, res.Root); err != nil {
		t.Fatal(err)
	}
	var out ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Kind != "SCRIPT" || len(out.Children) != 1 {
		t.Fatalf("unexpected root: %+v", out)
	}
	assign := out.Children[0].Children[0]
	if assign.Kind != "ASSIGN" || assign.Op != "=" || len(assign.Children) != 2 {
		t.Fatalf("unexpected assignment: %+v", assign)
	}
	if assign.Children[0].Text != "x" || assign.Children[1].Text != "1" {
		t.Fatalf("unexpected operands: %+v", assign.Children)
	}
}

func TestFormatASTNoTree(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, nil, 0); err == nil {
		t.Fatal("expected error for missing tree")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("// c\nvar x;"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 tokens, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], "(leading: LineComment)") || !strings.Contains(lines[0], "at 2:1-2:4") {
		t.Errorf("unexpected first token line: %q", lines[0])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out[1].Kind != "Ident" || out[1].Text != "x" || out[3].Kind != "EOF" {
		t.Errorf("unexpected tokens: %+v", out)
	}
}
