package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cjsflat/internal/ast"
	"cjsflat/internal/source"
)

type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Op       string          `json:"op,omitempty"`
	Doc      string          `json:"doc,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево в виде
//
//	SCRIPT (span: 1:1-2:1)
//	└─ EXPR_RESULT (span: 1:1-1:19)
//	   └─ CALL (span: 1:1-1:18)
func FormatASTPretty(w io.Writer, tree *ast.Tree, root ast.NodeID, fs *source.FileSet) error {
	if tree == nil || root == ast.NoNode {
		return fmt.Errorf("no tree")
	}
	fmt.Fprintf(w, "%s (span: %s)\n", nodeLabel(tree, root), formatSpan(tree.Span(root), fs))
	formatChildrenPretty(w, tree, root, fs, "")
	return nil
}

func formatChildrenPretty(w io.Writer, tree *ast.Tree, id ast.NodeID, fs *source.FileSet, prefix string) {
	for c := tree.First(id); c != ast.NoNode; c = tree.Next(c) {
		branch, indent := "├─ ", "│  "
		if tree.Next(c) == ast.NoNode {
			branch, indent = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, nodeLabel(tree, c), formatSpan(tree.Span(c), fs))
		formatChildrenPretty(w, tree, c, fs, prefix+indent)
	}
}

func nodeLabel(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	label := n.Kind.String()
	switch n.Kind {
	case ast.String:
		label += fmt.Sprintf(" %q", n.Str)
	case ast.Assign, ast.Binary, ast.Unary, ast.Update:
		label += " " + n.Op.String()
	default:
		if n.Str != "" {
			label += " " + n.Str
		}
	}
	if n.Doc != nil {
		label += " " + n.Doc.String()
	}
	return label
}

func FormatASTJSON(w io.Writer, tree *ast.Tree, root ast.NodeID) error {
	if tree == nil || root == ast.NoNode {
		return fmt.Errorf("no tree")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodeJSON(tree, root))
}

func nodeJSON(tree *ast.Tree, id ast.NodeID) ASTNodeOutput {
	n := tree.Node(id)
	out := ASTNodeOutput{
		Kind: n.Kind.String(),
		Span: n.Span,
		Text: n.Str,
	}
	switch n.Kind {
	case ast.Assign, ast.Binary, ast.Unary, ast.Update:
		out.Op = n.Op.String()
	}
	if n.Doc != nil {
		out.Doc = n.Doc.String()
	}
	for c := tree.First(id); c != ast.NoNode; c = tree.Next(c) {
		out.Children = append(out.Children, nodeJSON(tree, c))
	}
	return out
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
