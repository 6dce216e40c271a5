package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"qasmc/internal/ast"
	"qasmc/internal/format"
	"qasmc/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	kind     string
	text     string
	span     source.Span
	children []*treeNode
}

// FormatASTPretty prints the statement tree of a file, one node per line.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileTree(builder, fileID)
	if err != nil {
		return err
	}
	header := "File"
	if fs != nil {
		if f := fs.Get(root.span.File); f != nil {
			header = f.FormatPath("auto", "")
		}
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(root.span, fs))
	writeChildren(w, root.children, "", fs)
	return nil
}

func writeChildren(w io.Writer, nodes []*treeNode, prefix string, fs *source.FileSet) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		label := n.kind
		if n.text != "" {
			label += ": " + n.text
		}
		if !n.span.Empty() {
			label += " (span: " + formatSpan(n.span, fs) + ")"
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label)
		writeChildren(w, n.children, prefix+next, fs)
	}
}

// FormatASTJSON writes the same tree as JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := buildFileTree(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toOutput(root))
}

func toOutput(n *treeNode) ASTNodeOutput {
	out := ASTNodeOutput{Type: n.kind, Text: n.text, Span: n.span}
	for _, c := range n.children {
		out.Children = append(out.Children, toOutput(c))
	}
	return out
}

func buildFileTree(builder *ast.Builder, fileID ast.FileID) (*treeNode, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("file %d not found", fileID)
	}
	root := &treeNode{kind: "File", span: file.Span}
	root.children = stmtNodes(builder, file.Stmts)
	return root, nil
}

func stmtNodes(b *ast.Builder, ids []ast.StmtID) []*treeNode {
	nodes := make([]*treeNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, stmtNode(b, id))
	}
	return nodes
}

// stmtNode labels simple statements with their source text; block
// statements get their header and one child per body.
func stmtNode(b *ast.Builder, id ast.StmtID) *treeNode {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return &treeNode{kind: "<nil>"}
	}
	n := &treeNode{kind: stmt.Kind.String(), span: stmt.Span}
	header := strings.TrimSuffix(format.Snippet(b, id), " {")
	switch stmt.Kind {
	case ast.StmtGateDef:
		data, _ := b.Stmts.GateDef(id)
		n.text = header
		n.children = stmtNodes(b, data.Body)
	case ast.StmtDef:
		data, _ := b.Stmts.Def(id)
		n.text = header
		n.children = stmtNodes(b, data.Body)
	case ast.StmtSwitch:
		data, _ := b.Stmts.Switch(id)
		n.text = format.Expr(b, data.Target)
		for _, c := range data.Cases {
			labels := make([]string, len(c.Labels))
			for i, l := range c.Labels {
				labels[i] = format.Expr(b, l)
			}
			n.children = append(n.children, &treeNode{
				kind:     "Case",
				text:     strings.Join(labels, ", "),
				span:     c.Span,
				children: stmtNodes(b, c.Body),
			})
		}
		if data.HasDefault {
			n.children = append(n.children, &treeNode{
				kind:     "Default",
				span:     data.DefaultSpan,
				children: stmtNodes(b, data.Default),
			})
		}
	default:
		n.text = header
	}
	return n
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.ZeroCol(), end.Line, end.ZeroCol())
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
