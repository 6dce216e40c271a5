package format

import (
	"bytes"
	"errors"
	"strings"

	"qasmc/internal/ast"
	"qasmc/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	builder *ast.Builder
	writer  *Writer
}

// FormatFile prints every statement of the file, one per line.
func FormatFile(b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}
	p := printer{builder: b, writer: NewWriter(opt)}
	for _, id := range file.Stmts {
		p.printStmt(id)
	}
	return p.writer.Bytes(), nil
}

// Stmt renders a single statement with nested bodies.
func Stmt(b *ast.Builder, id ast.StmtID) string {
	p := printer{builder: b, writer: NewWriter(Options{})}
	p.printStmt(id)
	return string(bytes.TrimRight(p.writer.Bytes(), "\n"))
}

// Snippet is the first line of a statement: the whole statement for simple
// ones, the header up to the opening brace for block statements.
func Snippet(b *ast.Builder, id ast.StmtID) string {
	s := Stmt(b, id)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Expr renders an expression as source text.
func Expr(b *ast.Builder, id ast.ExprID) string {
	p := printer{builder: b, writer: NewWriter(Options{})}
	p.printExpr(id)
	return string(p.writer.Bytes())
}

func (p *printer) string(id source.StringID) string {
	if id == source.NoStringID || p.builder.Strings == nil {
		return ""
	}
	s, _ := p.builder.Strings.Lookup(id)
	return s
}

func (p *printer) printList(ids []ast.ExprID) {
	for i, id := range ids {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(id)
	}
}
