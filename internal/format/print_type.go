package format

import (
	"qasmc/internal/ast"
)

// TypeSpec renders a declared type as written in source.
func TypeSpec(b *ast.Builder, ts ast.TypeSpec) string {
	p := printer{builder: b, writer: NewWriter(Options{})}
	p.printTypeSpec(ts)
	return string(p.writer.Bytes())
}

func (p *printer) printTypeSpec(ts ast.TypeSpec) {
	w := p.writer
	if ts.Kind == ast.TypeSpecArray {
		w.WriteString("array[")
		p.printScalar(ts.Elem, ts.ElemWidth)
		for _, d := range ts.Dims {
			w.WriteString(", ")
			p.printExpr(d)
		}
		_ = w.WriteByte(']')
		return
	}
	p.printScalar(ts.Kind, ts.Width)
}

func (p *printer) printScalar(kind ast.TypeSpecKind, width ast.ExprID) {
	p.writer.WriteString(kind.String())
	if width.IsValid() {
		_ = p.writer.WriteByte('[')
		p.printExpr(width)
		_ = p.writer.WriteByte(']')
	}
}
