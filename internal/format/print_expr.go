package format

import (
	"strconv"

	"qasmc/internal/ast"
)

func (p *printer) printExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := p.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	w := p.writer
	exprs := p.builder.Exprs

	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := exprs.Ident(id); ok {
			w.WriteString(p.string(data.Name))
		}
	case ast.ExprLit:
		if data, ok := exprs.Literal(id); ok {
			if data.Kind == ast.ExprLitString {
				w.WriteString(strconv.Quote(p.string(data.Value)))
				return
			}
			w.WriteString(p.string(data.Value))
		}
	case ast.ExprBinary:
		if data, ok := exprs.Binary(id); ok {
			p.printExpr(data.Left)
			w.WriteString(" " + data.Op.String() + " ")
			p.printExpr(data.Right)
		}
	case ast.ExprUnary:
		if data, ok := exprs.Unary(id); ok {
			w.WriteString(data.Op.String())
			p.printExpr(data.Operand)
		}
	case ast.ExprGroup:
		if data, ok := exprs.Group(id); ok {
			_ = w.WriteByte('(')
			p.printExpr(data.Inner)
			_ = w.WriteByte(')')
		}
	case ast.ExprIndex:
		if data, ok := exprs.Index(id); ok {
			p.printExpr(data.Target)
			_ = w.WriteByte('[')
			p.printExpr(data.Index)
			_ = w.WriteByte(']')
		}
	case ast.ExprCall:
		if data, ok := exprs.Call(id); ok {
			w.WriteString(p.string(data.Name))
			_ = w.WriteByte('(')
			p.printList(data.Args)
			_ = w.WriteByte(')')
		}
	case ast.ExprArray:
		if data, ok := exprs.Array(id); ok {
			_ = w.WriteByte('{')
			p.printList(data.Elems)
			_ = w.WriteByte('}')
		}
	case ast.ExprMeasure:
		if data, ok := exprs.Measure(id); ok {
			w.WriteString("measure ")
			p.printExpr(data.Operand)
		}
	}
}
