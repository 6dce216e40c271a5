package format

import (
	"strconv"

	"qasmc/internal/ast"
)

func (p *printer) printStmt(id ast.StmtID) {
	stmt := p.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	w := p.writer
	stmts := p.builder.Stmts

	switch stmt.Kind {
	case ast.StmtVersion:
		if data, ok := stmts.Version(id); ok {
			w.WriteString("OPENQASM " + p.string(data.Version) + ";")
		}
	case ast.StmtInclude:
		if data, ok := stmts.Include(id); ok {
			w.WriteString("include " + strconv.Quote(p.string(data.Path)) + ";")
		}
	case ast.StmtQubitDecl:
		if data, ok := stmts.QubitDecl(id); ok {
			p.printQubitDecl(data)
		}
	case ast.StmtClassicalDecl:
		if data, ok := stmts.ClassicalDecl(id); ok {
			p.printClassicalDecl(data)
		}
	case ast.StmtAssign:
		if data, ok := stmts.Assign(id); ok {
			p.printExpr(data.Target)
			w.WriteString(" " + data.Op.String() + " ")
			p.printExpr(data.Value)
			w.WriteString(";")
		}
	case ast.StmtMeasure:
		if data, ok := stmts.Measure(id); ok {
			w.WriteString("measure ")
			p.printExpr(data.Source)
			if data.Target.IsValid() {
				w.WriteString(" -> ")
				p.printExpr(data.Target)
			}
			w.WriteString(";")
		}
	case ast.StmtGateCall:
		if data, ok := stmts.GateCall(id); ok {
			w.WriteString(p.string(data.Name))
			if len(data.Params) > 0 {
				_ = w.WriteByte('(')
				p.printList(data.Params)
				_ = w.WriteByte(')')
			}
			w.Space()
			p.printList(data.Operands)
			w.WriteString(";")
		}
	case ast.StmtReset:
		if data, ok := stmts.Reset(id); ok {
			w.WriteString("reset ")
			p.printExpr(data.Operand)
			w.WriteString(";")
		}
	case ast.StmtBarrier:
		if data, ok := stmts.Barrier(id); ok {
			w.WriteString("barrier")
			if len(data.Operands) > 0 {
				w.Space()
				p.printList(data.Operands)
			}
			w.WriteString(";")
		}
	case ast.StmtGateDef:
		if data, ok := stmts.GateDef(id); ok {
			p.printGateDef(data)
		}
	case ast.StmtDef:
		if data, ok := stmts.Def(id); ok {
			p.printDef(data)
		}
	case ast.StmtReturn:
		if data, ok := stmts.Return(id); ok {
			w.WriteString("return")
			if data.Value.IsValid() {
				w.Space()
				p.printExpr(data.Value)
			}
			w.WriteString(";")
		}
	case ast.StmtExpr:
		if data, ok := stmts.Expr(id); ok {
			p.printExpr(data.Expr)
			w.WriteString(";")
		}
	case ast.StmtSwitch:
		if data, ok := stmts.Switch(id); ok {
			p.printSwitch(data)
		}
	}
	w.Newline()
}

func (p *printer) printQubitDecl(data *ast.QubitDeclStmt) {
	w := p.writer
	if data.Legacy {
		w.WriteString("qreg " + p.string(data.Name))
		if data.Size.IsValid() {
			_ = w.WriteByte('[')
			p.printExpr(data.Size)
			_ = w.WriteByte(']')
		}
		w.WriteString(";")
		return
	}
	w.WriteString("qubit")
	if data.Size.IsValid() {
		_ = w.WriteByte('[')
		p.printExpr(data.Size)
		_ = w.WriteByte(']')
	}
	w.WriteString(" " + p.string(data.Name) + ";")
}

func (p *printer) printClassicalDecl(data *ast.ClassicalDeclStmt) {
	w := p.writer
	if data.Legacy {
		w.WriteString("creg " + p.string(data.Name))
		if data.Type.Width.IsValid() {
			_ = w.WriteByte('[')
			p.printExpr(data.Type.Width)
			_ = w.WriteByte(']')
		}
		w.WriteString(";")
		return
	}
	if data.Const {
		w.WriteString("const ")
	}
	p.printTypeSpec(data.Type)
	w.WriteString(" " + p.string(data.Name))
	if data.Init.IsValid() {
		w.WriteString(" = ")
		p.printExpr(data.Init)
	}
	w.WriteString(";")
}

func (p *printer) printBody(body []ast.StmtID) {
	w := p.writer
	w.WriteString("{")
	w.Newline()
	w.Indent()
	for _, id := range body {
		p.printStmt(id)
	}
	w.Dedent()
	w.WriteString("}")
}

func (p *printer) printGateDef(data *ast.GateDefStmt) {
	w := p.writer
	w.WriteString("gate " + p.string(data.Name))
	if len(data.Params) > 0 {
		_ = w.WriteByte('(')
		for i, param := range data.Params {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(p.string(param))
		}
		_ = w.WriteByte(')')
	}
	for i, q := range data.Qubits {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		w.WriteString(" " + p.string(q))
	}
	w.Space()
	p.printBody(data.Body)
}

func (p *printer) printDef(data *ast.DefStmt) {
	w := p.writer
	w.WriteString("def " + p.string(data.Name) + "(")
	for i, param := range data.Params {
		if i > 0 {
			w.WriteString(", ")
		}
		p.printTypeSpec(param.Type)
		w.WriteString(" " + p.string(param.Name))
	}
	w.WriteString(")")
	if data.Return.Kind != ast.TypeSpecNone {
		w.WriteString(" -> ")
		p.printTypeSpec(data.Return)
	}
	w.Space()
	p.printBody(data.Body)
}

func (p *printer) printSwitch(data *ast.SwitchStmt) {
	w := p.writer
	w.WriteString("switch (")
	p.printExpr(data.Target)
	w.WriteString(") {")
	w.Newline()
	w.Indent()
	for _, c := range data.Cases {
		w.WriteString("case ")
		p.printList(c.Labels)
		w.Space()
		p.printBody(c.Body)
		w.Newline()
	}
	if data.HasDefault {
		w.WriteString("default ")
		p.printBody(data.Default)
		w.Newline()
	}
	w.Dedent()
	w.WriteString("}")
}
