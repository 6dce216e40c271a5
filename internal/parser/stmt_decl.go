package parser

import (
	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

// parseQubitDecl: `qubit q;`, `qubit[4] q;`, `qreg q[4];`
func (p *Parser) parseQubitDecl() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.QubitDeclStmt{Legacy: kw.Kind == token.KwQreg}

	if !data.Legacy && p.at(token.LBracket) {
		size, _, ok := p.parseDesignator()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Size = size
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name, data.NameSpan = name, nameSpan
	if data.Legacy && p.at(token.LBracket) {
		size, _, ok := p.parseDesignator()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Size = size
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewQubitDecl(span, data), true
}

// parseCregDecl: `creg c[2];` — синоним `bit[2] c;`
func (p *Parser) parseCregDecl() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.ClassicalDeclStmt{
		Type:   ast.TypeSpec{Kind: ast.TypeSpecBit, Span: kw.Span},
		Legacy: true,
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name, data.NameSpan = name, nameSpan
	if p.at(token.LBracket) {
		size, _, ok := p.parseDesignator()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Type.Width = size
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewClassicalDecl(span, data), true
}

// parseClassicalDecl: `[const] T name [= expr];`
func (p *Parser) parseClassicalDecl() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	isConst := false
	if p.at(token.KwConst) {
		p.advance()
		isConst = true
	}
	var (
		spec ast.TypeSpec
		ok   bool
	)
	if p.at(token.KwArray) {
		spec, ok = p.parseArrayType()
	} else {
		spec, ok = p.parseScalarType()
	}
	if !ok {
		return ast.NoStmtID, false
	}
	return p.finishDecl(start, spec, isConst)
}

// parseArrayDecl: `array[int[32], 3, 2] a [= {...}];`
func (p *Parser) parseArrayDecl() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	spec, ok := p.parseArrayType()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.finishDecl(start, spec, false)
}

func (p *Parser) finishDecl(start source.Span, spec ast.TypeSpec, isConst bool) (ast.StmtID, bool) {
	data := ast.ClassicalDeclStmt{Type: spec, Const: isConst}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name, data.NameSpan = name, nameSpan

	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Init = init
	} else if isConst {
		p.err(diag.SynExpectExpression, "const declaration requires an initializer")
		return ast.NoStmtID, false
	}
	span, ok := p.expectSemicolon(start)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewClassicalDecl(span, data), true
}
