package parser

import (
	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/token"
)

// parseGateDef: `gate name[(θ, φ)] a, b { body }`
func (p *Parser) parseGateDef() (ast.StmtID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.GateDefStmt{Name: name, NameSpan: nameSpan}

	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			param, _, ok := p.parseIdent()
			if !ok {
				return ast.NoStmtID, false
			}
			data.Params = append(data.Params, param)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after gate parameters"); !ok {
			return ast.NoStmtID, false
		}
	}

	for p.at(token.Ident) {
		q, _, _ := p.parseIdent()
		data.Qubits = append(data.Qubits, q)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if len(data.Qubits) == 0 {
		p.err(diag.SynExpectIdentifier, "gate definition requires at least one qubit argument")
		return ast.NoStmtID, false
	}

	body, bodySpan, ok := p.parseBody()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Body = body
	return p.arenas.Stmts.NewGateDef(kw.Span.Cover(bodySpan), data), true
}

// parseDef: `def name(T a, qubit q) [-> T] { body }`
func (p *Parser) parseDef() (ast.StmtID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.DefStmt{Name: name, NameSpan: nameSpan}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after subroutine name"); !ok {
		return ast.NoStmtID, false
	}
	for !p.at(token.RParen) {
		param, ok := p.parseDefParam()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Params = append(data.Params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseScalarType()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Return = ret
	}

	body, bodySpan, ok := p.parseBody()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Body = body
	return p.arenas.Stmts.NewDef(kw.Span.Cover(bodySpan), data), true
}

func (p *Parser) parseDefParam() (ast.DefParam, bool) {
	start := p.lx.Peek().Span
	spec, ok := p.parseParamType()
	if !ok {
		return ast.DefParam{}, false
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.DefParam{}, false
	}
	return ast.DefParam{Name: name, Type: spec, Span: start.Cover(nameSpan)}, true
}

// parseSwitchStmt: `switch (expr) { case a, b { ... } default { ... } }`
func (p *Parser) parseSwitchStmt() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.SwitchStmt{Keyword: kw.Span}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'switch'"); !ok {
		return ast.NoStmtID, false
	}
	target, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Target = target
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after switch target"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open switch body"); !ok {
		return ast.NoStmtID, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch tok := p.lx.Peek(); tok.Kind {
		case token.KwCase:
			clause, ok := p.parseCaseClause()
			if !ok {
				return ast.NoStmtID, false
			}
			data.Cases = append(data.Cases, clause)
		case token.KwDefault:
			p.advance()
			body, bodySpan, ok := p.parseBody()
			if !ok {
				return ast.NoStmtID, false
			}
			if data.HasDefault {
				p.report(diag.SynDuplicateDefault, diag.SevError, tok.Span, "multiple default clauses in switch statement")
				continue
			}
			data.HasDefault = true
			data.Default = body
			data.DefaultSpan = tok.Span.Cover(bodySpan)
		default:
			p.err(diag.SynExpectCase, "expected 'case' or 'default' in switch body, got \""+tok.Text+"\"")
			return ast.NoStmtID, false
		}
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(kw.Span.Cover(closeTok.Span), data), true
}

func (p *Parser) parseCaseClause() (ast.SwitchCase, bool) {
	kw := p.advance()
	var labels []ast.ExprID
	for {
		label, ok := p.parseExpr()
		if !ok {
			return ast.SwitchCase{}, false
		}
		labels = append(labels, label)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	body, bodySpan, ok := p.parseBody()
	if !ok {
		return ast.SwitchCase{}, false
	}
	return ast.SwitchCase{Labels: labels, Body: body, Span: kw.Span.Cover(bodySpan)}, true
}
