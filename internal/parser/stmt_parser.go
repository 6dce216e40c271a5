package parser

import (
	"strings"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

// parseStmt выбирает по первому токену нужный распознаватель.
// Неподдерживаемые конструкции (if/for/while) репортятся и пропускаются:
// тогда возвращается (NoStmtID, true).
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwOpenQASM:
		return p.parseVersion()
	case token.KwInclude:
		return p.parseInclude()
	case token.KwQubit, token.KwQreg:
		return p.parseQubitDecl()
	case token.KwCreg:
		return p.parseCregDecl()
	case token.KwConst, token.KwInt, token.KwUint, token.KwFloat, token.KwBool, token.KwBit, token.KwAngle:
		return p.parseClassicalDecl()
	case token.KwArray:
		return p.parseArrayDecl()
	case token.KwMeasure:
		return p.parseMeasureStmt()
	case token.KwReset:
		return p.parseResetStmt()
	case token.KwBarrier:
		return p.parseBarrierStmt()
	case token.KwGate:
		return p.parseGateDef()
	case token.KwDef:
		return p.parseDef()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwIf, token.KwFor, token.KwWhile, token.KwBreak, token.KwContinue:
		return p.parseUnsupported()
	case token.Ident:
		return p.parseIdentStmt()
	default:
		p.err(diag.SynUnexpectedToken, "unexpected token \""+tok.Text+"\" at start of statement")
		return ast.NoStmtID, false
	}
}

// parseBody разбирает `{ stmt* }` тела case/gate/def.
func (p *Parser) parseBody() ([]ast.StmtID, source.Span, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, openTok.Span, false
	}
	p.depth++
	defer func() { p.depth-- }()

	var stmts []ast.StmtID
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		stmtID, ok := p.parseStmt()
		if !ok {
			// ошибка при парсинге statement — восстанавливаемся до следующего
			p.resyncStatement()
			continue
		}
		if stmtID.IsValid() {
			stmts = append(stmts, stmtID)
		}
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return nil, openTok.Span, false
	}
	return stmts, openTok.Span.Cover(closeTok.Span), true
}

// expectSemicolon закрывает простой statement и возвращает его итоговый span.
func (p *Parser) expectSemicolon(start source.Span) (source.Span, bool) {
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' at end of statement")
	if !ok {
		return start, false
	}
	return start.Cover(semi.Span), true
}

func (p *Parser) parseVersion() (ast.StmtID, bool) {
	kw := p.advance()
	tok := p.lx.Peek()
	if tok.Kind != token.IntLit && tok.Kind != token.FloatLit {
		p.err(diag.SynBadVersion, "expected version number after OPENQASM")
		return ast.NoStmtID, false
	}
	p.advance()
	if !strings.HasPrefix(tok.Text, "3") && !strings.HasPrefix(tok.Text, "2") {
		p.report(diag.SynBadVersion, diag.SevError, tok.Span, "unsupported OPENQASM version "+tok.Text)
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVersion(span, p.arenas.Strings.Intern(tok.Text)), true
}

func (p *Parser) parseInclude() (ast.StmtID, bool) {
	kw := p.advance()
	pathTok, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected quoted path after include")
	if !ok {
		return ast.NoStmtID, false
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	path := strings.Trim(pathTok.Text, "\"'")
	return p.arenas.Stmts.NewInclude(span, p.arenas.Strings.Intern(path)), true
}

func (p *Parser) parseMeasureStmt() (ast.StmtID, bool) {
	kw := p.advance()
	src, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	target := ast.NoExprID
	if p.at(token.Arrow) {
		p.advance()
		target, ok = p.parsePostfixExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewMeasure(span, src, target), true
}

func (p *Parser) parseResetStmt() (ast.StmtID, bool) {
	kw := p.advance()
	operand, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReset(span, operand), true
}

func (p *Parser) parseBarrierStmt() (ast.StmtID, bool) {
	kw := p.advance()
	var operands []ast.ExprID
	if !p.at(token.Semicolon) {
		var ok bool
		operands, ok = p.parseOperands()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBarrier(span, operands), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	span, ok := p.expectSemicolon(kw.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(span, value), true
}

// parseOperands разбирает список квантовых операндов `q, r[0], s[1]`.
func (p *Parser) parseOperands() ([]ast.ExprID, bool) {
	var operands []ast.ExprID
	for {
		if !p.at(token.Ident) {
			p.err(diag.SynExpectIdentifier, "expected qubit operand, got \""+p.lx.Peek().Text+"\"")
			return nil, false
		}
		operand, ok := p.parsePostfixExpr()
		if !ok {
			return nil, false
		}
		operands = append(operands, operand)
		if !p.at(token.Comma) {
			return operands, true
		}
		p.advance()
	}
}

// parseIdentStmt различает применение гейта, вызов подпрограммы и присваивание:
//
//	x q;            h q[0], q[1];      rx(0.5) q;
//	f(a, b);        c[0] = measure q;  i += 1;
func (p *Parser) parseIdentStmt() (ast.StmtID, bool) {
	nameTok := p.advance()
	name := p.arenas.Strings.Intern(nameTok.Text)

	switch {
	case p.at(token.LParen):
		params, closeSpan, ok := p.parseParenList()
		if !ok {
			return ast.NoStmtID, false
		}
		if p.at(token.Semicolon) {
			call := p.arenas.Exprs.NewCall(nameTok.Span.Cover(closeSpan), name, nameTok.Span, params)
			span, _ := p.expectSemicolon(nameTok.Span)
			return p.arenas.Stmts.NewExpr(span, call), true
		}
		operands, ok := p.parseOperands()
		if !ok {
			return ast.NoStmtID, false
		}
		span, ok := p.expectSemicolon(nameTok.Span)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewGateCall(span, name, nameTok.Span, params, operands), true

	case p.at(token.Ident):
		operands, ok := p.parseOperands()
		if !ok {
			return ast.NoStmtID, false
		}
		span, ok := p.expectSemicolon(nameTok.Span)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewGateCall(span, name, nameTok.Span, nil, operands), true

	default:
		target := p.arenas.Exprs.NewIdent(nameTok.Span, name)
		for p.at(token.LBracket) {
			var ok bool
			target, ok = p.parseIndexSuffix(target)
			if !ok {
				return ast.NoStmtID, false
			}
		}
		op, ok := assignOp(p.lx.Peek().Kind)
		if !ok {
			p.err(diag.SynUnexpectedToken, "expected assignment or gate operands after \""+nameTok.Text+"\"")
			return ast.NoStmtID, false
		}
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		span, ok := p.expectSemicolon(nameTok.Span)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(span, target, op, value), true
	}
}

// parseUnsupported репортит if/for/while/break/continue и пропускает конструкцию целиком.
func (p *Parser) parseUnsupported() (ast.StmtID, bool) {
	kw := p.advance()
	p.report(diag.SynUnsupported, diag.SevError, kw.Span, "'"+kw.Text+"' statements are not supported")
	for {
		p.resyncUntil(token.Semicolon, token.LBrace)
		switch {
		case p.at(token.Semicolon):
			p.advance()
			return ast.NoStmtID, true
		case p.at(token.LBrace):
			p.skipBalanced()
			if !p.at(token.KwElse) {
				return ast.NoStmtID, true
			}
			p.advance()
		default:
			return ast.NoStmtID, true
		}
	}
}
