package parser

import (
	"strings"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec := p.getBinaryOperatorPrec(p.lx.Peek().Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		// все бинарные операторы здесь левоассоциативны
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after binary operator")
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		finalSpan := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	if op, ok := p.getUnaryOperator(tok.Kind); ok {
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		finalSpan := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(finalSpan, op, operand), true
	}
	return p.parsePowerExpr()
}

// parsePowerExpr: postfix ('**' unary)? — правоассоциативно, сильнее унарного минуса.
func (p *Parser) parsePowerExpr() (ast.ExprID, bool) {
	base, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.StarStar) {
		return base, true
	}
	p.advance()
	exp, ok := p.parseUnaryExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected exponent after '**'")
		return ast.NoExprID, false
	}
	finalSpan := p.arenas.Exprs.Get(base).Span.Cover(p.arenas.Exprs.Get(exp).Span)
	return p.arenas.Exprs.NewBinary(finalSpan, ast.ExprBinaryPow, base, exp), true
}

// parsePostfixExpr обрабатывает индексацию: a[0], a[0][1], a[0, 1]
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.LBracket) {
		expr, ok = p.parseIndexSuffix(expr)
		if !ok {
			return ast.NoExprID, false
		}
	}
	return expr, true
}

func (p *Parser) parseIndexSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '['
	for {
		index, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected index expression")
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(target).Span.Cover(p.lx.Peek().Span)
		target = p.arenas.Exprs.NewIndex(span, target, index)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after index")
	if !ok {
		return ast.NoExprID, false
	}
	p.arenas.Exprs.Get(target).Span = p.arenas.Exprs.Get(target).Span.Cover(closeTok.Span)
	return target, true
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCallArgs(tok)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text)), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitInt, p.arenas.Strings.Intern(stripDigitSeparators(tok.Text))), true

	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFloat, p.arenas.Strings.Intern(stripDigitSeparators(tok.Text))), true

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitString, p.arenas.Strings.Intern(strings.Trim(tok.Text, "\"'"))), true

	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitTrue, p.arenas.Strings.Intern("true")), true

	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFalse, p.arenas.Strings.Intern("false")), true

	case token.LParen:
		openTok := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close expression")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(openTok.Span.Cover(closeTok.Span), inner), true

	case token.LBrace:
		return p.parseArrayLiteral()

	case token.KwMeasure:
		measureTok := p.advance()
		operand, ok := p.parsePostfixExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected qubit operand after 'measure'")
			return ast.NoExprID, false
		}
		span := measureTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewMeasure(span, operand), true

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parseCallArgs разбирает `(a, b, ...)` после имени вызова.
func (p *Parser) parseCallArgs(nameTok token.Token) (ast.ExprID, bool) {
	args, closeSpan, ok := p.parseParenList()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(nameTok.Span.Cover(closeSpan), p.arenas.Strings.Intern(nameTok.Text), nameTok.Span, args), true
}

// parseParenList разбирает `( expr, expr, ... )`; пустой список допустим.
func (p *Parser) parseParenList() ([]ast.ExprID, source.Span, bool) {
	openTok, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return nil, openTok.Span, false
	}
	var items []ast.ExprID
	for !p.at(token.RParen) {
		item, ok := p.parseExpr()
		if !ok {
			return nil, p.lastSpan, false
		}
		items = append(items, item)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	if !ok {
		return nil, closeTok.Span, false
	}
	return items, closeTok.Span, true
}

// parseArrayLiteral разбирает `{a, b, {c, d}}`.
func (p *Parser) parseArrayLiteral() (ast.ExprID, bool) {
	openTok := p.advance() // '{'
	var elems []ast.ExprID
	for !p.at(token.RBrace) {
		elem, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close array literal")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(openTok.Span.Cover(closeTok.Span), elems), true
}

func stripDigitSeparators(text string) string {
	if !strings.Contains(text, "_") {
		return text
	}
	return strings.ReplaceAll(text, "_", "")
}
