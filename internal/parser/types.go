package parser

import (
	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

func scalarSpecKind(k token.Kind) (ast.TypeSpecKind, bool) {
	switch k {
	case token.KwInt:
		return ast.TypeSpecInt, true
	case token.KwUint:
		return ast.TypeSpecUint, true
	case token.KwFloat:
		return ast.TypeSpecFloat, true
	case token.KwBool:
		return ast.TypeSpecBool, true
	case token.KwBit:
		return ast.TypeSpecBit, true
	case token.KwAngle:
		return ast.TypeSpecAngle, true
	default:
		return ast.TypeSpecNone, false
	}
}

// parseScalarType разбирает `int`, `int[32]`, `bit[4]`, `bool` ...
// bool не принимает designator.
func (p *Parser) parseScalarType() (ast.TypeSpec, bool) {
	tok := p.lx.Peek()
	kind, ok := scalarSpecKind(tok.Kind)
	if !ok {
		p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
		return ast.TypeSpec{}, false
	}
	p.advance()
	spec := ast.TypeSpec{Kind: kind, Span: tok.Span}
	if p.at(token.LBracket) && kind != ast.TypeSpecBool {
		width, span, ok := p.parseDesignator()
		if !ok {
			return ast.TypeSpec{}, false
		}
		spec.Width = width
		spec.Span = spec.Span.Cover(span)
	}
	return spec, true
}

// parseDesignator разбирает `[expr]`.
func (p *Parser) parseDesignator() (ast.ExprID, source.Span, bool) {
	p.advance() // '['
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, p.lastSpan, false
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after designator")
	if !ok {
		return ast.NoExprID, closeTok.Span, false
	}
	return expr, closeTok.Span, true
}

// parseArrayType разбирает `array[T, d1, d2, ...]`.
func (p *Parser) parseArrayType() (ast.TypeSpec, bool) {
	arrayTok := p.advance() // array
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after 'array'"); !ok {
		return ast.TypeSpec{}, false
	}
	elem, ok := p.parseScalarType()
	if !ok {
		return ast.TypeSpec{}, false
	}
	spec := ast.TypeSpec{Kind: ast.TypeSpecArray, Elem: elem.Kind, ElemWidth: elem.Width}
	for p.at(token.Comma) {
		p.advance()
		dim, ok := p.parseExpr()
		if !ok {
			return ast.TypeSpec{}, false
		}
		spec.Dims = append(spec.Dims, dim)
	}
	if len(spec.Dims) == 0 {
		p.err(diag.SynExpectExpression, "array type requires at least one dimension")
		return ast.TypeSpec{}, false
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close array type")
	if !ok {
		return ast.TypeSpec{}, false
	}
	spec.Span = arrayTok.Span.Cover(closeTok.Span)
	return spec, true
}

// parseParamType разбирает тип параметра подпрограммы: скаляр, qubit[n] или array.
func (p *Parser) parseParamType() (ast.TypeSpec, bool) {
	switch p.lx.Peek().Kind {
	case token.KwQubit:
		tok := p.advance()
		spec := ast.TypeSpec{Kind: ast.TypeSpecQubit, Span: tok.Span}
		if p.at(token.LBracket) {
			width, span, ok := p.parseDesignator()
			if !ok {
				return ast.TypeSpec{}, false
			}
			spec.Width = width
			spec.Span = spec.Span.Cover(span)
		}
		return spec, true
	case token.KwArray:
		return p.parseArrayType()
	default:
		return p.parseScalarType()
	}
}
