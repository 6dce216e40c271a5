package parser

import (
	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return false // достигли максимального количества ошибок
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// resyncUntil прокручивает токены, пока не встретит один из stop-токенов или EOF.
// Сбалансированные {...} пропускаются целиком.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		if depth == 0 && p.atOr(stop...) {
			return
		}
		switch p.lx.Peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// resyncStatement — восстановление после ошибки внутри statement:
// прокручиваем до ';' (и съедаем его) или до закрывающей '}'.
func (p *Parser) resyncStatement() {
	start := p.lx.Peek().Span
	p.resyncUntil(token.Semicolon)
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	// ничего не съели и стоим на '}' верхнего уровня: иначе зациклимся
	if p.at(token.RBrace) && p.lx.Peek().Span == start {
		if p.isTopLevel() {
			p.advance()
		}
	}
}

func (p *Parser) isTopLevel() bool {
	return p.depth == 0
}

// skipBalanced съедает сбалансированную группу {...}; на входе стоим на '{'.
func (p *Parser) skipBalanced() {
	if !p.at(token.LBrace) {
		return
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}
