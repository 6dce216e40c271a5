package lexer

import (
	"qasmc/internal/diag"
	"qasmc/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, .5, 1., 1e-3, 1.0e+10.
// Неверные формы — репорт в opts.Reporter, токен Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		return lx.finishNumber(start, kind)
	}

	if lx.cursor.Peek() == '0' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '0' {
			var digit func(byte) bool
			switch b1 {
			case 'b', 'B':
				digit = isBin
			case 'o', 'O':
				digit = isOct
			case 'x', 'X':
				digit = isHex
			}
			if digit != nil {
				lx.cursor.Bump()
				lx.cursor.Bump()
				if !lx.eatDigits(digit) {
					return lx.badNumber(start, "expected digits after base prefix")
				}
				return lx.emitNumber(start, token.IntLit)
			}
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
	}
	return lx.finishNumber(start, kind)
}

// finishNumber дочитывает экспоненту, если она есть.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !lx.eatDigits(isDec) {
			return lx.badNumber(start, "expected digit after exponent")
		}
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid suffix on numeric literal")
	}
	return lx.emitNumber(start, kind)
}

// eatDigits съедает цифры и разделители '_'; возвращает true, если была хотя бы одна цифра.
func (lx *Lexer) eatDigits(digit func(byte) bool) bool {
	seen := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			seen = true
		case b == '_' && seen:
		default:
			return seen
		}
		lx.cursor.Bump()
	}
	return seen
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
