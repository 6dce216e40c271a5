package lexer

import (
	"qasmc/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии.
// OpenQASM не сохраняет trivia: форматирование вывода строится по AST.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			lx.cursor.Bump()
		case '/':
			if !lx.skipComment() {
				return
			}
		default:
			return
		}
	}
}

// //... и /* ... */ (без вложенности)
func (lx *Lexer) skipComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.tryText("*/") {
				return true
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		return true
	}
	return false
}
