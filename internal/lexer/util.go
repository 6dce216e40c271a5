package lexer

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// peekRune декодирует руну под курсором, не двигая его.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.advance(sz)
}

func (lx *Lexer) advance(n int) {
	if n == 0 {
		return
	}
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("lexer advance overflow: %w", err))
	}
	lx.cursor.Off += un
}

// tryText consumes s when the input continues with it.
func (lx *Lexer) tryText(s string) bool {
	if !bytes.HasPrefix(lx.file.Content[lx.cursor.Off:], []byte(s)) {
		return false
	}
	lx.advance(len(s))
	return true
}

// Identifiers: ASCII letters and '_' plus any Unicode letter, so the
// builtin constants π, τ and ℇ lex as names.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isBin(b byte) bool { return b == '0' || b == '1' }
func isOct(b byte) bool { return b >= '0' && b <= '7' }
func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool { return isDec(b) || (b|0x20 >= 'a' && b|0x20 <= 'f') }

// isNumberAfterDot ловит литералы вида ".5".
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}
