package lexer

import (
	"testing"

	"qasmc/internal/source"
)

func TestCursorMarkAndSpan(t *testing.T) {
	f := &source.File{ID: 3, Content: []byte("abc")}
	c := NewCursor(f)
	m := c.Mark()
	if !c.Eat('a') || c.Eat('c') {
		t.Fatalf("Eat mismatch")
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("Peek2 mismatch")
	}
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.File != 3 || sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	c.Bump()
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("EOF handling mismatch")
	}
	c.Reset(m)
	if c.Peek() != 'a' {
		t.Fatalf("Reset mismatch")
	}
}
