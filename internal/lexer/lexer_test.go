package lexer

import (
	"testing"

	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

func makeTestLexer(input string) (*Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.qasm", []byte(input))
	bag := diag.NewBag(100)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectKinds(lx *Lexer) []token.Kind {
	var out []token.Kind
	for _, tok := range lx.All() {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	got := collectKinds(lx)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (all %v)", input, i, got[i], want[i], got)
		}
	}
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items())
	}
}

func TestSwitchHeader(t *testing.T) {
	expectKinds(t, "switch (i) { case 1, 2 { x q; } default { } }",
		token.KwSwitch, token.LParen, token.Ident, token.RParen, token.LBrace,
		token.KwCase, token.IntLit, token.Comma, token.IntLit, token.LBrace,
		token.Ident, token.Ident, token.Semicolon, token.RBrace,
		token.KwDefault, token.LBrace, token.RBrace, token.RBrace)
}

func TestDeclarations(t *testing.T) {
	expectKinds(t, "OPENQASM 3.0;\ninclude \"stdgates.inc\";\nconst int i = 5;\nqubit[4] q;",
		token.KwOpenQASM, token.FloatLit, token.Semicolon,
		token.KwInclude, token.StringLit, token.Semicolon,
		token.KwConst, token.KwInt, token.Ident, token.Assign, token.IntLit, token.Semicolon,
		token.KwQubit, token.LBracket, token.IntLit, token.RBracket, token.Ident, token.Semicolon)
}

func TestOperatorsGreedy(t *testing.T) {
	expectKinds(t, "** -> <<= >>= << >> <= >= == != && || += -= *= /= %= &= |= ^= ~ !",
		token.StarStar, token.Arrow, token.ShlAssign, token.ShrAssign, token.Shl, token.Shr,
		token.LtEq, token.GtEq, token.EqEq, token.BangEq, token.AndAnd, token.OrOr,
		token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign,
		token.Tilde, token.Bang)
}

func TestComments(t *testing.T) {
	expectKinds(t, "x // line comment\n/* block\ncomment */ y",
		token.Ident, token.Ident)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"42", token.IntLit},
		{"1_000", token.IntLit},
		{"0x1F", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o17", token.IntLit},
		{"3.14", token.FloatLit},
		{".5", token.FloatLit},
		{"1.", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"2.5E+10", token.FloatLit},
	}
	for _, tc := range cases {
		lx, bag := makeTestLexer(tc.in)
		tok := lx.Next()
		if tok.Kind != tc.kind || tok.Text != tc.in {
			t.Errorf("%q: got %v %q", tc.in, tok.Kind, tok.Text)
		}
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics", tc.in)
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, in := range []string{"0x", "1e+", "12abc"} {
		lx, bag := makeTestLexer(in)
		if tok := lx.Next(); tok.Kind != token.Invalid {
			t.Errorf("%q: expected Invalid, got %v", in, tok.Kind)
		}
		if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber", in)
		}
	}
}

func TestUnterminated(t *testing.T) {
	lx, bag := makeTestLexer("include \"stdgates.inc\n;")
	lx.All()
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string diagnostic, got %v", bag.Items())
	}

	lx, bag = makeTestLexer("x /* never closed")
	lx.All()
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected unterminated comment diagnostic, got %v", bag.Items())
	}
}

func TestUnknownChar(t *testing.T) {
	lx, bag := makeTestLexer("x $ y")
	kinds := collectKinds(lx)
	if kinds[1] != token.Invalid {
		t.Fatalf("expected Invalid for '$', got %v", kinds)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected one LexUnknownChar, got %v", bag.Items())
	}
}

func TestIdentNFC(t *testing.T) {
	// "e" + combining acute
	lx, _ := makeTestLexer("cafe\u0301")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "caf\u00e9" {
		t.Fatalf("expected NFC identifier, got %v %q", tok.Kind, tok.Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("case 1")
	if lx.Peek().Kind != token.KwCase {
		t.Fatalf("peek mismatch")
	}
	if lx.Next().Kind != token.KwCase || lx.Next().Kind != token.IntLit {
		t.Fatalf("next after peek mismatch")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("  switch")
	tok := lx.Next()
	if tok.Span.Start != 2 || tok.Span.End != 8 {
		t.Fatalf("span = %v", tok.Span)
	}
}
