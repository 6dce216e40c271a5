package fuzztests

import (
	"testing"

	"qasmc/internal/diag"
	"qasmc/internal/lexer"
	"qasmc/internal/source"
)

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.qasm", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for _, tok := range lx.All() {
			if tok.Span.End < tok.Span.Start {
				t.Fatalf("inverted span %v for %q", tok.Span, tok.Text)
			}
		}
	})
}
