package fuzztests

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/driver"
	"qasmc/internal/lexer"
	"qasmc/internal/parser"
	"qasmc/internal/source"
	"qasmc/internal/testkit"
)

// pipelineTimeout bounds a single input; longer means a loop in recovery
// or in the unroller.
const pipelineTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.qasm", input))

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{}, nil)
		res := parser.ParseFile(context.Background(), fs, lx, builder, parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		})
		if bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("%v on %q", err, input)
		}
	})
}

// FuzzUnrollNoHang runs the whole load-validate-unroll pipeline under a
// timeout.
func FuzzUnrollNoHang(f *testing.F) {
	addSeeds(f)
	f.Add([]byte("OPENQASM 3.0;\ndef f(int a) -> int { return f(a); }\nint x = f(1);\n"))
	f.Add([]byte("OPENQASM 3.0;\nint i = 1;\nswitch (i) { case 1 { } case 2 { } case 3 {"))

	logger := slog.New(slog.DiscardHandler)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			p, err := driver.LoadsWith(ctx, "fuzz.qasm", string(input), driver.Options{Logger: logger})
			if err != nil {
				return
			}
			if err := p.UnrollContext(ctx); err == nil {
				_, _ = p.QASM()
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline did not finish within %v on %q", pipelineTimeout, input)
		}
	})
}
