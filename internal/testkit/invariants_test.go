package testkit

import (
	"context"
	"testing"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/lexer"
	"qasmc/internal/parser"
	"qasmc/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.qasm", []byte(src)))
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), fs, lexer.New(file, lexer.Options{Reporter: reporter}), b, parser.Options{
		Reporter:  reporter,
		MaxErrors: 16,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	return b, res.File, file
}

func TestSpansNestInsideSwitch(t *testing.T) {
	src := `OPENQASM 3.0;
qubit[2] q;
gate g a { h a; }
int i = 1;
switch (i) {
  case 1 {
    g q[0];
    switch (i) { default { x q[1]; } }
  }
  default { z q[0]; }
}
`
	b, fid, file := parse(t, src)
	if err := CheckSpanInvariants(b, fid, file); err != nil {
		t.Fatal(err)
	}
}

func TestSpanOutsideParentIsReported(t *testing.T) {
	b, fid, file := parse(t, "OPENQASM 3.0;\nint i = 1;\nswitch (i) {\n  case 1 { }\n}\n")
	f := b.Files.Get(fid)
	sw, _ := b.Stmts.Switch(f.Stmts[len(f.Stmts)-1])
	sw.Cases[0].Span.End = f.Span.End + 10
	if err := CheckSpanInvariants(b, fid, file); err == nil {
		t.Fatal("expected an error for a case span past its switch")
	}
}
