package sema

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/format"
	"qasmc/internal/lexer"
	"qasmc/internal/parser"
	"qasmc/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("sema.qasm", []byte(src))
	sf := fs.Get(fileID)

	bag := diag.NewBag(128)
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := parser.ParseFile(context.Background(), fs, lx, builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: 128,
	})
	if bag.HasErrors() {
		issues := make([]string, 0, bag.Len())
		for _, d := range bag.Items() {
			issues = append(issues, fmt.Sprintf("%s: %s", d.Code, d.Message))
		}
		t.Fatalf("parse failed: %v", issues)
	}
	return builder, result.File, fs
}

func unrollSource(t *testing.T, src string) (Result, string) {
	t.Helper()
	b, fid, fs := parseSource(t, src)
	res, err := Unroll(context.Background(), b, fid, Options{Files: fs})
	if err != nil {
		t.Fatalf("unroll: %v", err)
	}
	out, err := format.FormatFile(res.AST, res.File, format.Options{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	return res, strings.TrimSpace(string(out))
}

func unrollError(t *testing.T, src string, opts Options) *ValidationError {
	t.Helper()
	b, fid, fs := parseSource(t, src)
	opts.Files = fs
	_, err := Unroll(context.Background(), b, fid, opts)
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("unexpected error %T: %v", err, err)
	}
	return ve
}

// firstSwitch returns the first top-level switch of the file.
func firstSwitch(t *testing.T, b *ast.Builder, fid ast.FileID) (ast.StmtID, *ast.SwitchStmt) {
	t.Helper()
	for _, id := range b.Files.Get(fid).Stmts {
		if sw, ok := b.Stmts.Switch(id); ok {
			return id, sw
		}
	}
	t.Fatalf("no switch statement in file")
	return ast.NoStmtID, nil
}
