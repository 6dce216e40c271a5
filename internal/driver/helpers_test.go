package driver

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"qasmc/internal/ast"
	"qasmc/internal/format"
)

// captureLogs returns a logger that records error-level records in buf.
func captureLogs() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(h), &buf
}

func mustLoad(t *testing.T, src string) *Program {
	t.Helper()
	logger, _ := captureLogs()
	p, err := LoadsWith(context.Background(), "test.qasm", src, Options{Logger: logger})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func mustUnroll(t *testing.T, src string) *Program {
	t.Helper()
	p := mustLoad(t, src)
	if err := p.Unroll(); err != nil {
		t.Fatalf("unroll: %v", err)
	}
	return p
}

// gateOps renders every gate call of the unrolled program, e.g. "x q[0];".
func gateOps(p *Program) []string {
	b := p.UnrolledAST()
	var ops []string
	for _, id := range b.Files.Get(p.UnrolledFile()).Stmts {
		if b.Stmts.Get(id).Kind == ast.StmtGateCall {
			ops = append(ops, format.Stmt(b, id))
		}
	}
	return ops
}

func expectOps(t *testing.T, p *Program, want ...string) {
	t.Helper()
	got := gateOps(p)
	if len(got) != len(want) {
		t.Fatalf("gate ops = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gate op %d = %q, want %q (all %q)", i, got[i], want[i], got)
		}
	}
}
