package parser

import (
	"testing"

	"qasmc/internal/ast"
)

func parseInit(t *testing.T, expr string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	builder, stmts := mustParse(t, "int x = "+expr+";")
	decl, ok := builder.Stmts.ClassicalDecl(stmts[0])
	if !ok {
		t.Fatalf("expected declaration")
	}
	return builder, decl.Init
}

func TestPrecedence(t *testing.T) {
	builder, id := parseInit(t, "1 + 2 * 3")
	add, ok := builder.Exprs.Binary(id)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatalf("expected + at the root")
	}
	if mul, ok := builder.Exprs.Binary(add.Right); !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("expected * on the right")
	}
}

func TestLeftAssociativity(t *testing.T) {
	builder, id := parseInit(t, "j - 1 - 2")
	outer, _ := builder.Exprs.Binary(id)
	if inner, ok := builder.Exprs.Binary(outer.Left); !ok || inner.Op != ast.ExprBinarySub {
		t.Fatalf("subtraction must associate to the left")
	}
}

func TestPowerBindsTighterThanUnary(t *testing.T) {
	builder, id := parseInit(t, "-2 ** 2")
	neg, ok := builder.Exprs.Unary(id)
	if !ok || neg.Op != ast.ExprUnaryMinus {
		t.Fatalf("expected unary minus at the root")
	}
	if pow, ok := builder.Exprs.Binary(neg.Operand); !ok || pow.Op != ast.ExprBinaryPow {
		t.Fatalf("expected ** under unary minus")
	}
}

func TestIndexChains(t *testing.T) {
	for _, src := range []string{"a[0][1]", "a[0, 1]"} {
		builder, id := parseInit(t, src)
		root, indices := builder.Exprs.IndexRoot(id)
		if _, ok := builder.Exprs.Ident(root); !ok || len(indices) != 2 {
			t.Fatalf("%s: expected ident root with two indices", src)
		}
	}
}

func TestCallsAndGroups(t *testing.T) {
	builder, id := parseInit(t, "(sin(pi / 2) + 1_000)")
	group, ok := builder.Exprs.Group(id)
	if !ok {
		t.Fatalf("expected group")
	}
	add, _ := builder.Exprs.Binary(group.Inner)
	if call, ok := builder.Exprs.Call(add.Left); !ok || builder.Name(call.Name) != "sin" || len(call.Args) != 1 {
		t.Fatalf("expected sin call")
	}
	lit, _ := builder.Exprs.Literal(add.Right)
	if builder.Name(lit.Value) != "1000" {
		t.Fatalf("digit separators must be stripped, got %q", builder.Name(lit.Value))
	}
}
