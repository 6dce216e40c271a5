package parser

import (
	"testing"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
)

func TestParseSwitch(t *testing.T) {
	input := `OPENQASM 3.0;
include "stdgates.inc";
const int i = 5;
qubit q;
switch (i) {
  case 1, 3, 5, 7 { x q; }
  case 2, 4 { y q; }
  default { z q; }
}
`
	builder, stmts := mustParse(t, input)
	if len(stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(stmts))
	}
	inc, ok := builder.Stmts.Include(stmts[1])
	if !ok || builder.Name(inc.Path) != "stdgates.inc" {
		t.Fatalf("include path mismatch")
	}
	sw, ok := builder.Stmts.Switch(stmts[4])
	if !ok {
		t.Fatalf("expected switch, got %v", builder.Stmts.Get(stmts[4]).Kind)
	}
	if len(sw.Cases) != 2 || len(sw.Cases[0].Labels) != 4 || len(sw.Cases[1].Labels) != 2 {
		t.Fatalf("unexpected case layout: %+v", sw.Cases)
	}
	if !sw.HasDefault || len(sw.Default) != 1 {
		t.Fatalf("default clause missing")
	}
	if builder.Stmts.Get(stmts[4]).Span.Start != sw.Keyword.Start {
		t.Fatalf("switch statement must start at its keyword")
	}
}

func TestParseIdentStatements(t *testing.T) {
	input := `x q;
rx(0.5) q[0];
cx q[0], q[1];
my_function(q[0], r);
i = 4;
c[1] = measure q[1];
j += 2;
`
	builder, stmts := mustParse(t, input)
	want := []ast.StmtKind{ast.StmtGateCall, ast.StmtGateCall, ast.StmtGateCall, ast.StmtExpr, ast.StmtAssign, ast.StmtAssign, ast.StmtAssign}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(stmts))
	}
	for i, id := range stmts {
		if got := builder.Stmts.Get(id).Kind; got != want[i] {
			t.Fatalf("statement %d: got %v, want %v", i, got, want[i])
		}
	}
	rx, _ := builder.Stmts.GateCall(stmts[1])
	if len(rx.Params) != 1 || len(rx.Operands) != 1 {
		t.Fatalf("rx params/operands mismatch")
	}
	cx, _ := builder.Stmts.GateCall(stmts[2])
	if len(cx.Operands) != 2 {
		t.Fatalf("cx must have two operands")
	}
	call, _ := builder.Stmts.Expr(stmts[3])
	if data, ok := builder.Exprs.Call(call.Expr); !ok || len(data.Args) != 2 {
		t.Fatalf("call statement mismatch")
	}
	meas, _ := builder.Stmts.Assign(stmts[5])
	if _, ok := builder.Exprs.Measure(meas.Value); !ok {
		t.Fatalf("expected measure rhs")
	}
	compound, _ := builder.Stmts.Assign(stmts[6])
	if compound.Op != ast.AssignAdd {
		t.Fatalf("expected += operator, got %v", compound.Op)
	}
}

func TestParseDeclarations(t *testing.T) {
	input := `qubit[4] q;
qreg r[2];
creg c[2];
bit[3] b;
float[64] f = 1.5;
bool flag;
array[int[32], 3, 2] arr = {{1, 2}, {3, 4}, {5, 6}};
array[float, 3, 2] fa;
`
	builder, stmts := mustParse(t, input)
	if len(stmts) != 8 {
		t.Fatalf("expected 8 statements, got %d", len(stmts))
	}
	q, _ := builder.Stmts.QubitDecl(stmts[0])
	if !q.Size.IsValid() || q.Legacy {
		t.Fatalf("qubit[4] must carry a size")
	}
	r, _ := builder.Stmts.QubitDecl(stmts[1])
	if !r.Size.IsValid() || !r.Legacy {
		t.Fatalf("qreg must be legacy with a size")
	}
	c, _ := builder.Stmts.ClassicalDecl(stmts[2])
	if c.Type.Kind != ast.TypeSpecBit || !c.Type.Width.IsValid() {
		t.Fatalf("creg must become a bit register")
	}
	arr, _ := builder.Stmts.ClassicalDecl(stmts[6])
	if arr.Type.Kind != ast.TypeSpecArray || arr.Type.Elem != ast.TypeSpecInt || len(arr.Type.Dims) != 2 {
		t.Fatalf("array type mismatch: %+v", arr.Type)
	}
	lit, ok := builder.Exprs.Array(arr.Init)
	if !ok || len(lit.Elems) != 3 {
		t.Fatalf("array literal mismatch")
	}
	fa, _ := builder.Stmts.ClassicalDecl(stmts[7])
	if fa.Type.Elem != ast.TypeSpecFloat || fa.Type.ElemWidth.IsValid() {
		t.Fatalf("array[float, ...] must have no element width")
	}
}

func TestParseDefinitions(t *testing.T) {
	input := `def my_function(qubit q, float[32] b) -> int {
    rx(b) q;
    return 1;
}
gate rot(theta) a, b { rz(theta) a; cx a, b; }
def empty() { int i = 1; }
`
	builder, stmts := mustParse(t, input)
	def, ok := builder.Stmts.Def(stmts[0])
	if !ok || len(def.Params) != 2 || def.Return.Kind != ast.TypeSpecInt || len(def.Body) != 2 {
		t.Fatalf("def mismatch: %+v", def)
	}
	if def.Params[0].Type.Kind != ast.TypeSpecQubit || def.Params[1].Type.Kind != ast.TypeSpecFloat {
		t.Fatalf("param types mismatch")
	}
	gate, ok := builder.Stmts.GateDef(stmts[1])
	if !ok || len(gate.Params) != 1 || len(gate.Qubits) != 2 || len(gate.Body) != 2 {
		t.Fatalf("gate mismatch: %+v", gate)
	}
	empty, _ := builder.Stmts.Def(stmts[2])
	if len(empty.Params) != 0 || empty.Return.Kind != ast.TypeSpecNone {
		t.Fatalf("empty def mismatch")
	}
}

func TestDefinitionsInsideCaseParse(t *testing.T) {
	input := `switch (i) {
  case 4 {
    x q;
    def test1() { int i = 1; }
    array[int[32], 3, 2] arr_int;
    gate test_1() q { h q; }
  }
}`
	builder, stmts := mustParse(t, input)
	sw, _ := builder.Stmts.Switch(stmts[0])
	if len(sw.Cases[0].Body) != 4 {
		t.Fatalf("case body must keep definitions for later checks, got %d", len(sw.Cases[0].Body))
	}
}

func TestUnsupportedControlFlow(t *testing.T) {
	input := `if (c == 1) { x q; } else { y q; }
for int k in [0:3] { h q; }
x q;
`
	builder, fileID, bag := parseSource(t, input)
	if !hasCode(bag, diag.SynUnsupported) {
		t.Fatalf("expected SynUnsupported, got %s", diagnosticsSummary(bag))
	}
	stmts := builder.Files.Get(fileID).Stmts
	if len(stmts) != 1 || builder.Stmts.Get(stmts[0]).Kind != ast.StmtGateCall {
		t.Fatalf("parser must recover after skipped constructs")
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"missing semicolon", "qubit q\nx q;", diag.SynExpectSemicolon},
		{"bad switch clause", "switch (i) { x q; }", diag.SynExpectCase},
		{"duplicate default", "switch (i) { case 1 { } default { } default { } }", diag.SynDuplicateDefault},
		{"const without init", "const int i;", diag.SynExpectExpression},
		{"bad version", "OPENQASM foo;", diag.SynBadVersion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, bag := parseSource(t, tc.input)
			if !hasCode(bag, tc.code) {
				t.Fatalf("expected %s, got %s", tc.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}
