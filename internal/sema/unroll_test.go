package sema

import (
	"errors"
	"strings"
	"testing"
)

const header = "OPENQASM 3.0;\ninclude \"stdgates.inc\";\n"

func TestUnrollSelectsMatchingCase(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"first label", "1", "x q[0];"},
		{"second label", "3", "x q[0];"},
		{"other case", "2", "y q[0];"},
		{"default", "7", "z q[0];"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := header + `qubit q;
int i = ` + tt.value + `;
switch (i) {
    case 1, 3 {
        x q;
    }
    case 2 {
        y q;
    }
    default {
        z q;
    }
}
`
			res, out := unrollSource(t, src)
			want := header + "qubit[1] q;\nint i = " + tt.value + ";\n" + tt.want
			if out != want {
				t.Fatalf("output mismatch:\n%s\nwant:\n%s", out, want)
			}
			if res.Switches != 1 {
				t.Fatalf("switches = %d, want 1", res.Switches)
			}
			if res.NumQubits != 1 {
				t.Fatalf("qubits = %d, want 1", res.NumQubits)
			}
		})
	}
}

func TestUnrollNoMatchWithoutDefault(t *testing.T) {
	src := header + `qubit q;
const int i = 9;
switch (i) {
    case 1 {
        x q;
    }
}
h q;
`
	_, out := unrollSource(t, src)
	if strings.Contains(out, "x q") {
		t.Fatalf("unexpected case body in output:\n%s", out)
	}
	if !strings.HasSuffix(out, "h q[0];") {
		t.Fatalf("statements after switch lost:\n%s", out)
	}
}

func TestUnrollNestedSwitchWithConstLabels(t *testing.T) {
	src := header + `qubit[2] q;
const int a = 2;
int i = 4;
switch (i) {
    case a * 2 {
        int j = 1;
        switch (j + 1) {
            case 2 {
                h q[1];
            }
            default {
                x q[1];
            }
        }
    }
    default {
        z q;
    }
}
`
	res, out := unrollSource(t, src)
	if !strings.Contains(out, "int j = 1;") || !strings.Contains(out, "h q[1];") {
		t.Fatalf("nested switch not unrolled:\n%s", out)
	}
	if strings.Contains(out, "z q") || strings.Contains(out, "x q") {
		t.Fatalf("unselected branch emitted:\n%s", out)
	}
	if res.Switches != 2 {
		t.Fatalf("switches = %d, want 2", res.Switches)
	}
}

func TestUnrollCaseScopeEndsWithCase(t *testing.T) {
	src := header + `int i = 1;
switch (i) {
    case 1 {
        int k = 2;
    }
}
k = 3;
`
	ve := unrollError(t, src, Options{})
	if ve.Kind() != KindUndeclaredIdentifier {
		t.Fatalf("kind = %v, want undeclared identifier", ve.Kind())
	}
	if ve.Message != "Undefined identifier 'k' in expression" {
		t.Fatalf("message = %q", ve.Message)
	}
}

func TestUnrollCaseAssignsOuterVariable(t *testing.T) {
	src := header + `qubit q;
int i = 1;
int j = 0;
switch (i) {
    case 1 {
        j = 5;
    }
}
switch (j) {
    case 5 {
        x q;
    }
    default {
        z q;
    }
}
`
	_, out := unrollSource(t, src)
	if !strings.Contains(out, "j = 5;") || !strings.HasSuffix(out, "x q[0];") {
		t.Fatalf("outer assignment not tracked:\n%s", out)
	}
}

func TestUnrollSubroutineTarget(t *testing.T) {
	src := header + `qubit q;
def f(int a) -> int {
    return a + 1;
}
int i = 1;
switch (f(i)) {
    case 2 {
        x q;
    }
    default {
        z q;
    }
}
`
	_, out := unrollSource(t, src)
	if strings.Contains(out, "def") || strings.Contains(out, "return") {
		t.Fatalf("definition leaked into output:\n%s", out)
	}
	if !strings.HasSuffix(out, "x q[0];") {
		t.Fatalf("call target not folded:\n%s", out)
	}
}

func TestUnrollSwitchInsideSubroutine(t *testing.T) {
	src := header + `def apply(int k, qubit r) {
    switch (k) {
        case 0 {
            x r;
        }
        default {
            h r;
        }
    }
}
qubit[2] q;
apply(0, q[1]);
apply(5, q[0]);
`
	res, out := unrollSource(t, src)
	want := header + "qubit[2] q;\nx q[1];\nh q[0];"
	if out != want {
		t.Fatalf("output mismatch:\n%s\nwant:\n%s", out, want)
	}
	if res.Switches != 2 {
		t.Fatalf("switches = %d, want 2", res.Switches)
	}
}

func TestUnrollGateBroadcastAndExpansion(t *testing.T) {
	src := header + `gate g(t) a, b {
    rx(t) a;
    cx a, b;
}
qubit[2] p;
qubit[2] r;
h p;
cx p, r;
g(0.5) p[0], r[1];
`
	res, out := unrollSource(t, src)
	want := header + `qubit[2] p;
qubit[2] r;
h p[0];
h p[1];
cx p[0], r[0];
cx p[1], r[1];
rx(0.5) p[0];
cx p[0], r[1];`
	if out != want {
		t.Fatalf("output mismatch:\n%s\nwant:\n%s", out, want)
	}
	if res.NumQubits != 4 {
		t.Fatalf("qubits = %d, want 4", res.NumQubits)
	}
}

func TestUnrollMeasurementMakesValueUnknown(t *testing.T) {
	src := header + `qubit[2] q;
bit[2] c = "10";
c = measure q;
int i = c[0];
switch (i) {
    case 0 {
        x q[0];
    }
}
`
	ve := unrollError(t, src, Options{})
	if ve.Kind() != KindNotConstant {
		t.Fatalf("kind = %v, want not constant", ve.Kind())
	}
	if ve.Message != "Expected variable 'i' to be constant in given expression" {
		t.Fatalf("message = %q", ve.Message)
	}
}

func TestUnrollMeasurementOutput(t *testing.T) {
	src := header + `qubit[2] q;
bit[2] c;
c = measure q;
measure q[1] -> c[0];
`
	res, out := unrollSource(t, src)
	for _, line := range []string{"measure q[0] -> c[0];", "measure q[1] -> c[1];", "measure q[1] -> c[0];"} {
		if !strings.Contains(out, line) {
			t.Fatalf("missing %q in:\n%s", line, out)
		}
	}
	if res.NumClbits != 2 {
		t.Fatalf("clbits = %d, want 2", res.NumClbits)
	}
}

func TestUnrollFoldsCompoundAssignment(t *testing.T) {
	src := header + `int a = 2;
a += 3;
array[int[8], 3] arr = {1, 2, 3};
arr[1] *= a;
`
	_, out := unrollSource(t, src)
	if !strings.Contains(out, "a = 5;") {
		t.Fatalf("compound assignment not folded:\n%s", out)
	}
	if !strings.Contains(out, "arr[1] = 10;") {
		t.Fatalf("indexed assignment not folded:\n%s", out)
	}
}

func TestUnrollErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    ErrorKind
		target  error
		message string
		snippet string
	}{
		{
			name: "float target",
			src: `float f = 1.0;
switch (f) {
    case 1 {
    }
}
`,
			kind:    KindSwitchTargetType,
			target:  ErrSwitchTargetType,
			message: "Switch target f must be of type int",
			snippet: "switch (f) {",
		},
		{
			name: "duplicate label",
			src: `int i = 1;
switch (i) {
    case 1, 2 {
    }
    case 2 {
    }
}
`,
			kind:    KindDuplicateCase,
			target:  ErrDuplicateCase,
			message: "Duplicate case value 2 in switch statement",
			snippet: "switch (i) {",
		},
		{
			name: "only default",
			src: `int i = 1;
switch (i) {
    default {
    }
}
`,
			kind:    KindEmptySwitch,
			target:  ErrEmptySwitch,
			message: "Switch statement must have at least one case",
			snippet: "switch (i) {",
		},
		{
			name: "float label",
			src: `const int i = 4;
switch (i) {
    case 4.3, 2 {
    }
}
`,
			kind:    KindCaseLabelType,
			target:  ErrCaseLabelType,
			message: "Invalid value 4.3 with type float for required type int",
			snippet: "4.3",
		},
		{
			name: "mutable label",
			src: `const int i = 4;
int j = 2;
switch (i) {
    case j {
    }
}
`,
			kind:    KindNotConstant,
			target:  ErrNotConstant,
			message: "Expected variable 'j' to be constant in given expression",
			snippet: "j",
		},
		{
			name: "uninitialised target",
			src: `int i;
switch (i) {
    case 1 {
    }
}
`,
			kind:    KindNotConstant,
			target:  ErrNotConstant,
			message: "Expected variable 'i' to be constant in given expression",
			snippet: "i",
		},
		{
			name: "const reassignment",
			src: `const int i = 1;
i = 2;
`,
			kind:    KindImmutableAssignment,
			target:  ErrImmutableAssignment,
			message: "Assignment to constant variable 'i' not allowed",
			snippet: "i = 2;",
		},
		{
			name: "redeclaration",
			src: `int i = 1;
float i = 2.0;
`,
			kind:    KindRedeclaration,
			target:  ErrRedeclaration,
			message: "Re-declaration of variable 'i'",
			snippet: "float i = 2.0;",
		},
		{
			name: "unknown gate",
			src: `qubit q;
foo q;
`,
			kind:    KindUnknownGate,
			target:  ErrUnknownGate,
			message: "Unsupported / undeclared QASM operation: foo",
			snippet: "foo q;",
		},
		{
			name: "qubit index out of range",
			src: `qubit[2] q;
x q[2];
`,
			kind:    KindIndexOutOfRange,
			target:  ErrIndexOutOfRange,
			message: "Index 2 out of range for register 'q' of size 2",
			snippet: "2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := unrollError(t, header+tt.src, Options{})
			if ve.Kind() != tt.kind {
				t.Fatalf("kind = %v, want %v (%s)", ve.Kind(), tt.kind, ve.Message)
			}
			if !errors.Is(ve, tt.target) {
				t.Fatalf("errors.Is(%v) = false", tt.target)
			}
			if ve.Message != tt.message {
				t.Fatalf("message = %q, want %q", ve.Message, tt.message)
			}
			if ve.Snippet != tt.snippet {
				t.Fatalf("snippet = %q, want %q", ve.Snippet, tt.snippet)
			}
			if ve.Line == 0 {
				t.Fatalf("missing line information")
			}
		})
	}
}

func TestUnrollErrorPosition(t *testing.T) {
	src := header + `int i = 1;
float f = 2.0;
    switch (f) {
    case 1 {
    }
}
`
	ve := unrollError(t, src, Options{})
	if ve.Line != 5 || ve.Column != 4 {
		t.Fatalf("position = %d:%d, want 5:4", ve.Line, ve.Column)
	}
	want := "Error at line 5, column 4 in QASM file\n\n >>>>>> switch (f) {\nSwitch target f must be of type int"
	if ve.Error() != want {
		t.Fatalf("error text:\n%s\nwant:\n%s", ve.Error(), want)
	}
}

func TestUnrollInlineDepth(t *testing.T) {
	src := header + `def f(int a) -> int {
    return f(a);
}
int x = f(1);
`
	ve := unrollError(t, src, Options{MaxInlineDepth: 4})
	if ve.Kind() != KindInlineDepth {
		t.Fatalf("kind = %v, want inline depth (%s)", ve.Kind(), ve.Message)
	}
}

func TestUnrollRejectsScopedDefinitions(t *testing.T) {
	src := header + `def f() {
    qubit q;
}
f();
`
	ve := unrollError(t, src, Options{})
	if ve.Kind() != KindInvalidScope {
		t.Fatalf("kind = %v, want invalid scope", ve.Kind())
	}
	if ve.Message != "Qubit can only be declared in the global scope" {
		t.Fatalf("message = %q", ve.Message)
	}
}

func TestValidateLeavesInputUntouched(t *testing.T) {
	src := header + `int i = 1;
switch (i) {
    case 1 {
        i = 2;
    }
}
`
	b, fid, fs := parseSource(t, src)
	before := len(b.Files.Get(fid).Stmts)
	if err := Validate(t.Context(), b, fid, Options{Files: fs}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if after := len(b.Files.Get(fid).Stmts); after != before {
		t.Fatalf("input file changed: %d -> %d statements", before, after)
	}
}
