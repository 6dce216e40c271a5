package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// switchSeeds cover every shape the switch checks distinguish.
var switchSeeds = []string{
	"",
	"OPENQASM 3.0;\n",
	"OPENQASM 3.0;\ninclude \"stdgates.inc\";\nqubit[1] q;\nconst int i = 1;\nswitch (i) {\n  case 1 { x q[0]; }\n  default { z q[0]; }\n}\n",
	"OPENQASM 3.0;\nint i = 15;\nswitch (i) {\n}\n",
	"OPENQASM 3.0;\nint i = 1;\nswitch (i) {\n  case 1, 1 { }\n}\n",
	"OPENQASM 3.0;\nfloat f = 1.0;\nswitch (f) {\n  case 1 { }\n}\n",
	"OPENQASM 3.0;\nconst int i = 1;\nint j = 2;\nswitch (i) {\n  case j { }\n}\n",
	"OPENQASM 3.0;\nqubit[2] q;\nint i = 1;\nswitch (i) {\n  case 1 { qubit r; }\n}\n",
	"OPENQASM 3.0;\nqubit q;\nint i = 1;\nint j = 2;\nswitch (i) {\n  case 1 { switch (j) { case 2 { h q; } } }\n}\n",
	"OPENQASM 3.0;\ndef f(int a) -> int { return a * 2; }\nconst int n = f(2);\nswitch (n) {\n  case 4 { }\n}\n",
	"OPENQASM 3.0;\narray[int[8], 2, 2] a = {{1, 2}, {3, 4}};\nswitch (a[1][0]) {\n  case 3 { }\n}\n",
	"switch (",
	"switch (i) { case",
	"gate g(t) a { rx(t) a; }\nqubit q;\ng(pi / 2) q;\n",
}

func addSeeds(f *testing.F) {
	for _, s := range switchSeeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
