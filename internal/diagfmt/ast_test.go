package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/lexer"
	"qasmc/internal/parser"
	"qasmc/internal/source"
	"qasmc/internal/token"
)

const treeSrc = `OPENQASM 3.0;
int i = 1;
switch (i) {
  case 1, 2 {
    i = 3;
  }
  default {
  }
}
`

func parseTree(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("tree.qasm", []byte(src))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), fs, lx, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 16})
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	return b, res.File, fs
}

func TestFormatASTPretty(t *testing.T) {
	b, fid, fs := parseTree(t, treeSrc)
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, fid, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"tree.qasm (span:",
		"├─ Version: OPENQASM 3.0;",
		"├─ ClassicalDecl: int i = 1;",
		"└─ Switch: i (span: 3:0-9:1)",
		"   ├─ Case: 1, 2",
		"   │  └─ Assign: i = 3;",
		"   └─ Default",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	b, fid, _ := parseTree(t, treeSrc)
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, b, fid); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if root.Type != "File" || len(root.Children) != 3 {
		t.Fatalf("unexpected root: %+v", root)
	}
	sw := root.Children[2]
	if sw.Type != "Switch" || len(sw.Children) != 2 || sw.Children[1].Type != "Default" {
		t.Fatalf("unexpected switch node: %+v", sw)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("tok.qasm", []byte("switch (i) {}"))
	toks := lexer.New(fs.Get(fileID), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.HasPrefix(first, "  1: switch") || !strings.HasSuffix(first, "at 1:0-1:6") {
		t.Fatalf("unexpected first line %q", first)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != len(toks) || out[len(out)-1].Kind != token.EOF.String() {
		t.Fatalf("unexpected tokens: %+v", out)
	}
	if out[2].Kind != "Ident" || out[2].Col != 8 {
		t.Fatalf("unexpected ident token: %+v", out[2])
	}
}
