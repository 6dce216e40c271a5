package driver

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func unrolledDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := mustUnroll(t, bellSwitch).Document()
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDocumentContents(t *testing.T) {
	doc := unrolledDoc(t)
	if doc.NumQubits != 2 || doc.NumClbits != 2 || doc.Switches != 1 {
		t.Fatalf("unexpected counters %+v", doc)
	}
	var kinds []string
	for _, st := range doc.Statements {
		kinds = append(kinds, st.Kind)
	}
	want := []string{"Version", "Include", "QubitDecl", "ClassicalDecl", "ClassicalDecl", "GateCall", "GateCall", "Measure", "Measure"}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestEmitFormats(t *testing.T) {
	doc := unrolledDoc(t)

	var buf bytes.Buffer
	if err := Emit(&buf, doc, "qasm"); err != nil || buf.String() != doc.QASM {
		t.Fatalf("qasm emit: %v\n%s", err, buf.String())
	}

	buf.Reset()
	if err := Emit(&buf, doc, "json"); err != nil {
		t.Fatal(err)
	}
	var fromJSON Document
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if fromJSON.NumQubits != 2 || len(fromJSON.Statements) != len(doc.Statements) || fromJSON.QASM != "" {
		t.Fatalf("json document %+v", fromJSON)
	}

	buf.Reset()
	if err := Emit(&buf, doc, "yaml"); err != nil {
		t.Fatal(err)
	}
	var fromYAML Document
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.NumClbits != 2 || fromYAML.Statements[5].Text != "h q[0];" {
		t.Fatalf("yaml document %+v", fromYAML)
	}

	buf.Reset()
	if err := Emit(&buf, doc, "msgpack"); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack Document
	if err := msgpack.Unmarshal(buf.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if fromMsgpack.QASM != doc.QASM || fromMsgpack.Schema != documentSchema {
		t.Fatalf("msgpack lost fields: %+v", fromMsgpack)
	}

	if err := Emit(&buf, doc, "xml"); err == nil {
		t.Fatalf("unknown format accepted")
	}
}
