package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"qasmc/internal/format"
)

// documentSchema is bumped whenever Document changes shape; cached entries
// with another schema are ignored.
const documentSchema uint16 = 1

// Document is the serialisable form of an unrolled program. The same value
// is written by --emit and stored in the disk cache.
type Document struct {
	Schema     uint16      `json:"-" yaml:"-" msgpack:"schema"`
	Path       string      `json:"path" yaml:"path" msgpack:"path"`
	NumQubits  int         `json:"num_qubits" yaml:"num_qubits" msgpack:"num_qubits"`
	NumClbits  int         `json:"num_clbits" yaml:"num_clbits" msgpack:"num_clbits"`
	Switches   int         `json:"switches" yaml:"switches" msgpack:"switches"`
	Statements []Statement `json:"statements" yaml:"statements" msgpack:"statements"`
	QASM       string      `json:"-" yaml:"-" msgpack:"qasm"`
}

// Statement is one top-level statement of the flattened program.
type Statement struct {
	Kind string `json:"kind" yaml:"kind" msgpack:"kind"`
	Text string `json:"text" yaml:"text" msgpack:"text"`
}

// Document captures the unrolled program.
func (p *Program) Document() (*Document, error) {
	text, err := p.QASM()
	if err != nil {
		return nil, err
	}
	b := p.result.AST
	file := b.Files.Get(p.result.File)
	doc := &Document{
		Schema:     documentSchema,
		Path:       p.Name,
		NumQubits:  p.result.NumQubits,
		NumClbits:  p.result.NumClbits,
		Switches:   p.result.Switches,
		Statements: make([]Statement, 0, len(file.Stmts)),
		QASM:       text,
	}
	for _, id := range file.Stmts {
		doc.Statements = append(doc.Statements, Statement{
			Kind: b.Stmts.Get(id).Kind.String(),
			Text: format.Stmt(b, id),
		})
	}
	return doc, nil
}

// Emit writes doc in one of the formats accepted by --emit.
func Emit(w io.Writer, doc *Document, emit string) error {
	switch emit {
	case "", "qasm":
		_, err := io.WriteString(w, doc.QASM)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("unsupported emit format %q (expected qasm|json|yaml|msgpack)", emit)
	}
}
