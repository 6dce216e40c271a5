package format

import (
	"bytes"
	"strings"
)

// Writer is the output buffer of the printer. Indentation is inserted
// lazily before the first byte of every line.
type Writer struct {
	buf   bytes.Buffer
	unit  string
	depth int
	fresh bool // курсор в начале строки
}

func NewWriter(opt Options) *Writer {
	opt = opt.withDefaults()
	unit := "\t"
	if !opt.UseTabs {
		unit = strings.Repeat(" ", opt.IndentWidth)
	}
	w := &Writer{unit: unit, fresh: true}
	w.buf.Grow(256)
	return w
}

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) pad() {
	if w.fresh {
		w.fresh = false
		for range w.depth {
			w.buf.WriteString(w.unit)
		}
	}
}

func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.pad()
	w.buf.WriteString(s)
	w.fresh = strings.HasSuffix(s, "\n")
}

func (w *Writer) WriteByte(b byte) error {
	w.pad()
	w.fresh = b == '\n'
	return w.buf.WriteByte(b)
}

func (w *Writer) last() byte {
	if b := w.buf.Bytes(); len(b) > 0 {
		return b[len(b)-1]
	}
	return 0
}

// Space separates tokens unless the output is empty or already ends in
// whitespace.
func (w *Writer) Space() {
	switch w.last() {
	case 0, ' ', '\t', '\n':
		return
	}
	w.buf.WriteByte(' ')
}

// Newline ends the current line unless it is already ended.
func (w *Writer) Newline() {
	if w.last() != '\n' {
		w.buf.WriteByte('\n')
	}
	w.fresh = true
}

func (w *Writer) Indent() { w.depth++ }

func (w *Writer) Dedent() { w.depth = max(w.depth-1, 0) }
