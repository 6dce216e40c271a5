package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"qasmc/internal/diag"
	"qasmc/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   5 | case 1, 1 {
//	     |         ^
//	   = note: ...
//
// Колонка в заголовке с нуля, как в сообщениях ValidationError.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := fs.Get(d.Primary.File)
	path := "<unknown>"
	if file != nil {
		path = file.FormatPath(opts.PathMode.String(), "")
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.ZeroCol(),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if file == nil || start.Line == 0 {
		return
	}

	gutterWidth := len(fmt.Sprint(start.Line))
	firstLine := start.Line
	if opts.Context > 0 {
		if uint32(opts.Context) >= firstLine {
			firstLine = 1
		} else {
			firstLine -= uint32(opts.Context)
		}
	}
	for ln := firstLine; ln <= start.Line; ln++ {
		text := expandTabs(file.GetLine(ln))
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf(" %*d |", gutterWidth, ln), text)
	}

	line := file.GetLine(start.Line)
	lead, marked := splitAtColumns(line, start.Col, end.Col, start.Line == end.Line)
	pad := runewidth.StringWidth(expandTabs(lead))
	width := max(runewidth.StringWidth(expandTabs(marked)), 1)
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf(" %*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint(underline),
	)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, " %*s %s %s\n", gutterWidth, "", pal.note.Sprint("= note:"), n.Msg)
	}
}

// splitAtColumns cuts line at 1-based byte columns. Spans that continue on
// the next lines are underlined to the end of the first one.
func splitAtColumns(line string, startCol, endCol uint32, sameLine bool) (lead, marked string) {
	from := min(int(max(startCol, 1))-1, len(line))
	to := len(line)
	if sameLine {
		to = min(max(int(endCol)-1, from), len(line))
	}
	return line[:from], line[from:to]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
