package diag

import (
	"fmt"
	"log/slog"
	"strings"

	"qasmc/internal/source"
)

// Location renders the position prefix shared by logged and returned errors.
// Columns are zero-based, matching the OpenQASM reference tooling.
func Location(fs *source.FileSet, sp source.Span) (line, col uint32, text string) {
	if fs == nil {
		return 0, 0, "Error in QASM file"
	}
	start, _ := fs.Resolve(sp)
	return start.Line, start.ZeroCol(), fmt.Sprintf("Error at line %d, column %d in QASM file", start.Line, start.ZeroCol())
}

// LogReporter writes every diagnostic to a slog.Logger at the level matching
// its severity, together with the rendered source snippet carried in notes.
type LogReporter struct {
	Logger *slog.Logger
	Files  *source.FileSet
}

func (r LogReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Logger == nil {
		return
	}
	line, col, loc := Location(r.Files, primary)
	var b strings.Builder
	b.WriteString(loc)
	for _, n := range notes {
		b.WriteString("\n\n >>>>>> ")
		b.WriteString(n.Msg)
	}
	b.WriteString("\n")
	b.WriteString(msg)

	attrs := []any{
		slog.String("code", code.ID()),
		slog.Uint64("line", uint64(line)),
		slog.Uint64("column", uint64(col)),
	}
	switch sev {
	case SevError:
		r.Logger.Error(b.String(), attrs...)
	case SevWarning:
		r.Logger.Warn(b.String(), attrs...)
	default:
		r.Logger.Info(b.String(), attrs...)
	}
}
