package driver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fortio.org/safecast"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/format"
	"qasmc/internal/lexer"
	"qasmc/internal/observ"
	"qasmc/internal/parser"
	"qasmc/internal/sema"
	"qasmc/internal/source"
	"qasmc/internal/trace"
)

// Options configure loading and the semantic passes of a Program.
type Options struct {
	MaxDiagnostics int
	MaxInlineDepth int
	// Logger receives every diagnostic at its severity; nil means slog.Default().
	Logger *slog.Logger
	// Reporter is an extra sink next to the program's own Bag.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	if o.MaxInlineDepth <= 0 {
		o.MaxInlineDepth = sema.DefaultMaxInlineDepth
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Program is one parsed OpenQASM file together with its diagnostics and,
// after Unroll, the flattened output.
type Program struct {
	Name   string
	Files  *source.FileSet
	Source *source.File
	AST    *ast.Builder
	FileID ast.FileID
	Bag    *diag.Bag

	opts   Options
	timer  *observ.Timer
	result *sema.Result
}

// ParseError reports lexer and parser diagnostics of a file that could not
// be loaded.
type ParseError struct {
	Files *source.FileSet
	Bag   *diag.Bag
}

func (e *ParseError) Error() string {
	for _, d := range e.Bag.Items() {
		if d.Severity != diag.SevError {
			continue
		}
		_, _, loc := diag.Location(e.Files, d.Primary)
		msg := loc + "\n" + d.Message
		if n := e.errorCount(); n > 1 {
			msg += fmt.Sprintf(" (and %d more errors)", n-1)
		}
		return msg
	}
	return "failed to parse QASM program"
}

func (e *ParseError) errorCount() int {
	n := 0
	for _, d := range e.Bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// Loads parses an OpenQASM program held in memory.
func Loads(name, src string) (*Program, error) {
	return LoadsWith(context.Background(), name, src, Options{})
}

// Load reads and parses a program from disk.
func Load(path string) (*Program, error) {
	return LoadWith(context.Background(), path, Options{})
}

// LoadWith is Load with explicit context and options.
func LoadWith(ctx context.Context, path string, opts Options) (*Program, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return load(ctx, path, fs, fileID, opts)
}

// LoadsWith is Loads with explicit context and options.
func LoadsWith(ctx context.Context, name, src string, opts Options) (*Program, error) {
	if name == "" {
		name = "<input>"
	}
	fs := source.NewFileSet()
	return load(ctx, name, fs, fs.AddVirtual(name, []byte(src)), opts)
}

func load(ctx context.Context, name string, fs *source.FileSet, fileID source.FileID, opts Options) (*Program, error) {
	opts = opts.withDefaults()
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Name:   name,
		Files:  fs,
		Source: fs.Get(fileID),
		AST:    ast.NewBuilder(ast.Hints{}, nil),
		Bag:    diag.NewBag(opts.MaxDiagnostics),
		opts:   opts,
		timer:  observ.NewTimer(),
	}

	reporter := p.reporter()
	idx := p.timer.Begin("parse")
	lx := lexer.New(p.Source, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(ctx, fs, lx, p.AST, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	p.FileID = res.File
	if p.Bag.HasErrors() {
		p.timer.End(idx, "failed")
		return nil, &ParseError{Files: fs, Bag: p.Bag}
	}
	p.timer.End(idx, "")
	return p, nil
}

func (p *Program) reporter() diag.Reporter {
	reporters := diag.MultiReporter{
		diag.BagReporter{Bag: p.Bag},
		diag.LogReporter{Logger: p.opts.Logger, Files: p.Files},
	}
	if p.opts.Reporter != nil {
		reporters = append(reporters, p.opts.Reporter)
	}
	return reporters
}

func (p *Program) semaOptions() sema.Options {
	return sema.Options{
		Reporter:       p.reporter(),
		Files:          p.Files,
		MaxInlineDepth: p.opts.MaxInlineDepth,
	}
}

// Validate runs every switch check without producing output.
func (p *Program) Validate() error {
	return p.ValidateContext(context.Background())
}

// ValidateContext is Validate with tracing and cancellation from ctx.
func (p *Program) ValidateContext(ctx context.Context) error {
	ctx, span := trace.Start(ctx, trace.ScopePass, "validate")
	defer span.End("")

	return p.timer.Track("validate", func() error {
		return sema.Validate(ctx, p.AST, p.FileID, p.semaOptions())
	})
}

// Unroll flattens the program. On success UnrolledAST, NumQubits and
// NumClbits describe the result.
func (p *Program) Unroll() error {
	return p.UnrollContext(context.Background())
}

// UnrollContext is Unroll with tracing and cancellation from ctx.
func (p *Program) UnrollContext(ctx context.Context) error {
	return p.timer.Track("unroll", func() error {
		res, err := sema.Unroll(ctx, p.AST, p.FileID, p.semaOptions())
		if err != nil {
			return err
		}
		p.result = &res
		return nil
	})
}

// Unrolled reports whether Unroll has succeeded.
func (p *Program) Unrolled() bool { return p.result != nil }

// UnrolledAST returns the flattened tree, or nil before a successful Unroll.
func (p *Program) UnrolledAST() *ast.Builder {
	if p.result == nil {
		return nil
	}
	return p.result.AST
}

// UnrolledFile is the file of UnrolledAST.
func (p *Program) UnrolledFile() ast.FileID {
	if p.result == nil {
		return ast.NoFileID
	}
	return p.result.File
}

func (p *Program) NumQubits() int {
	if p.result == nil {
		return 0
	}
	return p.result.NumQubits
}

func (p *Program) NumClbits() int {
	if p.result == nil {
		return 0
	}
	return p.result.NumClbits
}

// Switches counts the switch statements resolved by Unroll.
func (p *Program) Switches() int {
	if p.result == nil {
		return 0
	}
	return p.result.Switches
}

// QASM prints the flattened program as OpenQASM text.
func (p *Program) QASM() (string, error) {
	if p.result == nil {
		return "", fmt.Errorf("%s: program is not unrolled", p.Name)
	}
	out, err := format.FormatFile(p.result.AST, p.result.File, format.Options{})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n") + "\n", nil
}

// Timings returns the phase report collected so far.
func (p *Program) Timings() observ.Report {
	return p.timer.Report()
}

// TimingSummary is the human-readable form of Timings.
func (p *Program) TimingSummary() string {
	return p.timer.Summary()
}

// AddTimingDiagnostic appends the phase report to Bag as an info diagnostic.
func (p *Program) AddTimingDiagnostic() {
	report := p.timer.Report()
	appendTimingDiagnostic(p.Bag, timingPayload{
		Kind:    "program",
		Path:    p.Name,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}
