package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qasmc/internal/driver"
	"qasmc/internal/project"
)

// settings are qasmc.toml values with explicitly set flags on top.
type settings struct {
	manifest       *project.Manifest
	maxDiagnostics int
	color          string
	quiet          bool
	timings        bool
	logMode        string
	maxInlineDepth int
	emit           string
	diskCache      bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	cfg := project.Defaults()
	manifest, ok, err := project.LoadManifest(".")
	if err != nil {
		return settings{}, err
	}
	if ok {
		cfg = manifest.Config
	}
	s := settings{
		manifest:       manifest,
		maxDiagnostics: cfg.Diagnostics.Max,
		color:          cfg.Diagnostics.Color,
		maxInlineDepth: cfg.Unroll.MaxInlineDepth,
		emit:           cfg.Unroll.Emit,
		diskCache:      cfg.Cache.Enabled,
	}

	flags := cmd.Flags()
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return settings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.logMode, err = flags.GetString("log"); err != nil {
		return settings{}, fmt.Errorf("failed to get log flag: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("color") {
		if s.color, err = flags.GetString("color"); err != nil {
			return settings{}, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Lookup("max-inline-depth") != nil && flags.Changed("max-inline-depth") {
		if s.maxInlineDepth, err = flags.GetInt("max-inline-depth"); err != nil {
			return settings{}, fmt.Errorf("failed to get max-inline-depth flag: %w", err)
		}
	}
	if flags.Lookup("emit") != nil && flags.Changed("emit") {
		if s.emit, err = flags.GetString("emit"); err != nil {
			return settings{}, fmt.Errorf("failed to get emit flag: %w", err)
		}
	}
	if flags.Lookup("disk-cache") != nil && flags.Changed("disk-cache") {
		if s.diskCache, err = flags.GetBool("disk-cache"); err != nil {
			return settings{}, fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
	}
	return s, s.check()
}

func (s settings) check() error {
	switch s.color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.color)
	}
	switch s.logMode {
	case "off", "text", "json":
	default:
		return fmt.Errorf("invalid --log value %q (expected off|text|json)", s.logMode)
	}
	if s.maxDiagnostics < 0 {
		return fmt.Errorf("--max-diagnostics must not be negative")
	}
	if s.maxInlineDepth <= 0 {
		return fmt.Errorf("--max-inline-depth must be positive")
	}
	return nil
}

func (s settings) useColor(f *os.File) bool {
	return s.color == "on" || (s.color == "auto" && isTerminal(f))
}

// logger returns the slog logger handed to the driver. Diagnostics are
// already rendered by diagfmt, so logging is opt-in.
func (s settings) logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError}
	switch strings.ToLower(s.logMode) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts))
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.DiscardHandler)
	}
}

func (s settings) programOptions(w io.Writer) driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		MaxInlineDepth: s.maxInlineDepth,
		Logger:         s.logger(w),
	}
}
