package project

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// Emit formats understood by `qasmc unroll --emit`.
var EmitFormats = []string{"qasm", "json", "yaml", "msgpack"}

// DefaultMaxInlineDepth bounds nested gate and subroutine expansion.
const DefaultMaxInlineDepth = 64

// Config mirrors qasmc.toml.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Unroll      UnrollConfig      `toml:"unroll"`
	Cache       CacheConfig       `toml:"cache"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type UnrollConfig struct {
	MaxInlineDepth int    `toml:"max_inline_depth"`
	Emit           string `toml:"emit"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Manifest is a loaded qasmc.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Defaults returns the configuration used when no project file exists.
func Defaults() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
		Unroll:      UnrollConfig{MaxInlineDepth: DefaultMaxInlineDepth, Emit: "qasm"},
	}
}

// LoadManifest finds and decodes qasmc.toml above startDir.
// ok is false when there is no project file; Defaults apply then.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes a project file. Keys that are absent keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	// `[cache]` без enabled означает включённый кеш
	if meta.IsDefined("cache") && !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must be non-negative, got %d", c.Diagnostics.Max)
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[diagnostics].color must be auto, on or off, got %q", c.Diagnostics.Color)
	}
	if c.Unroll.MaxInlineDepth <= 0 {
		return fmt.Errorf("[unroll].max_inline_depth must be positive, got %d", c.Unroll.MaxInlineDepth)
	}
	if !slices.Contains(EmitFormats, c.Unroll.Emit) {
		return fmt.Errorf("[unroll].emit: unsupported format %q", c.Unroll.Emit)
	}
	return nil
}
