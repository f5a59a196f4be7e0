// Package config holds runtime configuration: defaults, CLI flag parsing and
// validation. Out-of-range tunables are clamped, never rejected.
package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/arloliu/codecbench/bench"
	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
)

// DefaultOutputDirName is created under the input directory when no
// --out-dir is given.
const DefaultOutputDirName = "_compression_test"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overridden by [ParseFlags] and normalized by [Config.Validate]. After
// validation it is treated as read-only.
type Config struct {
	// Paths.
	InputDir  string
	OutputDir string // Default: <InputDir>/_compression_test.

	// Discovery.
	Extensions []string // Allow-list, lowercase with leading dot. Empty keeps all files.
	MaxFiles   int      // 0 means unlimited.

	// Codec selection.
	Algos   []compress.Name // Empty selects compress.DefaultNames.
	Require []compress.Name // Codecs whose absence aborts the run.

	// Codec tunables.
	ZipLevel  int  // Default: 9.
	GzipLevel int  // Default: 9.
	XZPreset  int  // Default: 9.
	XZExtreme bool // Default: false.
	ZstdLevel int  // Default: 22.
	LZ4Level  int  // Default: 9.

	// Execution.
	Workers int           // Default: 1 (sequential).
	Force   bool          // Recompress even when an output exists.
	Strict  bool          // Exit 1 when any codec failed.
	Timeout time.Duration // Per codec call. Default: 5m.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string
	CheckOnly bool // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with maximum-compression defaults.
func DefaultConfig() Config {
	opts := compress.DefaultOptions()

	return Config{
		ZipLevel:  opts.ZipLevel,
		GzipLevel: opts.GzipLevel,
		XZPreset:  opts.XZPreset,
		XZExtreme: opts.XZExtreme,
		ZstdLevel: opts.ZstdLevel,
		LZ4Level:  opts.LZ4Level,
		Workers:   1,
		Timeout:   bench.DefaultTimeout,
		ColorMode: ColorAuto,
	}
}

// Validate normalizes c in place. Numeric tunables are clamped, extensions
// are lowercased and dotted, and a missing output directory defaults to
// <input>/_compression_test. Unless in CheckOnly mode an input directory is
// required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	opts := c.CodecOptions()
	c.ZipLevel = opts.ZipLevel
	c.GzipLevel = opts.GzipLevel
	c.XZPreset = opts.XZPreset
	c.ZstdLevel = opts.ZstdLevel
	c.LZ4Level = opts.LZ4Level

	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.MaxFiles < 0 {
		c.MaxFiles = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = bench.DefaultTimeout
	}
	c.Extensions = normalizeExtensions(c.Extensions)

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need an input directory")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, DefaultOutputDirName)
	}

	return nil
}

// CodecOptions converts the codec tunables into clamped registry options.
func (c *Config) CodecOptions() compress.Options {
	return compress.Options{
		ZipLevel:  c.ZipLevel,
		GzipLevel: c.GzipLevel,
		XZPreset:  c.XZPreset,
		XZExtreme: c.XZExtreme,
		ZstdLevel: c.ZstdLevel,
		LZ4Level:  c.LZ4Level,
	}.Clamp()
}

// Policy returns the scheduler policy for this configuration.
func (c *Config) Policy() bench.Policy {
	return bench.Policy{OutDir: c.OutputDir, Force: c.Force, Timeout: c.Timeout}
}

// DiscoverOptions returns the discovery filters for this configuration.
func (c *Config) DiscoverOptions() discover.Options {
	return discover.Options{OutputRoot: c.OutputDir, Extensions: c.Extensions, MaxFiles: c.MaxFiles}
}

func normalizeExtensions(exts []string) []string {
	set := discover.NormalizeExtensions(exts)
	if len(set) == 0 {
		return nil
	}

	// keep first-seen order for display
	out := make([]string, 0, len(set))
	seen := make(map[string]bool, len(set))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if set[e] && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}

	return out
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}

	return strings.TrimRight(path, "/")
}
