package config

// This file implements CLI flag parsing and help text.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults
// hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/codecbench/compress"
)

// Version is shown by --version; override at build time with
// -ldflags "-X github.com/arloliu/codecbench/internal/config.Version=...".
var Version = "0.1.0-dev"

var (
	// ErrHelp is returned after --help printed the usage text.
	ErrHelp = flag.ErrHelp
	// ErrVersion is returned after --version printed the version.
	ErrVersion = errors.New("version requested")
)

// ParseFlags parses args (without the program name) into cfg. Help and
// version output go to out, after which ErrHelp or ErrVersion is returned.
func ParseFlags(cfg *Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("codecbench", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(out) }

	var extra extraFlags

	defineDiscoveryFlags(fs, cfg)
	defineCodecFlags(fs, cfg)
	defineExecutionFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &extra)

	// positional arguments may be interleaved with flags
	var positional []string
	for rest := args; ; {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	applyExtraFlags(cfg, &extra)

	if extra.showHelp {
		printUsage(out)
		return ErrHelp
	}
	if extra.showVersion {
		fmt.Fprintln(out, "codecbench v"+Version)
		return ErrVersion
	}

	return parsePositionalArgs(positional, cfg)
}

// extraFlags holds booleans applied after Parse or that end parsing early.
type extraFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineDiscoveryFlags registers --out-dir, --ext and --max-files.
func defineDiscoveryFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "Output directory (default: <input>/_compression_test)")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --out-dir")
	fs.Var(&listValue{&cfg.Extensions}, "ext", "Comma-separated extension allow-list, e.g. .txt,.png")
	fs.IntVar(&cfg.MaxFiles, "max-files", cfg.MaxFiles, "Process at most N files (0 = unlimited)")
}

// defineCodecFlags registers codec selection and tunables.
func defineCodecFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&namesValue{&cfg.Algos}, "algos", "Comma-separated codecs to run")
	fs.Var(&namesValue{&cfg.Require}, "require", "Comma-separated codecs that must be available")
	fs.IntVar(&cfg.ZipLevel, "zip-level", cfg.ZipLevel, "zip deflate level (1-9)")
	fs.IntVar(&cfg.GzipLevel, "gzip-level", cfg.GzipLevel, "gzip level (1-9)")
	fs.IntVar(&cfg.XZPreset, "xz-preset", cfg.XZPreset, "xz preset (0-9)")
	fs.BoolVar(&cfg.XZExtreme, "xz-extreme", cfg.XZExtreme, "xz extreme mode")
	fs.IntVar(&cfg.ZstdLevel, "zstd-level", cfg.ZstdLevel, "zstd level (1-22)")
	fs.IntVar(&cfg.LZ4Level, "lz4-level", cfg.LZ4Level, "lz4 level (1-9)")
}

// defineExecutionFlags registers --workers, --force, --strict and --timeout.
func defineExecutionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers")
	fs.IntVar(&cfg.Workers, "j", cfg.Workers, "Same as --workers")
	fs.BoolVar(&cfg.Force, "force", cfg.Force, "Recompress even if output exists")
	fs.BoolVar(&cfg.Force, "f", cfg.Force, "Same as --force")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Exit non-zero if any codec failed")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Timeout per codec call")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log, --version and --help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *extraFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Probe codecs and exit")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

func applyExtraFlags(cfg *Config, n *extraFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the single positional argument.
func parsePositionalArgs(args []string, cfg *Config) error {
	if cfg.CheckOnly && len(args) == 0 {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input directory (got %d arguments)", len(args))
	}
	cfg.InputDir = NormalizeDirArg(args[0])

	return nil
}

func printUsage(w io.Writer) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "codecbench v" + Version + ", compression codec benchmark"},
		{"", ""},
		{"  codecbench [OPTIONS] <input_dir>", ""},
		{"", ""},
		{"Discovery", ""},
		{"  -o, --out-dir <path>", "Output directory (default: <input>/_compression_test)"},
		{"  --ext <list>", "Extension allow-list, e.g. .txt,.png"},
		{"  --max-files <n>", "Process at most n files (default: 0 = all)"},
		{"", ""},
		{"Codecs", ""},
		{"  --algos <list>", "Codecs to run (default: zip,gzip,xz,zstd,7z; also lz4,s2)"},
		{"  --require <list>", "Abort when any of these codecs is unavailable"},
		{"  --zip-level <1-9>", "zip deflate level (default: 9)"},
		{"  --gzip-level <1-9>", "gzip level (default: 9)"},
		{"  --xz-preset <0-9>", "xz preset (default: 9)"},
		{"  --xz-extreme", "xz extreme mode"},
		{"  --zstd-level <1-22>", "zstd level (default: 22)"},
		{"  --lz4-level <1-9>", "lz4 level (default: 9)"},
		{"", ""},
		{"Execution", ""},
		{"  -j, --workers <n>", "Parallel workers (default: 1)"},
		{"  -f, --force", "Recompress even if output exists"},
		{"  --strict", "Exit 1 if any codec failed"},
		{"  --timeout <dur>", "Timeout per codec call (default: 5m)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  --log <path>", "Append logs to file"},
		{"", ""},
		{"Utility", ""},
		{"  --check", "Probe codec availability and exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(w)
		case l.desc == "":
			fmt.Fprintln(w, l.flags)
		case l.flags == "":
			fmt.Fprintln(w, l.desc)
		default:
			padding := max(col1-len(l.flags), 1)
			fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}

// listValue accumulates comma-separated values; the flag may be repeated.
type listValue struct{ p *[]string }

func (v *listValue) String() string {
	if v.p == nil {
		return ""
	}

	return strings.Join(*v.p, ",")
}

func (v *listValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*v.p = append(*v.p, part)
		}
	}

	return nil
}

// namesValue parses comma-separated codec names.
type namesValue struct{ p *[]compress.Name }

func (v *namesValue) String() string {
	if v.p == nil {
		return ""
	}
	parts := make([]string, len(*v.p))
	for i, n := range *v.p {
		parts[i] = string(n)
	}

	return strings.Join(parts, ",")
}

func (v *namesValue) Set(s string) error {
	names, err := compress.ParseNames(append(namesToStrings(*v.p), strings.Split(s, ",")...))
	if err != nil {
		return err
	}
	*v.p = names

	return nil
}

func namesToStrings(names []compress.Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}

	return out
}
