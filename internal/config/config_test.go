package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/codecbench/bench"
	"github.com/arloliu/codecbench/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	cfg := DefaultConfig()
	var out bytes.Buffer
	err := ParseFlags(&cfg, args, &out)

	return cfg, err
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 9, cfg.GzipLevel)
	assert.Equal(t, 9, cfg.ZipLevel)
	assert.Equal(t, 9, cfg.XZPreset)
	assert.False(t, cfg.XZExtreme)
	assert.Equal(t, 22, cfg.ZstdLevel)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, bench.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.Equal(t, compress.DefaultOptions(), cfg.CodecOptions())
}

func TestParseFlags_Full(t *testing.T) {
	cfg, err := parse(t,
		"--out-dir", "/tmp/out",
		"--ext", ".TXT,png",
		"--ext", ".csv",
		"--max-files", "10",
		"--algos", "gz,zstd,7zip",
		"--require", "7z",
		"--workers", "4",
		"--force", "--strict",
		"--gzip-level", "6",
		"--xz-preset", "3", "--xz-extreme",
		"--zstd-level", "19",
		"--lz4-level", "4",
		"--timeout", "30s",
		"-v", "--log", "/tmp/run.log", "--no-color",
		"/data/input/",
	)
	require.NoError(t, err)

	assert.Equal(t, "/data/input", cfg.InputDir)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, []string{".TXT", "png", ".csv"}, cfg.Extensions)
	assert.Equal(t, 10, cfg.MaxFiles)
	assert.Equal(t, []compress.Name{compress.Gzip, compress.Zstd, compress.SevenZip}, cfg.Algos)
	assert.Equal(t, []compress.Name{compress.SevenZip}, cfg.Require)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Force)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 6, cfg.GzipLevel)
	assert.Equal(t, 3, cfg.XZPreset)
	assert.True(t, cfg.XZExtreme)
	assert.Equal(t, 19, cfg.ZstdLevel)
	assert.Equal(t, 4, cfg.LZ4Level)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/tmp/run.log", cfg.LogFile)
	assert.Equal(t, ColorNever, cfg.ColorMode)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".txt", ".png", ".csv"}, cfg.Extensions)
}

func TestParseFlags_InterleavedPositional(t *testing.T) {
	cfg, err := parse(t, "/data", "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.InputDir)
	assert.Equal(t, 2, cfg.Workers)
}

func TestParseFlags_UnknownCodec(t *testing.T) {
	_, err := parse(t, "--algos", "zip,brotli", "/data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), compress.ErrUnknownCodec.Error())
}

func TestParseFlags_PositionalCount(t *testing.T) {
	_, err := parse(t)
	require.Error(t, err)

	_, err = parse(t, "/a", "/b")
	require.Error(t, err)

	cfg, err := parse(t, "--check")
	require.NoError(t, err)
	assert.True(t, cfg.CheckOnly)
}

func TestParseFlags_HelpAndVersion(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	require.ErrorIs(t, ParseFlags(&cfg, []string{"--help"}, &out), ErrHelp)
	assert.Contains(t, out.String(), "--algos <list>")

	out.Reset()
	require.ErrorIs(t, ParseFlags(&cfg, []string{"-V"}, &out), ErrVersion)
	assert.Contains(t, out.String(), "codecbench v"+Version)
}

func TestParseFlags_ColorPrecedence(t *testing.T) {
	cfg, err := parse(t, "--color", "--no-color", "/data")
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.ColorMode)

	cfg, err = parse(t, "--color", "/data")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.ColorMode)
}

func TestValidate_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		check func(*testing.T, Config)
	}{
		{"gzip too high", func(c *Config) { c.GzipLevel = 42 }, func(t *testing.T, c Config) { assert.Equal(t, 9, c.GzipLevel) }},
		{"gzip too low", func(c *Config) { c.GzipLevel = -3 }, func(t *testing.T, c Config) { assert.Equal(t, 1, c.GzipLevel) }},
		{"xz preset negative", func(c *Config) { c.XZPreset = -1 }, func(t *testing.T, c Config) { assert.Equal(t, 0, c.XZPreset) }},
		{"zstd too high", func(c *Config) { c.ZstdLevel = 99 }, func(t *testing.T, c Config) { assert.Equal(t, 22, c.ZstdLevel) }},
		{"lz4 zero", func(c *Config) { c.LZ4Level = 0 }, func(t *testing.T, c Config) { assert.Equal(t, 1, c.LZ4Level) }},
		{"workers zero", func(c *Config) { c.Workers = 0 }, func(t *testing.T, c Config) { assert.Equal(t, 1, c.Workers) }},
		{"max files negative", func(c *Config) { c.MaxFiles = -5 }, func(t *testing.T, c Config) { assert.Equal(t, 0, c.MaxFiles) }},
		{"timeout zero", func(c *Config) { c.Timeout = 0 }, func(t *testing.T, c Config) { assert.Equal(t, bench.DefaultTimeout, c.Timeout) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/data"
			tt.mut(&cfg)
			require.NoError(t, cfg.Validate())
			tt.check(t, cfg)
		})
	}
}

func TestValidate_Paths(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate(), "input directory is required")

	cfg.InputDir = "/data"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join("/data", DefaultOutputDirName), cfg.OutputDir)

	cfg = DefaultConfig()
	cfg.CheckOnly = true
	require.NoError(t, cfg.Validate())
}

func TestValidate_ColorMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.ColorMode = "rainbow"
	require.Error(t, cfg.Validate())
}

func TestConfig_Derived(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = "/data"
	cfg.OutputDir = "/out"
	cfg.Force = true
	cfg.Extensions = []string{"txt"}
	cfg.MaxFiles = 3
	require.NoError(t, cfg.Validate())

	p := cfg.Policy()
	assert.Equal(t, bench.Policy{OutDir: "/out", Force: true, Timeout: bench.DefaultTimeout}, p)

	d := cfg.DiscoverOptions()
	assert.Equal(t, "/out", d.OutputRoot)
	assert.Equal(t, []string{".txt"}, d.Extensions)
	assert.Equal(t, 3, d.MaxFiles)
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/media/library", "/media/library"},
		{"/media/library///", "/media/library"},
		{"/", "/"},
		{"output/", "output"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDirArg(tt.in), tt.in)
	}
}
