package compress

import (
	"context"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"github.com/arloliu/codecbench/internal/options"
)

// xzPresetDictCap maps xz-utils presets to LZMA2 dictionary sizes.
var xzPresetDictCap = [MaxXZPreset + 1]int{
	256 << 10, // 0
	1 << 20,   // 1
	2 << 20,   // 2
	4 << 20,   // 3
	4 << 20,   // 4
	8 << 20,   // 5
	8 << 20,   // 6
	16 << 20,  // 7
	32 << 20,  // 8
	64 << 20,  // 9
}

// XZCodec compresses a file into an xz container with a single LZMA2 stream.
//
// Presets select the dictionary size the same way xz-utils does. Extreme mode
// trades speed for ratio by switching to the binary tree match finder.
type XZCodec struct {
	preset  int
	extreme bool
}

var _ Codec = (*XZCodec)(nil)

// NewXZCodec creates an xz codec. preset is clamped to 0-9.
func NewXZCodec(preset int, extreme bool) XZCodec {
	return XZCodec{
		preset:  options.Clamp(preset, MinXZPreset, MaxXZPreset),
		extreme: extreme,
	}
}

func (c XZCodec) Name() Name        { return XZ }
func (c XZCodec) Extension() string { return ".xz" }
func (c XZCodec) Backend() string   { return "ulikunitz" }

func (c XZCodec) Options() string {
	return fmt.Sprintf("preset=%d extreme=%t", c.preset, c.extreme)
}

// Probe always succeeds; the backend is pure Go.
func (c XZCodec) Probe() (string, error) { return builtinLocation, nil }

// Compress compresses src into dst.
func (c XZCodec) Compress(ctx context.Context, src, dst string) (int64, error) {
	return compressStream(ctx, XZ, c, src, dst)
}

func (c XZCodec) writerConfig() xz.WriterConfig {
	cfg := xz.WriterConfig{
		DictCap:  xzPresetDictCap[c.preset],
		CheckSum: xz.CRC64,
		Matcher:  lzma.HashTable4,
	}
	if c.extreme {
		cfg.Matcher = lzma.BinaryTree
	}

	return cfg
}

func (c XZCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	cfg := c.writerConfig()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	return cfg.NewWriter(w)
}
