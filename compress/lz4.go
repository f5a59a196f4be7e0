package compress

import (
	"context"
	"io"
	"strconv"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/codecbench/internal/options"
)

var lz4Levels = [MaxLZ4Level + 1]lz4.CompressionLevel{
	lz4.Fast, // unused, levels start at 1
	lz4.Level1,
	lz4.Level2,
	lz4.Level3,
	lz4.Level4,
	lz4.Level5,
	lz4.Level6,
	lz4.Level7,
	lz4.Level8,
	lz4.Level9,
}

// LZ4Codec compresses a file into an LZ4 frame.
type LZ4Codec struct {
	level int
}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates an lz4 codec. level is clamped to 1-9.
func NewLZ4Codec(level int) LZ4Codec {
	return LZ4Codec{level: options.Clamp(level, MinLZ4Level, MaxLZ4Level)}
}

func (c LZ4Codec) Name() Name        { return LZ4 }
func (c LZ4Codec) Extension() string { return ".lz4" }
func (c LZ4Codec) Backend() string   { return "pierrec" }
func (c LZ4Codec) Options() string   { return "level=" + strconv.Itoa(c.level) }

// Probe always succeeds; the backend is pure Go.
func (c LZ4Codec) Probe() (string, error) { return builtinLocation, nil }

// Compress compresses src into dst.
func (c LZ4Codec) Compress(ctx context.Context, src, dst string) (int64, error) {
	return compressStream(ctx, LZ4, c, src, dst)
}

func (c LZ4Codec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(
		lz4.CompressionLevelOption(lz4Levels[c.level]),
		lz4.ConcurrencyOption(1),
	); err != nil {
		return nil, err
	}

	return zw, nil
}
