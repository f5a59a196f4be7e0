package compress

import (
	"context"
	"strconv"

	"github.com/arloliu/codecbench/internal/options"
)

// ZstdCodec compresses a file into a single Zstandard frame.
//
// The pure Go backend (klauspost/compress/zstd) maps the 1-22 level range onto
// its four encoder speeds. Builds with cgo and the gozstd tag link the
// reference C library through valyala/gozstd, which honours every level.
type ZstdCodec struct {
	level int
}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a zstd codec. level is clamped to 1-22.
func NewZstdCodec(level int) ZstdCodec {
	return ZstdCodec{level: options.Clamp(level, MinZstdLevel, MaxZstdLevel)}
}

func (c ZstdCodec) Name() Name        { return Zstd }
func (c ZstdCodec) Extension() string { return ".zst" }
func (c ZstdCodec) Backend() string   { return zstdBackend }
func (c ZstdCodec) Options() string   { return "level=" + strconv.Itoa(c.level) }

// Probe succeeds when the backend selected at build time is linked.
func (c ZstdCodec) Probe() (string, error) { return builtinLocation, nil }

// Compress compresses src into dst.
func (c ZstdCodec) Compress(ctx context.Context, src, dst string) (int64, error) {
	return compressStream(ctx, Zstd, c, src, dst)
}
