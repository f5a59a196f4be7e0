package compress

import (
	"context"
	"io"
	"strconv"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/codecbench/internal/options"
)

// GzipCodec compresses a file into a single-member gzip stream.
type GzipCodec struct {
	level int
}

var _ Codec = (*GzipCodec)(nil)

// NewGzipCodec creates a gzip codec. level is clamped to 1-9.
func NewGzipCodec(level int) GzipCodec {
	return GzipCodec{level: options.Clamp(level, MinDeflateLevel, MaxDeflateLevel)}
}

func (c GzipCodec) Name() Name        { return Gzip }
func (c GzipCodec) Extension() string { return ".gz" }
func (c GzipCodec) Backend() string   { return "klauspost" }
func (c GzipCodec) Options() string   { return "level=" + strconv.Itoa(c.level) }

// Probe always succeeds; the backend is pure Go.
func (c GzipCodec) Probe() (string, error) { return builtinLocation, nil }

// Compress compresses src into dst.
func (c GzipCodec) Compress(ctx context.Context, src, dst string) (int64, error) {
	return compressStream(ctx, Gzip, c, src, dst)
}

func (c GzipCodec) newWriter(w io.Writer, entry string) (io.WriteCloser, error) {
	gw, err := gzip.NewWriterLevel(w, c.level)
	if err != nil {
		return nil, err
	}
	gw.Name = entry

	return gw, nil
}
