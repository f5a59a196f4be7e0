package compress

import (
	"context"
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Codec compresses a file into an S2 stream using the best compression mode.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates an s2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

func (c S2Codec) Name() Name        { return S2 }
func (c S2Codec) Extension() string { return ".s2" }
func (c S2Codec) Backend() string   { return "klauspost" }
func (c S2Codec) Options() string   { return "mode=best" }

// Probe always succeeds; the backend is pure Go.
func (c S2Codec) Probe() (string, error) { return builtinLocation, nil }

// Compress compresses src into dst.
func (c S2Codec) Compress(ctx context.Context, src, dst string) (int64, error) {
	return compressStream(ctx, S2, c, src, dst)
}

func (c S2Codec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterBestCompression(), s2.WriterConcurrency(1)), nil
}
