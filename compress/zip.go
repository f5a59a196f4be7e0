package compress

import (
	"context"
	"io"
	"strconv"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/arloliu/codecbench/internal/options"
)

// ZipCodec stores a file as the single deflated entry of a zip archive.
//
// The entry carries the source's base name and no modification time, so the
// archive layout only depends on the content and the level.
type ZipCodec struct {
	level int
}

var _ Codec = (*ZipCodec)(nil)

// NewZipCodec creates a zip codec. level is clamped to 1-9.
func NewZipCodec(level int) ZipCodec {
	return ZipCodec{level: options.Clamp(level, MinDeflateLevel, MaxDeflateLevel)}
}

func (c ZipCodec) Name() Name        { return ZIP }
func (c ZipCodec) Extension() string { return ".zip" }
func (c ZipCodec) Backend() string   { return "klauspost" }
func (c ZipCodec) Options() string   { return "level=" + strconv.Itoa(c.level) }

// Probe always succeeds; the backend is pure Go.
func (c ZipCodec) Probe() (string, error) { return builtinLocation, nil }

// Compress compresses src into dst.
func (c ZipCodec) Compress(ctx context.Context, src, dst string) (int64, error) {
	return compressStream(ctx, ZIP, c, src, dst)
}

func (c ZipCodec) newWriter(w io.Writer, entry string) (io.WriteCloser, error) {
	zw := zip.NewWriter(w)
	level := c.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:   entry,
		Method: zip.Deflate,
	})
	if err != nil {
		_ = zw.Close()
		return nil, err
	}

	return writeCloserFunc{Writer: fw, close: zw.Close}, nil
}
