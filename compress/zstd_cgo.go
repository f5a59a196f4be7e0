//go:build cgo && gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

const zstdBackend = "gozstd"

func (c ZstdCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	zw := gozstd.NewWriterLevel(w, c.level)

	return writeCloserFunc{
		Writer: zw,
		close: func() error {
			err := zw.Close()
			zw.Release()

			return err
		},
	}, nil
}
