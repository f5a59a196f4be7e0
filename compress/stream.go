package compress

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arloliu/codecbench/internal/fsx"
	"github.com/arloliu/codecbench/internal/pool"
)

// streamEncoder opens a compressing writer on top of w. entry is the base
// name of the source file for formats that record one.
type streamEncoder interface {
	newWriter(w io.Writer, entry string) (io.WriteCloser, error)
}

// compressStream streams src through enc into an atomically committed dst.
func compressStream(ctx context.Context, name Name, enc streamEncoder, src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%s: open source: %w", name, err)
	}
	defer in.Close()

	n, err := fsx.WriteAtomic(dst, func(w io.Writer) error {
		zw, err := enc.newWriter(w, filepath.Base(src))
		if err != nil {
			return err
		}
		if _, err := pool.Copy(zw, contextReader{ctx: ctx, r: in}); err != nil {
			_ = zw.Close()
			return err
		}

		return zw.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	return n, nil
}

// contextReader fails reads once ctx is done, which bounds in-process codecs
// by the same deadline as external tools.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}

// writeCloserFunc adapts a writer plus a close function.
type writeCloserFunc struct {
	io.Writer
	close func() error
}

func (w writeCloserFunc) Close() error {
	return w.close()
}
