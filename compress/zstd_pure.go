//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const zstdBackend = "klauspost"

// zstdEncoderPools pools encoders per level. The klauspost encoder is designed
// for reuse: after Close it can be pointed at a new writer with Reset.
var zstdEncoderPools = func() (pools [MaxZstdLevel + 1]*sync.Pool) {
	for level := MinZstdLevel; level <= MaxZstdLevel; level++ {
		encLevel := zstd.EncoderLevelFromZstd(level)
		pools[level] = &sync.Pool{
			New: func() any {
				enc, err := zstd.NewWriter(nil,
					zstd.WithEncoderLevel(encLevel),
					zstd.WithEncoderConcurrency(1), // one task, one core
				)
				if err != nil {
					// options are static, so this only fires on a library bug
					panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
				}

				return enc
			},
		}
	}

	return pools
}()

func (c ZstdCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	p := zstdEncoderPools[c.level]
	enc, _ := p.Get().(*zstd.Encoder)
	enc.Reset(w)

	return writeCloserFunc{
		Writer: enc,
		close: func() error {
			err := enc.Close()
			if err == nil {
				// only healthy encoders go back; Reset clears the old writer
				enc.Reset(nil)
				p.Put(enc)
			}

			return err
		},
	}, nil
}
