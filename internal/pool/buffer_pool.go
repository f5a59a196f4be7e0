package pool

import (
	"io"
	"sync"
)

// CopyBufferDefaultSize is the size of buffers handed out by the default copy pool.
const CopyBufferDefaultSize = 1024 * 256 // 256KiB

// Buffer is a fixed-size scratch buffer used to stream file contents into codecs.
type Buffer struct {
	// B is the underlying byte slice. Its length is always the pool's buffer size.
	B []byte
}

// NewBuffer creates a new Buffer of the given size.
func NewBuffer(size int) *Buffer {
	return &Buffer{B: make([]byte, size)}
}

// BufferPool is a pool of fixed-size Buffers.
//
// It uses sync.Pool internally; buffers whose slice was replaced with one of a
// different size are dropped on Put instead of being recycled.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new BufferPool with buffers of the given size.
func NewBufferPool(size int) *BufferPool {
	if size <= 0 {
		size = CopyBufferDefaultSize
	}

	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewBuffer(size)
			},
		},
		size: size,
	}
}

// Get retrieves a Buffer from the pool.
func (bp *BufferPool) Get() *Buffer {
	b, _ := bp.pool.Get().(*Buffer)
	return b
}

// Put returns a Buffer to the pool for reuse.
func (bp *BufferPool) Put(b *Buffer) {
	if b == nil || len(b.B) != bp.size {
		return
	}

	bp.pool.Put(b)
}

// Copy copies src to dst through a pooled buffer and returns the number of bytes copied.
func (bp *BufferPool) Copy(dst io.Writer, src io.Reader) (int64, error) {
	b := bp.Get()
	defer bp.Put(b)

	return io.CopyBuffer(dst, src, b.B)
}

var copyDefaultPool = NewBufferPool(CopyBufferDefaultSize)

// Copy copies src to dst through a buffer from the default copy pool.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	return copyDefaultPool.Copy(dst, src)
}
