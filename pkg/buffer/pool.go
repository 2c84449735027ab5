package buffer

import (
	"sync"
)

const DefaultSize = 256 * 1024

// Pool hands out fixed-size byte slices for the stream relay. Every slice
// returned by Get has len == Size().
type Pool struct {
	pool sync.Pool
	size int
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	p := &Pool{size: size}
	p.pool.New = func() interface{} {
		b := make([]byte, size)
		return &b
	}
	return p
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) Get() []byte {
	return *(p.pool.Get().(*[]byte))
}

// Put returns b to the pool. Slices smaller than the pool size are dropped.
func (p *Pool) Put(b []byte) {
	if cap(b) < p.size {
		return
	}
	b = b[:p.size]
	p.pool.Put(&b)
}

var Default = NewPool(DefaultSize)
