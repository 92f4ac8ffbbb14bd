package sim

import (
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
)

// SnapshotPool recycles snapshot buffers for callers that read positions
// every frame, such as live renderers.
type SnapshotPool struct {
	pool sync.Pool
	size int
}

func NewSnapshotPool(capacity int) *SnapshotPool {
	return &SnapshotPool{
		size: capacity,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]cloth.Sample, 0, capacity)
			},
		},
	}
}

func (p *SnapshotPool) Get() []cloth.Sample {
	return p.pool.Get().([]cloth.Sample)[:0]
}

func (p *SnapshotPool) Put(s []cloth.Sample) {
	if cap(s) >= p.size {
		p.pool.Put(s[:0])
	}
}

// Take fills a pooled buffer with the cloth's current snapshot.
func (p *SnapshotPool) Take(c *cloth.Cloth) []cloth.Sample {
	return c.SnapshotInto(p.Get())
}
