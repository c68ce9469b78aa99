package sim

import (
	"sync"

	"github.com/san-kum/arena/internal/dynamo"
)

// SnapshotPool recycles the per-frame body slices handed to observers.
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]dynamo.Body, 0, 16)
				return &s
			},
		},
	}
}

func (p *SnapshotPool) Get() *[]dynamo.Body {
	return p.pool.Get().(*[]dynamo.Body)
}

func (p *SnapshotPool) Put(s *[]dynamo.Body) {
	*s = (*s)[:0]
	p.pool.Put(s)
}
