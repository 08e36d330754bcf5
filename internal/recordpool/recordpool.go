// Package recordpool implements an optional per-goroutine Record free list,
// letting callers recycle Record allocations across Load calls made from
// the same goroutine. The pool is purely an allocation optimization and
// must never be observable in semantics — Acquire always returns a record
// indistinguishable from a freshly-constructed one.
package recordpool

import (
	"sync"

	"github.com/aalhour/xdata/internal/recordmodel"
)

// Pool is a free list of *recordmodel.Record values. The zero value is
// ready to use. Pool is safe for concurrent use, though cross-goroutine
// sharing has no benefit since a released record is otherwise
// goroutine-local garbage; it is built on sync.Pool.
type Pool struct {
	once sync.Once
	pool sync.Pool
}

func (p *Pool) init() {
	p.once.Do(func() {
		p.pool.New = func() any { return recordmodel.New() }
	})
}

// Acquire returns a cleared record, either freshly allocated or recycled
// from a prior Release.
func (p *Pool) Acquire() *recordmodel.Record {
	p.init()
	return p.pool.Get().(*recordmodel.Record)
}

// Release clears rec and returns it to the pool for reuse. rec must not be
// used by the caller afterward.
func (p *Pool) Release(rec *recordmodel.Record) {
	p.init()
	if rec == nil {
		return
	}
	rec.Reset()
	p.pool.Put(rec)
}
