//go:build !yokesync

package yoke

// SyncCart reports whether carts may be shared between goroutines.
// Build with -tags yokesync to enable atomic reference counting.
const SyncCart = false

// refcount is a plain counter. Carts built this way must stay on one goroutine.
type refcount struct {
	n int
}

func (r *refcount) init()     { r.n = 1 }
func (r *refcount) inc()      { r.n++ }
func (r *refcount) dec() int  { r.n--; return r.n }
func (r *refcount) load() int { return r.n }
