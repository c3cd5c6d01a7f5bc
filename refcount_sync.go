//go:build yokesync

package yoke

import "sync/atomic"

// SyncCart reports whether carts may be shared between goroutines.
const SyncCart = true

type refcount struct {
	n atomic.Int64
}

func (r *refcount) init()     { r.n.Store(1) }
func (r *refcount) inc()      { r.n.Add(1) }
func (r *refcount) dec() int  { return int(r.n.Add(-1)) }
func (r *refcount) load() int { return int(r.n.Load()) }
