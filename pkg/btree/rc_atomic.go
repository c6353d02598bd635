// pkg/btree/rc_atomic.go
//go:build !btree_noatomics

package btree

import "sync/atomic"

// rc is a node's reference count: 0 means sole owner, N>0 means N+1 owners
// (the node is shared across that many clones). This build keeps counts
// atomic so clones may be driven from different goroutines, each serialized
// on its own header.
type rc struct {
	v atomic.Int32
}

func (r *rc) load() int32 {
	return r.v.Load()
}

// fetchAdd applies delta and returns the value from before the add.
func (r *rc) fetchAdd(delta int32) int32 {
	return r.v.Add(delta) - delta
}
