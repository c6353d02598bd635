// pkg/btree/rc_noatomic.go
//go:build btree_noatomics

package btree

// rc is the non-atomic variant of the node reference count, selected by the
// btree_noatomics build tag for single-threaded deployments that don't want
// to pay for atomic increments.
type rc struct {
	v int32
}

func (r *rc) load() int32 {
	return r.v
}

func (r *rc) fetchAdd(delta int32) int32 {
	old := r.v
	r.v += delta
	return old
}
