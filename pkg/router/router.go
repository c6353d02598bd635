// pkg/router/router.go
package router

import (
	"golang.org/x/exp/constraints"

	"lrkv/pkg/btree"
)

// KeyFunc extracts the routing key from a stored item.
type KeyFunc[K constraints.Integer, T any] func(item T) K

// clampIndex confines idx to [0, n-1].
func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

func newShards[T any](n int, opts btree.Options[T]) []*btree.Tree[T] {
	shards := make([]*btree.Tree[T], n)
	for i := range shards {
		shards[i] = btree.New(opts)
	}
	return shards
}

// Count sums the items held across every shard.
func shardsCount[T any](shards []*btree.Tree[T]) int {
	n := 0
	for _, s := range shards {
		n += s.Count()
	}
	return n
}
