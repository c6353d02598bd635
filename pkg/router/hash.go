// pkg/router/hash.go
package router

import (
	"errors"

	"golang.org/x/exp/constraints"

	"lrkv/pkg/btree"
)

// HashOptions configures a Hash router: B shards selected by key modulo B.
type HashOptions[K constraints.Integer, T any] struct {
	Shards int
	KeyOf  KeyFunc[K, T]
	Tree   btree.Options[T]
}

// Hash is the modulo baseline router: shard index = ((key mod B) + B) mod B.
type Hash[K constraints.Integer, T any] struct {
	keyOf  KeyFunc[K, T]
	shards []*btree.Tree[T]
}

// NewHash constructs a Hash router. Shards must be positive.
func NewHash[K constraints.Integer, T any](o HashOptions[K, T]) (*Hash[K, T], error) {
	if o.Shards <= 0 {
		return nil, errors.New("router: Shards must be positive")
	}
	if o.KeyOf == nil {
		return nil, errors.New("router: KeyOf is required")
	}
	return &Hash[K, T]{
		keyOf:  o.KeyOf,
		shards: newShards(o.Shards, o.Tree),
	}, nil
}

func (h *Hash[K, T]) shardIndex(key K) int {
	n := int64(len(h.shards))
	m := int64(key) % n
	if m < 0 {
		m += n
	}
	return int(m)
}

// ShardFor returns the shard a key routes to.
func (h *Hash[K, T]) ShardFor(key K) *btree.Tree[T] {
	return h.shards[h.shardIndex(key)]
}

// Set stores item in the shard selected by its key.
func (h *Hash[K, T]) Set(item T) (T, bool) {
	return h.ShardFor(h.keyOf(item)).Set(item)
}

// Get returns the stored item matching probe's key, if any.
func (h *Hash[K, T]) Get(probe T) (T, bool) {
	return h.ShardFor(h.keyOf(probe)).Get(probe)
}

// Delete removes the stored item matching probe's key, if any.
func (h *Hash[K, T]) Delete(probe T) (T, bool) {
	return h.ShardFor(h.keyOf(probe)).Delete(probe)
}

// Count returns the total number of items across every shard.
func (h *Hash[K, T]) Count() int { return shardsCount(h.shards) }
