// pkg/router/range.go
package router

import (
	"errors"

	"golang.org/x/exp/constraints"

	"lrkv/pkg/btree"
)

// RangeOptions configures a Range router: B equal-width shards starting at
// L, shard i taking keys in [L+i*width, L+(i+1)*width) with width = (R-L)/B
// rounded down; keys below L go to the first shard, and the last shard also
// takes every key from L+(B-1)*width upward, R and beyond included.
type RangeOptions[K constraints.Integer, T any] struct {
	Left, Right K
	Shards      int
	KeyOf       KeyFunc[K, T]
	Tree        btree.Options[T]
}

// Range is the equal-width baseline router: shard index = clamp((key-L)/width, 0, B-1).
type Range[K constraints.Integer, T any] struct {
	left, right K
	width       int64
	keyOf       KeyFunc[K, T]
	shards      []*btree.Tree[T]
}

// NewRange constructs a Range router. Right must exceed Left and Shards must
// be positive; both are constructor-validation errors, not fatal assertions.
func NewRange[K constraints.Integer, T any](o RangeOptions[K, T]) (*Range[K, T], error) {
	if o.Right <= o.Left {
		return nil, errors.New("router: Right must be greater than Left")
	}
	if o.Shards <= 0 {
		return nil, errors.New("router: Shards must be positive")
	}
	if o.KeyOf == nil {
		return nil, errors.New("router: KeyOf is required")
	}
	// Widened to int64 so near-INT_MAX bounds don't overflow before dividing.
	width := (int64(o.Right) - int64(o.Left)) / int64(o.Shards)
	if width <= 0 {
		width = 1
	}
	return &Range[K, T]{
		left:   o.Left,
		right:  o.Right,
		width:  width,
		keyOf:  o.KeyOf,
		shards: newShards(o.Shards, o.Tree),
	}, nil
}

func (r *Range[K, T]) shardIndex(key K) int {
	idx := (int64(key) - int64(r.left)) / r.width
	return clampIndex(int(idx), len(r.shards))
}

// ShardFor returns the shard a key routes to.
func (r *Range[K, T]) ShardFor(key K) *btree.Tree[T] {
	return r.shards[r.shardIndex(key)]
}

// Set stores item in the shard selected by its key, returning the previous
// item and true if one existed.
func (r *Range[K, T]) Set(item T) (T, bool) {
	return r.ShardFor(r.keyOf(item)).Set(item)
}

// Get returns the stored item matching probe's key, if any. probe need only
// have its key fields populated; Set's comparator ignores the rest.
func (r *Range[K, T]) Get(probe T) (T, bool) {
	return r.ShardFor(r.keyOf(probe)).Get(probe)
}

// Delete removes the stored item matching probe's key, returning it and
// true if it existed.
func (r *Range[K, T]) Delete(probe T) (T, bool) {
	return r.ShardFor(r.keyOf(probe)).Delete(probe)
}

// Count returns the total number of items across every shard.
func (r *Range[K, T]) Count() int { return shardsCount(r.shards) }
