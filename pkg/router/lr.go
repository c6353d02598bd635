// pkg/router/lr.go
package router

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/exp/constraints"

	"lrkv/pkg/btree"
)

const lrFitSamples = 500

// LROptions configures an LR (learned-index) router.
type LROptions[K constraints.Integer, T any] struct {
	Mean, StdDev          float64
	Segments              int
	ShardsPerSegment      int
	Left, Right           K
	KeyOf                 KeyFunc[K, T]
	Tree                  btree.Options[T]
}

type lrLeaf[T any] struct {
	k, b   float64
	shards []*btree.Tree[T]
}

// LR is the CDF-segmented, linear-fit learned-index router: the key space is
// split into equiprobable segments under an assumed normal distribution, and
// each segment picks a shard via a line fit to its local renormalized CDF.
type LR[K constraints.Integer, T any] struct {
	left, right   K
	rightEndpoint []K
	leaves        []lrLeaf[T]
	keyOf         KeyFunc[K, T]
}

// NewLR constructs an LR router. Segments and ShardsPerSegment must be
// positive and Right must exceed Left; these are constructor-validation
// errors. A strictly-increasing-endpoints or zero-variance-fit violation
// (inconsistent mean/stddev/bounds) is a fatal precondition failure and
// panics rather than returning an error.
func NewLR[K constraints.Integer, T any](o LROptions[K, T]) (*LR[K, T], error) {
	if o.Right <= o.Left {
		return nil, errors.New("router: Right must be greater than Left")
	}
	if o.Segments <= 0 {
		return nil, errors.New("router: Segments must be positive")
	}
	if o.ShardsPerSegment <= 0 {
		return nil, errors.New("router: ShardsPerSegment must be positive")
	}
	if o.KeyOf == nil {
		return nil, errors.New("router: KeyOf is required")
	}

	S := o.Segments
	left64, right64 := float64(o.Left), float64(o.Right)
	rightEndpoint := make([]K, S)
	for i := 0; i < S; i++ {
		p := float64(i+1) / float64(S)
		x := invNormalCDF(p, o.Mean, o.StdDev)
		if x < left64 {
			x = left64
		}
		if x > right64 {
			x = right64
		}
		rightEndpoint[i] = K(x)
	}
	rightEndpoint[S-1] = o.Right

	for i := 1; i < S; i++ {
		if rightEndpoint[i] <= rightEndpoint[i-1] {
			panic("router: LR segment endpoints are not strictly increasing")
		}
	}

	leaves := make([]lrLeaf[T], S)
	segLeft := o.Left
	for i := 0; i < S; i++ {
		segRight := rightEndpoint[i]
		k, b := fitSegment(float64(segLeft), float64(segRight), o.Mean, o.StdDev, o.ShardsPerSegment)
		leaves[i] = lrLeaf[T]{
			k:      k,
			b:      b,
			shards: newShards(o.ShardsPerSegment, o.Tree),
		}
		segLeft = segRight
	}

	return &LR[K, T]{
		left:          o.Left,
		right:         o.Right,
		rightEndpoint: rightEndpoint,
		leaves:        leaves,
		keyOf:         o.KeyOf,
	}, nil
}

// fitSegment samples up to lrFitSamples evenly spaced points across
// (segLeft, segRight], evaluates the parent CDF at each, rescales so the
// segment's left edge maps to 0 and right edge maps to B-1, and fits a line
// by closed-form least squares.
func fitSegment(segLeft, segRight, mu, sigma float64, shards int) (k, b float64) {
	n := lrFitSamples
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	span := segRight - segLeft
	scale := float64(shards - 1)
	if shards == 1 {
		return 0, 0
	}
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		x := segLeft + frac*span
		xs[i] = x
		cdf := normalCDF(x, mu, sigma)
		cdfLeft := normalCDF(segLeft, mu, sigma)
		cdfRight := normalCDF(segRight, mu, sigma)
		denom := cdfRight - cdfLeft
		var y float64
		if denom == 0 {
			y = frac * scale
		} else {
			y = (cdf - cdfLeft) / denom * scale
		}
		ys[i] = y
	}
	return leastSquares(xs, ys)
}

func (r *LR[K, T]) segmentFor(key K) int {
	s := sort.Search(len(r.rightEndpoint), func(i int) bool {
		return r.rightEndpoint[i] >= key
	})
	if s >= len(r.rightEndpoint) {
		s = len(r.rightEndpoint) - 1
	}
	return s
}

func (r *LR[K, T]) shardIndex(key K) (seg, idx int) {
	seg = r.segmentFor(key)
	leaf := &r.leaves[seg]
	idx = int(math.Floor(leaf.k*float64(key) + leaf.b))
	return seg, clampIndex(idx, len(leaf.shards))
}

// ShardFor returns the shard a key routes to.
func (r *LR[K, T]) ShardFor(key K) *btree.Tree[T] {
	seg, idx := r.shardIndex(key)
	return r.leaves[seg].shards[idx]
}

// Set stores item in the shard selected by its key.
func (r *LR[K, T]) Set(item T) (T, bool) {
	return r.ShardFor(r.keyOf(item)).Set(item)
}

// Get returns the stored item matching probe's key, if any.
func (r *LR[K, T]) Get(probe T) (T, bool) {
	return r.ShardFor(r.keyOf(probe)).Get(probe)
}

// Delete removes the stored item matching probe's key, if any.
func (r *LR[K, T]) Delete(probe T) (T, bool) {
	return r.ShardFor(r.keyOf(probe)).Delete(probe)
}

// Count returns the total number of items across every shard.
func (r *LR[K, T]) Count() int {
	n := 0
	for i := range r.leaves {
		n += shardsCount(r.leaves[i].shards)
	}
	return n
}
