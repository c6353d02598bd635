// pkg/btree/options.go
package btree

// CompareFunc defines a strict total order over items: negative when a < b,
// zero when equal, positive when a > b. Items with equal comparison are
// treated as duplicates and replace each other on Set.
type CompareFunc[T any] func(a, b T) int

// CloneFunc deep-copies an item for storage, returning false on failure (used
// when an item owns heap resources that must not be aliased between a node
// and its copy-on-write duplicate). Optional: nil means items are copied by
// plain Go value assignment.
type CloneFunc[T any] func(item T) (T, bool)

// FreeFunc releases resources owned by an item leaving the tree for good
// (Clear, or a node-copy failure unwind). Optional.
type FreeFunc[T any] func(item T)

// SearcherFunc replaces the default binary search within a node. It must
// return the lower-bound index and whether the key was found there.
type SearcherFunc[T any] func(items []T, key T) (index int, found bool)

// Allocator models a fallible allocation source so that out-of-memory
// behavior can be exercised deterministically in tests. Alloc returns false
// to simulate an allocation failure at the next node allocation.
type Allocator interface {
	Alloc() bool
}

// Options configures a Tree at construction time.
type Options[T any] struct {
	// MaxItems bounds the number of items per node. 0 selects the default
	// degree (128, giving MaxItems=255); values are normalized to 2d-1 for
	// some degree d=(MaxItems+1)/2, capped at 2045.
	MaxItems int

	// Compare is required and must define a strict total order.
	Compare CompareFunc[T]

	// Clone and Free are optional and, when set, are used together: Clone
	// runs once per item accepted into the tree and once per item when a
	// shared node is duplicated under copy-on-write; Free runs on items
	// that leave the tree without being returned to a caller.
	Clone CloneFunc[T]
	Free  FreeFunc[T]

	// Searcher optionally overrides per-node binary search.
	Searcher SearcherFunc[T]

	// Allocator optionally overrides the (always-succeeds) default
	// allocation source.
	Allocator Allocator

	// UserData is opaque, passed through to nothing by the core directly;
	// retained for parity with the original construction contract and for
	// callers that want to stash context alongside a tree.
	UserData any
}

// Hint is a search-path accelerator: one byte per tree depth (0-7) holding
// the last-seen child/item index at that depth, clamped to [0,255]. It is
// an optimization only — correctness never depends on its contents.
type Hint [8]byte

func normalizeDegree(maxItems int) int {
	var d int
	if maxItems <= 0 {
		d = 128
	} else {
		d = (maxItems + 1) / 2
		if d == 0 {
			d = 1
		}
	}
	if d == 1 {
		d = 2
	}
	return d
}

func normalizeMaxItems(maxItems int) (maxI, minI int) {
	d := normalizeDegree(maxItems)
	maxI = 2*d - 1
	if maxI > 2045 {
		maxI = 2045
	}
	minI = maxI / 2
	return maxI, minI
}
