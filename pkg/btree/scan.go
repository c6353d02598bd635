// pkg/btree/scan.go
package btree

// AscendFunc is called with each visited item in increasing order; returning
// false stops the scan early.
type AscendFunc[T any] func(item T) bool

// DescendFunc is the decreasing-order counterpart of AscendFunc.
type DescendFunc[T any] func(item T) bool

// Ascend calls iter with every item greater than or equal to pivot, in
// increasing order, until iter returns false or the items are exhausted. A
// nil pivot starts from the smallest item.
func (t *Tree[T]) Ascend(pivot *T, iter AscendFunc[T]) {
	t.ascendHint(pivot, iter, nil)
}

// AscendHint is Ascend seeded by and updating a search-path hint.
func (t *Tree[T]) AscendHint(pivot *T, iter AscendFunc[T], hint *Hint) {
	t.ascendHint(pivot, iter, hint)
}

func (t *Tree[T]) ascendHint(pivot *T, iter AscendFunc[T], hint *Hint) {
	if t.root == nil {
		return
	}
	t.nodeAscend(t.root, pivot, iter, hint, 0)
}

// nodeAscend visits the subtree rooted at n in increasing order starting
// from pivot (or from the beginning, if pivot is nil), returning false if
// iter asked to stop.
func (t *Tree[T]) nodeAscend(n *node[T], pivot *T, iter AscendFunc[T], hint *Hint, depth int) bool {
	start := 0
	if pivot != nil {
		idx, found := n.search(*pivot, &t.opts, hint, depth)
		if found {
			if !iter(n.items[idx]) {
				return false
			}
			if !n.leaf {
				if !t.nodeAscend(n.children[idx+1], nil, iter, hint, depth+1) {
					return false
				}
			}
			start = idx + 1
			for i := start; i < len(n.items); i++ {
				if !iter(n.items[i]) {
					return false
				}
				if !n.leaf {
					if !t.nodeAscend(n.children[i+1], nil, iter, hint, depth+1) {
						return false
					}
				}
			}
			return true
		}
		start = idx
		if !n.leaf {
			if !t.nodeAscend(n.children[start], pivot, iter, hint, depth+1) {
				return false
			}
		}
	} else if !n.leaf {
		if !t.nodeAscend(n.children[0], nil, iter, hint, depth+1) {
			return false
		}
	}
	for i := start; i < len(n.items); i++ {
		if !iter(n.items[i]) {
			return false
		}
		if !n.leaf {
			if !t.nodeAscend(n.children[i+1], nil, iter, hint, depth+1) {
				return false
			}
		}
	}
	return true
}

// Descend calls iter with every item less than or equal to pivot, in
// decreasing order, until iter returns false or the items are exhausted. A
// nil pivot starts from the largest item.
func (t *Tree[T]) Descend(pivot *T, iter DescendFunc[T]) {
	t.descendHint(pivot, iter, nil)
}

// DescendHint is Descend seeded by and updating a search-path hint.
func (t *Tree[T]) DescendHint(pivot *T, iter DescendFunc[T], hint *Hint) {
	t.descendHint(pivot, iter, hint)
}

func (t *Tree[T]) descendHint(pivot *T, iter DescendFunc[T], hint *Hint) {
	if t.root == nil {
		return
	}
	t.nodeDescend(t.root, pivot, iter, hint, 0)
}

// nodeDescend is the decreasing-order mirror of nodeAscend.
func (t *Tree[T]) nodeDescend(n *node[T], pivot *T, iter DescendFunc[T], hint *Hint, depth int) bool {
	end := len(n.items)
	if pivot != nil {
		idx, found := n.search(*pivot, &t.opts, hint, depth)
		if found {
			// items[idx] equals pivot and is the largest qualifying item in
			// this node; children[idx+1] holds only items greater than
			// pivot and must not be visited. Falling through to the shared
			// loop below with end=idx+1 visits items[idx] (and, for each
			// item, its left child) in decreasing order.
			end = idx + 1
		} else {
			end = idx
			if !n.leaf {
				if !t.nodeDescend(n.children[end], pivot, iter, hint, depth+1) {
					return false
				}
			}
		}
	} else if !n.leaf {
		if !t.nodeDescend(n.children[end], nil, iter, hint, depth+1) {
			return false
		}
	}
	for i := end - 1; i >= 0; i-- {
		if !iter(n.items[i]) {
			return false
		}
		if !n.leaf {
			if !t.nodeDescend(n.children[i], nil, iter, hint, depth+1) {
				return false
			}
		}
	}
	return true
}
