// pkg/btree/node.go
package btree

// node is either a leaf or an internal node. Internal nodes carry one more
// child than item (children[i] holds items < items[i], children[i+1] holds
// items > items[i]); leaves carry items only. The kind is a one-bit tag
// rather than a subtype so copy-on-write duplication and split/merge stay
// path-uniform.
type node[T any] struct {
	rc       rc
	leaf     bool
	items    []T
	children []*node[T]
}

func (n *node[T]) itemCount() int {
	return len(n.items)
}

// bsearch performs a plain binary search for key among n.items.
func (n *node[T]) bsearch(key T, cmp CompareFunc[T]) (int, bool) {
	lo, hi := 0, len(n.items)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c := cmp(n.items[mid], key)
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// bsearchHint is a hint-seeded binary search: the hint byte for this depth
// names a starting probe index that, on a miss, narrows one search bound
// before falling back to ordinary binary search over the remaining range.
// The hint is then updated with the final index. Results are identical to
// bsearch regardless of what the hint held going in.
func (n *node[T]) bsearchHint(key T, cmp CompareFunc[T], hint *Hint, depth int) (int, bool) {
	nitems := len(n.items)
	lo, hi := 0, nitems
	if depth < len(hint) {
		idx := int(hint[depth])
		if idx > 0 && nitems > 0 {
			if idx >= nitems {
				idx = nitems - 1
			}
			c := cmp(n.items[idx], key)
			switch {
			case c == 0:
				hint[depth] = byte(idx)
				return idx, true
			case c < 0:
				lo = idx + 1
			default:
				hi = idx
			}
		}
	}
	found := false
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c := cmp(n.items[mid], key)
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			lo = mid
			found = true
			lo, hi = mid, mid
		}
	}
	if depth < len(hint) {
		v := lo
		if v > 255 {
			v = 255
		}
		hint[depth] = byte(v)
	}
	return lo, found
}

// search dispatches to a custom searcher if configured, else hint-seeded or
// plain binary search.
func (n *node[T]) search(key T, o *Options[T], hint *Hint, depth int) (int, bool) {
	if o.Searcher != nil {
		return o.Searcher(n.items, key)
	}
	if hint == nil {
		return n.bsearch(key, o.Compare)
	}
	return n.bsearchHint(key, o.Compare, hint, depth)
}

// cowCopy duplicates a node for copy-on-write: children are shallow-copied
// with their reference counts bumped first, then items are deep-copied via
// the clone hook (if set). A clone failure partway through unwinds the
// already-bumped child refcounts and frees the items already cloned.
func (n *node[T]) cowCopy(o *Options[T]) (*node[T], bool) {
	nn := &node[T]{leaf: n.leaf}
	if !n.leaf {
		nn.children = make([]*node[T], len(n.children))
		copy(nn.children, n.children)
		for _, c := range nn.children {
			c.rc.fetchAdd(1)
		}
	}
	nn.items = make([]T, len(n.items))
	if o.Clone != nil {
		for i, it := range n.items {
			cl, ok := o.Clone(it)
			if !ok {
				if !n.leaf {
					for _, c := range nn.children {
						c.rc.fetchAdd(-1)
					}
				}
				if o.Free != nil {
					for j := 0; j < i; j++ {
						o.Free(nn.items[j])
					}
				}
				return nil, false
			}
			nn.items[i] = cl
		}
	} else {
		copy(nn.items, n.items)
	}
	return nn, true
}

// free decrements the node's refcount; if it was the sole owner (old value
// 0), it recursively frees children and releases items via the free hook.
func (n *node[T]) free(o *Options[T]) {
	if old := n.rc.fetchAdd(-1); old > 0 {
		return
	}
	if !n.leaf {
		for _, c := range n.children {
			c.free(o)
		}
	}
	if o.Free != nil {
		for _, it := range n.items {
			o.Free(it)
		}
	}
}

// cow returns n unchanged if it is solely owned (rc==0), else a fresh
// duplicate with the original's sharer count reduced by one.
func cow[T any](n *node[T], o *Options[T]) (*node[T], bool) {
	if n.rc.load() == 0 {
		return n, true
	}
	nn, ok := n.cowCopy(o)
	if !ok {
		return nil, false
	}
	n.rc.fetchAdd(-1)
	return nn, true
}

func insertAt[T any](s []T, pos int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}

func deleteAt[T any](s []T, pos int) []T {
	copy(s[pos:], s[pos+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}
