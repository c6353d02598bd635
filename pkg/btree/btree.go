// pkg/btree/btree.go
package btree

// Tree is a generic, in-memory, ordered B-tree with copy-on-write structural
// sharing. It is not safe for concurrent use by multiple goroutines against
// the same header; a Clone gives an independent header that may be driven
// from a different goroutine than the one the original tree is used from,
// provided each header is itself used by only one goroutine at a time.
type Tree[T any] struct {
	opts     Options[T]
	root     *node[T]
	count    int
	height   int
	maxItems int
	minItems int
	oom      bool
}

// New constructs an empty Tree. Compare is required; all other Options
// fields are optional.
func New[T any](opts Options[T]) *Tree[T] {
	if opts.Compare == nil {
		panic("btree: Options.Compare is required")
	}
	maxItems, minItems := normalizeMaxItems(opts.MaxItems)
	return &Tree[T]{
		opts:     opts,
		maxItems: maxItems,
		minItems: minItems,
	}
}

func (t *Tree[T]) allocOK() bool {
	if t.opts.Allocator == nil {
		return true
	}
	return t.opts.Allocator.Alloc()
}

func (t *Tree[T]) newNode(leaf bool) (*node[T], bool) {
	if !t.allocOK() {
		t.oom = true
		return nil, false
	}
	return &node[T]{leaf: leaf}, true
}

// Count returns the number of items in the tree.
func (t *Tree[T]) Count() int { return t.count }

// Height returns the number of nodes on any root-to-leaf path (0 when
// empty).
func (t *Tree[T]) Height() int { return t.height }

// OOM reports whether the most recent mutating call failed due to
// allocation failure.
func (t *Tree[T]) OOM() bool { return t.oom }

// Clear empties the tree, running the Free hook (if set) over every item
// this header solely owns; items still shared with a clone are left intact
// for that clone.
func (t *Tree[T]) Clear() {
	if t.root != nil {
		t.root.free(&t.opts)
	}
	t.root = nil
	t.count = 0
	t.height = 0
	t.oom = false
}

// Clone returns an independent Tree sharing all current node storage with
// the receiver. Writes on either side lazily materialize private copies
// (copy-on-write); the clone's view is unaffected by subsequent mutation on
// the original and vice versa.
func (t *Tree[T]) Clone() *Tree[T] {
	nt := &Tree[T]{
		opts:     t.opts,
		root:     t.root,
		count:    t.count,
		height:   t.height,
		maxItems: t.maxItems,
		minItems: t.minItems,
	}
	if t.root != nil {
		t.root.rc.fetchAdd(1)
	}
	return nt
}

// splitNode splits a full node (exactly maxItems items) into itself
// (truncated) and a new right sibling, returning the promoted median item.
func (t *Tree[T]) splitNode(n *node[T]) (median T, right *node[T], ok bool) {
	right, ok = t.newNode(n.leaf)
	var zero T
	if !ok {
		return zero, nil, false
	}
	mid := t.maxItems / 2
	right.items = append([]T(nil), n.items[mid+1:]...)
	median = n.items[mid]
	if !n.leaf {
		right.children = append([]*node[T](nil), n.children[mid+1:]...)
		n.children = n.children[:mid+1:mid+1]
	}
	n.items = n.items[:mid:mid]
	return median, right, true
}

// nodeSet recursively inserts or replaces item in the subtree rooted at n.
// It returns the (possibly copy-on-write-replaced) node, the previous item
// when one was replaced, whether a previous item existed, whether n must be
// split by the caller because it has no room, and whether allocation
// succeeded throughout.
func (t *Tree[T]) nodeSet(n *node[T], item T, hint *Hint, depth int) (*node[T], T, bool, bool, bool) {
	var zero T
	n, ok := cow(n, &t.opts)
	if !ok {
		return nil, zero, false, false, false
	}
	idx, found := n.search(item, &t.opts, hint, depth)
	if found {
		prev := n.items[idx]
		n.items[idx] = item
		return n, prev, true, false, true
	}
	if n.leaf {
		if len(n.items) >= t.maxItems {
			return n, zero, false, true, true
		}
		n.items = insertAt(n.items, idx, item)
		return n, zero, false, false, true
	}
	newChild, prev, hadPrev, mustSplit, ok2 := t.nodeSet(n.children[idx], item, hint, depth+1)
	if !ok2 {
		return nil, zero, false, false, false
	}
	n.children[idx] = newChild
	if hadPrev {
		return n, prev, true, false, true
	}
	if !mustSplit {
		return n, zero, false, false, true
	}
	if len(n.items) >= t.maxItems {
		return n, zero, false, true, true
	}
	median, right, ok3 := t.splitNode(newChild)
	if !ok3 {
		return nil, zero, false, false, false
	}
	n.items = insertAt(n.items, idx, median)
	n.children = insertAt(n.children, idx+1, right)
	return t.nodeSet(n, item, hint, depth)
}

func (t *Tree[T]) insertNoClone(item T, hint *Hint) (T, bool) {
	var zero T
	if t.root == nil {
		n, ok := t.newNode(true)
		if !ok {
			return zero, false
		}
		n.items = append(n.items, item)
		t.root = n
		t.count = 1
		t.height = 1
		return zero, false
	}
	newRoot, prev, hadPrev, mustSplit, ok := t.nodeSet(t.root, item, hint, 0)
	if !ok {
		t.oom = true
		return zero, false
	}
	t.root = newRoot
	if mustSplit {
		newRootNode, ok3 := t.newNode(false)
		if !ok3 {
			return zero, false
		}
		median, right, ok2 := t.splitNode(t.root)
		if !ok2 {
			return zero, false
		}
		newRootNode.items = append(newRootNode.items, median)
		newRootNode.children = append(newRootNode.children, t.root, right)
		t.root = newRootNode
		t.height++
		return t.insertNoClone(item, hint)
	}
	if hadPrev {
		return prev, true
	}
	t.count++
	return zero, false
}

// Set inserts item, or replaces the item with an equal key, returning the
// previous item and true when one existed.
func (t *Tree[T]) Set(item T) (T, bool) {
	return t.setHint(item, nil)
}

// SetHint is Set seeded by and updating a search-path hint.
func (t *Tree[T]) SetHint(item T, hint *Hint) (T, bool) {
	return t.setHint(item, hint)
}

func (t *Tree[T]) setHint(item T, hint *Hint) (T, bool) {
	t.oom = false
	toStore := item
	if t.opts.Clone != nil {
		cl, ok := t.opts.Clone(item)
		if !ok {
			t.oom = true
			var zero T
			return zero, false
		}
		toStore = cl
	}
	return t.insertNoClone(toStore, hint)
}

// Get returns the item with the given key, if any.
func (t *Tree[T]) Get(key T) (T, bool) {
	return t.getHint(key, nil)
}

// GetHint is Get seeded by and updating a search-path hint.
func (t *Tree[T]) GetHint(key T, hint *Hint) (T, bool) {
	return t.getHint(key, hint)
}

func (t *Tree[T]) getHint(key T, hint *Hint) (T, bool) {
	n := t.root
	depth := 0
	for n != nil {
		idx, found := n.search(key, &t.opts, hint, depth)
		if found {
			return n.items[idx], true
		}
		if n.leaf {
			break
		}
		n = n.children[idx]
		depth++
	}
	var zero T
	return zero, false
}

// Min returns the smallest item in the tree, if any.
func (t *Tree[T]) Min() (T, bool) {
	n := t.root
	if n == nil {
		var zero T
		return zero, false
	}
	for !n.leaf {
		n = n.children[0]
	}
	if len(n.items) == 0 {
		var zero T
		return zero, false
	}
	return n.items[0], true
}

// Max returns the largest item in the tree, if any.
func (t *Tree[T]) Max() (T, bool) {
	n := t.root
	if n == nil {
		var zero T
		return zero, false
	}
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	if len(n.items) == 0 {
		var zero T
		return zero, false
	}
	return n.items[len(n.items)-1], true
}

// Load is a bulk-insert entry point: for strictly increasing input it
// appends in O(1) amortized time along the rightmost spine, falling back to
// Set otherwise. The item is cloned (if a Clone hook is set) exactly once
// regardless of which path is taken.
func (t *Tree[T]) Load(item T) (T, bool) {
	t.oom = false
	var zero T
	toStore := item
	if t.opts.Clone != nil {
		cl, ok := t.opts.Clone(item)
		if !ok {
			t.oom = true
			return zero, false
		}
		toStore = cl
	}
	if t.root == nil {
		return t.insertNoClone(toStore, nil)
	}
	newRoot, appended, ok := t.loadAppend(t.root, toStore)
	if !ok {
		t.oom = true
		return zero, false
	}
	t.root = newRoot
	if appended {
		t.count++
		return zero, false
	}
	return t.insertNoClone(toStore, nil)
}

func (t *Tree[T]) loadAppend(n *node[T], item T) (*node[T], bool, bool) {
	if !n.leaf {
		nn, ok := cow(n, &t.opts)
		if !ok {
			return nil, false, false
		}
		newChild, appended, ok2 := t.loadAppend(nn.children[len(nn.children)-1], item)
		if !ok2 {
			return nil, false, false
		}
		nn.children[len(nn.children)-1] = newChild
		return nn, appended, true
	}
	if len(n.items) >= t.maxItems {
		return n, false, true
	}
	if t.opts.Compare(n.items[len(n.items)-1], item) >= 0 {
		return n, false, true
	}
	nn, ok := cow(n, &t.opts)
	if !ok {
		return nil, false, false
	}
	nn.items = append(nn.items, item)
	return nn, true, true
}
