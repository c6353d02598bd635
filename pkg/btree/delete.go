// pkg/btree/delete.go
package btree

// rebalance repairs an underflowed child at index i (or i-1 when i names the
// last slot) by merging it with its sibling or rotating one item across,
// copy-on-writing both siblings first since rebalancing may mutate either.
func (t *Tree[T]) rebalance(n *node[T], i int) (*node[T], bool) {
	if i == len(n.children)-1 {
		i--
	}
	left, ok := cow(n.children[i], &t.opts)
	if !ok {
		return nil, false
	}
	right, ok2 := cow(n.children[i+1], &t.opts)
	if !ok2 {
		return nil, false
	}
	n.children[i] = left
	n.children[i+1] = right

	switch {
	case left.itemCount()+right.itemCount() < t.maxItems:
		left.items = append(left.items, n.items[i])
		left.items = append(left.items, right.items...)
		if !left.leaf {
			left.children = append(left.children, right.children...)
		}
		n.items = deleteAt(n.items, i)
		n.children = deleteAt(n.children, i+1)
	case left.itemCount() > right.itemCount():
		right.items = insertAt(right.items, 0, n.items[i])
		n.items[i] = left.items[len(left.items)-1]
		left.items = left.items[:len(left.items)-1]
		if !left.leaf {
			lastChild := left.children[len(left.children)-1]
			left.children = left.children[:len(left.children)-1]
			right.children = insertAt(right.children, 0, lastChild)
		}
	default:
		left.items = append(left.items, n.items[i])
		n.items[i] = right.items[0]
		right.items = deleteAt(right.items, 0)
		if !right.leaf {
			firstChild := right.children[0]
			right.children = deleteAt(right.children, 0)
			left.children = append(left.children, firstChild)
		}
	}
	return n, true
}

// nodeDeleteKey recursively removes the item matching key from the subtree
// rooted at n. It returns the (possibly replaced) node, the removed item,
// whether it was found, and whether allocation succeeded throughout. Each
// node on the search path is copy-on-written before its child is visited, so
// the child's reference count already reflects sharing through its parent;
// a miss therefore still copies the shared nodes along the path.
func (t *Tree[T]) nodeDeleteKey(n *node[T], key T, hint *Hint, depth int) (*node[T], T, bool, bool) {
	var zero T
	nn, ok := cow(n, &t.opts)
	if !ok {
		return nil, zero, false, false
	}
	idx, found := nn.search(key, &t.opts, hint, depth)
	if nn.leaf {
		if !found {
			return nn, zero, false, true
		}
		removed := nn.items[idx]
		nn.items = deleteAt(nn.items, idx)
		return nn, removed, true, true
	}
	if found {
		child, ok2 := cow(nn.children[idx], &t.opts)
		if !ok2 {
			return nil, zero, false, false
		}
		newChild, poppedMax, _, ok3 := t.nodeDeletePopBack(child, hint, depth+1)
		if !ok3 {
			return nil, zero, false, false
		}
		removed := nn.items[idx]
		nn.items[idx] = poppedMax
		nn.children[idx] = newChild
		if newChild.itemCount() < t.minItems {
			var ok4 bool
			nn, ok4 = t.rebalance(nn, idx)
			if !ok4 {
				return nil, zero, false, false
			}
		}
		return nn, removed, true, true
	}
	newChild, removed, removedFlag, ok := t.nodeDeleteKey(nn.children[idx], key, hint, depth+1)
	if !ok {
		return nil, zero, false, false
	}
	nn.children[idx] = newChild
	if !removedFlag {
		return nn, removed, false, true
	}
	if newChild.itemCount() < t.minItems {
		var ok3 bool
		nn, ok3 = t.rebalance(nn, idx)
		if !ok3 {
			return nil, zero, false, false
		}
	}
	return nn, removed, true, true
}

// nodeDeletePopBack removes and returns the maximum item of the subtree
// rooted at n, rebalancing on the way back up.
func (t *Tree[T]) nodeDeletePopBack(n *node[T], hint *Hint, depth int) (*node[T], T, bool, bool) {
	var zero T
	nn, ok := cow(n, &t.opts)
	if !ok {
		return nil, zero, false, false
	}
	if nn.leaf {
		last := len(nn.items) - 1
		removed := nn.items[last]
		nn.items = nn.items[:last]
		return nn, removed, true, true
	}
	lastChildIdx := len(nn.children) - 1
	newChild, removed, _, ok2 := t.nodeDeletePopBack(nn.children[lastChildIdx], hint, depth+1)
	if !ok2 {
		return nil, zero, false, false
	}
	nn.children[lastChildIdx] = newChild
	if newChild.itemCount() < t.minItems {
		var ok3 bool
		nn, ok3 = t.rebalance(nn, lastChildIdx)
		if !ok3 {
			return nil, zero, false, false
		}
	}
	return nn, removed, true, true
}

// nodeDeletePopFront is the dual of nodeDeletePopBack: removes and returns
// the minimum item.
func (t *Tree[T]) nodeDeletePopFront(n *node[T], hint *Hint, depth int) (*node[T], T, bool, bool) {
	var zero T
	nn, ok := cow(n, &t.opts)
	if !ok {
		return nil, zero, false, false
	}
	if nn.leaf {
		removed := nn.items[0]
		nn.items = deleteAt(nn.items, 0)
		return nn, removed, true, true
	}
	newChild, removed, _, ok2 := t.nodeDeletePopFront(nn.children[0], hint, depth+1)
	if !ok2 {
		return nil, zero, false, false
	}
	nn.children[0] = newChild
	if newChild.itemCount() < t.minItems {
		var ok3 bool
		nn, ok3 = t.rebalance(nn, 0)
		if !ok3 {
			return nil, zero, false, false
		}
	}
	return nn, removed, true, true
}

// shrinkRoot collapses an emptied root: an internal root with no items left
// is replaced by its sole remaining child (height decreases by one); an
// emptied leaf root makes the tree empty.
func (t *Tree[T]) shrinkRoot() {
	if t.root == nil || len(t.root.items) != 0 {
		return
	}
	if t.root.leaf {
		t.root = nil
		t.height = 0
		return
	}
	t.root = t.root.children[0]
	t.height--
}

// Delete removes the item with the given key, returning it and true if it
// existed.
func (t *Tree[T]) Delete(key T) (T, bool) {
	return t.deleteHint(key, nil)
}

// DeleteHint is Delete seeded by and updating a search-path hint.
func (t *Tree[T]) DeleteHint(key T, hint *Hint) (T, bool) {
	return t.deleteHint(key, hint)
}

func (t *Tree[T]) deleteHint(key T, hint *Hint) (T, bool) {
	t.oom = false
	var zero T
	if t.root == nil {
		return zero, false
	}
	newRoot, removed, found, ok := t.nodeDeleteKey(t.root, key, hint, 0)
	if !ok {
		t.oom = true
		return zero, false
	}
	t.root = newRoot
	if !found {
		return zero, false
	}
	t.count--
	t.shrinkRoot()
	return removed, true
}

func (t *Tree[T]) popMinFast(n *node[T]) (bool, bool) {
	leaf := n
	for !leaf.leaf {
		leaf = leaf.children[0]
	}
	return leaf.itemCount() > t.minItems, true
}

func (t *Tree[T]) popMinFastCommit(n *node[T]) (*node[T], T, bool, bool) {
	var zero T
	nn, ok := cow(n, &t.opts)
	if !ok {
		return nil, zero, false, false
	}
	if nn.leaf {
		removed := nn.items[0]
		nn.items = deleteAt(nn.items, 0)
		return nn, removed, true, true
	}
	newChild, removed, _, ok2 := t.popMinFastCommit(nn.children[0])
	if !ok2 {
		return nil, zero, false, false
	}
	nn.children[0] = newChild
	return nn, removed, true, true
}

func (t *Tree[T]) popMaxFast(n *node[T]) (bool, bool) {
	leaf := n
	for !leaf.leaf {
		leaf = leaf.children[len(leaf.children)-1]
	}
	return leaf.itemCount() > t.minItems, true
}

func (t *Tree[T]) popMaxFastCommit(n *node[T]) (*node[T], T, bool, bool) {
	var zero T
	nn, ok := cow(n, &t.opts)
	if !ok {
		return nil, zero, false, false
	}
	if nn.leaf {
		last := len(nn.items) - 1
		removed := nn.items[last]
		nn.items = nn.items[:last]
		return nn, removed, true, true
	}
	lastIdx := len(nn.children) - 1
	newChild, removed, _, ok2 := t.popMaxFastCommit(nn.children[lastIdx])
	if !ok2 {
		return nil, zero, false, false
	}
	nn.children[lastIdx] = newChild
	return nn, removed, true, true
}

// PopMin removes and returns the smallest item. When the leftmost leaf holds
// more than minItems, this is a cheap direct pop along the leftmost spine;
// otherwise it falls back to the general delete path which may rebalance.
func (t *Tree[T]) PopMin() (T, bool) {
	t.oom = false
	var zero T
	if t.root == nil {
		return zero, false
	}
	fast, _ := t.popMinFast(t.root)
	if fast {
		newRoot, removed, _, ok := t.popMinFastCommit(t.root)
		if !ok {
			t.oom = true
			return zero, false
		}
		t.root = newRoot
		t.count--
		t.shrinkRoot()
		return removed, true
	}
	newRoot, removed, found, ok := t.nodeDeletePopFront(t.root, nil, 0)
	if !ok {
		t.oom = true
		return zero, false
	}
	t.root = newRoot
	if !found {
		return zero, false
	}
	t.count--
	t.shrinkRoot()
	return removed, true
}

// PopMax is the dual of PopMin.
func (t *Tree[T]) PopMax() (T, bool) {
	t.oom = false
	var zero T
	if t.root == nil {
		return zero, false
	}
	fast, _ := t.popMaxFast(t.root)
	if fast {
		newRoot, removed, _, ok := t.popMaxFastCommit(t.root)
		if !ok {
			t.oom = true
			return zero, false
		}
		t.root = newRoot
		t.count--
		t.shrinkRoot()
		return removed, true
	}
	newRoot, removed, found, ok := t.nodeDeletePopBack(t.root, nil, 0)
	if !ok {
		t.oom = true
		return zero, false
	}
	t.root = newRoot
	if !found {
		return zero, false
	}
	t.count--
	t.shrinkRoot()
	return removed, true
}
