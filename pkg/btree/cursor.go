// pkg/btree/cursor.go
package btree

// cursorFrame is one level of a Cursor's root-to-current path. For a leaf
// frame, idx is the direct index of the current item. For an internal
// frame, idx is the index of the child currently being explored, which
// coincides with the index of the item that becomes current once that
// child's subtree is exhausted (items[j] sits between children[j] and
// children[j+1]).
type cursorFrame[T any] struct {
	n   *node[T]
	idx int
}

// Cursor is a stateful, read-only iterator over a Tree's items in key
// order. It reads the tree's current contents when First, Last, or Seek
// positions it; it is not updated for later mutation of the same Tree, which
// may change or replace the nodes on its saved path.
type Cursor[T any] struct {
	t     *Tree[T]
	stack []cursorFrame[T]
	ok    bool
}

// Cursor returns a new, unpositioned Cursor over the tree. Call First, Last,
// or Seek before Item.
func (t *Tree[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{t: t}
}

// Valid reports whether the cursor is positioned at an item.
func (c *Cursor[T]) Valid() bool { return c.ok }

// Item returns the item at the cursor's current position. Valid must be
// true.
func (c *Cursor[T]) Item() T {
	top := c.stack[len(c.stack)-1]
	return top.n.items[top.idx]
}

func (c *Cursor[T]) descendLeftmost(n *node[T]) {
	for {
		c.stack = append(c.stack, cursorFrame[T]{n: n, idx: 0})
		if n.leaf {
			return
		}
		n = n.children[0]
	}
}

func (c *Cursor[T]) descendRightmost(n *node[T]) {
	for {
		if n.leaf {
			c.stack = append(c.stack, cursorFrame[T]{n: n, idx: len(n.items) - 1})
			return
		}
		c.stack = append(c.stack, cursorFrame[T]{n: n, idx: len(n.children) - 1})
		n = n.children[len(n.children)-1]
	}
}

// First positions the cursor at the smallest item.
func (c *Cursor[T]) First() bool {
	c.stack = c.stack[:0]
	c.ok = false
	if c.t.root == nil || c.t.count == 0 {
		return false
	}
	c.descendLeftmost(c.t.root)
	c.ok = true
	return true
}

// Last positions the cursor at the largest item.
func (c *Cursor[T]) Last() bool {
	c.stack = c.stack[:0]
	c.ok = false
	if c.t.root == nil || c.t.count == 0 {
		return false
	}
	c.descendRightmost(c.t.root)
	c.ok = true
	return true
}

// Next advances the cursor to the next-larger item, returning false if
// there is none (the cursor becomes invalid).
func (c *Cursor[T]) Next() bool {
	if !c.ok || len(c.stack) == 0 {
		return false
	}
	top := &c.stack[len(c.stack)-1]
	if top.n.leaf {
		top.idx++
		if top.idx < len(top.n.items) {
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
		for len(c.stack) > 0 {
			nt := &c.stack[len(c.stack)-1]
			if nt.idx < len(nt.n.items) {
				c.ok = true
				return true
			}
			c.stack = c.stack[:len(c.stack)-1]
		}
		c.ok = false
		return false
	}
	top.idx++
	c.descendLeftmost(top.n.children[top.idx])
	c.ok = true
	return true
}

// Prev retreats the cursor to the next-smaller item, returning false if
// there is none (the cursor becomes invalid).
func (c *Cursor[T]) Prev() bool {
	if !c.ok || len(c.stack) == 0 {
		return false
	}
	top := &c.stack[len(c.stack)-1]
	if top.n.leaf {
		top.idx--
		if top.idx >= 0 {
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
		for len(c.stack) > 0 {
			nt := &c.stack[len(c.stack)-1]
			nt.idx--
			if nt.idx >= 0 {
				c.ok = true
				return true
			}
			c.stack = c.stack[:len(c.stack)-1]
		}
		c.ok = false
		return false
	}
	c.descendRightmost(top.n.children[top.idx])
	c.ok = true
	return true
}

// Seek positions the cursor at the smallest item greater than or equal to
// key, returning false if no such item exists.
func (c *Cursor[T]) Seek(key T) bool {
	return c.seekHint(key, nil)
}

// SeekHint is Seek seeded by and updating a search-path hint.
func (c *Cursor[T]) SeekHint(key T, hint *Hint) bool {
	return c.seekHint(key, hint)
}

func (c *Cursor[T]) seekHint(key T, hint *Hint) bool {
	c.stack = c.stack[:0]
	c.ok = false
	n := c.t.root
	depth := 0
	for n != nil {
		idx, found := n.search(key, &c.t.opts, hint, depth)
		if found {
			c.stack = append(c.stack, cursorFrame[T]{n: n, idx: idx})
			c.ok = true
			return true
		}
		if n.leaf {
			c.stack = append(c.stack, cursorFrame[T]{n: n, idx: idx - 1})
			c.ok = true
			return c.Next()
		}
		c.stack = append(c.stack, cursorFrame[T]{n: n, idx: idx})
		n = n.children[idx]
		depth++
	}
	return false
}
