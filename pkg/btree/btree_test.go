// pkg/btree/btree_test.go
package btree

import (
	"math/rand"
	"testing"
)

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func newIntTree(maxItems int) *Tree[int] {
	return New(Options[int]{MaxItems: maxItems, Compare: intCompare})
}

func TestBasicSetGetDelete(t *testing.T) {
	tr := newIntTree(0)
	for _, v := range []int{7, 3, 1, 9, 5} {
		tr.Set(v)
	}
	if tr.Count() != 5 {
		t.Fatalf("Count() = %d, want 5", tr.Count())
	}
	if tr.Height() != 1 {
		t.Fatalf("Height() = %d, want 1", tr.Height())
	}
	var got []int
	tr.Ascend(nil, func(item int) bool {
		got = append(got, item)
		return true
	})
	want := []int{1, 3, 5, 7, 9}
	if !intSliceEqual(got, want) {
		t.Fatalf("ascend order = %v, want %v", got, want)
	}
}

func TestSetReplaceReturnsPrevious(t *testing.T) {
	tr := newIntTree(0)
	tr.Set(42)
	prev, had := tr.Set(42)
	if !had || prev != 42 {
		t.Fatalf("Set replace = (%v, %v), want (42, true)", prev, had)
	}
	if tr.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after replace", tr.Count())
	}
}

func TestGetAfterSetAndDelete(t *testing.T) {
	tr := newIntTree(0)
	tr.Set(100)
	got, ok := tr.Get(100)
	if !ok || got != 100 {
		t.Fatalf("Get(100) = (%v, %v), want (100, true)", got, ok)
	}
	tr.Delete(100)
	if _, ok := tr.Get(100); ok {
		t.Fatalf("Get(100) after delete reports found")
	}
}

func TestLoadSequentialMatchesSet(t *testing.T) {
	trLoad := newIntTree(0)
	trSet := newIntTree(0)
	for i := 0; i < 300; i++ {
		trLoad.Load(i)
		trSet.Set(i)
	}
	if trLoad.Count() != trSet.Count() {
		t.Fatalf("Count mismatch: load=%d set=%d", trLoad.Count(), trSet.Count())
	}
	var loadOrder, setOrder []int
	trLoad.Ascend(nil, func(item int) bool { loadOrder = append(loadOrder, item); return true })
	trSet.Ascend(nil, func(item int) bool { setOrder = append(setOrder, item); return true })
	if !intSliceEqual(loadOrder, setOrder) {
		t.Fatalf("load order = %v, want %v", loadOrder, setOrder)
	}
}

func TestPopMinOrder(t *testing.T) {
	tr := newIntTree(0)
	for i := 1; i <= 300; i++ {
		tr.Set(i)
	}
	for i := 1; i <= 300; i++ {
		v, ok := tr.PopMin()
		if !ok || v != i {
			t.Fatalf("PopMin() #%d = (%v, %v), want (%d, true)", i, v, ok, i)
		}
	}
	if tr.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 after draining", tr.Count())
	}
}

func TestDeleteWithCustomMaxItems(t *testing.T) {
	tr := newIntTree(5)
	for _, v := range []int{10, 20, 30, 40, 50, 60} {
		tr.Set(v)
	}
	if tr.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", tr.Height())
	}
	tr.Delete(30)
	var got []int
	tr.Ascend(nil, func(item int) bool { got = append(got, item); return true })
	want := []int{10, 20, 40, 50, 60}
	if !intSliceEqual(got, want) {
		t.Fatalf("ascend after delete = %v, want %v", got, want)
	}
}

func TestCloneIndependence(t *testing.T) {
	t1 := newIntTree(0)
	for i := 1; i <= 1000; i++ {
		t1.Set(i)
	}
	t2 := t1.Clone()
	for i := 1; i <= 500; i++ {
		t2.Delete(i)
	}
	if t1.Count() != 1000 {
		t.Fatalf("t1.Count() = %d, want 1000", t1.Count())
	}
	if t2.Count() != 500 {
		t.Fatalf("t2.Count() = %d, want 500", t2.Count())
	}
	if _, ok := t1.Get(100); !ok {
		t.Fatalf("t1 lost key 100 after clone mutation")
	}
	if _, ok := t2.Get(100); ok {
		t.Fatalf("t2 still has key 100 after deleting it")
	}
}

func TestInsertThenDeleteAllEndsEmpty(t *testing.T) {
	tr := newIntTree(5)
	n := 2000
	keys := rand.New(rand.NewSource(1)).Perm(n)
	for _, k := range keys {
		tr.Set(k)
	}
	order := rand.New(rand.NewSource(2)).Perm(n)
	for _, k := range order {
		if _, ok := tr.Delete(k); !ok {
			t.Fatalf("Delete(%d) reported missing", k)
		}
	}
	if tr.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", tr.Count())
	}
	if tr.Height() != 0 {
		t.Fatalf("Height() = %d, want 0", tr.Height())
	}
}

func TestHintVariantsMatchHintless(t *testing.T) {
	tr := newIntTree(5)
	var hint Hint
	n := 500
	for i := 0; i < n; i++ {
		tr.SetHint(i, &hint)
	}
	for i := 0; i < n; i++ {
		got, ok := tr.GetHint(i, &hint)
		want, ok2 := tr.Get(i)
		if ok != ok2 || got != want {
			t.Fatalf("GetHint(%d) = (%v,%v), want (%v,%v)", i, got, ok, want, ok2)
		}
	}
	for i := 0; i < n; i += 2 {
		got, ok := tr.DeleteHint(i, &hint)
		if !ok || got != i {
			t.Fatalf("DeleteHint(%d) = (%v,%v), want (%d,true)", i, got, ok, i)
		}
	}
	for i := 1; i < n; i += 2 {
		if _, ok := tr.Get(i); !ok {
			t.Fatalf("odd key %d missing after deleting evens via hint", i)
		}
	}
}

func TestInvariantsUnderRandomOps(t *testing.T) {
	tr := newIntTree(5)
	rng := rand.New(rand.NewSource(3))
	present := map[int]bool{}
	for i := 0; i < 5000; i++ {
		k := rng.Intn(500)
		if rng.Intn(2) == 0 {
			tr.Set(k)
			present[k] = true
		} else {
			tr.Delete(k)
			delete(present, k)
		}
	}
	if tr.Count() != len(present) {
		t.Fatalf("Count() = %d, want %d", tr.Count(), len(present))
	}
	checkOrderAndBounds(t, tr)
}

func checkOrderAndBounds(t *testing.T, tr *Tree[int]) {
	t.Helper()
	var prev int
	first := true
	n := 0
	tr.Ascend(nil, func(item int) bool {
		if !first && item <= prev {
			t.Fatalf("ascend out of order: %d after %d", item, prev)
		}
		prev = item
		first = false
		n++
		return true
	})
	if n != tr.Count() {
		t.Fatalf("ascend visited %d items, Count() = %d", n, tr.Count())
	}
}

func TestCursorForwardBackward(t *testing.T) {
	tr := newIntTree(5)
	n := 200
	for i := 0; i < n; i++ {
		tr.Set(i)
	}
	c := tr.Cursor()
	if !c.First() {
		t.Fatalf("First() = false on non-empty tree")
	}
	for i := 0; i < n; i++ {
		if got := c.Item(); got != i {
			t.Fatalf("cursor forward at %d: got %d", i, got)
		}
		if i < n-1 && !c.Next() {
			t.Fatalf("Next() = false before end at %d", i)
		}
	}
	if c.Next() {
		t.Fatalf("Next() = true past the end")
	}
	if !c.Last() {
		t.Fatalf("Last() = false on non-empty tree")
	}
	for i := n - 1; i >= 0; i-- {
		if got := c.Item(); got != i {
			t.Fatalf("cursor backward at %d: got %d", i, got)
		}
		if i > 0 && !c.Prev() {
			t.Fatalf("Prev() = false before start at %d", i)
		}
	}
	if c.Prev() {
		t.Fatalf("Prev() = true past the start")
	}
}

func TestCursorSeek(t *testing.T) {
	tr := newIntTree(5)
	for _, v := range []int{10, 20, 30, 40, 50} {
		tr.Set(v)
	}
	c := tr.Cursor()
	if !c.Seek(25) || c.Item() != 30 {
		t.Fatalf("Seek(25) landed on wrong item")
	}
	if !c.Seek(30) || c.Item() != 30 {
		t.Fatalf("Seek(30) should land exactly on 30")
	}
	if c.Seek(1000) {
		t.Fatalf("Seek(1000) should fail (past the end)")
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
