// pkg/btree/scan_test.go
package btree

import "testing"

func TestAscendDescendFullOrder(t *testing.T) {
	tr := newIntTree(5)
	want := []int{}
	for i := 0; i < 200; i++ {
		tr.Set(i)
		want = append(want, i)
	}
	var got []int
	tr.Ascend(nil, func(item int) bool { got = append(got, item); return true })
	if !intSliceEqual(got, want) {
		t.Fatalf("Ascend(nil) = %v, want %v", got, want)
	}
	got = nil
	tr.Descend(nil, func(item int) bool { got = append(got, item); return true })
	for i, j := 0, len(want)-1; i < j; i, j = i+1, j-1 {
		want[i], want[j] = want[j], want[i]
	}
	if !intSliceEqual(got, want) {
		t.Fatalf("Descend(nil) = %v, want %v", got, want)
	}
}

func TestAscendFromPivot(t *testing.T) {
	tr := newIntTree(5)
	for _, v := range []int{10, 20, 30, 40, 50, 60, 70} {
		tr.Set(v)
	}
	pivot := 35
	var got []int
	tr.Ascend(&pivot, func(item int) bool { got = append(got, item); return true })
	want := []int{40, 50, 60, 70}
	if !intSliceEqual(got, want) {
		t.Fatalf("Ascend(35) = %v, want %v", got, want)
	}

	pivot = 40
	got = nil
	tr.Ascend(&pivot, func(item int) bool { got = append(got, item); return true })
	want = []int{40, 50, 60, 70}
	if !intSliceEqual(got, want) {
		t.Fatalf("Ascend(40) (on boundary) = %v, want %v", got, want)
	}
}

func TestDescendFromPivot(t *testing.T) {
	tr := newIntTree(5)
	for _, v := range []int{10, 20, 30, 40, 50, 60, 70} {
		tr.Set(v)
	}
	pivot := 35
	var got []int
	tr.Descend(&pivot, func(item int) bool { got = append(got, item); return true })
	want := []int{30, 20, 10}
	if !intSliceEqual(got, want) {
		t.Fatalf("Descend(35) = %v, want %v", got, want)
	}

	pivot = 30
	got = nil
	tr.Descend(&pivot, func(item int) bool { got = append(got, item); return true })
	want = []int{30, 20, 10}
	if !intSliceEqual(got, want) {
		t.Fatalf("Descend(30) (on boundary) = %v, want %v", got, want)
	}
}

func TestAscendStopEarly(t *testing.T) {
	tr := newIntTree(5)
	for i := 0; i < 50; i++ {
		tr.Set(i)
	}
	var got []int
	tr.Ascend(nil, func(item int) bool {
		got = append(got, item)
		return item < 5
	})
	want := []int{0, 1, 2, 3, 4, 5}
	if !intSliceEqual(got, want) {
		t.Fatalf("Ascend with early stop = %v, want %v", got, want)
	}
}

func TestDescendStopEarly(t *testing.T) {
	tr := newIntTree(5)
	for i := 0; i < 50; i++ {
		tr.Set(i)
	}
	var got []int
	tr.Descend(nil, func(item int) bool {
		got = append(got, item)
		return item > 44
	})
	want := []int{49, 48, 47, 46, 45, 44}
	if !intSliceEqual(got, want) {
		t.Fatalf("Descend with early stop = %v, want %v", got, want)
	}
}

func TestMinMax(t *testing.T) {
	tr := newIntTree(5)
	if _, ok := tr.Min(); ok {
		t.Fatalf("Min() on empty tree reports found")
	}
	if _, ok := tr.Max(); ok {
		t.Fatalf("Max() on empty tree reports found")
	}
	for _, v := range []int{30, 10, 50, 20, 40} {
		tr.Set(v)
	}
	if got, ok := tr.Min(); !ok || got != 10 {
		t.Fatalf("Min() = (%v,%v), want (10,true)", got, ok)
	}
	if got, ok := tr.Max(); !ok || got != 50 {
		t.Fatalf("Max() = (%v,%v), want (50,true)", got, ok)
	}
}

func TestPopMaxOrder(t *testing.T) {
	tr := newIntTree(5)
	for i := 1; i <= 300; i++ {
		tr.Set(i)
	}
	for i := 300; i >= 1; i-- {
		v, ok := tr.PopMax()
		if !ok || v != i {
			t.Fatalf("PopMax() = (%v,%v), want (%d,true)", v, ok, i)
		}
	}
	if tr.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 after draining", tr.Count())
	}
}
