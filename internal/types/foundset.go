package types

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// FoundSet tracks the marked elements discovered during one run. It only grows.
type FoundSet struct {
	bm *roaring.Bitmap
}

// NewFoundSet returns an empty FoundSet.
func NewFoundSet() *FoundSet {
	return &FoundSet{bm: roaring.New()}
}

// Add records x and reports whether it was new.
func (f *FoundSet) Add(x int) bool {
	idx, err := toIndex(x)
	if err != nil {
		return false
	}
	return f.bm.CheckedAdd(idx)
}

// Contains reports whether x has been found.
func (f *FoundSet) Contains(x int) bool {
	idx, err := toIndex(x)
	if err != nil {
		return false
	}
	return f.bm.Contains(idx)
}

// Len returns the number of found elements.
func (f *FoundSet) Len() int {
	if f == nil {
		return 0
	}
	return int(f.bm.GetCardinality())
}

// Items returns the found elements in ascending order.
func (f *FoundSet) Items() []int {
	out := make([]int, 0, f.Len())
	if f == nil {
		return out
	}
	it := f.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Clone returns an independent copy.
func (f *FoundSet) Clone() *FoundSet {
	if f == nil {
		return NewFoundSet()
	}
	return &FoundSet{bm: f.bm.Clone()}
}

// Covers reports whether every element of marked has been found.
func (f *FoundSet) Covers(marked *MarkedSet) bool {
	if marked.Len() == 0 {
		return true
	}
	if f.Len() == 0 {
		return false
	}
	return roaring.AndNot(marked.bm, f.bm).IsEmpty()
}

// String renders the set for log output.
func (f *FoundSet) String() string {
	return fmt.Sprint(f.Items())
}
