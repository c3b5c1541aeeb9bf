// Package types contains the set types shared by the oracle, the estimators and the driver.
package types

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrInvalidElement is returned when a set element cannot be an index of a search space.
var ErrInvalidElement = errors.New("element is not a valid search space index")

// MarkedSet is the immutable ground-truth set of targets in a search space.
// It is never modified after construction; discovery progress lives in a FoundSet.
type MarkedSet struct {
	bm *roaring.Bitmap
}

// NewMarkedSet builds a MarkedSet from distinct or repeated indices.
func NewMarkedSet(items ...int) (*MarkedSet, error) {
	bm := roaring.New()
	for _, item := range items {
		idx, err := toIndex(item)
		if err != nil {
			return nil, err
		}
		bm.Add(idx)
	}
	return &MarkedSet{bm: bm}, nil
}

// MustMarkedSet is like NewMarkedSet but panics on invalid input.
func MustMarkedSet(items ...int) *MarkedSet {
	s, err := NewMarkedSet(items...)
	if err != nil {
		panic(err)
	}
	return s
}

func toIndex(v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidElement, v)
	}
	return uint32(v), nil
}

// Len returns the number of marked elements.
func (s *MarkedSet) Len() int {
	if s == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

// Contains reports whether x is marked.
func (s *MarkedSet) Contains(x int) bool {
	if s == nil || x < 0 || uint64(x) > math.MaxUint32 {
		return false
	}
	return s.bm.Contains(uint32(x))
}

// Max returns the largest marked element, or false for an empty set.
func (s *MarkedSet) Max() (int, bool) {
	if s.Len() == 0 {
		return 0, false
	}
	return int(s.bm.Maximum()), true
}

// Select returns the i-th smallest marked element (0-based).
func (s *MarkedSet) Select(i int) (int, error) {
	if i < 0 || i >= s.Len() {
		return 0, fmt.Errorf("select %d out of range for %d elements", i, s.Len())
	}
	v, err := s.bm.Select(uint32(i))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Rank returns the number of marked elements less than or equal to x.
func (s *MarkedSet) Rank(x int) int {
	if s.Len() == 0 || x < 0 {
		return 0
	}
	if uint64(x) > math.MaxUint32 {
		return s.Len()
	}
	return int(s.bm.Rank(uint32(x)))
}

// Items returns the marked elements in ascending order.
func (s *MarkedSet) Items() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, s.Len())
	it := s.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Without returns a new MarkedSet holding the elements of s not present in found.
func (s *MarkedSet) Without(found *FoundSet) *MarkedSet {
	if found == nil || found.Len() == 0 {
		return &MarkedSet{bm: s.bm.Clone()}
	}
	return &MarkedSet{bm: roaring.AndNot(s.bm, found.bm)}
}

// String renders the set for log output.
func (s *MarkedSet) String() string {
	return fmt.Sprint(s.Items())
}
