// Package cellset is a compressed set of 64-bit cell indexes.
package cellset

import (
	"io"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set holds distinct indexes of type T.
type Set[T ~uint64] struct {
	rb *roaring64.Bitmap
}

// New returns an empty set.
func New[T ~uint64]() *Set[T] {
	return &Set[T]{rb: roaring64.New()}
}

// Of returns a set holding vals.
func Of[T ~uint64](vals ...T) *Set[T] {
	s := New[T]()
	for _, v := range vals {
		s.rb.Add(uint64(v))
	}
	return s
}

// Add inserts v and reports whether it was absent.
func (s *Set[T]) Add(v T) bool {
	return s.rb.CheckedAdd(uint64(v))
}

// Remove deletes v.
func (s *Set[T]) Remove(v T) {
	s.rb.Remove(uint64(v))
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	return s.rb.Contains(uint64(v))
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set has no elements.
func (s *Set[T]) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Union adds every element of other to s.
func (s *Set[T]) Union(other *Set[T]) {
	s.rb.Or(other.rb)
}

// Slice returns the elements in ascending order.
func (s *Set[T]) Slice() []T {
	raw := s.rb.ToArray()
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = T(v)
	}
	return out
}

// All iterates over the elements in ascending order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(T(it.Next())) {
				return
			}
		}
	}
}

// WriteTo writes the portable roaring serialization of the set.
func (s *Set[T]) WriteTo(w io.Writer) (int64, error) {
	s.rb.RunOptimize()
	return s.rb.WriteTo(w)
}

// ReadFrom replaces the contents of s with a set written by WriteTo.
func (s *Set[T]) ReadFrom(r io.Reader) (int64, error) {
	s.rb.Clear()
	return s.rb.ReadFrom(r)
}
