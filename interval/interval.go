// Package interval provides an ordered store of closed integer intervals,
// each carrying a value. Intervals in a store never overlap.
package interval

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInterval is returned when an interval's start is after its end.
var ErrInvalidInterval = errors.New("invalid interval")

// Interval is the closed range [Start, End] with an attached value.
type Interval[T any] struct {
	Start int
	End   int
	Value T
}

// Len returns the number of indices covered by the interval.
func (iv Interval[T]) Len() int { return iv.End - iv.Start + 1 }

// Contains returns true if i lies within the interval.
func (iv Interval[T]) Contains(i int) bool { return i >= iv.Start && i <= iv.End }

// Overlaps returns true if [start, end] shares at least one index with the interval.
func (iv Interval[T]) Overlaps(start, end int) bool {
	return iv.Start <= end && iv.End >= start
}

// String formats the interval as "[start,end]".
func (iv Interval[T]) String() string {
	return fmt.Sprintf("[%d,%d]", iv.Start, iv.End)
}

// Store is an ordered, disjoint set of intervals.
// The zero value is not usable; create stores with New.
type Store[T any] struct {
	intervals []Interval[T]
	clone     func(T) T
	equal     func(a, b T) bool
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithCloner sets the function used to deep-copy values when intervals are
// split or snapshotted. Without it values are copied by assignment.
func WithCloner[T any](fn func(T) T) Option[T] {
	return func(s *Store[T]) { s.clone = fn }
}

// WithEqual enables coalescing of adjacent intervals whose values are equal.
func WithEqual[T any](fn func(a, b T) bool) Option[T] {
	return func(s *Store[T]) { s.equal = fn }
}

// New creates an empty Store.
func New[T any](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		clone: func(v T) T { return v },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of intervals in the store.
func (s *Store[T]) Len() int { return len(s.intervals) }

// Intervals returns the intervals in ascending order. Values are shared with the store.
func (s *Store[T]) Intervals() []Interval[T] {
	out := make([]Interval[T], len(s.intervals))
	copy(out, s.intervals)
	return out
}

// CloneAllIntervals returns a deep snapshot of the store.
func (s *Store[T]) CloneAllIntervals() []Interval[T] {
	out := make([]Interval[T], len(s.intervals))
	for i, iv := range s.intervals {
		out[i] = Interval[T]{Start: iv.Start, End: iv.End, Value: s.clone(iv.Value)}
	}
	return out
}

// ValueAt returns the value of the interval covering index i.
func (s *Store[T]) ValueAt(i int) (T, bool) {
	idx := sort.Search(len(s.intervals), func(k int) bool { return s.intervals[k].End >= i })
	if idx < len(s.intervals) && s.intervals[idx].Contains(i) {
		return s.intervals[idx].Value, true
	}
	var zero T
	return zero, false
}

// Overlapping returns the intervals that share at least one index with [start, end].
func (s *Store[T]) Overlapping(start, end int) []Interval[T] {
	var out []Interval[T]
	for _, iv := range s.intervals {
		if iv.Start > end {
			break
		}
		if iv.Overlaps(start, end) {
			out = append(out, iv)
		}
	}
	return out
}

// Insert adds [start, end] → value. Existing intervals overlapping the range
// are truncated or split so that the store stays disjoint.
func (s *Store[T]) Insert(start, end int, value T) error {
	if start > end {
		return fmt.Errorf("insert [%d,%d]: %w", start, end, ErrInvalidInterval)
	}
	s.cut(start, end)
	s.intervals = append(s.intervals, Interval[T]{Start: start, End: end, Value: value})
	s.normalize()
	return nil
}

// Upsert assigns value over [start, end]. Sub-ranges already covered by an
// interval receive combine(existing, value); uncovered gaps receive a clone of value.
func (s *Store[T]) Upsert(start, end int, value T, combine func(existing, incoming T) T) error {
	if start > end {
		return fmt.Errorf("upsert [%d,%d]: %w", start, end, ErrInvalidInterval)
	}

	var pieces []Interval[T]
	next := start
	for _, iv := range s.Overlapping(start, end) {
		lo, hi := max(iv.Start, start), min(iv.End, end)
		if lo > next {
			pieces = append(pieces, Interval[T]{Start: next, End: lo - 1, Value: s.clone(value)})
		}
		pieces = append(pieces, Interval[T]{Start: lo, End: hi, Value: combine(s.clone(iv.Value), value)})
		next = hi + 1
	}
	if next <= end {
		pieces = append(pieces, Interval[T]{Start: next, End: end, Value: s.clone(value)})
	}

	s.cut(start, end)
	s.intervals = append(s.intervals, pieces...)
	s.normalize()
	return nil
}

// Clear removes every interval.
func (s *Store[T]) Clear() {
	s.intervals = nil
}

// AddRange inserts each interval in order. Later intervals win where they overlap.
func (s *Store[T]) AddRange(intervals []Interval[T]) error {
	for _, iv := range intervals {
		if err := s.Insert(iv.Start, iv.End, iv.Value); err != nil {
			return err
		}
	}
	return nil
}

// cut removes [start, end] from the store, keeping the outer parts of any
// interval that straddles the range.
func (s *Store[T]) cut(start, end int) {
	kept := s.intervals[:0:0]
	for _, iv := range s.intervals {
		if !iv.Overlaps(start, end) {
			kept = append(kept, iv)
			continue
		}
		if iv.Start < start {
			kept = append(kept, Interval[T]{Start: iv.Start, End: start - 1, Value: iv.Value})
		}
		if iv.End > end {
			// the right fragment gets its own copy so the two halves never alias
			kept = append(kept, Interval[T]{Start: end + 1, End: iv.End, Value: s.clone(iv.Value)})
		}
	}
	s.intervals = kept
}

func (s *Store[T]) normalize() {
	sort.Slice(s.intervals, func(i, j int) bool { return s.intervals[i].Start < s.intervals[j].Start })
	if s.equal == nil || len(s.intervals) < 2 {
		return
	}
	merged := s.intervals[:1]
	for _, iv := range s.intervals[1:] {
		last := &merged[len(merged)-1]
		if last.End+1 == iv.Start && s.equal(last.Value, iv.Value) {
			last.End = iv.End
			continue
		}
		merged = append(merged, iv)
	}
	s.intervals = merged
}
