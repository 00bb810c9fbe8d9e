// Package runtime holds the iterator combinators shared by conversion,
// equality and printing.
package runtime

import (
	"iter"

	"github.com/dball/huet/ex"
)

var (
	// ErrInvalidValue is returned for out of range counts and indexes
	ErrInvalidValue = ex.Ex{Code: "invalid value"}
)

// Pair holds one item from each side of a zip
type Pair[A, B any] struct {
	Left  A
	Right B
}

// FromSlice iterates the items of a slice
func FromSlice[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// Map applies fn to each item
func Map[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for item := range seq {
			if !yield(fn(item)) {
				return
			}
		}
	}
}

// Filter keeps the items for which pred is true
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range seq {
			if pred(item) && !yield(item) {
				return
			}
		}
	}
}

// Reduce folds the items into an accumulator
func Reduce[T, A any](seq iter.Seq[T], init A, fn func(A, T) A) A {
	acc := init
	for item := range seq {
		acc = fn(acc, item)
	}
	return acc
}

// All is true if pred holds for every item, stopping at the first failure
func All[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for item := range seq {
		if !pred(item) {
			return false
		}
	}
	return true
}

// Some is true if pred holds for any item
func Some[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for item := range seq {
		if pred(item) {
			return true
		}
	}
	return false
}

// Count counts the items
func Count[T any](seq iter.Seq[T]) int {
	return Reduce(seq, 0, func(n int, _ T) int { return n + 1 })
}

// Zip pairs up items until either side runs out
func Zip[A, B any](left iter.Seq[A], right iter.Seq[B]) iter.Seq[Pair[A, B]] {
	return func(yield func(Pair[A, B]) bool) {
		next, stop := iter.Pull(right)
		defer stop()
		for l := range left {
			r, ok := next()
			if !ok {
				return
			}
			if !yield(Pair[A, B]{Left: l, Right: r}) {
				return
			}
		}
	}
}

// Equal is true if both sides have the same number of items and eq holds for
// each pair
func Equal[A, B any](left iter.Seq[A], right iter.Seq[B], eq func(A, B) bool) bool {
	next, stop := iter.Pull(right)
	defer stop()
	for l := range left {
		r, ok := next()
		if !ok || !eq(l, r) {
			return false
		}
	}
	_, more := next()
	return !more
}

// Concat iterates each seq in turn
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for item := range seq {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Drop skips the first n items
func Drop[T any](n int, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		i := 0
		for item := range seq {
			if i < n {
				i++
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// TakeDrop returns as many as n items from the front of the seq and the seq
// of the remaining items
func TakeDrop[T any](n int, seq iter.Seq[T]) ([]T, iter.Seq[T], error) {
	if n < 0 {
		return nil, nil, ErrInvalidValue.With("n", n)
	}
	var items []T
	if n > 0 {
		for item := range seq {
			items = append(items, item)
			if len(items) == n {
				break
			}
		}
	}
	return items, Drop(n, seq), nil
}

// IntoSlice pours a seq into a slice
func IntoSlice[T any](seq iter.Seq[T]) []T {
	var items []T
	for item := range seq {
		items = append(items, item)
	}
	return items
}

// Nth returns the nth item, if any
func Nth[T any](seq iter.Seq[T], n int) (T, error) {
	var zero T
	if n < 0 {
		return zero, ErrInvalidValue.With("n", n)
	}
	i := 0
	for item := range seq {
		if i == n {
			return item, nil
		}
		i++
	}
	return zero, ErrInvalidValue.With("n", n)
}

// Empty is true if the seq yields nothing
func Empty[T any](seq iter.Seq[T]) bool {
	for range seq {
		return false
	}
	return true
}
