// Package list implements a persistent singly linked list.
//
// Every operation that looks like a modification returns a new list that
// shares the unmodified suffix of its source. A nil *List is a valid empty
// list, as is the value returned by Empty.
package list

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// List is a persistent cons list
type List[T any] struct {
	head  T
	tail  *List[T]
	count int
}

// Listed is implemented by every List regardless of its element type
type Listed interface {
	Len() int
	Values() iter.Seq[any]
	String() string
	listed()
}

// IsList is true if the value is a persistent list of any element type
func IsList(value any) bool {
	_, valid := value.(Listed)
	return valid
}

// Empty returns an empty list
func Empty[T any]() *List[T] {
	return &List[T]{}
}

// New builds a list of the given items in order
func New[T any](items ...T) *List[T] {
	return FromSlice(items)
}

// FromSlice builds a list whose first element is the first item of the slice.
// Nested slices are kept as single elements.
func FromSlice[T any](items []T) *List[T] {
	l := Empty[T]()
	for i := len(items) - 1; i >= 0; i-- {
		l = l.Add(items[i])
	}
	return l
}

func (l *List[T]) listed() {}

// IsEmpty is true for the empty list and for nil
func (l *List[T]) IsEmpty() bool {
	return l == nil || l.count == 0
}

// Len counts the list items
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.count
}

// First returns the head of the list, or false if there is none
func (l *List[T]) First() (T, bool) {
	if l.IsEmpty() {
		var zero T
		return zero, false
	}
	return l.head, true
}

// Rest returns the list after the first item
func (l *List[T]) Rest() *List[T] {
	if l.IsEmpty() || l.tail == nil {
		return Empty[T]()
	}
	return l.tail
}

// Add prepends an item
func (l *List[T]) Add(value T) *List[T] {
	return &List[T]{head: value, tail: l, count: l.Len() + 1}
}

// Next decomposes the list into emptiness, head and tail
func (l *List[T]) Next() (bool, T, *List[T]) {
	head, found := l.First()
	return !found, head, l.Rest()
}

// Drop removes up to n items from the front of the list
func (l *List[T]) Drop(n int) *List[T] {
	if l == nil {
		return Empty[T]()
	}
	node := l
	for ; n > 0 && !node.IsEmpty(); n-- {
		node = node.Rest()
	}
	return node
}

// DropFirst removes the first item
func (l *List[T]) DropFirst() *List[T] {
	return l.Drop(1)
}

// Reverse returns a new list with the items in reverse order
func (l *List[T]) Reverse() *List[T] {
	reversed := Empty[T]()
	for value := range l.All() {
		reversed = reversed.Add(value)
	}
	return reversed
}

// Concat returns the items of l followed by the items of other. The result
// shares other.
func (l *List[T]) Concat(other *List[T]) *List[T] {
	if other == nil {
		other = Empty[T]()
	}
	result := other
	for value := range l.Reverse().All() {
		result = result.Add(value)
	}
	return result
}

// ToSlice returns the top-level items in order
func (l *List[T]) ToSlice() []T {
	items := make([]T, 0, l.Len())
	for value := range l.All() {
		items = append(items, value)
	}
	return items
}

// All iterates the list items front to back
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := l; !node.IsEmpty(); node = node.tail {
			if !yield(node.head) {
				return
			}
		}
	}
}

// Values iterates the list items as untyped values
func (l *List[T]) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for value := range l.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// String renders the list in nested pair form, e.g. [1,[2,[]]]. Items are
// formatted with %v, so strings appear unquoted; MarshalJSON gives the same
// shape as valid JSON.
func (l *List[T]) String() string {
	var sb strings.Builder
	for value := range l.All() {
		sb.WriteRune('[')
		fmt.Fprintf(&sb, "%v", value)
		sb.WriteRune(',')
	}
	sb.WriteString("[]")
	sb.WriteString(strings.Repeat("]", l.Len()))
	return sb.String()
}

// MarshalJSON encodes the list in nested pair form
func (l *List[T]) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	for value := range l.All() {
		b, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		sb.WriteRune('[')
		sb.Write(b)
		sb.WriteRune(',')
	}
	sb.WriteString("[]")
	sb.WriteString(strings.Repeat("]", l.Len()))
	return []byte(sb.String()), nil
}
