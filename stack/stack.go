// Package stack implements a persistent LIFO stack on top of list.
package stack

import "github.com/dball/huet/list"

// Stack is a persistent stack; the zero value is empty
type Stack[T any] struct {
	items *list.List[T]
}

// New returns an empty stack
func New[T any]() Stack[T] {
	return Stack[T]{items: list.Empty[T]()}
}

// IsStack is true if the value is a stack of any element type
func IsStack(value any) bool {
	_, valid := value.(interface{ stack() })
	return valid
}

func (s Stack[T]) stack() {}

// Push pushes each item in turn, so the last one ends up on top
func (s Stack[T]) Push(items ...T) Stack[T] {
	l := s.items
	for _, item := range items {
		l = l.Add(item)
	}
	return Stack[T]{items: l}
}

// Pop removes the top item; popping an empty stack leaves it empty
func (s Stack[T]) Pop() Stack[T] {
	return Stack[T]{items: s.items.DropFirst()}
}

// Peek returns the top item, or false if the stack is empty
func (s Stack[T]) Peek() (T, bool) {
	return s.items.First()
}

// IsEmpty is true if nothing is on the stack
func (s Stack[T]) IsEmpty() bool {
	return s.items.IsEmpty()
}

// Len counts the stacked items
func (s Stack[T]) Len() int {
	return s.items.Len()
}

// List returns the stacked items, top first
func (s Stack[T]) List() *list.List[T] {
	if s.items == nil {
		return list.Empty[T]()
	}
	return s.items
}

func (s Stack[T]) String() string {
	return s.items.String()
}

// MarshalJSON encodes the stack as its list in pair form
func (s Stack[T]) MarshalJSON() ([]byte, error) {
	return s.List().MarshalJSON()
}
