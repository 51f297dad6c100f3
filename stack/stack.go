// Copyright © 2024 The MNL authors

// Package stack provides a last-in-first-out stack that grows by doubling.
package stack

import "errors"

// StartSize is the capacity allocated by the first Push.
const StartSize = 16

// ErrEmpty is returned when popping a stack that holds no values.
var ErrEmpty = errors.New("pop called on an empty stack")

// Stack is a LIFO sequence of values.  Stack never shrinks; its depth is
// expected to track a short-lived quantity such as list nesting.
type Stack[T any] struct {
	frames []T // len(frames) is the capacity
	head   int // number of values on the stack
}

// New returns an empty stack.  No storage is allocated until the first Push.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places v on the top of s.
func (s *Stack[T]) Push(v T) {
	if s.head == len(s.frames) {
		s.grow()
	}
	s.frames[s.head] = v
	s.head++
}

// Pop removes the value on the top of s and returns it.  Pop returns ErrEmpty
// instead of reading past the bottom of the stack.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.head == 0 {
		return zero, ErrEmpty
	}
	s.head--
	v := s.frames[s.head]
	s.frames[s.head] = zero
	return v, nil
}

// Top returns the value on the top of s without removing it.
func (s *Stack[T]) Top() (T, bool) {
	if s.head == 0 {
		var zero T
		return zero, false
	}
	return s.frames[s.head-1], true
}

// Len returns the number of values on s.
func (s *Stack[T]) Len() int {
	return s.head
}

// Destroy drops every value and the storage of s.  A destroyed stack is
// empty and may be reused.
func (s *Stack[T]) Destroy() {
	s.frames = nil
	s.head = 0
}

func (s *Stack[T]) grow() {
	size := len(s.frames) * 2
	if size == 0 {
		size = StartSize
	}
	frames := make([]T, size)
	copy(frames, s.frames[:s.head])
	s.frames = frames
}
