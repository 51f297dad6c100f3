// Copyright © 2024 The MNL authors

// Package array implements a growable sequence of item handles.
//
// Capacity grows by doubling when a push finds the array full and shrinks by
// the largest applicable power of two when removals leave it mostly empty, so
// that a long run of pushes and removals costs amortized constant time per
// operation.  Capacity is always the array's granule (its initial capacity,
// or 1) times a power of two, or zero when no storage is held.
//
// Slots at or beyond Len are always the zero value of T.  Code that inspects
// or overwrites spare capacity may rely on this.
package array

import (
	"errors"
	"fmt"
)

// NotFound is returned by Contains when no slot satisfies the comparison.
const NotFound = -1

var (
	// ErrNegativeCapacity is returned by New for a negative capacity.
	ErrNegativeCapacity = errors.New("negative array capacity")
	// ErrNilItem is returned when pushing the zero value of the item type.
	ErrNilItem = errors.New("cannot push a nil item")
	// ErrDestroyed is returned when pushing onto a destroyed array.
	ErrDestroyed = errors.New("array has been destroyed")
)

// LimitError indicates that growing an array would exceed its capacity
// limit.  The allocation is refused and the array is left unchanged.
type LimitError struct {
	Cap   int
	Limit int
	Op    string
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("array capacity limit exceeded by %s: %d > %d", e.Op, e.Cap, e.Limit)
}

// IndexError reports an index outside of [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("array index %d out of range [0:%d]", e.Index, e.Len)
}

type config struct {
	limit int
}

// Option configures a new Array.
type Option func(*config)

// WithLimit bounds the capacity of an array to n slots.  Growth past the
// limit fails with a *LimitError.  A limit of zero means unbounded.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

// Array is a growable sequence of comparable items.  The zero value of T
// plays the role of a null handle and can never be stored.
type Array[T comparable] struct {
	items     []T // len(items) is the capacity
	count     int
	granule   int
	limit     int
	destroyed bool
}

// New returns an empty array with capacity slots reserved.  A capacity of
// zero defers allocation until the first push.
func New[T comparable](capacity int, opts ...Option) (*Array[T], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.limit > 0 && capacity > c.limit {
		return nil, &LimitError{Cap: capacity, Limit: c.limit, Op: "create"}
	}
	a := &Array[T]{
		granule: capacity,
		limit:   c.limit,
	}
	if capacity > 0 {
		a.items = make([]T, capacity)
	}
	return a, nil
}

// Push appends item to a.  If a is nil a new array is created first, so that
// pushing onto a possibly absent array is a single call.  The returned array
// is the one item was appended to.  A zero item is rejected without creating
// or modifying anything.  For an interface item type only a nil interface is
// zero; a nil pointer stored in the interface is not.
func Push[T comparable](a *Array[T], item T) (*Array[T], error) {
	var zero T
	if item == zero {
		return a, ErrNilItem
	}
	if a == nil {
		a = &Array[T]{}
	}
	err := a.Push(item)
	if err != nil {
		return a, err
	}
	return a, nil
}

// Push appends item to a, doubling the capacity of a if it is full.
func (a *Array[T]) Push(item T) error {
	var zero T
	if item == zero {
		return ErrNilItem
	}
	if a.destroyed {
		return ErrDestroyed
	}
	err := a.adjust(a.count + 1)
	if err != nil {
		return err
	}
	a.items[a.count-1] = item
	return nil
}

// Remove deletes the item at index, shifting all following items down by
// one.  If destroy is not nil it is called with the removed item before
// anything moves.  Remove may shrink the capacity of a.
func (a *Array[T]) Remove(index int, destroy func(T)) error {
	if a == nil || index < 0 || index >= a.count {
		return &IndexError{Index: index, Len: a.Len()}
	}
	if destroy != nil {
		destroy(a.items[index])
	}
	copy(a.items[index:], a.items[index+1:a.count])
	return a.adjust(a.count - 1)
}

// Contains returns the first index i such that cmp(a.At(i), item) == expect,
// or NotFound.
func (a *Array[T]) Contains(item T, cmp func(slot, item T) int, expect int) int {
	if a == nil {
		return NotFound
	}
	for i := 0; i < a.count; i++ {
		if cmp(a.items[i], item) == expect {
			return i
		}
	}
	return NotFound
}

// Clear removes every item from a, calling destroy on each one if destroy is
// not nil, and releases the storage of a.  Clearing an empty array does
// nothing.
func (a *Array[T]) Clear(destroy func(T)) {
	if a == nil {
		return
	}
	if destroy != nil {
		for i := 0; i < a.count; i++ {
			destroy(a.items[i])
		}
	}
	a.items = nil
	a.count = 0
}

// Destroy clears a and marks it unusable.  Destroying a cleared or destroyed
// array is a no-op.
func (a *Array[T]) Destroy(destroy func(T)) {
	if a == nil {
		return
	}
	a.Clear(destroy)
	a.destroyed = true
}

// Len returns the number of items in a.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.count
}

// Cap returns the number of slots currently allocated by a.
func (a *Array[T]) Cap() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the item at index i.  At panics if i is out of range.
func (a *Array[T]) At(i int) T {
	if i < 0 || i >= a.Len() {
		panic((&IndexError{Index: i, Len: a.Len()}).Error())
	}
	return a.items[i]
}

// Last returns the final item in a, if there is one.
func (a *Array[T]) Last() (T, bool) {
	if a.Len() == 0 {
		var zero T
		return zero, false
	}
	return a.items[a.count-1], true
}

// Items returns a copy of the items in a.
func (a *Array[T]) Items() []T {
	if a.Len() == 0 {
		return nil
	}
	items := make([]T, a.count)
	copy(items, a.items[:a.count])
	return items
}

// Each calls fn for every item in order until fn returns false.
func (a *Array[T]) Each(fn func(i int, item T) bool) {
	for i := 0; i < a.Len(); i++ {
		if !fn(i, a.items[i]) {
			return
		}
	}
}

// adjust is the only place the backing storage of a is allocated, resized or
// released.  The items that must survive are all below index n.
func (a *Array[T]) adjust(n int) error {
	size := len(a.items)
	switch {
	case n == 0:
		a.items = nil
	case size == 0:
		if a.granule == 0 {
			a.granule = 1
		}
		size = a.granule
		for size < n {
			size *= 2
		}
		if err := a.checkLimit(size, "push"); err != nil {
			return err
		}
		a.items = make([]T, size)
	case n > size:
		for size < n {
			size *= 2
		}
		if err := a.checkLimit(size, "push"); err != nil {
			return err
		}
		items := make([]T, size)
		copy(items, a.items[:a.count])
		a.items = items
	case n < a.count && n <= size/2:
		d := 1
		for size/(d*2) >= a.granule && n <= size/(d*2) {
			d *= 2
		}
		if d > 1 {
			items := make([]T, size/d)
			copy(items, a.items[:n])
			a.items = items
		}
	}
	// fresh storage is already zeroed; only a vacated slot needs clearing
	if n < a.count && n < len(a.items) {
		var zero T
		a.items[n] = zero
	}
	a.count = n
	return nil
}

func (a *Array[T]) checkLimit(size int, op string) error {
	if a.limit > 0 && size > a.limit {
		return &LimitError{Cap: size, Limit: a.limit, Op: op}
	}
	return nil
}
