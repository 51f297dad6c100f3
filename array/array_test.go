// Copyright © 2024 The MNL authors

package array

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	n int
}

func newItems(n int) []*item {
	items := make([]*item, n)
	for i := range items {
		items[i] = &item{i}
	}
	return items
}

// checkInvariants verifies the properties every mutator must preserve.
func checkInvariants[T comparable](t *testing.T, a *Array[T]) {
	t.Helper()
	var zero T
	require.GreaterOrEqual(t, a.Cap(), a.Len())
	for i := a.Len(); i < a.Cap(); i++ {
		assert.Equal(t, zero, a.items[i], "spare slot %d is not cleared", i)
	}
	if a.Cap() == 0 {
		return
	}
	require.NotZero(t, a.granule)
	ratio := a.Cap() / a.granule
	assert.Zero(t, a.Cap()%a.granule, "capacity %d is not a multiple of granule %d", a.Cap(), a.granule)
	assert.True(t, ratio > 0 && ratio&(ratio-1) == 0, "capacity %d is not granule %d times a power of two", a.Cap(), a.granule)
}

func TestNew(t *testing.T) {
	a, err := New[*item](0)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap())

	a, err = New[*item](16)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 16, a.Cap())
	checkInvariants(t, a)

	a, err = New[*item](-1)
	assert.ErrorIs(t, err, ErrNegativeCapacity)
	assert.Nil(t, a)

	a, err = New[*item](8, WithLimit(4))
	var lerr *LimitError
	assert.True(t, errors.As(err, &lerr))
	assert.Nil(t, a)
}

func TestPushNilArray(t *testing.T) {
	items := newItems(3)
	var a *Array[*item]
	a, err := Push(a, items[0])
	require.NoError(t, err)
	require.NotNil(t, a)
	a, err = Push(a, items[1])
	require.NoError(t, err)
	assert.Equal(t, []*item{items[0], items[1]}, a.Items())
	checkInvariants(t, a)
}

func TestPushNilItem(t *testing.T) {
	var a *Array[*item]
	a, err := Push(a, nil)
	assert.ErrorIs(t, err, ErrNilItem)
	assert.Nil(t, a, "a nil item must not create an array")

	a, err = New[*item](2)
	require.NoError(t, err)
	require.NoError(t, a.Push(&item{}))
	assert.ErrorIs(t, a.Push(nil), ErrNilItem)
	assert.Equal(t, 1, a.Len())
	checkInvariants(t, a)
}

func TestPushDoubling(t *testing.T) {
	a, err := New[*item](0)
	require.NoError(t, err)
	var caps []int
	for _, it := range newItems(9) {
		require.NoError(t, a.Push(it))
		caps = append(caps, a.Cap())
		checkInvariants(t, a)
	}
	assert.Equal(t, []int{1, 2, 4, 4, 8, 8, 8, 8, 16}, caps)

	a, err = New[*item](3)
	require.NoError(t, err)
	caps = nil
	for _, it := range newItems(7) {
		require.NoError(t, a.Push(it))
		caps = append(caps, a.Cap())
		checkInvariants(t, a)
	}
	assert.Equal(t, []int{3, 3, 3, 6, 6, 6, 12}, caps)
}

func TestPushLimit(t *testing.T) {
	a, err := New[*item](2, WithLimit(4))
	require.NoError(t, err)
	items := newItems(5)
	for _, it := range items[:4] {
		require.NoError(t, a.Push(it))
	}
	err = a.Push(items[4])
	var lerr *LimitError
	require.True(t, errors.As(err, &lerr), "unexpected error: %v", err)
	assert.Equal(t, 8, lerr.Cap)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, items[:4], a.Items())
	checkInvariants(t, a)
}

func TestRemove(t *testing.T) {
	a, err := New[*item](0)
	require.NoError(t, err)
	items := newItems(5)
	for _, it := range items {
		require.NoError(t, a.Push(it))
	}

	var destroyed []*item
	destroy := func(it *item) { destroyed = append(destroyed, it) }

	require.NoError(t, a.Remove(1, destroy))
	assert.Equal(t, []*item{items[0], items[2], items[3], items[4]}, a.Items())
	assert.Equal(t, []*item{items[1]}, destroyed)
	checkInvariants(t, a)

	require.NoError(t, a.Remove(3, nil))
	assert.Equal(t, []*item{items[0], items[2], items[3]}, a.Items())
	assert.Len(t, destroyed, 1)
	checkInvariants(t, a)

	var ierr *IndexError
	assert.True(t, errors.As(a.Remove(3, nil), &ierr))
	assert.True(t, errors.As(a.Remove(-1, nil), &ierr))
	var nilArray *Array[*item]
	assert.True(t, errors.As(nilArray.Remove(0, nil), &ierr))
}

func TestRemoveShrink(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		push    int
		remain  int
		cap     int
	}{
		{"halve", 0, 16, 8, 8},
		{"quarter", 0, 16, 4, 4},
		{"one", 0, 16, 1, 1},
		{"granule floor", 4, 16, 1, 4},
		{"odd granule", 3, 12, 2, 3},
		{"empty releases storage", 4, 5, 0, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := New[*item](test.initial)
			require.NoError(t, err)
			items := newItems(test.push)
			for _, it := range items {
				require.NoError(t, a.Push(it))
			}
			for a.Len() > test.remain {
				require.NoError(t, a.Remove(0, nil))
				checkInvariants(t, a)
			}
			assert.Equal(t, test.remain, a.Len())
			assert.Equal(t, test.cap, a.Cap())
			if test.remain > 0 {
				assert.Equal(t, items[test.push-test.remain:], a.Items())
			}
		})
	}
}

func TestPushRemoveSequence(t *testing.T) {
	// Interleave pushes and removals and check the invariants after each
	// step, including that slots past Len never hold stale references.
	a, err := New[*item](2)
	require.NoError(t, err)
	items := newItems(64)
	var want []*item
	for i, it := range items {
		require.NoError(t, a.Push(it))
		want = append(want, it)
		checkInvariants(t, a)
		if i%3 == 2 {
			idx := (i * 7) % a.Len()
			require.NoError(t, a.Remove(idx, nil))
			want = append(want[:idx], want[idx+1:]...)
			checkInvariants(t, a)
		}
	}
	assert.Equal(t, want, a.Items())
	for a.Len() > 5 {
		require.NoError(t, a.Remove(a.Len()-1, nil))
		checkInvariants(t, a)
	}
	assert.Equal(t, want[:5], a.Items())
}

func TestContains(t *testing.T) {
	a, err := New[*item](4)
	require.NoError(t, err)
	items := newItems(4)
	for _, it := range items {
		require.NoError(t, a.Push(it))
	}
	byValue := func(slot, it *item) int { return slot.n - it.n }
	assert.Equal(t, 2, a.Contains(&item{2}, byValue, 0))
	assert.Equal(t, NotFound, a.Contains(&item{9}, byValue, 0))

	greater := func(slot, it *item) int {
		if slot.n > it.n {
			return 1
		}
		return 0
	}
	assert.Equal(t, 2, a.Contains(&item{1}, greater, 1))

	var nilArray *Array[*item]
	assert.Equal(t, NotFound, nilArray.Contains(items[0], byValue, 0))
}

func TestClearDestroy(t *testing.T) {
	a, err := New[*item](0)
	require.NoError(t, err)
	for _, it := range newItems(5) {
		require.NoError(t, a.Push(it))
	}

	count := 0
	destroy := func(*item) { count++ }
	a.Clear(destroy)
	assert.Equal(t, 5, count)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap())
	checkInvariants(t, a)

	// Destroying an already cleared array must not run the destructor again.
	a.Destroy(destroy)
	assert.Equal(t, 5, count)
	a.Destroy(destroy)
	assert.Equal(t, 5, count)
	assert.ErrorIs(t, a.Push(&item{}), ErrDestroyed)

	var nilArray *Array[*item]
	nilArray.Clear(destroy)
	nilArray.Destroy(destroy)
	assert.Equal(t, 5, count)
}

func TestAccessors(t *testing.T) {
	a, err := New[*item](0)
	require.NoError(t, err)
	_, ok := a.Last()
	assert.False(t, ok)
	assert.Nil(t, a.Items())
	assert.Panics(t, func() { a.At(0) })

	items := newItems(3)
	for _, it := range items {
		require.NoError(t, a.Push(it))
	}
	last, ok := a.Last()
	assert.True(t, ok)
	assert.Same(t, items[2], last)
	assert.Same(t, items[1], a.At(1))

	var seen []int
	a.Each(func(i int, it *item) bool {
		seen = append(seen, it.n)
		return i < 1
	})
	assert.Equal(t, []int{0, 1}, seen)

	// Items returns a copy.
	cp := a.Items()
	cp[0] = nil
	assert.Same(t, items[0], a.At(0))
}
