// Package sumtree implements a fixed-size sum tree: a complete binary
// tree whose leaves hold non-negative weights and whose internal nodes
// cache the sum of their subtrees. Point updates and prefix-sum descent
// both cost O(log n), which makes the structure suitable for sampling
// elements proportional to their weight.
package sumtree

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrInvalidCapacity is returned by New for non-positive capacities.
	ErrInvalidCapacity = errors.New("sumtree: capacity must be positive")

	// ErrIndexOutOfRange is returned when a leaf index falls outside
	// [0, capacity).
	ErrIndexOutOfRange = errors.New("sumtree: index out of range")

	// ErrNegativeValue is returned by Update for negative leaf values.
	ErrNegativeValue = errors.New("sumtree: value must be non-negative")
)

// Tree maps leaf indices to weights. The node arena has length 2*size
// where size is the smallest power of two >= capacity; leaves occupy
// [size, 2*size) and the root sits at index 1. Leaves at or beyond
// capacity are never written and stay zero.
type Tree struct {
	nodes    []float64
	size     int
	capacity int
}

// New creates a tree with the given number of addressable leaves, all
// initialized to zero.
func New(capacity int) (*Tree, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	size := 1 << bits.Len(uint(capacity-1))

	return &Tree{
		nodes:    make([]float64, 2*size),
		size:     size,
		capacity: capacity,
	}, nil
}

// Capacity returns the number of addressable leaves.
func (t *Tree) Capacity() int { return t.capacity }

// Size returns the aligned leaf count (smallest power of two >= capacity).
func (t *Tree) Size() int { return t.size }

// Total returns the sum of all leaves.
func (t *Tree) Total() float64 { return t.nodes[1] }

// Leaf returns the weight stored at the given leaf.
func (t *Tree) Leaf(index int) (float64, error) {
	if index < 0 || index >= t.capacity {
		return 0, fmt.Errorf("%w: index %d, capacity %d", ErrIndexOutOfRange, index, t.capacity)
	}
	return t.nodes[t.size+index], nil
}

// Update sets the leaf at index to value and refreshes every ancestor
// sum up to the root.
func (t *Tree) Update(index int, value float64) error {
	if index < 0 || index >= t.capacity {
		return fmt.Errorf("%w: index %d, capacity %d", ErrIndexOutOfRange, index, t.capacity)
	}
	if value < 0 {
		return fmt.Errorf("%w: got %v at index %d", ErrNegativeValue, value, index)
	}

	pos := t.size + index
	t.nodes[pos] = value
	for pos > 1 {
		pos /= 2
		t.nodes[pos] = t.nodes[2*pos] + t.nodes[2*pos+1]
	}
	return nil
}

// RangeSum returns the sum of leaves in [lo, hi] inclusive. Bounds are
// clamped to the addressable leaves; an empty range sums to zero.
func (t *Tree) RangeSum(lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi >= t.capacity {
		hi = t.capacity - 1
	}
	if lo > hi {
		return 0
	}

	sum := 0.0
	l, r := t.size+lo, t.size+hi+1
	for l < r {
		if l&1 == 1 {
			sum += t.nodes[l]
			l++
		}
		if r&1 == 1 {
			r--
			sum += t.nodes[r]
		}
		l /= 2
		r /= 2
	}
	return sum
}

// FindPrefixSum returns the leaf index whose cumulative weight range
// contains mass: the smallest i such that mass < sum of leaves [0, i].
// Callers draw mass from [0, Total()). If floating-point rounding
// pushes mass past the total, the descent walks into the zero-padded
// tail and the result is clamped to the last addressable leaf.
func (t *Tree) FindPrefixSum(mass float64) int {
	pos := 1
	for pos < t.size {
		left := 2 * pos
		if mass < t.nodes[left] {
			pos = left
		} else {
			mass -= t.nodes[left]
			pos = left + 1
		}
	}

	index := pos - t.size
	if index >= t.capacity {
		index = t.capacity - 1
	}
	return index
}

// Reset zeroes every node, returning the tree to its freshly
// constructed state.
func (t *Tree) Reset() {
	for i := range t.nodes {
		t.nodes[i] = 0
	}
}
