// Package shuffle produces and tracks random traversal orders over a queue's index space.
package shuffle

import "math/rand/v2"

// Source provides uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns a Source backed by the global generator.
func DefaultSource() Source {
	return globalSource{}
}

// Permutation returns a uniformly random permutation of [0, n) using an
// in-place Fisher-Yates shuffle. Fixed points are allowed.
func Permutation(n int, src Source) []int {
	if n <= 0 {
		return []int{}
	}
	if src == nil {
		src = DefaultSource()
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Locate returns the position of value inside perm, or 0 if it is absent.
func Locate(perm []int, value int) int {
	for i, v := range perm {
		if v == value {
			return i
		}
	}
	return 0
}

// Order is a traversal order: a permutation and a cursor into it.
// The invariant perm[cursor] == current queue position holds right after New.
type Order struct {
	perm   []int
	cursor int
}

// New builds a fresh order over [0, n) with the cursor placed on start.
func New(n, start int, src Source) *Order {
	perm := Permutation(n, src)
	return &Order{
		perm:   perm,
		cursor: Locate(perm, start),
	}
}

// Len returns the size of the index space.
func (o *Order) Len() int {
	return len(o.perm)
}

// Cursor returns the current offset within the permutation.
func (o *Order) Cursor() int {
	return o.cursor
}

// Current returns the queue index under the cursor.
func (o *Order) Current() int {
	if len(o.perm) == 0 {
		return 0
	}
	return o.perm[o.cursor]
}

// Permutation returns a copy of the permutation.
func (o *Order) Permutation() []int {
	perm := make([]int, len(o.perm))
	copy(perm, o.perm)
	return perm
}

// Advance moves the cursor forward circularly and returns the queue index it
// lands on. Moving and reading are one step; callers must call it exactly once
// per traversal.
func (o *Order) Advance() int {
	if len(o.perm) == 0 {
		return 0
	}
	o.cursor = (o.cursor + 1) % len(o.perm)
	return o.perm[o.cursor]
}

// Retreat moves the cursor backward circularly and returns the queue index it
// lands on.
func (o *Order) Retreat() int {
	if len(o.perm) == 0 {
		return 0
	}
	if o.cursor > 0 {
		o.cursor--
	} else {
		o.cursor = len(o.perm) - 1
	}
	return o.perm[o.cursor]
}
