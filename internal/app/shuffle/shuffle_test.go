package shuffle

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// fixedSource always returns the upper bound, which makes Fisher-Yates a no-op.
type fixedSource struct{}

func (fixedSource) IntN(n int) int { return n - 1 }

func TestPermutation_IsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 57} {
		perm := Permutation(n, newSource(uint64(n)))

		require.Len(t, perm, n)
		sorted := append([]int(nil), perm...)
		sort.Ints(sorted)
		for i, v := range sorted {
			assert.Equal(t, i, v, "n=%d", n)
		}
	}
}

func TestPermutation_Empty(t *testing.T) {
	assert.Empty(t, Permutation(0, newSource(1)))
	assert.Empty(t, Permutation(-3, newSource(1)))
}

func TestPermutation_NilSource(t *testing.T) {
	perm := Permutation(5, nil)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, perm)
}

func TestPermutation_IdentityWhenSourcePicksUpperBound(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, Permutation(4, fixedSource{}))
}

func TestPermutation_Deterministic(t *testing.T) {
	a := Permutation(20, newSource(42))
	b := Permutation(20, newSource(42))
	assert.Equal(t, a, b)
}

func TestLocate(t *testing.T) {
	perm := []int{2, 0, 3, 1}

	tests := []struct {
		name     string
		value    int
		expected int
	}{
		{name: "first", value: 2, expected: 0},
		{name: "middle", value: 3, expected: 2},
		{name: "last", value: 1, expected: 3},
		{name: "absent falls back to zero", value: 9, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Locate(perm, tt.value))
		})
	}
	assert.Equal(t, 0, Locate(nil, 0))
}

func TestNew_CursorPointsAtStart(t *testing.T) {
	for start := 0; start < 6; start++ {
		o := New(6, start, newSource(uint64(start+7)))

		assert.Equal(t, 6, o.Len())
		assert.Equal(t, start, o.Current())
		assert.Equal(t, start, o.Permutation()[o.Cursor()])
	}
}

func TestOrder_AdvanceVisitsEveryIndexOnce(t *testing.T) {
	o := New(5, 2, newSource(3))

	seen := map[int]bool{o.Current(): true}
	for i := 0; i < 4; i++ {
		seen[o.Advance()] = true
	}
	assert.Len(t, seen, 5)

	// One more step wraps back to the start.
	assert.Equal(t, 2, o.Advance())
}

func TestOrder_RetreatUndoesAdvance(t *testing.T) {
	o := New(4, 1, newSource(11))
	start := o.Cursor()

	o.Advance()
	o.Advance()
	o.Retreat()
	o.Retreat()

	assert.Equal(t, start, o.Cursor())
	assert.Equal(t, 1, o.Current())
}

func TestOrder_RetreatWrapsToEnd(t *testing.T) {
	o := &Order{perm: []int{3, 1, 0, 2}, cursor: 0}

	assert.Equal(t, 2, o.Retreat())
	assert.Equal(t, 3, o.Cursor())
}

func TestOrder_Empty(t *testing.T) {
	o := New(0, 0, newSource(1))

	assert.Equal(t, 0, o.Len())
	assert.Equal(t, 0, o.Current())
	assert.Equal(t, 0, o.Advance())
	assert.Equal(t, 0, o.Retreat())
}

func TestOrder_PermutationIsCopy(t *testing.T) {
	o := New(3, 0, newSource(5))
	perm := o.Permutation()
	perm[0] = 99

	assert.NotEqual(t, 99, o.Permutation()[0])
}
