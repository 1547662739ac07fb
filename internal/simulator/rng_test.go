package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandIsDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
		assert.Equal(t, a.IntBetween(0, 59), b.IntBetween(0, 59))
		assert.Equal(t, a.UUID(), b.UUID())
		assert.Equal(t, a.Normal(900, 300), b.Normal(900, 300))
	}
}

func TestUniformStaysInRange(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		v := r.Uniform(8, 65)
		assert.GreaterOrEqual(t, v, 8.0)
		assert.Less(t, v, 65.0)
	}
}

func TestIntBetweenIsInclusive(t *testing.T) {
	r := NewRand(1)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := r.IntBetween(1, 3)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)

	assert.Equal(t, 5, r.IntBetween(5, 5))
	assert.Equal(t, 5, r.IntBetween(5, 2))
}

func TestBoolEdges(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 100; i++ {
		assert.False(t, r.Bool(0))
		assert.True(t, r.Bool(1))
	}
}

func TestWeightedIndexRespectsWeights(t *testing.T) {
	r := NewRand(1)
	weights := []float64{0, 1, 0}
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, r.WeightedIndex(weights))
	}

	counts := make(map[int]int)
	skewed := []float64{0.9, 0.1}
	for i := 0; i < 10_000; i++ {
		counts[r.WeightedIndex(skewed)]++
	}
	assert.Greater(t, counts[0], counts[1]*4)

	assert.Equal(t, 0, r.WeightedIndex([]float64{0, 0}))
}

func TestUUIDLooksLikeV4(t *testing.T) {
	r := NewRand(7)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.UUID()
		require.Len(t, id, 36)
		assert.Equal(t, byte('4'), id[14], "version nibble must be 4")
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestNormalRoughMoments(t *testing.T) {
	r := NewRand(1)
	const n = 20_000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += r.Normal(900, 300)
	}
	assert.InDelta(t, 900, sum/n, 10)
}
