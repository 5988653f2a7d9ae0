package vectorops

import (
	"math"
	"testing"

	"github.com/parabel-ml/parabel/domain"
	"github.com/stretchr/testify/assert"
)

func sv(pairs ...float32) domain.SparseVector {
	out := make(domain.SparseVector, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.SparseEntry{Index: domain.Index(pairs[i]), Value: pairs[i+1]})
	}
	return out
}

func TestDot(t *testing.T) {
	t.Run("disjoint indices give zero", func(t *testing.T) {
		a := sv(0, 1, 2, 1)
		b := sv(1, 1, 3, 1)
		assert.Equal(t, float32(0), Dot(a, b))
	})

	t.Run("overlapping indices accumulate", func(t *testing.T) {
		a := sv(0, 1, 1, 2)
		b := sv(0, 3, 1, 4)
		assert.Equal(t, float32(1*3+2*4), Dot(a, b))
	})

	t.Run("unit vectors stay in [-1,1]", func(t *testing.T) {
		a := L2Normalize(sv(0, 3, 1, 4))
		assert.InDelta(t, float64(1), Dot(a, a), 1e-5)
	})
}

func TestL2Normalize(t *testing.T) {
	t.Run("sum of squares is 1 after normalization", func(t *testing.T) {
		v := L2Normalize(sv(0, 1, 2, 2))
		var sumSq float64
		for _, e := range v {
			sumSq += float64(e.Value) * float64(e.Value)
		}
		assert.InDelta(t, 1.0, sumSq, 1e-5)
	})

	t.Run("zero vector is unchanged", func(t *testing.T) {
		v := sv(0, 0)
		// sv(0, 0) keeps an explicit zero entry; test the empty vector directly.
		v = domain.SparseVector{}
		assert.Equal(t, v, L2Normalize(v))
	})
}

func TestPruneWithThreshold(t *testing.T) {
	v := sv(0, 0.01, 1, 0.5, 2, -0.2)
	pruned := PruneWithThreshold(v, 0.3)
	for _, e := range pruned {
		assert.GreaterOrEqual(t, math.Abs(float64(e.Value)), 0.3)
	}
	assert.Len(t, pruned, 1)
	assert.Equal(t, domain.Index(1), pruned[0].Index)
}

func TestFromMap(t *testing.T) {
	m := map[domain.Index]float32{3: 1, 1: 2, 2: 0}
	out := FromMap(m)
	assert.Equal(t, domain.SparseVector{
		{Index: 1, Value: 2},
		{Index: 3, Value: 1},
	}, out)
}

func TestToDense(t *testing.T) {
	v := sv(0, 3, 2, 4)
	dense := ToDense(v, 4)
	assert.Len(t, dense, 5)
	assert.Equal(t, float32(1), dense[4], "bias slot must be 1")
	var sumSq float64
	for i := 0; i < 4; i++ {
		sumSq += float64(dense[i]) * float64(dense[i])
	}
	assert.InDelta(t, 1.0, sumSq, 1e-5)
}
