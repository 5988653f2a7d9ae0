package centroid

import (
	"math"
	"testing"

	"github.com/parabel-ml/parabel/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFeatureVectorsPerLabel(t *testing.T) {
	// Scenario from the spec's testable-properties section:
	// E1=(features {0:1, 2:2}, labels {0,1})
	// E2=(features {1:1, 3:2}, labels {0,2})
	// E3=(features {0:1, 3:2}, labels {1,2})
	examples := []domain.Example{
		{Features: domain.SparseVector{{Index: 0, Value: 1}, {Index: 2, Value: 2}}, Labels: []domain.Label{0, 1}},
		{Features: domain.SparseVector{{Index: 1, Value: 1}, {Index: 3, Value: 2}}, Labels: []domain.Label{0, 2}},
		{Features: domain.SparseVector{{Index: 0, Value: 1}, {Index: 3, Value: 2}}, Labels: []domain.Label{1, 2}},
	}
	threshold := float32(1/math.Sqrt(18) + 1e-4)

	labels, vectors := ComputeFeatureVectorsPerLabel(examples, threshold)
	require.Equal(t, []domain.Label{0, 1, 2}, labels)

	byLabel := map[domain.Label]domain.SparseVector{}
	for i, l := range labels {
		byLabel[l] = vectors[i]
	}

	sqrt10 := float32(1 / math.Sqrt(10))
	assert.Equal(t, domain.SparseVector{
		{Index: 0, Value: sqrt10},
		{Index: 1, Value: sqrt10},
		{Index: 2, Value: 2 * sqrt10},
		{Index: 3, Value: 2 * sqrt10},
	}, byLabel[0])

	sqrt12 := float32(1 / math.Sqrt(12))
	assert.Equal(t, domain.SparseVector{
		{Index: 0, Value: 2 * sqrt12},
		{Index: 2, Value: 2 * sqrt12},
		{Index: 3, Value: 2 * sqrt12},
	}, byLabel[1])

	// Label 2 sums to {0:1, 1:1, 3:4} (norm^2=18); after normalization entries
	// at 0 and 1 both equal 1/sqrt(18), which the threshold prunes away.
	require.Len(t, byLabel[2], 1)
	assert.Equal(t, domain.Index(3), byLabel[2][0].Index)
	assert.InDelta(t, float64(4/math.Sqrt(18)), float64(byLabel[2][0].Value), 1e-4)
}
