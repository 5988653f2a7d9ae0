package forest

import (
	"sync/atomic"
	"testing"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/beam"
	"github.com/parabel-ml/parabel/internal/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExamples() []domain.Example {
	return []domain.Example{
		{Features: domain.SparseVector{{Index: 0, Value: 1}, {Index: 2, Value: 2}}, Labels: []domain.Label{0, 1}},
		{Features: domain.SparseVector{{Index: 1, Value: 1}, {Index: 3, Value: 2}}, Labels: []domain.Label{0, 2}},
		{Features: domain.SparseVector{{Index: 0, Value: 1}, {Index: 3, Value: 2}}, Labels: []domain.Label{1, 2}},
		{Features: domain.SparseVector{{Index: 1, Value: 1}, {Index: 2, Value: 2}}, Labels: []domain.Label{0, 1, 2}},
	}
}

func TestBuildForestProducesNTreesIndependently(t *testing.T) {
	examples := sampleExamples()
	hp := domain.DefaultHyperParams()
	hp.NTrees = 3
	hp.NThreads = 2
	hp.MaxLeafSize = 1
	hp.ClusterEpsilon = 1e-6

	var completed int32
	model, err := BuildForest(examples, 4, hp, linear.NewGroup(), func() { atomic.AddInt32(&completed, 1) })
	require.NoError(t, err)
	require.Len(t, model.Trees, 3)
	assert.EqualValues(t, 3, atomic.LoadInt32(&completed))
	for _, tr := range model.Trees {
		require.NotNil(t, tr.Root)
	}
	assert.Equal(t, 4, model.NFeatures)
}

func TestBuildForestRejectsInvalidHyperParams(t *testing.T) {
	hp := domain.DefaultHyperParams()
	hp.NTrees = 0
	_, err := BuildForest(sampleExamples(), 4, hp, linear.NewGroup(), nil)
	assert.Error(t, err)
}

// fixedSearchSameEveryTree ignores the tree and the feature vector,
// returning a copy of the same score set for every tree so that every
// tree agrees.
func fixedSearchSameEveryTree(scores []domain.LabelScore) predictFn {
	return func(_ *domain.Tree, _ domain.DenseVector, _ int, _ domain.ClassifierGroupTrainer, _ domain.LossType) []domain.LabelScore {
		out := make([]domain.LabelScore, len(scores))
		copy(out, scores)
		return out
	}
}

func TestPredictAveragesIdenticalTreesToSingleTreeScores(t *testing.T) {
	single := []domain.LabelScore{
		{Label: 10, Score: 0.6},
		{Label: 20, Score: 0.3},
	}
	m := &domain.Model{
		Trees:     []*domain.Tree{{Root: &domain.TreeNode{Kind: domain.LeafNode}}, {Root: &domain.TreeNode{Kind: domain.LeafNode}}},
		NFeatures: 4,
		Hyper:     domain.DefaultHyperParams(),
	}

	results, err := Predict(m, domain.DenseVector{1, 0, 0, 0, 1}, 5, linear.NewGroup(), fixedSearchSameEveryTree(single))
	require.NoError(t, err)
	require.Len(t, results, 2)
	byLabel := map[domain.Label]float32{}
	for _, r := range results {
		byLabel[r.Label] = r.Score
	}
	assert.InDelta(t, 0.6, byLabel[10], 1e-6)
	assert.InDelta(t, 0.3, byLabel[20], 1e-6)
	// Descending by score.
	assert.Equal(t, domain.Label(10), results[0].Label)
}

func TestPredictAveragesAcrossDivergingTrees(t *testing.T) {
	treeA := &domain.Tree{Root: &domain.TreeNode{Kind: domain.LeafNode}}
	treeB := &domain.Tree{Root: &domain.TreeNode{Kind: domain.LeafNode}}
	scoreByTree := map[*domain.Tree]float32{treeA: 1.0, treeB: 0.0}
	search := func(tree *domain.Tree, _ domain.DenseVector, _ int, _ domain.ClassifierGroupTrainer, _ domain.LossType) []domain.LabelScore {
		return []domain.LabelScore{{Label: 1, Score: scoreByTree[tree]}}
	}
	m := &domain.Model{
		Trees:     []*domain.Tree{treeA, treeB},
		NFeatures: 1,
		Hyper:     domain.DefaultHyperParams(),
	}

	results, err := Predict(m, domain.DenseVector{1}, 1, linear.NewGroup(), search)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.5, results[0].Score, 1e-6)
}

func TestForestEndToEndWithBeamSearch(t *testing.T) {
	examples := sampleExamples()
	hp := domain.DefaultHyperParams()
	hp.NTrees = 2
	hp.MaxLeafSize = 1
	hp.ClusterEpsilon = 1e-6

	model, err := BuildForest(examples, 4, hp, linear.NewGroup(), nil)
	require.NoError(t, err)

	x := domain.DenseVector{1, 0, 2, 0, 1}
	results, err := Predict(model, x, 10, linear.NewGroup(), beam.Predict)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}
