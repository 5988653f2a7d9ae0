package beam

import (
	"math"
	"testing"

	"github.com/parabel-ml/parabel/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedScoreTrainer ignores the feature vector and returns each row's
// single stored entry as its score directly, so a test can hand-pick
// exact path scores without reasoning about margins.
type fixedScoreTrainer struct{}

func (fixedScoreTrainer) Train([]domain.Example, [][]int8, int, domain.LinearParams) (domain.WeightMatrix, error) {
	return domain.WeightMatrix{}, nil
}

func (fixedScoreTrainer) Predict(_ domain.DenseVector, wm domain.WeightMatrix, _ domain.LossType) []float32 {
	scores := make([]float32, len(wm.Rows))
	for i, row := range wm.Rows {
		scores[i] = row[0].Value
	}
	return scores
}

func row(v float32) domain.SparseVector { return domain.SparseVector{{Index: 0, Value: v}} }

func TestPredictDeterministicTwoBranchTree(t *testing.T) {
	leftLeaf := &domain.TreeNode{
		Kind:    domain.LeafNode,
		Weights: domain.WeightMatrix{Rows: []domain.SparseVector{row(-0.2)}},
		Labels:  []domain.Label{100},
	}
	rightLeaf := &domain.TreeNode{
		Kind:    domain.LeafNode,
		Weights: domain.WeightMatrix{Rows: []domain.SparseVector{row(-0.1)}},
		Labels:  []domain.Label{200},
	}
	root := &domain.TreeNode{
		Kind:     domain.BranchNode,
		Weights:  domain.WeightMatrix{Rows: []domain.SparseVector{row(-0.5), row(-1.5)}},
		Children: []*domain.TreeNode{leftLeaf, rightLeaf},
	}
	tree := &domain.Tree{Root: root}

	results := Predict(tree, domain.DenseVector{1}, 2, fixedScoreTrainer{}, domain.LossHinge)
	require.Len(t, results, 2)

	byLabel := map[domain.Label]float32{}
	for _, r := range results {
		byLabel[r.Label] = r.Score
	}
	assert.InDelta(t, math.Exp(-0.7), float64(byLabel[100]), 1e-6)
	assert.InDelta(t, math.Exp(-1.6), float64(byLabel[200]), 1e-6)
}

func TestPredictBeamTruncation(t *testing.T) {
	// With beam size 1, only the highest-path-score branch child survives.
	leftLeaf := &domain.TreeNode{Kind: domain.LeafNode, Weights: domain.WeightMatrix{Rows: []domain.SparseVector{row(0)}}, Labels: []domain.Label{1}}
	rightLeaf := &domain.TreeNode{Kind: domain.LeafNode, Weights: domain.WeightMatrix{Rows: []domain.SparseVector{row(0)}}, Labels: []domain.Label{2}}
	root := &domain.TreeNode{
		Kind:     domain.BranchNode,
		Weights:  domain.WeightMatrix{Rows: []domain.SparseVector{row(-0.1), row(-5.0)}},
		Children: []*domain.TreeNode{leftLeaf, rightLeaf},
	}
	tree := &domain.Tree{Root: root}

	results := Predict(tree, domain.DenseVector{1}, 1, fixedScoreTrainer{}, domain.LossHinge)
	require.Len(t, results, 1)
	assert.Equal(t, domain.Label(1), results[0].Label)
}
