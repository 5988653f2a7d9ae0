// Package beam implements beam-search prediction through one label
// tree: a top-down traversal that keeps the top-B highest-scoring
// frontier at every level, accumulating per-node classifier scores as
// additive log-probabilities along each root-to-leaf path, and
// exponentiating only once a path reaches a leaf.
package beam

import (
	"math"
	"sort"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/invariant"
)

// frontierEntry is one surviving (node, path_score) pair during the
// traversal.
type frontierEntry struct {
	node      *domain.TreeNode
	pathScore float64
}

// Predict traverses tree top-down with the given beam width, returning
// every surviving leaf's (label, score) pairs. Scores are already
// exponentiated out of log-space; aggregation across a forest happens
// one level up, in package forest.
func Predict(tree *domain.Tree, x domain.DenseVector, beamSize int, trainer domain.ClassifierGroupTrainer, loss domain.LossType) []domain.LabelScore {
	invariant.Assert(beamSize > 0, "beam_size must be > 0")

	curr := []frontierEntry{{node: tree.Root, pathScore: 0}}
	for {
		if len(curr) > beamSize {
			sort.SliceStable(curr, func(i, j int) bool { return curr[i].pathScore > curr[j].pathScore })
			curr = curr[:beamSize]
		}
		invariant.Assert(len(curr) > 0, "beam frontier must never be empty")
		if curr[0].node.IsLeaf() {
			break
		}

		next := make([]frontierEntry, 0, len(curr)*2)
		for _, entry := range curr {
			childScores := trainer.Predict(x, entry.node.Weights, loss)
			for i, child := range entry.node.Children {
				next = append(next, frontierEntry{node: child, pathScore: entry.pathScore + float64(childScores[i])})
			}
		}
		curr = next
	}

	results := make([]domain.LabelScore, 0)
	for _, entry := range curr {
		invariant.Assert(entry.node.IsLeaf(), "mixed branch/leaf frontier at termination is a tree-builder bug")
		labelScores := trainer.Predict(x, entry.node.Weights, loss)
		for i, lbl := range entry.node.Labels {
			total := entry.pathScore + float64(labelScores[i])
			results = append(results, domain.LabelScore{Label: lbl, Score: float32(math.Exp(total))})
		}
	}
	return results
}
