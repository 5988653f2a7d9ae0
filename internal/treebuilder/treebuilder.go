// Package treebuilder grows one label tree by recursively bisecting the
// label set with balanced 2-means clustering, training a linear
// classifier group at every node along the way.
package treebuilder

import (
	"math/rand"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/cluster"
)

// Build grows one tree over labels (with their parallel centroids),
// given an index-list into allExamples naming the examples relevant to
// this subtree (the parent's recursion already filtered these down;
// child recursions filter further without copying example data).
func Build(labels []domain.Label, centroids []domain.SparseVector, exampleIdx []int, allExamples []domain.Example, nFeatures int, hp domain.HyperParams, trainer domain.ClassifierGroupTrainer, rng *rand.Rand) (*domain.TreeNode, error) {
	if len(labels) <= hp.MaxLeafSize {
		return buildLeaf(labels, exampleIdx, allExamples, nFeatures, hp, trainer)
	}
	return buildBranch(labels, centroids, exampleIdx, allExamples, nFeatures, hp, trainer, rng)
}

func buildLeaf(labels []domain.Label, exampleIdx []int, allExamples []domain.Example, nFeatures int, hp domain.HyperParams, trainer domain.ClassifierGroupTrainer) (*domain.TreeNode, error) {
	subset := subsetExamples(exampleIdx, allExamples)
	targets := make([][]int8, len(subset))
	for i, idx := range exampleIdx {
		row := make([]int8, len(labels))
		has := labelSet(allExamples[idx].Labels)
		for r, lbl := range labels {
			if has[lbl] {
				row[r] = 1
			} else {
				row[r] = -1
			}
		}
		targets[i] = row
	}

	wm, err := trainer.Train(subset, targets, nFeatures, hp.Linear)
	if err != nil {
		return nil, err
	}
	return &domain.TreeNode{Kind: domain.LeafNode, Weights: wm, Labels: append([]domain.Label{}, labels...)}, nil
}

func buildBranch(labels []domain.Label, centroids []domain.SparseVector, exampleIdx []int, allExamples []domain.Example, nFeatures int, hp domain.HyperParams, trainer domain.ClassifierGroupTrainer, rng *rand.Rand) (*domain.TreeNode, error) {
	partitions := cluster.Balanced2Means(centroids, hp.ClusterEpsilon, rng)

	var labels0, labels1 []domain.Label
	var centroids0, centroids1 []domain.SparseVector
	for i, lbl := range labels {
		if partitions[i] {
			labels1 = append(labels1, lbl)
			centroids1 = append(centroids1, centroids[i])
		} else {
			labels0 = append(labels0, lbl)
			centroids0 = append(centroids0, centroids[i])
		}
	}
	set0, set1 := labelSetFromSlice(labels0), labelSetFromSlice(labels1)

	subset := subsetExamples(exampleIdx, allExamples)
	targets := make([][]int8, len(subset))
	var idx0, idx1 []int
	for i, idx := range exampleIdx {
		ex := allExamples[idx]
		in0, in1 := intersects(ex.Labels, set0), intersects(ex.Labels, set1)
		row := make([]int8, 2)
		if in0 {
			row[0] = 1
			idx0 = append(idx0, idx)
		} else {
			row[0] = -1
		}
		if in1 {
			row[1] = 1
			idx1 = append(idx1, idx)
		} else {
			row[1] = -1
		}
		targets[i] = row
	}

	wm, err := trainer.Train(subset, targets, nFeatures, hp.Linear)
	if err != nil {
		return nil, err
	}

	child0, err := Build(labels0, centroids0, idx0, allExamples, nFeatures, hp, trainer, rng)
	if err != nil {
		return nil, err
	}
	child1, err := Build(labels1, centroids1, idx1, allExamples, nFeatures, hp, trainer, rng)
	if err != nil {
		return nil, err
	}

	return &domain.TreeNode{
		Kind:     domain.BranchNode,
		Weights:  wm,
		Children: []*domain.TreeNode{child0, child1},
	}, nil
}

func subsetExamples(idx []int, all []domain.Example) []domain.Example {
	out := make([]domain.Example, len(idx))
	for i, id := range idx {
		out[i] = all[id]
	}
	return out
}

func labelSet(labels []domain.Label) map[domain.Label]bool {
	m := make(map[domain.Label]bool, len(labels))
	for _, l := range labels {
		m[l] = true
	}
	return m
}

func labelSetFromSlice(labels []domain.Label) map[domain.Label]bool {
	return labelSet(labels)
}

func intersects(labels []domain.Label, set map[domain.Label]bool) bool {
	for _, l := range labels {
		if set[l] {
			return true
		}
	}
	return false
}
