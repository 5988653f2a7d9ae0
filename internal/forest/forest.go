// Package forest orchestrates a set of independent label trees: it builds
// them concurrently, then predicts with each and averages per-label scores
// across the ensemble.
package forest

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/centroid"
	"github.com/parabel-ml/parabel/internal/invariant"
	"github.com/parabel-ml/parabel/internal/treebuilder"
)

// BuildForest trains hp.NTrees independent trees over examples, bounding
// concurrency at hp.NThreads. Each tree gets its own RNG seeded off
// hp.Seed so a fixed seed reproduces the whole forest regardless of
// scheduling order, while a zero seed still gives every tree a distinct
// stream. onTreeDone, if non-nil, is invoked once per completed tree build
// (from whichever goroutine finished it) so a caller can drive a progress
// bar; it may be called concurrently.
func BuildForest(examples []domain.Example, nFeatures int, hp domain.HyperParams, trainer domain.ClassifierGroupTrainer, onTreeDone func()) (*domain.Model, error) {
	if err := hp.Validate(); err != nil {
		return nil, err
	}
	invariant.Assert(len(examples) > 0, "forest requires at least one training example")

	labels, centroids := centroid.ComputeFeatureVectorsPerLabel(examples, float32(hp.CentroidThreshold))
	rootIdx := make([]int, len(examples))
	for i := range rootIdx {
		rootIdx[i] = i
	}

	trees := make([]*domain.Tree, hp.NTrees)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	err := runIndexed(ctx, hp.NTrees, hp.NThreads, func(_ context.Context, t int) error {
		seed := hp.Seed + int64(t)
		rng := rand.New(rand.NewSource(seed))
		root, err := treebuilder.Build(labels, centroids, rootIdx, examples, nFeatures, hp, trainer, rng)
		if err != nil {
			return err
		}
		if onTreeDone != nil {
			onTreeDone()
		}
		trees[t] = &domain.Tree{Root: root}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.Model{Trees: trees, NFeatures: nFeatures, Hyper: hp}, nil
}

// predictFn is the subset of package beam's Predict this file depends on;
// threading it as a parameter keeps forest free of an import cycle while
// letting tests substitute a stub.
type predictFn func(tree *domain.Tree, x domain.DenseVector, beamSize int, trainer domain.ClassifierGroupTrainer, loss domain.LossType) []domain.LabelScore

// Predict runs beam search independently on every tree in m (bounded by
// m.Hyper.NThreads concurrent trees), then averages each label's score
// across the forest: scores accumulate into a sum keyed by label, divide
// by the tree count, and the result is sorted by descending score. An
// invariant violation inside any per-tree search (for example, an empty
// beam frontier) is recovered by runIndexed and returned here rather
// than silently dropped.
func Predict(m *domain.Model, x domain.DenseVector, beamSize int, trainer domain.ClassifierGroupTrainer, search predictFn) ([]domain.LabelScore, error) {
	invariant.Assert(len(m.Trees) > 0, "model has no trees")

	perTree := make([][]domain.LabelScore, len(m.Trees))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	nThreads := m.Hyper.NThreads
	if err := runIndexed(ctx, len(m.Trees), nThreads, func(_ context.Context, t int) error {
		perTree[t] = search(m.Trees[t], x, beamSize, trainer, m.Hyper.Linear.LossType)
		return nil
	}); err != nil {
		return nil, err
	}

	sums := make(map[domain.Label]float64)
	for _, scores := range perTree {
		for _, ls := range scores {
			sums[ls.Label] += float64(ls.Score)
		}
	}

	n := float64(len(m.Trees))
	results := make([]domain.LabelScore, 0, len(sums))
	for lbl, sum := range sums {
		results = append(results, domain.LabelScore{Label: lbl, Score: float32(sum / n)})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Label < results[j].Label
	})
	return results, nil
}
