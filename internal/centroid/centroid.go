// Package centroid builds one label centroid per label: the pruned,
// l2-normalized sum of feature vectors of every training example tagged
// with that label.
package centroid

import (
	"sort"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/vectorops"
)

// ComputeFeatureVectorsPerLabel sums each example's feature entries into
// every label it is tagged with, then l2-normalizes and prunes each
// resulting vector with threshold. Pruning happens after normalization;
// no re-normalization follows. The two returned slices are parallel and
// ordered by ascending label id (a deterministic, if unspecified by the
// source algorithm, order).
func ComputeFeatureVectorsPerLabel(examples []domain.Example, threshold float32) ([]domain.Label, []domain.SparseVector) {
	sums := make(map[domain.Label]map[domain.Index]float32)
	for _, ex := range examples {
		for _, lbl := range ex.Labels {
			acc := sums[lbl]
			acc = vectorops.Accumulate(acc, ex.Features)
			sums[lbl] = acc
		}
	}

	labels := make([]domain.Label, 0, len(sums))
	for lbl := range sums {
		labels = append(labels, lbl)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	vectors := make([]domain.SparseVector, len(labels))
	for i, lbl := range labels {
		v := vectorops.FromMap(sums[lbl])
		v = vectorops.L2Normalize(v)
		v = vectorops.PruneWithThreshold(v, threshold)
		vectors[i] = v
	}
	return labels, vectors
}
