// Package vectorops implements the sparse/dense vector kernels the rest
// of the core builds on: inner product, l2 normalization, threshold
// pruning, and conversion between sparse and dense representations.
//
// Every kernel here is pure and allocation-light; none of them can fail.
package vectorops

import (
	"math"
	"sort"

	"github.com/parabel-ml/parabel/domain"
)

// Dot computes the inner product of two sparse vectors sorted ascending
// by index, via a linear merge. Result is in [-1, 1] when both inputs
// are unit-norm.
func Dot(a, b domain.SparseVector) float32 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			sum += float64(a[i].Value) * float64(b[j].Value)
			i++
			j++
		}
	}
	return float32(sum)
}

// Norm2 returns the l2 norm of v, accumulated in float64.
func Norm2(v domain.SparseVector) float64 {
	var sum float64
	for _, e := range v {
		sum += float64(e.Value) * float64(e.Value)
	}
	return math.Sqrt(sum)
}

// L2Normalize divides every value by sqrt(sum of squares). It is a no-op
// when the vector's norm is zero. The input is not mutated; a new
// vector is returned.
func L2Normalize(v domain.SparseVector) domain.SparseVector {
	norm := Norm2(v)
	if norm == 0 {
		return v
	}
	inv := float32(1.0 / norm)
	out := make(domain.SparseVector, len(v))
	for i, e := range v {
		out[i] = domain.SparseEntry{Index: e.Index, Value: e.Value * inv}
	}
	return out
}

// PruneWithThreshold drops every entry with |value| < t, preserving sort
// order. threshold == 0 returns v unchanged (no entry has value exactly
// 0 per the SparseVector invariant).
func PruneWithThreshold(v domain.SparseVector, t float32) domain.SparseVector {
	if t <= 0 {
		return v
	}
	out := make(domain.SparseVector, 0, len(v))
	for _, e := range v {
		if float32(math.Abs(float64(e.Value))) >= t {
			out = append(out, e)
		}
	}
	return out
}

// FromMap builds a SparseVector by emitting the map's entries in
// ascending index order.
func FromMap(m map[domain.Index]float32) domain.SparseVector {
	out := make(domain.SparseVector, 0, len(m))
	for idx, val := range m {
		if val == 0 {
			continue
		}
		out = append(out, domain.SparseEntry{Index: idx, Value: val})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Accumulate adds src's entries into dst, keyed by index. dst is
// mutated and returned.
func Accumulate(dst map[domain.Index]float32, src domain.SparseVector) map[domain.Index]float32 {
	if dst == nil {
		dst = make(map[domain.Index]float32, len(src))
	}
	for _, e := range src {
		dst[e.Index] += e.Value
	}
	return dst
}

// ToDense converts a sparse vector into a dense array of length
// nFeatures+1, l2-normalizing the nonzero entries first and setting the
// bias slot (index nFeatures) to 1. This is the representation beam
// search runs prediction over.
func ToDense(v domain.SparseVector, nFeatures int) domain.DenseVector {
	normalized := L2Normalize(v)
	dense := make(domain.DenseVector, nFeatures+1)
	for _, e := range normalized {
		if int(e.Index) < nFeatures {
			dense[e.Index] = e.Value
		}
	}
	dense[nFeatures] = 1
	return dense
}

// DotDense computes the inner product of a sparse weight row against a
// dense feature vector, including the bias slot.
func DotDense(w domain.SparseVector, x domain.DenseVector) float32 {
	var sum float64
	for _, e := range w {
		if int(e.Index) < len(x) {
			sum += float64(e.Value) * float64(x[e.Index])
		}
	}
	return float32(sum)
}
