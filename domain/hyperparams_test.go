package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHyperParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultHyperParams().Validate())
}

func TestHyperParamsValidateRejectsEachInvariant(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HyperParams)
	}{
		{"n_trees < 1", func(h *HyperParams) { h.NTrees = 0 }},
		{"max_leaf_size < 1", func(h *HyperParams) { h.MaxLeafSize = 0 }},
		{"cluster_epsilon <= 0", func(h *HyperParams) { h.ClusterEpsilon = 0 }},
		{"centroid_threshold < 0", func(h *HyperParams) { h.CentroidThreshold = -1 }},
		{"bad loss type", func(h *HyperParams) { h.Linear.LossType = "squared" }},
		{"linear.c <= 0", func(h *HyperParams) { h.Linear.C = 0 }},
		{"linear.eps <= 0", func(h *HyperParams) { h.Linear.Eps = 0 }},
		{"linear.weight_threshold < 0", func(h *HyperParams) { h.Linear.WeightThreshold = -1 }},
		{"n_threads < 1", func(h *HyperParams) { h.NThreads = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hp := DefaultHyperParams()
			tt.mutate(&hp)
			err := hp.Validate()
			assert.Error(t, err)
			var de DomainError
			assert.ErrorAs(t, err, &de)
			assert.Equal(t, ErrCodeInvalidInput, de.Code)
		})
	}
}
