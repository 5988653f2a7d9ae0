package domain

// Default hyperparameter values. Chosen to match the scales used in the
// Parabel paper's reference configuration: a modest forest, leaves capped
// small enough that per-leaf linear training stays cheap, and a tight
// clustering convergence tolerance.
const (
	// DefaultNTrees is the size of the forest.
	DefaultNTrees = 3
	// DefaultMaxLeafSize is the label count at which recursion stops and
	// a Leaf is emitted.
	DefaultMaxLeafSize = 100
	// DefaultClusterEpsilon is balanced_2means' convergence tolerance on
	// the average-similarity sequence.
	DefaultClusterEpsilon = 1e-4
	// DefaultCentroidThreshold prunes small entries from label centroids
	// after l2-normalization.
	DefaultCentroidThreshold = 1e-4
	// DefaultLinearC is the inverse regularization strength for the
	// per-node classifier group.
	DefaultLinearC = 1.0
	// DefaultLinearEps is the linear solver's convergence tolerance.
	DefaultLinearEps = 1e-3
	// DefaultWeightThreshold prunes small weight entries from a trained
	// classifier row.
	DefaultWeightThreshold = 1e-5
	// DefaultNThreads is the forest build/predict worker pool size.
	DefaultNThreads = 4
	// DefaultBeamSize is the default beam width for prediction (the
	// predict command's --beam flag and PredictUsecase's fallback).
	DefaultBeamSize = 10
)

// DefaultHyperParams returns the default training configuration.
func DefaultHyperParams() HyperParams {
	return HyperParams{
		NTrees:            DefaultNTrees,
		MaxLeafSize:       DefaultMaxLeafSize,
		ClusterEpsilon:    DefaultClusterEpsilon,
		CentroidThreshold: DefaultCentroidThreshold,
		Linear: LinearParams{
			LossType:        LossHinge,
			C:               DefaultLinearC,
			Eps:             DefaultLinearEps,
			WeightThreshold: DefaultWeightThreshold,
		},
		NThreads: DefaultNThreads,
		Seed:     0,
	}
}
