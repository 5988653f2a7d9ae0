package app

import (
	"context"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/config"
)

// TrainUsecase orchestrates resolving hyperparameters and running a
// training job against domain.TrainingService.
type TrainUsecase struct {
	service      domain.TrainingService
	configLoader *config.TomlConfigLoader
}

// NewTrainUsecase creates a new train use case.
func NewTrainUsecase(service domain.TrainingService, configLoader *config.TomlConfigLoader) *TrainUsecase {
	return &TrainUsecase{service: service, configLoader: configLoader}
}

// TrainOptions carries the CLI-flag values plus which of them the user
// explicitly set, so Execute can merge them onto the config/defaults
// layer precisely where the command line overrides it.
type TrainOptions struct {
	DataPath   string
	ModelPath  string
	ConfigPath string

	NTrees            int
	MaxLeafSize       int
	ClusterEpsilon    float64
	CentroidThreshold float64
	NThreads          int
	Seed              int64
	LossType          string
	C                 float64
	Eps               float64
	WeightThreshold   float64

	// ExplicitFlags names which of the above fields were set on the
	// command line, keyed the same way config.MergeInt etc. expect.
	ExplicitFlags map[string]bool
}

// Execute resolves hyperparameters (defaults < config file < CLI flags)
// and runs training.
func (uc *TrainUsecase) Execute(ctx context.Context, opts TrainOptions) (*domain.TrainResponse, error) {
	if opts.DataPath == "" {
		return nil, domain.NewInvalidInputError("data path is required", nil)
	}
	if opts.ModelPath == "" {
		return nil, domain.NewInvalidInputError("model output path is required", nil)
	}

	hyper := domain.DefaultHyperParams()
	if uc.configLoader != nil {
		loaded, err := uc.configLoader.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, domain.NewConfigError("failed to load configuration", err)
		}
		hyper = loaded
	}
	mergeTrainOverrides(&hyper, opts)

	req := domain.TrainRequest{DataPath: opts.DataPath, ModelPath: opts.ModelPath, Hyper: hyper}
	return uc.service.Train(ctx, req)
}

// mergeTrainOverrides layers opts' explicitly-set CLI flags onto hp,
// leaving every flag the user didn't pass at its config/default value.
func mergeTrainOverrides(hp *domain.HyperParams, opts TrainOptions) {
	flags := opts.ExplicitFlags
	hp.NTrees = config.MergeInt(hp.NTrees, opts.NTrees, "n-trees", flags)
	hp.MaxLeafSize = config.MergeInt(hp.MaxLeafSize, opts.MaxLeafSize, "max-leaf-size", flags)
	hp.ClusterEpsilon = config.MergeFloat64(hp.ClusterEpsilon, opts.ClusterEpsilon, "cluster-epsilon", flags)
	hp.CentroidThreshold = config.MergeFloat64(hp.CentroidThreshold, opts.CentroidThreshold, "centroid-threshold", flags)
	hp.NThreads = config.MergeInt(hp.NThreads, opts.NThreads, "n-threads", flags)
	if config.WasExplicitlySet(flags, "seed") {
		hp.Seed = opts.Seed
	}
	hp.Linear.LossType = domain.LossType(config.MergeString(string(hp.Linear.LossType), opts.LossType, "loss", flags))
	hp.Linear.C = config.MergeFloat64(hp.Linear.C, opts.C, "c", flags)
	hp.Linear.Eps = config.MergeFloat64(hp.Linear.Eps, opts.Eps, "eps", flags)
	hp.Linear.WeightThreshold = config.MergeFloat64(hp.Linear.WeightThreshold, opts.WeightThreshold, "weight-threshold", flags)
}
