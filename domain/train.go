package domain

import (
	"context"
	"time"
)

// TrainRequest configures one forest-training run: where the dataset
// and trained model live on disk, and the hyperparameters to train
// with (already resolved from defaults/config/flags by the caller).
type TrainRequest struct {
	DataPath  string
	ModelPath string
	Hyper     HyperParams
}

// TrainResponse summarizes a completed training run.
type TrainResponse struct {
	NTrees    int
	NFeatures int
	NExamples int
	NLabels   int
	Duration  time.Duration
}

// TrainingService trains a forest from a dataset file and persists it.
type TrainingService interface {
	Train(ctx context.Context, req TrainRequest) (*TrainResponse, error)
}
