package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/dataset"
	"github.com/parabel-ml/parabel/internal/forest"
	"github.com/parabel-ml/parabel/internal/persistence"
)

// TrainingService implements domain.TrainingService: read a dataset,
// grow a forest over it, and persist the result.
type TrainingService struct {
	trainer  domain.ClassifierGroupTrainer
	progress *TrainingProgress
}

// NewTrainingService creates a training service. progress may be nil to
// disable progress reporting.
func NewTrainingService(trainer domain.ClassifierGroupTrainer, progress *TrainingProgress) *TrainingService {
	return &TrainingService{trainer: trainer, progress: progress}
}

// Train implements domain.TrainingService.
func (s *TrainingService) Train(ctx context.Context, req domain.TrainRequest) (resp *domain.TrainResponse, err error) {
	defer RecoverInvariant(&err)

	if err := req.Hyper.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	f, err := os.Open(req.DataPath)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("failed to open dataset: %s", req.DataPath), err)
	}
	examples, nFeatures, err := dataset.Read(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, domain.NewInvalidInputError("dataset contains no examples", nil)
	}

	if s.progress != nil {
		s.progress.Start(req.Hyper.NTrees)
		defer s.progress.Finish()
	}

	var onTreeDone func()
	if s.progress != nil {
		onTreeDone = s.progress.TreeDone
	}

	model, err := forest.BuildForest(examples, nFeatures, req.Hyper, s.trainer, onTreeDone)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(req.ModelPath)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("failed to create model file: %s", req.ModelPath), err)
	}
	defer out.Close()
	if err := persistence.Save(out, model); err != nil {
		return nil, err
	}

	labelSet := map[domain.Label]struct{}{}
	for _, ex := range examples {
		for _, l := range ex.Labels {
			labelSet[l] = struct{}{}
		}
	}

	return &domain.TrainResponse{
		NTrees:    len(model.Trees),
		NFeatures: model.NFeatures,
		NExamples: len(examples),
		NLabels:   len(labelSet),
		Duration:  time.Since(start),
	}, nil
}
