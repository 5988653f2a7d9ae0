package app

import (
	"context"
	"testing"
	"time"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrainingService struct {
	lastReq domain.TrainRequest
	resp    *domain.TrainResponse
	err     error
}

func (f *fakeTrainingService) Train(ctx context.Context, req domain.TrainRequest) (*domain.TrainResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestTrainUsecaseRequiresDataAndModelPaths(t *testing.T) {
	uc := NewTrainUsecase(&fakeTrainingService{}, config.NewTomlConfigLoader())

	_, err := uc.Execute(context.Background(), TrainOptions{ModelPath: "out.bin"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), TrainOptions{DataPath: "in.txt"})
	assert.Error(t, err)
}

func TestTrainUsecaseAppliesFlagOverridesOnTopOfDefaults(t *testing.T) {
	fake := &fakeTrainingService{resp: &domain.TrainResponse{NTrees: 5, Duration: time.Second}}
	uc := NewTrainUsecase(fake, config.NewTomlConfigLoader())

	resp, err := uc.Execute(context.Background(), TrainOptions{
		DataPath:      "in.txt",
		ModelPath:     "out.bin",
		NTrees:        5,
		LossType:      "logistic",
		ExplicitFlags: map[string]bool{"n-trees": true, "loss": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.NTrees)
	assert.Equal(t, 5, fake.lastReq.Hyper.NTrees)
	assert.Equal(t, domain.LossType("logistic"), fake.lastReq.Hyper.Linear.LossType)
	// Everything not overridden still carries the default value.
	assert.Equal(t, domain.DefaultMaxLeafSize, fake.lastReq.Hyper.MaxLeafSize)
}

func TestTrainUsecasePropagatesServiceError(t *testing.T) {
	fake := &fakeTrainingService{err: domain.NewNumericalError("boom", nil)}
	uc := NewTrainUsecase(fake, config.NewTomlConfigLoader())

	_, err := uc.Execute(context.Background(), TrainOptions{DataPath: "in.txt", ModelPath: "out.bin"})
	assert.Error(t, err)
}
