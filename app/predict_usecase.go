package app

import (
	"context"

	"github.com/parabel-ml/parabel/domain"
)

// PredictUsecase wraps domain.PredictionService with request validation.
type PredictUsecase struct {
	service domain.PredictionService
}

// NewPredictUsecase creates a new predict use case.
func NewPredictUsecase(service domain.PredictionService) *PredictUsecase {
	return &PredictUsecase{service: service}
}

// Execute validates req and runs prediction.
func (uc *PredictUsecase) Execute(ctx context.Context, req domain.PredictRequest) (*domain.PredictResponse, error) {
	if req.ModelPath == "" {
		return nil, domain.NewInvalidInputError("model path is required", nil)
	}
	if req.DataPath == "" {
		return nil, domain.NewInvalidInputError("data path is required", nil)
	}
	if req.BeamSize <= 0 {
		req.BeamSize = domain.DefaultBeamSize
	}
	return uc.service.Predict(ctx, req)
}
