package app

import (
	"context"

	"github.com/parabel-ml/parabel/domain"
)

// InspectUsecase wraps domain.InspectionService with request validation.
type InspectUsecase struct {
	service domain.InspectionService
}

// NewInspectUsecase creates a new inspect use case.
func NewInspectUsecase(service domain.InspectionService) *InspectUsecase {
	return &InspectUsecase{service: service}
}

// Execute validates req and runs inspection.
func (uc *InspectUsecase) Execute(ctx context.Context, req domain.InspectRequest) (*domain.InspectResponse, error) {
	if req.ModelPath == "" {
		return nil, domain.NewInvalidInputError("model path is required", nil)
	}
	return uc.service.Inspect(ctx, req)
}
