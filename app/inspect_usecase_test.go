package app

import (
	"context"
	"testing"

	"github.com/parabel-ml/parabel/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInspectionService struct {
	resp *domain.InspectResponse
	err  error
}

func (f *fakeInspectionService) Inspect(ctx context.Context, req domain.InspectRequest) (*domain.InspectResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestInspectUsecaseRequiresModelPath(t *testing.T) {
	uc := NewInspectUsecase(&fakeInspectionService{})
	_, err := uc.Execute(context.Background(), domain.InspectRequest{})
	assert.Error(t, err)
}

func TestInspectUsecaseDelegatesToService(t *testing.T) {
	fake := &fakeInspectionService{resp: &domain.InspectResponse{NTrees: 4}}
	uc := NewInspectUsecase(fake)
	resp, err := uc.Execute(context.Background(), domain.InspectRequest{ModelPath: "model.bin"})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.NTrees)
}
