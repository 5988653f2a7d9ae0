package domain

import (
	"context"
	"io"
)

// InspectRequest configures a model-inspection run.
type InspectRequest struct {
	ModelPath    string
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// TreeSummary describes one tree's shape without walking the full
// prediction path.
type TreeSummary struct {
	Index       int
	Depth       int
	NumBranches int
	NumLeaves   int
	NumLabels   int
}

// InspectResponse summarizes a loaded model's structure.
type InspectResponse struct {
	NTrees    int
	NFeatures int
	Hyper     HyperParams
	Trees     []TreeSummary
}

// InspectionService loads a persisted model and summarizes its shape.
type InspectionService interface {
	Inspect(ctx context.Context, req InspectRequest) (*InspectResponse, error)
}
