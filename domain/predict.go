package domain

import (
	"context"
	"io"
)

// PredictRequest configures one batch-prediction run against a trained
// model.
type PredictRequest struct {
	ModelPath    string
	DataPath     string
	BeamSize     int
	TopK         int
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// PredictionResult is one example's ranked label scores, alongside the
// true labels from the dataset (if present) for eyeballing accuracy.
type PredictionResult struct {
	ExampleIndex int
	TrueLabels   []Label
	Scores       []LabelScore
}

// PredictResponse is the complete output of a prediction run.
type PredictResponse struct {
	Predictions []PredictionResult
	NFeatures   int
	GeneratedAt string
}

// PredictionService runs a trained model over a dataset and writes the
// ranked predictions.
type PredictionService interface {
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)
}
