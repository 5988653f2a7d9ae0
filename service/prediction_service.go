package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/beam"
	"github.com/parabel-ml/parabel/internal/dataset"
	"github.com/parabel-ml/parabel/internal/forest"
	"github.com/parabel-ml/parabel/internal/persistence"
	"github.com/parabel-ml/parabel/internal/vectorops"
)

// PredictionService implements domain.PredictionService: load a
// persisted model, beam-search every example in a dataset through it,
// and write the ranked top-K predictions.
type PredictionService struct {
	trainer domain.ClassifierGroupTrainer
	writer  domain.ReportWriter
	format  *FormatUtils
}

// NewPredictionService creates a prediction service.
func NewPredictionService(trainer domain.ClassifierGroupTrainer, writer domain.ReportWriter) *PredictionService {
	return &PredictionService{trainer: trainer, writer: writer, format: NewFormatUtils()}
}

// Predict implements domain.PredictionService.
func (s *PredictionService) Predict(ctx context.Context, req domain.PredictRequest) (resp *domain.PredictResponse, err error) {
	defer RecoverInvariant(&err)

	if req.BeamSize < 1 {
		return nil, domain.NewInvalidInputError("beam_size must be >= 1", nil)
	}

	modelFile, err := os.Open(req.ModelPath)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("failed to open model: %s", req.ModelPath), err)
	}
	model, err := persistence.Load(modelFile)
	modelFile.Close()
	if err != nil {
		return nil, err
	}

	dataFile, err := os.Open(req.DataPath)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("failed to open dataset: %s", req.DataPath), err)
	}
	examples, _, err := dataset.Read(dataFile)
	dataFile.Close()
	if err != nil {
		return nil, err
	}

	results := make([]domain.PredictionResult, len(examples))
	for i, ex := range examples {
		x := vectorops.ToDense(ex.Features, model.NFeatures)
		scores, err := forest.Predict(model, x, req.BeamSize, s.trainer, beam.Predict)
		if err != nil {
			return nil, err
		}
		if req.TopK > 0 && len(scores) > req.TopK {
			scores = scores[:req.TopK]
		}
		results[i] = domain.PredictionResult{ExampleIndex: i, TrueLabels: ex.Labels, Scores: scores}
	}

	resp = &domain.PredictResponse{
		Predictions: results,
		NFeatures:   model.NFeatures,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.write(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PredictionService) write(req domain.PredictRequest, resp *domain.PredictResponse) error {
	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}

	switch req.OutputFormat {
	case domain.OutputFormatJSON:
		return s.writer.Write(writer, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
			return WriteJSON(w, resp)
		})
	case domain.OutputFormatYAML:
		return s.writer.Write(writer, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
			return WriteYAML(w, resp)
		})
	default:
		return s.writer.Write(writer, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
			return s.writeText(w, resp)
		})
	}
}

func (s *PredictionService) writeText(w io.Writer, resp *domain.PredictResponse) error {
	for _, pred := range resp.Predictions {
		sorted := append([]domain.LabelScore(nil), pred.Scores...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
		header := s.format.FormatSectionHeader(fmt.Sprintf("example %d", pred.ExampleIndex))
		if _, err := w.Write([]byte(header)); err != nil {
			return err
		}
		if _, err := w.Write([]byte(s.format.FormatLabelScores(sorted))); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
