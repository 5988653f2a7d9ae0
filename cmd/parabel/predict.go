package main

import (
	"fmt"

	"github.com/parabel-ml/parabel/app"
	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/service"
	"github.com/spf13/cobra"
)

// PredictCommand represents the batch-prediction command.
type PredictCommand struct {
	modelPath string
	dataPath  string
	beamSize  int
	topK      int
	json      bool
	yaml      bool
	outPath   string
}

// NewPredictCommand creates a new predict command.
func NewPredictCommand() *PredictCommand {
	return &PredictCommand{beamSize: domain.DefaultBeamSize}
}

// NewPredictCmd creates and returns the predict cobra command.
func NewPredictCmd() *cobra.Command {
	c := NewPredictCommand()

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a trained forest over a dataset",
		Long: `Predict loads a trained model and beam-searches every example in a
dataset through it, printing the top-K ranked labels per example.

Examples:
  parabel predict --model model.bin --data test.txt --beam 10 --topk 5
  parabel predict --model model.bin --data test.txt --json --out preds.json`,
		RunE: c.run,
	}

	cmd.Flags().StringVar(&c.modelPath, "model", "", "Path to a trained model (required)")
	cmd.Flags().StringVar(&c.dataPath, "data", "", "Path to the dataset to predict over (required)")
	cmd.Flags().IntVar(&c.beamSize, "beam", domain.DefaultBeamSize, "Beam width for tree search")
	cmd.Flags().IntVar(&c.topK, "topk", 0, "Keep only the top K labels per example (0 means all)")
	cmd.Flags().BoolVar(&c.json, "json", false, "Write JSON output")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Write YAML output")
	cmd.Flags().StringVar(&c.outPath, "out", "", "Write output to this file instead of stdout")

	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (c *PredictCommand) run(cmd *cobra.Command, args []string) error {
	if c.json && c.yaml {
		return fmt.Errorf("only one of --json, --yaml can be specified")
	}

	format := domain.OutputFormatText
	switch {
	case c.json:
		format = domain.OutputFormatJSON
	case c.yaml:
		format = domain.OutputFormatYAML
	}

	svc := service.NewPredictionService(defaultTrainer(), service.NewFileOutputWriter(cmd.ErrOrStderr()))
	uc := app.NewPredictUsecase(svc)

	req := domain.PredictRequest{
		ModelPath:    c.modelPath,
		DataPath:     c.dataPath,
		BeamSize:     c.beamSize,
		TopK:         c.topK,
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   c.outPath,
	}

	_, err := uc.Execute(cmd.Context(), req)
	return err
}
