package main

import (
	"fmt"

	"github.com/parabel-ml/parabel/app"
	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/service"
	"github.com/spf13/cobra"
)

// InspectCommand represents the model-inspection command.
type InspectCommand struct {
	modelPath string
	json      bool
	yaml      bool
	outPath   string
}

// NewInspectCommand creates a new inspect command.
func NewInspectCommand() *InspectCommand {
	return &InspectCommand{}
}

// NewInspectCmd creates and returns the inspect cobra command.
func NewInspectCmd() *cobra.Command {
	c := NewInspectCommand()

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a trained model's shape",
		Long: `Inspect loads a trained model and prints the hyperparameters it was
trained with plus each tree's depth, branch/leaf counts, and label
counts.

Examples:
  parabel inspect --model model.bin
  parabel inspect --model model.bin --json`,
		RunE: c.run,
	}

	cmd.Flags().StringVar(&c.modelPath, "model", "", "Path to a trained model (required)")
	cmd.Flags().BoolVar(&c.json, "json", false, "Write JSON output")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Write YAML output")
	cmd.Flags().StringVar(&c.outPath, "out", "", "Write output to this file instead of stdout")

	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func (c *InspectCommand) run(cmd *cobra.Command, args []string) error {
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

	svc := service.NewInspectionService(service.NewFileOutputWriter(cmd.ErrOrStderr()))
	uc := app.NewInspectUsecase(svc)

	req := domain.InspectRequest{
		ModelPath:    c.modelPath,
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   c.outPath,
	}

	_, err := uc.Execute(cmd.Context(), req)
	return err
}
