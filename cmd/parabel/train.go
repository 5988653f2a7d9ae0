package main

import (
	"fmt"

	"github.com/parabel-ml/parabel/app"
	"github.com/parabel-ml/parabel/internal/config"
	"github.com/parabel-ml/parabel/service"
	"github.com/spf13/cobra"
)

// TrainCommand represents the forest-training command.
type TrainCommand struct {
	dataPath   string
	modelPath  string
	configPath string

	nTrees            int
	maxLeafSize       int
	clusterEpsilon    float64
	centroidThreshold float64
	nThreads          int
	seed              int64
	lossType          string
	c                 float64
	eps               float64
	weightThreshold   float64
}

// NewTrainCommand creates a new train command.
func NewTrainCommand() *TrainCommand {
	return &TrainCommand{}
}

// NewTrainCmd creates and returns the train cobra command.
func NewTrainCmd() *cobra.Command {
	c := NewTrainCommand()

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a forest of label trees on a dataset",
		Long: `Train reads a libsvm/XMC-style sparse dataset, grows a forest of
independent label trees over it, and writes the resulting model to
disk.

Examples:
  parabel train --data train.txt --out model.bin
  parabel train --data train.txt --out model.bin --n-trees 5 --n-threads 8`,
		RunE: c.run,
	}

	cmd.Flags().StringVar(&c.dataPath, "data", "", "Path to the training dataset (required)")
	cmd.Flags().StringVar(&c.modelPath, "out", "", "Path to write the trained model (required)")
	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path (.parabel.toml)")

	cmd.Flags().IntVar(&c.nTrees, "n-trees", 0, "Number of trees in the forest")
	cmd.Flags().IntVar(&c.maxLeafSize, "max-leaf-size", 0, "Label count at which recursion stops")
	cmd.Flags().Float64Var(&c.clusterEpsilon, "cluster-epsilon", 0, "Balanced 2-means convergence tolerance")
	cmd.Flags().Float64Var(&c.centroidThreshold, "centroid-threshold", 0, "Label centroid pruning threshold")
	cmd.Flags().IntVar(&c.nThreads, "n-threads", 0, "Worker pool size for parallel tree building")
	cmd.Flags().Int64Var(&c.seed, "seed", 0, "RNG seed (0 means unset)")
	cmd.Flags().StringVar(&c.lossType, "loss", "", "Per-node classifier loss: hinge or logistic")
	cmd.Flags().Float64Var(&c.c, "c", 0, "Linear classifier inverse regularization strength")
	cmd.Flags().Float64Var(&c.eps, "eps", 0, "Linear solver convergence tolerance")
	cmd.Flags().Float64Var(&c.weightThreshold, "weight-threshold", 0, "Trained-weight pruning threshold")

	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (c *TrainCommand) run(cmd *cobra.Command, args []string) error {
	progress := service.NewTrainingProgress(cmd.ErrOrStderr())
	svc := service.NewTrainingService(defaultTrainer(), progress)
	uc := app.NewTrainUsecase(svc, config.NewTomlConfigLoader())

	opts := app.TrainOptions{
		DataPath:          c.dataPath,
		ModelPath:         c.modelPath,
		ConfigPath:        c.configPath,
		NTrees:            c.nTrees,
		MaxLeafSize:       c.maxLeafSize,
		ClusterEpsilon:    c.clusterEpsilon,
		CentroidThreshold: c.centroidThreshold,
		NThreads:          c.nThreads,
		Seed:              c.seed,
		LossType:          c.lossType,
		C:                 c.c,
		Eps:               c.eps,
		WeightThreshold:   c.weightThreshold,
		ExplicitFlags:     GetExplicitFlags(cmd),
	}

	resp, err := uc.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained %d trees over %d examples (%d labels, %d features) in %s\n",
		resp.NTrees, resp.NExamples, resp.NLabels, resp.NFeatures, resp.Duration)
	return nil
}
