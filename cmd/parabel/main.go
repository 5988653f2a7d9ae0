package main

import (
	"os"

	"github.com/parabel-ml/parabel/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parabel",
	Short: "An extreme multi-label classifier forest",
	Long: `parabel trains and serves an extreme multi-label classifier: a
forest of label trees, each built by recursively bisecting the label
set with balanced 2-means clustering over label centroids and fitting
a linear classifier group at every node.

Features:
  • Parallel forest training with reproducible per-tree seeding
  • Beam-search ensemble prediction
  • A compact binary model format`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewTrainCmd())
	rootCmd.AddCommand(NewPredictCmd())
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
