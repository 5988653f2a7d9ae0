package main

import (
	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/linear"
)

// defaultTrainer returns the gonum-backed classifier group trainer every
// subcommand uses. Factored out so train and predict share one wiring
// point.
func defaultTrainer() domain.ClassifierGroupTrainer {
	return linear.NewGroup()
}
