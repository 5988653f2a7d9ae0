package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/parabel-ml/parabel/domain"
)

// HyperParamsTomlConfig mirrors domain.HyperParams with every field a
// pointer, so LoadConfig can tell "absent from the file" apart from
// "explicitly set to the zero value" the same way the teacher's
// *int/*bool config sections do.
type HyperParamsTomlConfig struct {
	NTrees            *int             `toml:"n_trees"`
	MaxLeafSize       *int             `toml:"max_leaf_size"`
	ClusterEpsilon    *float64         `toml:"cluster_epsilon"`
	CentroidThreshold *float64         `toml:"centroid_threshold"`
	NThreads          *int             `toml:"n_threads"`
	Seed              *int64           `toml:"seed"`
	Linear            LinearTomlConfig `toml:"linear"`
}

// LinearTomlConfig represents the [linear] section of a .parabel.toml file.
type LinearTomlConfig struct {
	LossType        *string  `toml:"loss_type"`
	C               *float64 `toml:"c"`
	Eps             *float64 `toml:"eps"`
	WeightThreshold *float64 `toml:"weight_threshold"`
}

// TomlConfigLoader loads a .parabel.toml file into a domain.HyperParams,
// searching upward from a starting directory the same way the teacher's
// .pyscn.toml loader walks toward the filesystem root.
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader.
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig resolves hyperparameters starting from domain.DefaultHyperParams()
// and overlaying any values present in a discovered .parabel.toml. path may be
// a direct file path or a directory to search from; an empty path searches
// from the working directory. When the upward search finds no .parabel.toml,
// that is not an error: defaults are returned unchanged. A direct file path
// that cannot be read is reported as a config error.
func (l *TomlConfigLoader) LoadConfig(path string) (domain.HyperParams, error) {
	defaults := domain.DefaultHyperParams()

	configPath := path
	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			configPath = l.findParabelToml(configPath)
		}
	} else {
		configPath = l.findParabelToml(".")
	}

	if configPath == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return defaults, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}

	var parsed HyperParamsTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return defaults, domain.NewConfigError(fmt.Sprintf("failed to parse config file %s", configPath), err)
	}

	mergeHyperParamsTomlConfig(&defaults, &parsed)
	return defaults, nil
}

// findParabelToml walks up the directory tree from startDir looking for
// .parabel.toml, returning "" if none is found by the filesystem root.
func (l *TomlConfigLoader) findParabelToml(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, ".parabel.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func mergeHyperParamsTomlConfig(hp *domain.HyperParams, c *HyperParamsTomlConfig) {
	if c.NTrees != nil {
		hp.NTrees = *c.NTrees
	}
	if c.MaxLeafSize != nil {
		hp.MaxLeafSize = *c.MaxLeafSize
	}
	if c.ClusterEpsilon != nil {
		hp.ClusterEpsilon = *c.ClusterEpsilon
	}
	if c.CentroidThreshold != nil {
		hp.CentroidThreshold = *c.CentroidThreshold
	}
	if c.NThreads != nil {
		hp.NThreads = *c.NThreads
	}
	if c.Seed != nil {
		hp.Seed = *c.Seed
	}
	if c.Linear.LossType != nil {
		hp.Linear.LossType = domain.LossType(*c.Linear.LossType)
	}
	if c.Linear.C != nil {
		hp.Linear.C = *c.Linear.C
	}
	if c.Linear.Eps != nil {
		hp.Linear.Eps = *c.Linear.Eps
	}
	if c.Linear.WeightThreshold != nil {
		hp.Linear.WeightThreshold = *c.Linear.WeightThreshold
	}
}
