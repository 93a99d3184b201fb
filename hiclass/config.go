// SPDX-License-Identifier: MIT

package hiclass

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/katalvlaran/hiclass/builder"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
)

// Config is the YAML form of a Classifier configuration.
//
//	algorithm: lcpn
//	prediction_depth: nmlnp
//	stopping_criteria: 0.8
//	root: <ROOT>
//	hierarchy:
//	  - parent: <ROOT>
//	    children: [animal, plant]
//	  - parent: animal
//	    children: [cat, dog]
type Config struct {
	Algorithm              string           `yaml:"algorithm"`
	PredictionDepth        string           `yaml:"prediction_depth"`
	TrainingStrategy       string           `yaml:"training_strategy"`
	StoppingCriteria       *float64         `yaml:"stopping_criteria"`
	FeatureExtraction      string           `yaml:"feature_extraction"`
	MLBPredictionThreshold float64          `yaml:"mlb_prediction_threshold"`
	UseDecisionFunction    bool             `yaml:"use_decision_function"`
	MultiLabel             bool             `yaml:"multi_label"`
	Root                   string           `yaml:"root"`
	Hierarchy              []HierarchyEntry `yaml:"hierarchy"`
	Estimator              *EstimatorConfig `yaml:"estimator"`
}

// HierarchyEntry lists the children of one parent, in order.
type HierarchyEntry struct {
	Parent   string   `yaml:"parent"`
	Children []string `yaml:"children"`
}

// EstimatorConfig tunes the default logistic regression. Zero fields keep
// the estimator package defaults.
type EstimatorConfig struct {
	C       float64 `yaml:"c"`
	MaxIter int     `yaml:"max_iter"`
	Tol     float64 `yaml:"tol"`
}

// ParseConfig decodes a YAML document. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "hiclass: parsing config")
	}

	return &cfg, nil
}

// LoadConfig reads and decodes the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "hiclass: reading config %s", path)
	}

	return ParseConfig(data)
}

// RootID returns the configured root, DefaultRoot when empty.
func (c *Config) RootID() string {
	if c.Root == "" {
		return DefaultRoot
	}

	return c.Root
}

// Graph builds the configured hierarchy, nil when none is listed.
func (c *Config) Graph() (*core.Graph, error) {
	if len(c.Hierarchy) == 0 {
		return nil, nil
	}
	var pairs [][2]string
	for _, e := range c.Hierarchy {
		for _, ch := range e.Children {
			pairs = append(pairs, [2]string{e.Parent, ch})
		}
	}
	g, err := builder.BuildHierarchy(c.RootID(), nil, builder.Edges(pairs...))
	if err != nil {
		return nil, fmt.Errorf("hiclass: config hierarchy: %w: %w", ErrInvalidHierarchy, err)
	}

	return g, nil
}

// Options converts the document into Classifier options. Empty fields keep
// the defaults.
func (c *Config) Options() ([]Option, error) {
	opts := []Option{WithRoot(c.RootID())}
	if c.Algorithm != "" {
		opts = append(opts, WithAlgorithm(Algorithm(c.Algorithm)))
	}
	if c.PredictionDepth != "" {
		opts = append(opts, WithPredictionDepth(PredictionDepth(c.PredictionDepth)))
	}
	if c.TrainingStrategy != "" {
		opts = append(opts, WithTrainingStrategy(TrainingStrategy(c.TrainingStrategy)))
	}
	if c.StoppingCriteria != nil {
		opts = append(opts, WithStoppingThreshold(*c.StoppingCriteria))
	}
	if c.FeatureExtraction != "" {
		opts = append(opts, WithFeatureExtraction(FeatureExtraction(c.FeatureExtraction)))
	}
	if c.MLBPredictionThreshold != 0 {
		opts = append(opts, WithMLBPredictionThreshold(c.MLBPredictionThreshold))
	}
	if c.UseDecisionFunction {
		opts = append(opts, WithDecisionFunction(true))
	}
	if e := c.Estimator; e != nil {
		lr := estimator.NewLogisticRegression()
		if e.C != 0 {
			lr.C = e.C
		}
		if e.MaxIter != 0 {
			lr.MaxIter = e.MaxIter
		}
		if e.Tol != 0 {
			lr.Tol = e.Tol
		}
		opts = append(opts, WithBaseEstimator(Fixed(lr)))
	}

	g, err := c.Graph()
	if err != nil {
		return nil, err
	}
	if g != nil {
		if err = ValidateHierarchy(g, c.RootID()); err != nil {
			return nil, err
		}
		opts = append(opts, WithHierarchy(g))
	}

	return opts, nil
}
