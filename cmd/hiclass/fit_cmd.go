// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hiclass/hiclass"
	"github.com/katalvlaran/hiclass/progress"
)

type fitCmdConfig struct {
	configInput  string
	trainInputs  []string
	testInput    string
	labelColumn  string
	separator    string
	multiLabel   bool
	proba        bool
	showProgress bool
	output       string
}

func fitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &fitCmdConfig{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a hierarchical classifier and predict a test set",
		Long:  `Fit local classifiers on the training CSV files, then write the predicted classes of the test CSV (the training data when omitted)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			logger, err := rootConfig.logger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			out := os.Stdout
			if config.output != "" {
				f, err := os.Create(config.output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return runFit(config, logger, out)
		},
	}
	cmd.Flags().StringVarP(&(config.configInput), "config", "c", "", "path to a YAML file with classifier options and hierarchy")
	cmd.Flags().StringSliceVarP(&(config.trainInputs), "train", "t", nil, "training CSV files, stacked in order (required)")
	cmd.Flags().StringVarP(&(config.testInput), "test", "p", "", "CSV file to predict, without a label column (defaults to the training data)")
	cmd.Flags().StringVarP(&(config.labelColumn), "label-column", "l", "label", "name of the label column of the training files")
	cmd.Flags().StringVarP(&(config.separator), "separator", "s", "|", "separator between the labels of a multi-label row")
	cmd.Flags().BoolVarP(&(config.multiLabel), "multi-label", "m", false, "fit label sets instead of single labels")
	cmd.Flags().BoolVar(&(config.proba), "proba", false, "also write per-class probabilities")
	cmd.Flags().BoolVar(&(config.showProgress), "progress", false, "show progress bars on stderr")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "prediction output path (defaults to stdout)")
	return cmd
}

func (fcc *fitCmdConfig) Validate() error {
	if len(fcc.trainInputs) == 0 {
		return fmt.Errorf("required train flag was not set")
	}
	if fcc.labelColumn == "" {
		return fmt.Errorf("label-column cannot be empty")
	}
	if fcc.separator == "" {
		return fmt.Errorf("separator cannot be empty")
	}
	return nil
}

func runFit(config *fitCmdConfig, logger *zap.Logger, out io.Writer) error {
	// 1) Options from the config file, then the command line
	opts := []hiclass.Option{hiclass.WithLogger(logger)}
	multiLabel := config.multiLabel
	if config.configInput != "" {
		cfg, err := hiclass.LoadConfig(config.configInput)
		if err != nil {
			return err
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return err
		}
		opts = append(opts, cfgOpts...)
		multiLabel = multiLabel || cfg.MultiLabel
	}
	if config.showProgress {
		opts = append(opts, hiclass.WithProgress(progress.Tqdm{}))
	}

	// 2) Training data
	train, err := loadDatasets(config.trainInputs, config.labelColumn, config.separator)
	if err != nil {
		return err
	}
	logger.Debug("training data loaded",
		zap.Int("rows", train.X.Len()), zap.Strings("features", train.features))

	// 3) Fit
	clf := hiclass.New(opts...)
	if multiLabel {
		err = clf.FitMultiLabel(train.X, train.labels, nil)
	} else {
		var y []string
		if y, err = singleLabels(train.labels); err == nil {
			err = clf.Fit(train.X, y, nil)
		}
	}
	if err != nil {
		return errors.Wrap(err, "fitting")
	}
	logger.Info("classifier fitted", zap.Int("classes", clf.NClasses()))

	// 4) Predict
	test := train
	if config.testInput != "" {
		if test, err = loadDataset(config.testInput, "", config.separator); err != nil {
			return err
		}
	}
	paths, err := clf.PredictPath(test.X)
	if err != nil {
		return errors.Wrap(err, "predicting")
	}

	return writePredictions(out, clf.Classes(), clf.LabelSets(paths), paths, config)
}

// writePredictions writes one CSV row per sample: its row number, its
// predicted classes joined by the separator, its walk and, with --proba,
// one probability column per class.
func writePredictions(w io.Writer, classes []string, sets [][]string, paths []hiclass.PredictionPath, config *fitCmdConfig) error {
	cw := csv.NewWriter(w)
	header := []string{"row", "prediction", "path"}
	if config.proba {
		header = append(header, classes...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, p := range paths {
		rec := []string{strconv.Itoa(i), strings.Join(sets[i], config.separator), strings.Join(p.Path, ">")}
		if config.proba {
			for _, v := range p.Proba {
				rec = append(rec, strconv.FormatFloat(v, 'g', 6, 64))
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
