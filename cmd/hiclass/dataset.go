// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/hiclass/samples"
)

// dataset is a CSV file split into numeric features and label sets.
type dataset struct {
	features []string
	X        *samples.Dense
	labels   [][]string
}

// readDataset parses a CSV with a header row. labelColumn names the label
// column; an empty name means the file has none. Labels are split on sep.
func readDataset(r io.Reader, labelColumn, sep string) (*dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	labelIdx := -1
	ds := &dataset{}
	for i, h := range header {
		if labelColumn != "" && h == labelColumn {
			labelIdx = i
			continue
		}
		ds.features = append(ds.features, h)
	}
	if labelColumn != "" && labelIdx < 0 {
		return nil, errors.Errorf("label column %q not in header %v", labelColumn, header)
	}

	var rows [][]float64
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		row := make([]float64, 0, len(ds.features))
		for i, v := range rec {
			if i == labelIdx {
				ds.labels = append(ds.labels, splitLabels(v, sep))
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %q", line, header[i])
			}
			row = append(row, f)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("no data rows")
	}
	if ds.X, err = samples.FromRows(rows); err != nil {
		return nil, err
	}

	return ds, nil
}

func splitLabels(v, sep string) []string {
	var out []string
	for _, l := range strings.Split(v, sep) {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// loadDatasets reads every path and stacks them into one dataset. All
// files must share the same feature columns.
func loadDatasets(paths []string, labelColumn, sep string) (*dataset, error) {
	var sets []samples.Set
	out := &dataset{}
	for i, p := range paths {
		ds, err := loadDataset(p, labelColumn, sep)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			out.features = ds.features
		} else if strings.Join(ds.features, ",") != strings.Join(out.features, ",") {
			return nil, errors.Errorf("%s: columns %v differ from %v", p, ds.features, out.features)
		}
		sets = append(sets, ds.X)
		out.labels = append(out.labels, ds.labels...)
	}
	X, err := samples.Concat(sets...)
	if err != nil {
		return nil, errors.Wrap(err, "stacking datasets")
	}
	d, ok := X.(*samples.Dense)
	if !ok {
		return nil, errors.Errorf("stacked datasets are %T, want dense", X)
	}
	out.X = d

	return out, nil
}

// loadDataset reads a single CSV file; "-" reads stdin.
func loadDataset(path, labelColumn, sep string) (*dataset, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	ds, err := readDataset(r, labelColumn, sep)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return ds, nil
}

// singleLabels flattens label sets that must hold exactly one label each.
func singleLabels(sets [][]string) ([]string, error) {
	out := make([]string, len(sets))
	for i, s := range sets {
		if len(s) != 1 {
			return nil, errors.Errorf("row %d has %d labels, want 1 (use --multi-label)", i, len(s))
		}
		out[i] = s[0]
	}
	return out, nil
}
