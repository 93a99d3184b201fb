// SPDX-License-Identifier: MIT

package hiclass_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hiclass/builder"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/hiclass"
	"github.com/katalvlaran/hiclass/samples"
)

const root = hiclass.DefaultRoot

// scenario is root → {A, B}; A → {A1, A2}.
func scenario(t testing.TB) *core.Graph {
	g, err := builder.BuildHierarchy(root, nil,
		builder.Edges([2]string{root, "A"}, [2]string{root, "B"}, [2]string{"A", "A1"}, [2]string{"A", "A2"}))
	require.NoError(t, err)

	return g
}

// oneHot returns perLabel rows per label; label i has 5 in column i and 0
// elsewhere, so every label is linearly separable from the others.
func oneHot(t testing.TB, perLabel int, labels ...string) (*samples.Dense, []string) {
	var rows [][]float64
	var y []string
	for i, l := range labels {
		for k := 0; k < perLabel; k++ {
			r := make([]float64, len(labels))
			r[i] = 5
			rows = append(rows, r)
			y = append(y, l)
		}
	}
	X, err := samples.FromRows(rows)
	require.NoError(t, err)

	return X, y
}

// point returns a single-row Dense set.
func point(t testing.TB, x ...float64) samples.Set {
	d, err := samples.FromRows([][]float64{x})
	require.NoError(t, err)

	return d
}

// fitLog records the targets and weights every node was trained on.
type fitLog struct {
	mu sync.Mutex
	y  map[string][]string
	w  map[string][]float64
	n  map[string]int
}

func newFitLog() *fitLog {
	return &fitLog{y: map[string][]string{}, w: map[string][]float64{}, n: map[string]int{}}
}

func (l *fitLog) record(node string, rows int, y []string, w []float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.y[node] = append([]string(nil), y...)
	l.w[node] = append([]float64(nil), w...)
	l.n[node] = rows
}

// fixedScores is a local classifier returning preset scores per class.
// Classes missing from scores get 0.
type fixedScores struct {
	scores  map[string]float64
	classes []string
	node    string
	log     *fitLog
}

func (f *fixedScores) Fit(X samples.Set, y []string, w []float64) error {
	seen := map[string]bool{}
	f.classes = nil
	for _, l := range y {
		if !seen[l] {
			seen[l] = true
			f.classes = append(f.classes, l)
		}
	}
	sort.Strings(f.classes)
	if f.log != nil {
		f.log.record(f.node, X.Len(), y, w)
	}

	return nil
}

func (f *fixedScores) FitIndicator(X samples.Set, Y *mat.Dense, classes []string, w []float64) error {
	f.classes = append([]string(nil), classes...)
	if f.log != nil {
		f.log.record(f.node, X.Len(), classes, w)
	}

	return nil
}

func (f *fixedScores) PredictProba(samples.Set) ([]float64, error) {
	out := make([]float64, len(f.classes))
	for i, c := range f.classes {
		out[i] = f.scores[c]
	}

	return out, nil
}

func (f *fixedScores) Classes() []string { return f.classes }

func (f *fixedScores) Clone() estimator.Classifier {
	return &fixedScores{scores: f.scores, node: f.node, log: f.log}
}

// recordingFactory builds fixedScores bound to their node and log.
func recordingFactory(log *fitLog, scores map[string]float64) hiclass.Factory {
	return func(node string, _ *core.Graph) (estimator.Classifier, error) {
		return &fixedScores{scores: scores, node: node, log: log}, nil
	}
}

// memo is a raw-mode classifier: it memorizes the majority label of each
// string example and is certain about it.
type memo struct {
	classes []string
	label   map[string]string
}

func (m *memo) Fit(X samples.Set, y []string, _ []float64) error {
	raw, ok := X.(*samples.Raw)
	if !ok {
		return estimator.ErrUnsupportedSamples
	}
	m.label = map[string]string{}
	seen := map[string]bool{}
	m.classes = nil
	for i, item := range raw.Items() {
		m.label[item.(string)] = y[i]
		if !seen[y[i]] {
			seen[y[i]] = true
			m.classes = append(m.classes, y[i])
		}
	}
	sort.Strings(m.classes)

	return nil
}

func (m *memo) PredictProba(x samples.Set) ([]float64, error) {
	raw, ok := x.(*samples.Raw)
	if !ok {
		return nil, estimator.ErrUnsupportedSamples
	}
	want := m.label[raw.Item(0).(string)]
	out := make([]float64, len(m.classes))
	for i, c := range m.classes {
		if c == want {
			out[i] = 1
		}
	}

	return out, nil
}

func (m *memo) Classes() []string { return m.classes }

func (m *memo) Clone() estimator.Classifier { return &memo{} }
