// SPDX-License-Identifier: MIT

package estimator

import "sort"

// uniqueSorted returns the distinct labels of y in ascending order and the
// position of every label in that ordering.
func uniqueSorted(y []string) ([]string, map[string]int) {
	seen := make(map[string]struct{}, len(y))
	classes := make([]string, 0, len(y))
	for _, label := range y {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		classes = append(classes, label)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	return classes, index
}

// unitWeights returns w, or a slice of ones when w is nil.
func unitWeights(w []float64, n int) []float64 {
	if w != nil {
		return w
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
