// SPDX-License-Identifier: MIT

// Package samples holds the training and prediction containers consumed by
// the hierarchical classifier and its local estimators.
//
// What:
//
//   - Dense: a numeric feature matrix backed by gonum's mat.Dense. This is
//     the container used in "preprocessed" feature-extraction mode.
//   - Raw: an ordered list of opaque examples (text snippets, images, ...)
//     used in "raw" mode, where feature extraction is deferred to the
//     local estimator itself.
//
// Both implement Set, a row-addressable collection supporting row extraction
// with repetition (Subset), which is how the rollup duplicates rows that
// belong to more than one subtree of a DAG hierarchy.
//
// Zero-row sets are legal everywhere: a node starved of training samples is
// represented by an empty Set rather than by a nil value.
//
// Errors:
//
//   - ErrMixedSets        Concat over containers of different kinds
//   - ErrColumnMismatch   Concat over Dense sets with different widths
//   - ErrRowOutOfRange    a row index outside [0, Len())
package samples
