// SPDX-License-Identifier: MIT

// Package estimator defines the local classifier contract used at every
// decision point of a class hierarchy, together with the small set of
// estimators the engine needs on its own.
//
// Contract:
//
//   - Classifier: Fit(X, y, sampleWeight), PredictProba(x) over Classes(),
//     and Clone() returning a fresh, unfitted copy with the same
//     hyper-parameters.
//   - DecisionFunctioner: optional margin scores, one per class.
//   - MultiLabelClassifier: a Classifier that can also be trained from an
//     indicator matrix; its PredictProba scores are independent per class.
//
// Implementations:
//
//   - Constant          always predicts one class with probability 1.
//   - LogisticRegression multinomial softmax regression with L2 penalty,
//     fitted with gonum/optimize L-BFGS. Default heuristic estimator.
//   - OneVsRest         binary-relevance wrapper turning any Classifier into
//     a MultiLabelClassifier.
//   - MultiLabelBinarizer maps label sets to indicator rows and back.
//
// Errors:
//
//   - ErrNotFitted          prediction before Fit
//   - ErrUnsupportedSamples the estimator cannot consume the given samples.Set
//   - ErrLengthMismatch     X, y and sampleWeight disagree in length
//   - ErrNoSamples          Fit called with zero rows
//   - ErrUnknownLabel       a label outside the binarizer's classes
package estimator
