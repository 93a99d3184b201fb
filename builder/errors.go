// SPDX-License-Identifier: MIT

package builder

import "errors"

// ErrEmptyRoot indicates BuildHierarchy was given an empty root identifier.
var ErrEmptyRoot = errors.New("builder: root is empty")

// ErrTooFewNodes indicates that a size parameter (depth, branching) is below
// the allowed minimum.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrConstructFailed indicates a constructor could not apply its mutation.
var ErrConstructFailed = errors.New("builder: construction failed")
