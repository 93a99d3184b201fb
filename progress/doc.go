// SPDX-License-Identifier: MIT

// Package progress reports fitting progress: one Handle per phase, one
// Update per finished unit of work (a node processed, a sample walked).
//
// Sinks:
//
//	Nop       discards everything (default)
//	Tqdm      terminal progress bar backed by github.com/sbwhitecap/tqdm
//	Recorder  in-memory tallies, for tests and diagnostics
package progress
