// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with "<op>: %w")
// and callers match them via errors.Is.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible lengths, e.g. ragged input rows
	// or a vector whose length differs from the column count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix or vector was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
