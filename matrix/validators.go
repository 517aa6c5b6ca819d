// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    still match them with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/art2a/vecmath"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil[T vecmath.Float](m *Dense[T]) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has exactly n components.
// Complexity: O(1).
func ValidateVecLen[T vecmath.Float](x []T, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects the first NaN or ±Inf element, reporting its coordinates.
//
// Errors: ErrNilMatrix, ErrNaNInf (wrapped with "Dense.At(row,col)").
// Complexity: O(r*c).
func ValidateFinite[T vecmath.Float](m *Dense[T]) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	var (
		i, j int
		f    float64
	)
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			f = float64(m.data[i*m.c+j])
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
		}
	}

	return nil
}
