package art2a

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/art2a/matrix"
	"github.com/katalvlaran/art2a/vecmath"
)

// Prepare validates a raw input matrix and returns the DataMatrix the engine
// clusters (InputValidator/Scaler).
//
// Implementation:
//   - Stage 1: shape: at least one row and one column, uniform row length.
//   - Stage 2: values: every component finite and ≥ 0.
//   - Stage 3: at least one non-zero component in the whole matrix.
//   - Stage 4: if any component exceeds 1, rescale EVERY component with the
//     matrix-wide min/max: (x - min) / (max - min). Per-row scaling would throw
//     away the relative magnitudes of count-type fingerprints.
//
// A matrix already inside [0,1] is returned value-identical. The input is never
// modified; the result is a private copy.
//
// Errors: ErrEmptyInput, ErrRaggedRows, ErrNonFiniteComponent,
// ErrNegativeComponent, ErrAllNullVectors (all wrap ErrInvalidInput).
//
// Complexity: O(N·D).
func Prepare[T vecmath.Float](rows [][]T) (*matrix.Dense[T], error) {
	m, err := matrix.FromRows(rows)
	if err != nil {
		if errors.Is(err, matrix.ErrDimensionMismatch) {
			return nil, fmt.Errorf("%w: %w", ErrRaggedRows, err)
		}
		return nil, ErrEmptyInput
	}
	if err = validateAndScale(m); err != nil {
		return nil, err
	}

	return m, nil
}

// PrepareMatrix is Prepare for input already held in a Dense. The argument is
// cloned, never modified.
func PrepareMatrix[T vecmath.Float](m *matrix.Dense[T]) (*matrix.Dense[T], error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	cp := m.Clone()
	if err := validateAndScale(cp); err != nil {
		return nil, err
	}

	return cp, nil
}

// validateAndScale runs Stages 2-4 of Prepare in place on m.
func validateAndScale[T vecmath.Float](m *matrix.Dense[T]) error {
	if err := matrix.ValidateFinite(m); err != nil {
		return fmt.Errorf("%w: %w", ErrNonFiniteComponent, err)
	}

	var (
		i, j    int
		row     []T
		nonNull bool
	)
	for i = 0; i < m.Rows(); i++ {
		row = m.RowView(i)
		for j = 0; j < len(row); j++ {
			if row[j] < 0 {
				return fmt.Errorf("%w: row %d, column %d", ErrNegativeComponent, i, j)
			}
			if row[j] != 0 {
				nonNull = true
			}
		}
	}
	if !nonNull {
		return ErrAllNullVectors
	}

	if m.Any(func(v T) bool { return v > 1 }) {
		m.RescaleGlobal()
	}

	return nil
}
