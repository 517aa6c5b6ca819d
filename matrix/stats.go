// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Whole-matrix reductions and the global min-max rescale used to bring
//     count-type inputs into [0,1] while keeping magnitudes comparable across rows.

package matrix

import "github.com/katalvlaran/art2a/vecmath"

// MinMax returns the smallest and the largest element over the whole matrix.
//
// Complexity: O(r*c).
func (m *Dense[T]) MinMax() (lo, hi T) {
	lo, hi = m.data[0], m.data[0]
	for _, v := range m.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// RescaleGlobal maps every element linearly into [0,1] using one matrix-wide
// minimum and maximum: x' = (x - min) / (max - min). It is NOT a per-row
// normalization. A constant matrix (max == min) is divided by its value, so
// every element becomes 1; an all-zero matrix is left unchanged.
//
// The transform runs in place.
// Complexity: O(r*c).
func (m *Dense[T]) RescaleGlobal() {
	lo, hi := m.MinMax()
	span := hi - lo
	var i int
	if span == 0 {
		if hi == 0 {
			return
		}
		for i = 0; i < len(m.data); i++ {
			m.data[i] = 1
		}
		return
	}
	for i = 0; i < len(m.data); i++ {
		m.data[i] = (m.data[i] - lo) / span
	}
}

// Any reports whether pred holds for at least one element.
func (m *Dense[T]) Any(pred func(T) bool) bool {
	for _, v := range m.data {
		if pred(v) {
			return true
		}
	}

	return false
}

// RowIsNull reports whether every element of row i is exactly zero.
// i must be a valid row index.
func (m *Dense[T]) RowIsNull(i int) bool {
	return vecmath.IsNull(m.row(i))
}
