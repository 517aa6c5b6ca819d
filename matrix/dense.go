// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Allow the cluster matrix to grow by whole rows (AppendRow) without reshaping callers.

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/art2a/vecmath"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxRow       = "Row"
	ctxAppendRow = "AppendRow"
	ctxFromRows  = "FromRows"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix of T.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense[T vecmath.Float] struct {
	r, c int
	data []T
}

var _ fmt.Stringer = (*Dense[float64])(nil)

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrInvalidDimensions if rows<=0 or cols<=0.
//
// Complexity: O(r*c).
func NewDense[T vecmath.Float](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// NewFilled creates an r×c matrix with every element set to v.
func NewFilled[T vecmath.Float](rows, cols int, v T) (*Dense[T], error) {
	m, err := NewDense[T](rows, cols)
	if err != nil {
		return nil, err
	}
	vecmath.Fill(m.data, v)

	return m, nil
}

// FromRows copies a slice of rows into a new Dense.
// Implementation:
//   - Stage 1: reject nil/empty input and empty first row (ErrInvalidDimensions).
//   - Stage 2: every row must have the length of row 0 (ErrDimensionMismatch).
//   - Stage 3: copy row by row into the flat buffer.
//
// The input is never aliased.
//
// Complexity: O(r*c).
func FromRows[T vecmath.Float](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])
	m := &Dense[T]{r: r, c: c, data: make([]T, r*c)}

	var i int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, denseErrorf(ctxFromRows, i, len(rows[i]), ErrDimensionMismatch)
		}
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense[T]) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense[T]) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense[T]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense[T]) At(row, col int) (T, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense[T]) Set(row, col int, v T) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Row returns a view of row i backed by the matrix buffer; writes through the
// view mutate the matrix. The view is invalidated by AppendRow.
//
// Errors:
//   - ErrOutOfRange if i is not a valid row.
func (m *Dense[T]) Row(i int) ([]T, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.row(i), nil
}

// row is the unchecked variant of Row for internal loops.
func (m *Dense[T]) row(i int) []T {
	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// RowView is the unchecked counterpart of Row for hot loops whose indices are
// already known to be valid; an invalid i panics like any slice expression.
func (m *Dense[T]) RowView(i int) []T {
	return m.row(i)
}

// RowCopy returns a freshly allocated copy of row i.
func (m *Dense[T]) RowCopy(i int) ([]T, error) {
	v, err := m.Row(i)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(v))
	copy(out, v)

	return out, nil
}

// SetRow overwrites row i with v (len(v) must equal Cols()).
func (m *Dense[T]) SetRow(i int, v []T) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	if err := ValidateVecLen(v, m.c); err != nil {
		return denseErrorf(ctxRow, i, len(v), err)
	}
	copy(m.row(i), v)

	return nil
}

// AppendRow grows the matrix by one row holding a copy of v and returns the
// new row's index. Previously obtained Row views must not be used afterwards.
//
// Complexity: amortised O(c).
func (m *Dense[T]) AppendRow(v []T) (int, error) {
	if err := ValidateVecLen(v, m.c); err != nil {
		return 0, denseErrorf(ctxAppendRow, m.r, len(v), err)
	}
	m.data = append(m.data, v...)
	m.r++

	return m.r - 1, nil
}

// Clone returns a deep copy.
// Complexity: O(r*c).
func (m *Dense[T]) Clone() *Dense[T] {
	cp := make([]T, len(m.data))
	copy(cp, m.data)

	return &Dense[T]{r: m.r, c: m.c, data: cp}
}

// Head returns a deep copy of the first n rows (n is clamped to [1, Rows()]).
func (m *Dense[T]) Head(n int) *Dense[T] {
	if n > m.r {
		n = m.r
	}
	if n < 1 {
		n = 1
	}
	cp := make([]T, n*m.c)
	copy(cp, m.data[:n*m.c])

	return &Dense[T]{r: n, c: m.c, data: cp}
}

// ToRows returns the matrix as freshly allocated [][]T.
func (m *Dense[T]) ToRows() [][]T {
	out := make([][]T, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = make([]T, m.c)
		copy(out[i], m.row(i))
	}

	return out
}

// Equal reports whether both matrices have the same shape and bit-identical elements.
func (m *Dense[T]) Equal(o *Dense[T]) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	var i int
	for i = 0; i < len(m.data); i++ {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// String renders rows as lines of comma-separated values. Not for hot paths.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString("[")
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
