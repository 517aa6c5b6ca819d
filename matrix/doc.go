// Package matrix provides the row-major Dense storage shared by the ART-2A
// engine for its input (data) matrix and its cluster-weight matrices.
//
// Dense[T] is generic over vecmath.Float so one run keeps a single precision
// end to end. The public surface never panics on user input: At/Set return
// ErrOutOfRange, constructors return ErrInvalidDimensions or
// ErrDimensionMismatch. Hot loops use RowView, which hands out a no-copy view of a
// row backed by the flat buffer.
//
// Complexity quicksheet:
//   - NewDense, Clone, FromRows, ToRows: O(r*c).
//   - At, Set, Row, Rows, Cols: O(1).
//   - AppendRow: amortised O(c).
//   - MinMax, RescaleGlobal, Any: O(r*c).
package matrix
