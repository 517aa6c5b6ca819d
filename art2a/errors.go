package art2a

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of every validation failure. All input and
// option sentinels below wrap it, so errors.Is(err, ErrInvalidInput) matches
// any of them.
var ErrInvalidInput = errors.New("art2a: invalid input")

// Input sentinels (InputValidator/Scaler).
var (
	// ErrEmptyInput indicates a nil/empty matrix or a matrix with empty rows.
	ErrEmptyInput = fmt.Errorf("%w: matrix must have at least one row and one column", ErrInvalidInput)

	// ErrRaggedRows indicates rows of differing lengths.
	ErrRaggedRows = fmt.Errorf("%w: all rows must have the same length", ErrInvalidInput)

	// ErrNegativeComponent indicates a component below zero.
	ErrNegativeComponent = fmt.Errorf("%w: negative component", ErrInvalidInput)

	// ErrNonFiniteComponent indicates a NaN or ±Inf component.
	ErrNonFiniteComponent = fmt.Errorf("%w: NaN or Inf component", ErrInvalidInput)

	// ErrAllNullVectors indicates that every component of the matrix is zero.
	ErrAllNullVectors = fmt.Errorf("%w: all vectors are null vectors, clustering impossible", ErrInvalidInput)
)

// Option sentinels (RunParameters).
var (
	// ErrBadVigilance indicates a vigilance parameter outside the open interval (0,1).
	ErrBadVigilance = fmt.Errorf("%w: vigilance parameter must lie in (0,1)", ErrInvalidInput)

	// ErrBadMaximumEpochs indicates a non-positive epoch budget.
	ErrBadMaximumEpochs = fmt.Errorf("%w: maximum number of epochs must be > 0", ErrInvalidInput)

	// ErrBadRequiredSimilarity indicates a required similarity outside [0,1].
	ErrBadRequiredSimilarity = fmt.Errorf("%w: required similarity must lie in [0,1]", ErrInvalidInput)

	// ErrBadLearningParameter indicates a learning parameter outside [0,1].
	ErrBadLearningParameter = fmt.Errorf("%w: learning parameter must lie in [0,1]", ErrInvalidInput)

	// ErrBadShuffleMode indicates an unknown ShuffleMode value.
	ErrBadShuffleMode = fmt.Errorf("%w: unknown shuffle mode", ErrInvalidInput)
)

var (
	// ErrDegenerateVector is returned when a presented vector has Euclidean
	// length zero at a point where it must be normalized. It aborts the run.
	ErrDegenerateVector = errors.New("art2a: degenerate vector (zero length) cannot be normalized")

	// ErrConvergenceFailed is the sentinel behind *ConvergenceError.
	ErrConvergenceFailed = errors.New("art2a: convergence failed")

	// ErrClusterIndex indicates a cluster number outside [0, NumberOfClusters()).
	ErrClusterIndex = errors.New("art2a: cluster index out of range")
)

// ConvergenceError reports an exhausted epoch budget. It carries the vigilance
// parameter of the run so that callers sweeping several vigilance values can
// tell which one failed.
type ConvergenceError struct {
	Vigilance float64
	Epochs    int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("art2a: convergence failed for vigilance parameter %v after %d epochs", e.Vigilance, e.Epochs)
}

// Unwrap makes errors.Is(err, ErrConvergenceFailed) true.
func (e *ConvergenceError) Unwrap() error { return ErrConvergenceFailed }
