package art2a

import (
	"github.com/katalvlaran/art2a/matrix"
	"github.com/katalvlaran/art2a/vecmath"
)

// Result is the immutable outcome of one clustering run (ClusteringResult).
// Every accessor returning a slice or matrix returns a copy.
type Result[T vecmath.Float] struct {
	vigilance   float64
	epochs      int
	converged   bool
	count       int
	occupation  []int
	clusters    *matrix.Dense[T] // trimmed to count rows
	data        *matrix.Dense[T] // scaled input, shared with the Task, read-only
	processLog  []string
	summaryLog  []string
	diagnostics bool
}

// result assembles the Result of a finished run (ResultAssembler).
func (s *runState[T]) result(converged bool) *Result[T] {
	process, summary := s.trace.lines()

	return &Result[T]{
		vigilance:   s.task.opts.VigilanceParameter,
		epochs:      s.epoch,
		converged:   converged,
		count:       s.count,
		occupation:  append([]int(nil), s.occupation...),
		clusters:    s.clusters.Head(s.count),
		data:        s.task.data,
		processLog:  process,
		summaryLog:  summary,
		diagnostics: s.trace != nil,
	}
}

// Vigilance returns the vigilance parameter of the run.
func (r *Result[T]) Vigilance() float64 { return r.vigilance }

// Epochs returns the epoch index at which convergence was detected, or
// MaximumEpochs if the budget was exhausted.
func (r *Result[T]) Epochs() int { return r.epochs }

// Converged reports whether every cluster satisfied RequiredSimilarity.
func (r *Result[T]) Converged() bool { return r.converged }

// ConvergenceError returns nil for a converged run and a *ConvergenceError
// otherwise.
func (r *Result[T]) ConvergenceError() error {
	if r.converged {
		return nil
	}

	return &ConvergenceError{Vigilance: r.vigilance, Epochs: r.epochs}
}

// NumberOfClusters returns the number of detected clusters.
func (r *Result[T]) NumberOfClusters() int { return r.count }

// NumberOfInputVectors returns N.
func (r *Result[T]) NumberOfInputVectors() int { return len(r.occupation) }

// Occupation returns the cluster index of every input vector, -1 for null vectors.
func (r *Result[T]) Occupation() []int { return append([]int(nil), r.occupation...) }

// ClusterSizes returns the number of input vectors in each cluster.
func (r *Result[T]) ClusterSizes() []int {
	sizes := make([]int, r.count)
	for _, c := range r.occupation {
		if c >= 0 {
			sizes[c]++
		}
	}

	return sizes
}

// ClusterMatrix returns the weights of the detected clusters, one row each.
func (r *Result[T]) ClusterMatrix() *matrix.Dense[T] { return r.clusters.Clone() }

// ClusterVector returns a copy of the weights of cluster c.
func (r *Result[T]) ClusterVector(c int) ([]T, error) {
	if c < 0 || c >= r.count {
		return nil, ErrClusterIndex
	}

	return r.clusters.RowCopy(c)
}

// Data returns a copy of the scaled DataMatrix that was clustered.
func (r *Result[T]) Data() *matrix.Dense[T] { return r.data.Clone() }

// HasDiagnostics reports whether the run recorded the diagnostic sequences.
func (r *Result[T]) HasDiagnostics() bool { return r.diagnostics }

// ProcessLog returns the step-by-step trace: presentation order, per-vector
// decisions and per-epoch convergence status. Empty unless ExportDiagnostics
// was set.
func (r *Result[T]) ProcessLog() []string { return append([]string(nil), r.processLog...) }

// SummaryLog returns one line per epoch plus a closing result line. Empty
// unless ExportDiagnostics was set.
func (r *Result[T]) SummaryLog() []string { return append([]string(nil), r.summaryLog...) }
