package art2a

import "github.com/katalvlaran/art2a/vecmath"

// checkConvergence compares the first count cluster rows with their
// previous-epoch values (ConvergenceChecker).
//
// exhausted is true when the epoch index has reached MaximumEpochs; no
// comparison is made in that case. Otherwise converged reports whether every
// dot(current, previous) is ≥ RequiredSimilarity. When it is not, all compared
// rows are copied into the previous-epoch matrix.
//
// Complexity: O(K·D).
func (s *runState[T]) checkConvergence() (converged, exhausted bool) {
	t := s.task
	if s.epoch >= t.opts.MaximumEpochs {
		return false, true
	}

	var c int
	converged = true
	for c = 0; c < s.count; c++ {
		if vecmath.Dot(s.clusters.RowView(c), s.previous.RowView(c)) < t.requiredSimilarity {
			converged = false
			break
		}
	}
	if !converged {
		for c = 0; c < s.count; c++ {
			copy(s.previous.RowView(c), s.clusters.RowView(c))
		}
	}

	return converged, false
}
