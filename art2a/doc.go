// Package art2a implements ART-2A unsupervised clustering of non-negative,
// high-dimensional, mostly sparse vectors into an open-ended number of
// clusters.
//
// Overview:
//
//   - Input is an N×D matrix. Rows are validated and, if any component exceeds
//     1, globally min-max rescaled into [0,1] (see Prepare).
//   - Each epoch presents every row once, in an order drawn from the current
//     seed. A presented vector is normalized, contrast-enhanced (components
//     ≤ 1/√(D+1) are zeroed) and re-normalized, then compared by dot product
//     with every cluster vector.
//   - The best cluster wins if it beats rho0 = Σv/√(D+1) and the vigilance
//     parameter. A winner learns the vector with rate LearningParameter;
//     otherwise the vector founds a new cluster.
//   - After each epoch every cluster vector is compared with its value at the
//     end of the previous epoch. The run converges when all dot products reach
//     RequiredSimilarity.
//
// Vigilance controls granularity: values near 1 give many small clusters,
// values near 0 give few large ones.
//
// Precision:
//
//	The engine is generic over vecmath.Float. Task[float32] and Task[float64]
//	run the identical algorithm; parameters are converted to T once.
//
// Determinism and concurrency:
//
//   - Identical data, Options and Seed produce identical Results.
//   - A Task is immutable; Run may be called concurrently. Every Run owns its
//     own state and a math/rand stream seeded per epoch.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidInput and its wrappers (ErrEmptyInput, ErrRaggedRows,
//     ErrNegativeComponent, ErrNonFiniteComponent, ErrAllNullVectors,
//     ErrBadVigilance, ErrBadMaximumEpochs, ErrBadRequiredSimilarity,
//     ErrBadLearningParameter, ErrBadShuffleMode): returned by New before any
//     clustering work.
//   - ErrDegenerateVector: a vector lost its whole length while being
//     normalized; the run is aborted.
//   - ErrConvergenceFailed: exhausting MaximumEpochs is not an error of Run. The
//     Result reports Converged() == false and ConvergenceError() returns a
//     *ConvergenceError carrying the vigilance parameter.
//
// Diagnostics:
//
//	With Options.ExportDiagnostics the Result carries a process trace and an
//	epoch summary (ProcessLog, SummaryLog). Recording never changes a decision.
//
// Example:
//
//	res, err := art2a.Cluster([][]float64{{1, 0, 0, 0}}, art2a.DefaultOptions(0.5))
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.NumberOfClusters(), res.Occupation())
package art2a
