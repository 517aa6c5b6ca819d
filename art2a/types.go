package art2a

import (
	"io"
	"log/slog"
)

// ShuffleMode selects how the per-epoch presentation order is produced.
//
//   - ShufflePairwiseSwaps: start from the identity and perform ⌊N/2⌋+1 swaps of
//     two uniformly drawn positions (self-swaps allowed). Not a uniform shuffle;
//     this is the classic ART-2A presentation scheme and the default.
//   - ShuffleFisherYates: a uniform Fisher-Yates shuffle.
type ShuffleMode int

const (
	// ShufflePairwiseSwaps performs ⌊N/2⌋+1 random pairwise swaps.
	ShufflePairwiseSwaps ShuffleMode = iota

	// ShuffleFisherYates performs a uniform Fisher-Yates shuffle.
	ShuffleFisherYates
)

// String returns the mode name used in diagnostics and configuration.
func (m ShuffleMode) String() string {
	switch m {
	case ShufflePairwiseSwaps:
		return "pairwise-swaps"
	case ShuffleFisherYates:
		return "fisher-yates"
	default:
		return "unknown"
	}
}

// ParseShuffleMode is the inverse of ShuffleMode.String.
func ParseShuffleMode(s string) (ShuffleMode, error) {
	switch s {
	case "", "pairwise-swaps":
		return ShufflePairwiseSwaps, nil
	case "fisher-yates":
		return ShuffleFisherYates, nil
	default:
		return 0, ErrBadShuffleMode
	}
}

// Defaults used by DefaultOptions.
const (
	DefaultMaximumEpochs      = 10
	DefaultRequiredSimilarity = 0.99
	DefaultLearningParameter  = 0.01
	DefaultSeed               = 1
)

// Options configures one clustering run (the RunParameters).
//
//   - VigilanceParameter – cluster granularity in the open interval (0,1);
//     higher values produce more, finer clusters.
//   - MaximumEpochs – epoch budget, > 0. Epochs are counted from 0; the epoch
//     whose index reaches the budget ends the run as "not converged".
//   - RequiredSimilarity – minimum dot product between a cluster vector and its
//     previous-epoch value for convergence, in [0,1].
//   - LearningParameter – weight of the presented vector in a winner update, in [0,1].
//   - Seed – seed of the first epoch's presentation order; incremented per epoch.
//   - Shuffle – presentation order scheme.
//   - ExportDiagnostics – record the process trace and epoch summary in the Result.
//   - Logger – receives one record before and one after the epoch loop; nil discards.
type Options struct {
	VigilanceParameter float64
	MaximumEpochs      int
	RequiredSimilarity float64
	LearningParameter  float64
	Seed               int64
	Shuffle            ShuffleMode
	ExportDiagnostics  bool
	Logger             *slog.Logger
}

// DefaultOptions returns Options for the given vigilance parameter with the
// remaining fields at their defaults:
//
//   - MaximumEpochs:      10
//   - RequiredSimilarity: 0.99
//   - LearningParameter:  0.01
//   - Seed:               1
//   - Shuffle:            ShufflePairwiseSwaps
//   - ExportDiagnostics:  false
func DefaultOptions(vigilance float64) Options {
	return Options{
		VigilanceParameter: vigilance,
		MaximumEpochs:      DefaultMaximumEpochs,
		RequiredSimilarity: DefaultRequiredSimilarity,
		LearningParameter:  DefaultLearningParameter,
		Seed:               DefaultSeed,
		Shuffle:            ShufflePairwiseSwaps,
	}
}

// Validate checks every parameter range. NaN never passes.
//
// Errors: ErrBadVigilance, ErrBadMaximumEpochs, ErrBadRequiredSimilarity,
// ErrBadLearningParameter, ErrBadShuffleMode (all wrap ErrInvalidInput).
func (o Options) Validate() error {
	if !(o.VigilanceParameter > 0 && o.VigilanceParameter < 1) {
		return ErrBadVigilance
	}
	if o.MaximumEpochs <= 0 {
		return ErrBadMaximumEpochs
	}
	if !(o.RequiredSimilarity >= 0 && o.RequiredSimilarity <= 1) {
		return ErrBadRequiredSimilarity
	}
	if !(o.LearningParameter >= 0 && o.LearningParameter <= 1) {
		return ErrBadLearningParameter
	}
	if o.Shuffle != ShufflePairwiseSwaps && o.Shuffle != ShuffleFisherYates {
		return ErrBadShuffleMode
	}

	return nil
}

// logger returns the configured logger or a discarding one.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
