package art2a

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/art2a/matrix"
	"github.com/katalvlaran/art2a/vecmath"
)

// Task is a validated clustering job: a scaled DataMatrix plus the run
// parameters converted once to the working precision T.
//
// A Task holds only immutable state. Run may be called any number of times and
// from several goroutines; every call builds its own RunState and returns an
// independent Result.
type Task[T vecmath.Float] struct {
	data *matrix.Dense[T]
	opts Options

	vigilance          T
	requiredSimilarity T
	learning           T
	scaling            T // 1/√(D+1), also the contrast-enhancement threshold
	initial            T // 1/√D, initial cluster weight
}

// New validates opts and rows, scales the data (see Prepare) and returns a Task.
//
// Errors: any ErrInvalidInput sentinel from Options.Validate or Prepare.
func New[T vecmath.Float](rows [][]T, opts Options) (*Task[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	data, err := Prepare(rows)
	if err != nil {
		return nil, err
	}

	return newTask(data, opts), nil
}

// NewFromMatrix is New for input already held in a Dense. m is cloned.
func NewFromMatrix[T vecmath.Float](m *matrix.Dense[T], opts Options) (*Task[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	data, err := PrepareMatrix(m)
	if err != nil {
		return nil, err
	}

	return newTask(data, opts), nil
}

// WithOptions returns a Task sharing t's validated data under different run
// parameters. The data is not re-validated or copied; it is never mutated.
func (t *Task[T]) WithOptions(opts Options) (*Task[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return newTask(t.data, opts), nil
}

// Options returns the run parameters of the Task.
func (t *Task[T]) Options() Options { return t.opts }

// Data returns a copy of the scaled DataMatrix.
func (t *Task[T]) Data() *matrix.Dense[T] { return t.data.Clone() }

func newTask[T vecmath.Float](data *matrix.Dense[T], opts Options) *Task[T] {
	d := data.Cols()

	return &Task[T]{
		data:               data,
		opts:               opts,
		vigilance:          T(opts.VigilanceParameter),
		requiredSimilarity: T(opts.RequiredSimilarity),
		learning:           T(opts.LearningParameter),
		scaling:            T(1 / math.Sqrt(float64(d+1))),
		initial:            T(1 / math.Sqrt(float64(d))),
	}
}

// Cluster is the one-shot form: New followed by Run.
func Cluster[T vecmath.Float](rows [][]T, opts Options) (*Result[T], error) {
	t, err := New(rows, opts)
	if err != nil {
		return nil, err
	}

	return t.Run()
}

// Run clusters the data. See RunContext.
func (t *Task[T]) Run() (*Result[T], error) {
	return t.RunContext(context.Background())
}

// RunContext clusters the data (ClusterEngine).
//
// Implementation:
//   - Stage 1: cluster and previous-epoch matrices [N, D] filled with 1/√D.
//   - Stage 2: per epoch, draw the presentation order from the current seed,
//     increment the seed, present every vector, then run the convergence check.
//   - Stage 3: stop on convergence or when the epoch index reaches
//     MaximumEpochs; the latter yields a Result with Converged() == false.
//
// ctx is polled once per epoch; a cancelled context aborts the run and no
// Result is produced.
//
// Errors: ErrDegenerateVector, ctx.Err().
//
// Complexity: O(E·N·K·D) for E epochs and K clusters.
func (t *Task[T]) RunContext(ctx context.Context) (*Result[T], error) {
	var (
		log       = t.opts.logger()
		n, d      = t.data.Shape()
		s         = t.newRunState()
		converged bool
		exhausted bool
		order     []int
		idx       int
		err       error
	)

	log.Debug("art2a run started",
		"vectors", n,
		"dimension", d,
		"vigilance", t.opts.VigilanceParameter,
		"maximum_epochs", t.opts.MaximumEpochs,
		"shuffle", t.opts.Shuffle.String(),
		"seed", t.opts.Seed,
	)
	s.trace.processf("ART-2A clustering started: vectors=%d, dimension=%d, vigilance=%v, maximum epochs=%d, "+
		"required similarity=%v, learning parameter=%v, seed=%d",
		n, d, t.opts.VigilanceParameter, t.opts.MaximumEpochs,
		t.opts.RequiredSimilarity, t.opts.LearningParameter, t.opts.Seed)

	for {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("art2a: run cancelled in epoch %d: %w", s.epoch, err)
		}

		order = presentationOrder(n, s.seed, t.opts.Shuffle)
		if s.trace != nil {
			s.trace.processf("Epoch %d: seed=%d, order=%v", s.epoch, s.seed, order)
		}
		s.seed++

		for _, idx = range order {
			if err = s.present(idx); err != nil {
				log.Error("art2a run failed", "epoch", s.epoch, "vector", idx, "error", err)
				return nil, err
			}
		}

		converged, exhausted = s.checkConvergence()
		if exhausted {
			s.trace.epochf("Epoch %d: maximum number of epochs reached, not converged", s.epoch)
			break
		}
		s.trace.epochf("Epoch %d: clusters=%d, converged=%t", s.epoch, s.count, converged)
		if converged {
			break
		}
		s.epoch++
	}

	s.trace.processf("ART-2A clustering finished: epochs=%d, clusters=%d, converged=%t", s.epoch, s.count, converged)
	s.trace.summaryf("Result: vigilance=%v, epochs=%d, clusters=%d, converged=%t",
		t.opts.VigilanceParameter, s.epoch, s.count, converged)

	res := s.result(converged)
	if converged {
		log.Info("art2a run finished", "vigilance", t.opts.VigilanceParameter, "epochs", s.epoch, "clusters", s.count)
	} else {
		log.Warn("art2a run did not converge", "vigilance", t.opts.VigilanceParameter, "epochs", s.epoch, "clusters", s.count)
	}

	return res, nil
}

// runState is the mutable state of one Run (RunState).
type runState[T vecmath.Float] struct {
	task *Task[T]

	clusters   *matrix.Dense[T]
	previous   *matrix.Dense[T]
	occupation []int
	count      int
	epoch      int
	seed       int64

	buf     []T // presented vector after the input transform
	initRow []T // 1/√D row appended when the cluster matrix grows
	trace   *recorder
}

func (t *Task[T]) newRunState() *runState[T] {
	n, d := t.data.Shape()
	// n, d ≥ 1 after validation, so NewFilled cannot fail.
	clusters, _ := matrix.NewFilled(n, d, t.initial)
	initRow := make([]T, d)
	vecmath.Fill(initRow, t.initial)

	s := &runState[T]{
		task:       t,
		clusters:   clusters,
		previous:   clusters.Clone(),
		occupation: make([]int, n),
		seed:       t.opts.Seed,
		buf:        make([]T, d),
		initRow:    initRow,
	}
	if t.opts.ExportDiagnostics {
		s.trace = &recorder{}
	}

	return s
}

// present runs one input vector through the transform, the winner search and
// the update.
func (s *runState[T]) present(idx int) error {
	t := s.task
	if t.data.RowIsNull(idx) {
		s.occupation[idx] = -1
		if s.trace != nil {
			s.trace.processf("  vector %d: null vector, unclustered", idx)
		}
		return nil
	}

	copy(s.buf, t.data.RowView(idx))
	if _, err := vecmath.Normalize(s.buf); err != nil {
		return s.degenerate(idx)
	}
	vecmath.ZeroAtOrBelow(s.buf, t.scaling)
	if _, err := vecmath.Normalize(s.buf); err != nil {
		return s.degenerate(idx)
	}

	if s.count == 0 {
		c := s.install(idx)
		if s.trace != nil {
			s.trace.processf("  vector %d: new cluster %d (first cluster)", idx, c)
		}
		return nil
	}

	// Trace arguments are boxed only when diagnostics are recorded.
	winner, rho := s.winner()
	switch {
	case winner < 0:
		c := s.install(idx)
		if s.trace != nil {
			s.trace.processf("  vector %d: new cluster %d (no winner, rho0=%.4f)", idx, c, rho)
		}
	case rho < t.vigilance:
		c := s.install(idx)
		if s.trace != nil {
			s.trace.processf("  vector %d: new cluster %d (rho=%.4f below vigilance)", idx, c, rho)
		}
	default:
		if err := s.learn(winner); err != nil {
			return s.degenerate(idx)
		}
		s.occupation[idx] = winner
		if s.trace != nil {
			s.trace.processf("  vector %d: winner cluster %d (rho=%.4f)", idx, winner, rho)
		}
	}

	return nil
}

// winner returns the cluster whose weights have the largest dot product with
// the presented vector, strictly above the running maximum that starts at
// rho0 = scalingFactor·Σv. It returns (-1, rho0) when no cluster beats rho0.
func (s *runState[T]) winner() (int, T) {
	var (
		rho    = s.task.scaling * vecmath.Sum(s.buf)
		winner = -1
		c      int
		dot    T
	)
	for c = 0; c < s.count; c++ {
		dot = vecmath.Dot(s.buf, s.clusters.RowView(c))
		if dot > rho {
			rho = dot
			winner = c
		}
	}

	return winner, rho
}

// install makes the presented vector the weights of a new cluster, growing the
// cluster matrices by one row when they are full.
func (s *runState[T]) install(idx int) int {
	c := s.count
	if c == s.clusters.Rows() {
		// Lengths match by construction.
		_, _ = s.clusters.AppendRow(s.initRow)
		_, _ = s.previous.AppendRow(s.initRow)
	}
	copy(s.clusters.RowView(c), s.buf)
	s.count++
	s.occupation[idx] = c

	return c
}

// learn moves the winner's weights toward the presented vector:
// w ← normalize(L/‖v'‖·v' + (1-L)·w), where v' is v with every component
// zeroed at which w ≤ threshold. If v' is entirely masked the winner keeps its
// weights.
func (s *runState[T]) learn(winner int) error {
	t := s.task
	w := s.clusters.RowView(winner)
	vecmath.MaskBy(s.buf, w, t.scaling)
	l := vecmath.Length(s.buf)
	if l == 0 {
		return nil
	}
	vecmath.Blend(w, s.buf, w, t.learning/l, 1-t.learning)
	if _, err := vecmath.Normalize(w); err != nil {
		return err
	}

	return nil
}

func (s *runState[T]) degenerate(idx int) error {
	return fmt.Errorf("%w: vector %d in epoch %d", ErrDegenerateVector, idx, s.epoch)
}
