// Package sweep clusters one prepared data set under several vigilance
// parameters concurrently. Runs are independent: each owns its RunState, so
// the only shared value is the read-only art2a.Task.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/vecmath"
)

// TracerName is the instrumentation name of the spans emitted by Run.
const TracerName = "art2a/sweep"

// ErrNoVigilance is returned when Options.Vigilances is empty.
var ErrNoVigilance = errors.New("sweep: no vigilance parameters given")

// Options configures a sweep.
//
//   - Vigilances: one run per value, in this order.
//   - Base: run parameters shared by all runs; VigilanceParameter is replaced.
//   - Parallelism: maximum concurrent runs; ≤ 0 means GOMAXPROCS.
//   - FailOnNoConvergence: treat an exhausted epoch budget as a run failure,
//     which cancels the runs that have not finished.
//   - Logger, Tracer: nil selects a discarding logger and the global tracer.
type Options struct {
	Vigilances          []float64
	Base                art2a.Options
	Parallelism         int
	FailOnNoConvergence bool
	Logger              *slog.Logger
	Tracer              trace.Tracer
}

// Outcome is the result of one run of a sweep.
type Outcome[T vecmath.Float] struct {
	RunID     string
	Vigilance float64
	Result    *art2a.Result[T]
	Err       error
	Duration  time.Duration
}

// Run clusters task's data once per vigilance parameter.
//
// Every parameter set is validated before the first run starts. Outcomes are
// returned in the order of opts.Vigilances, also when an error is returned:
// the error is the first run failure (or ctx's error), and runs that were
// cancelled or never started carry that cause in Outcome.Err.
func Run[T vecmath.Float](ctx context.Context, task *art2a.Task[T], opts Options) ([]Outcome[T], error) {
	if len(opts.Vigilances) == 0 {
		return nil, ErrNoVigilance
	}

	var (
		log    = opts.Logger
		tracer = opts.Tracer
		tasks  = make([]*art2a.Task[T], len(opts.Vigilances))
		out    = make([]Outcome[T], len(opts.Vigilances))
		err    error
	)
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	for i, v := range opts.Vigilances {
		o := opts.Base
		o.VigilanceParameter = v
		if tasks[i], err = task.WithOptions(o); err != nil {
			return nil, fmt.Errorf("sweep: vigilance #%d (%v): %w", i, v, err)
		}
		out[i] = Outcome[T]{RunID: uuid.NewString(), Vigilance: v}
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	ctx, span := tracer.Start(ctx, "sweep.Run", trace.WithAttributes(
		attribute.Int("sweep.runs", len(tasks)),
		attribute.Int("sweep.parallelism", limit),
	))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range tasks {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Err = runOne(gctx, tracer, log, tasks[i], &out[i], opts.FailOnNoConvergence)
			return out[i].Err
		})
	}

	if err = g.Wait(); err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("sweep failed", "runs", len(tasks), "error", err)
		return out, err
	}
	log.Info("sweep finished", "runs", len(tasks))

	return out, nil
}

// runOne executes a single run inside its own span and fills o.
func runOne[T vecmath.Float](
	ctx context.Context,
	tracer trace.Tracer,
	log *slog.Logger,
	task *art2a.Task[T],
	o *Outcome[T],
	failOnNoConvergence bool,
) error {
	ctx, span := tracer.Start(ctx, "art2a.Run", trace.WithAttributes(
		attribute.String("art2a.run_id", o.RunID),
		attribute.Float64("art2a.vigilance", o.Vigilance),
	))
	defer span.End()

	log.Debug("run started", "run_id", o.RunID, "vigilance", o.Vigilance)
	start := time.Now()
	res, err := task.RunContext(ctx)
	o.Duration = time.Since(start)
	span.SetAttributes(attribute.Int64("duration_ms", o.Duration.Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("run failed", "run_id", o.RunID, "vigilance", o.Vigilance, "error", err)
		return err
	}

	o.Result = res
	span.SetAttributes(
		attribute.Int("art2a.clusters", res.NumberOfClusters()),
		attribute.Int("art2a.epochs", res.Epochs()),
		attribute.Bool("art2a.converged", res.Converged()),
	)
	log.Debug("run finished",
		"run_id", o.RunID,
		"vigilance", o.Vigilance,
		"clusters", res.NumberOfClusters(),
		"epochs", res.Epochs(),
		"converged", res.Converged(),
	)

	if failOnNoConvergence {
		if cerr := res.ConvergenceError(); cerr != nil {
			span.SetStatus(codes.Error, cerr.Error())
			return cerr
		}
	}

	return nil
}
