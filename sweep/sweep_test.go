package sweep_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/sweep"
)

var rows = [][]float64{
	{1, 0, 0, 0}, {0.9, 0.2, 0, 0}, {0, 1, 0, 0},
	{0, 0.8, 0.3, 0}, {0, 0, 1, 0}, {0, 0, 0.2, 1},
}

func newTask(t *testing.T) *art2a.Task[float64] {
	t.Helper()
	task, err := art2a.New(rows, art2a.DefaultOptions(0.5))
	require.NoError(t, err)

	return task
}

func TestRun_NoVigilance(t *testing.T) {
	t.Parallel()

	_, err := sweep.Run(context.Background(), newTask(t), sweep.Options{})
	assert.ErrorIs(t, err, sweep.ErrNoVigilance)
}

func TestRun_InvalidVigilance(t *testing.T) {
	t.Parallel()

	out, err := sweep.Run(context.Background(), newTask(t), sweep.Options{
		Vigilances: []float64{0.3, 1.5},
		Base:       art2a.DefaultOptions(0.5),
	})
	assert.ErrorIs(t, err, art2a.ErrBadVigilance)
	assert.Contains(t, err.Error(), "vigilance #1")
	assert.Nil(t, out)
}

func TestRun_OutcomesInInputOrder(t *testing.T) {
	t.Parallel()

	task := newTask(t)
	vigilances := []float64{0.9, 0.1, 0.5, 0.7, 0.3}
	out, err := sweep.Run(context.Background(), task, sweep.Options{
		Vigilances:  vigilances,
		Base:        art2a.DefaultOptions(0.5),
		Parallelism: 2,
	})
	require.NoError(t, err)
	require.Len(t, out, len(vigilances))

	ids := map[string]bool{}
	for i, o := range out {
		require.NoError(t, o.Err)
		require.NotNil(t, o.Result)
		assert.Equal(t, vigilances[i], o.Vigilance)
		assert.Equal(t, vigilances[i], o.Result.Vigilance())
		assert.NotEmpty(t, o.RunID)
		ids[o.RunID] = true

		// a sweep run equals a direct run with the same parameters
		direct, err := art2a.Cluster(rows, art2a.DefaultOptions(vigilances[i]))
		require.NoError(t, err)
		assert.Equal(t, direct.Occupation(), o.Result.Occupation())
		assert.Equal(t, direct.Epochs(), o.Result.Epochs())
	}
	assert.Len(t, ids, len(vigilances))
}

func TestRun_FailOnNoConvergence(t *testing.T) {
	t.Parallel()

	base := art2a.DefaultOptions(0.5)
	base.MaximumEpochs = 1
	out, err := sweep.Run(context.Background(), newTask(t), sweep.Options{
		Vigilances:          []float64{0.9},
		Base:                base,
		FailOnNoConvergence: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, art2a.ErrConvergenceFailed)

	var ce *art2a.ConvergenceError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0.9, ce.Vigilance)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Result)
	assert.False(t, out[0].Result.Converged())
}

func TestRun_NoConvergenceIsSoftByDefault(t *testing.T) {
	t.Parallel()

	base := art2a.DefaultOptions(0.5)
	base.MaximumEpochs = 1
	out, err := sweep.Run(context.Background(), newTask(t), sweep.Options{
		Vigilances: []float64{0.9, 0.95},
		Base:       base,
	})
	require.NoError(t, err)
	for _, o := range out {
		assert.NoError(t, o.Err)
		assert.False(t, o.Result.Converged())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := sweep.Run(ctx, newTask(t), sweep.Options{
		Vigilances: []float64{0.2, 0.4},
		Base:       art2a.DefaultOptions(0.5),
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, 2)
	for _, o := range out {
		assert.ErrorIs(t, o.Err, context.Canceled)
		assert.Nil(t, o.Result)
	}
}

func TestRun_Spans(t *testing.T) {
	t.Parallel()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	_, err := sweep.Run(context.Background(), newTask(t), sweep.Options{
		Vigilances: []float64{0.2, 0.8},
		Base:       art2a.DefaultOptions(0.5),
		Tracer:     tp.Tracer(sweep.TracerName),
	})
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 3)

	var runs int
	for _, s := range spans {
		if s.Name() != "art2a.Run" {
			assert.Equal(t, "sweep.Run", s.Name())
			continue
		}
		runs++
		keys := map[string]bool{}
		for _, kv := range s.Attributes() {
			keys[string(kv.Key)] = true
		}
		for _, k := range []string{"art2a.run_id", "art2a.vigilance", "art2a.clusters", "art2a.epochs", "art2a.converged"} {
			assert.True(t, keys[k], "span attribute %s", k)
		}
	}
	assert.Equal(t, 2, runs)
}
