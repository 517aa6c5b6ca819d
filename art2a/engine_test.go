package art2a_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/vecmath"
)

// scenarioOptions are the run parameters shared by the end-to-end scenarios.
func scenarioOptions(vigilance float64) art2a.Options {
	o := art2a.DefaultOptions(vigilance)
	o.MaximumEpochs = 10
	o.RequiredSimilarity = 0.99
	o.LearningParameter = 0.5
	o.Seed = 1

	return o
}

// randomFingerprints returns n sparse non-negative rows of width d.
func randomFingerprints(n, d int, seed int64) [][]float64 {
	r := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, d)
		for j := range rows[i] {
			if r.Float64() < 0.3 {
				rows[i][j] = float64(r.Intn(9) + 1)
			}
		}
		rows[i][r.Intn(d)] += 1
	}

	return rows
}

// requireUnitRows asserts that every cluster vector of res has norm ≈ 1.
func requireUnitRows[T vecmath.Float](t *testing.T, res *art2a.Result[T], tol float64) {
	t.Helper()
	for c := 0; c < res.NumberOfClusters(); c++ {
		w, err := res.ClusterVector(c)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, float64(vecmath.Length(w)), tol, "cluster %d", c)
	}
}

func TestCluster_SingleVector(t *testing.T) {
	t.Parallel()

	res, err := art2a.Cluster([][]float64{{1, 0, 0, 0}}, scenarioOptions(0.5))
	require.NoError(t, err)

	assert.Equal(t, 1, res.NumberOfClusters())
	assert.Equal(t, []int{0}, res.Occupation())
	assert.True(t, res.Converged())
	assert.Equal(t, 1, res.Epochs())
	assert.NoError(t, res.ConvergenceError())
	assert.Equal(t, 0.5, res.Vigilance())

	w, err := res.ClusterVector(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0}, w)
}

func TestCluster_SingleVector_Float32(t *testing.T) {
	t.Parallel()

	res, err := art2a.Cluster([][]float32{{1, 0, 0, 0}}, scenarioOptions(0.5))
	require.NoError(t, err)

	assert.Equal(t, 1, res.NumberOfClusters())
	assert.Equal(t, []int{0}, res.Occupation())
	assert.True(t, res.Converged())
	assert.Equal(t, 1, res.Epochs())
}

func TestCluster_IdenticalVectors(t *testing.T) {
	t.Parallel()

	res, err := art2a.Cluster([][]float64{{1, 1, 0, 0}, {1, 1, 0, 0}}, scenarioOptions(0.5))
	require.NoError(t, err)

	assert.Equal(t, 1, res.NumberOfClusters())
	assert.Equal(t, []int{0, 0}, res.Occupation())
	assert.True(t, res.Converged())
	assert.Equal(t, 1, res.Epochs())
	assert.Equal(t, []int{2}, res.ClusterSizes())
	requireUnitRows(t, res, 1e-12)
}

func TestCluster_OrthogonalVectors(t *testing.T) {
	t.Parallel()

	res, err := art2a.Cluster([][]float64{{1, 0}, {0, 1}}, scenarioOptions(0.9))
	require.NoError(t, err)

	occ := res.Occupation()
	assert.Equal(t, 2, res.NumberOfClusters())
	assert.NotEqual(t, occ[0], occ[1])
	assert.ElementsMatch(t, []int{0, 1}, occ)
	assert.True(t, res.Converged())
	assert.Equal(t, 1, res.Epochs())
}

func TestNew_AllZeroMatrix(t *testing.T) {
	t.Parallel()

	_, err := art2a.New([][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, scenarioOptions(0.5))
	assert.ErrorIs(t, err, art2a.ErrAllNullVectors)
	assert.ErrorIs(t, err, art2a.ErrInvalidInput)
}

func TestNew_ScalesLargeComponents(t *testing.T) {
	t.Parallel()

	task, err := art2a.New([][]float64{{0.5, 5.0, 0.1}, {0.2, 1, 0}}, scenarioOptions(0.5))
	require.NoError(t, err)

	data := task.Data().ToRows()
	assert.Equal(t, 1.0, data[0][1])
	assert.Equal(t, 0.0, data[1][2])
}

func TestNew_OptionsCheckedFirst(t *testing.T) {
	t.Parallel()

	_, err := art2a.New([][]float64{{-1}}, art2a.DefaultOptions(1))
	assert.ErrorIs(t, err, art2a.ErrBadVigilance)
}

func TestRun_BudgetExhausted(t *testing.T) {
	t.Parallel()

	o := scenarioOptions(0.9)
	o.MaximumEpochs = 1
	res, err := art2a.Cluster([][]float64{{1, 0}, {0, 1}}, o)
	require.NoError(t, err)

	assert.False(t, res.Converged())
	assert.Equal(t, 1, res.Epochs())
	assert.Equal(t, 2, res.NumberOfClusters())

	cerr := res.ConvergenceError()
	require.Error(t, cerr)
	assert.ErrorIs(t, cerr, art2a.ErrConvergenceFailed)
	var ce *art2a.ConvergenceError
	require.ErrorAs(t, cerr, &ce)
	assert.Equal(t, 0.9, ce.Vigilance)
	assert.Equal(t, 1, ce.Epochs)
}

func TestRun_ZeroSimilarityConvergesImmediately(t *testing.T) {
	t.Parallel()

	o := scenarioOptions(0.5)
	o.RequiredSimilarity = 0
	res, err := art2a.Cluster(randomFingerprints(12, 6, 5), o)
	require.NoError(t, err)

	assert.True(t, res.Converged())
	assert.Equal(t, 0, res.Epochs())
}

func TestRun_NullVectorsStayUnclustered(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {0, 0, 0}, {1, 1, 0}}
	o := scenarioOptions(0.6)
	o.ExportDiagnostics = true
	res, err := art2a.Cluster(rows, o)
	require.NoError(t, err)

	occ := res.Occupation()
	assert.Equal(t, -1, occ[1])
	assert.Equal(t, -1, occ[3])
	for _, i := range []int{0, 2, 4} {
		assert.GreaterOrEqual(t, occ[i], 0, "vector %d", i)
	}
	assert.Contains(t, res.ProcessLog(), "  vector 1: null vector, unclustered")

	// null vectors never count towards a cluster
	var total int
	for _, s := range res.ClusterSizes() {
		total += s
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 5, res.NumberOfInputVectors())
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	rows := randomFingerprints(40, 16, 42)
	task, err := art2a.New(rows, scenarioOptions(0.4))
	require.NoError(t, err)

	first, err := task.Run()
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*art2a.Result[float64], 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = task.Run()
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, first.Occupation(), res.Occupation())
		assert.Equal(t, first.NumberOfClusters(), res.NumberOfClusters())
		assert.Equal(t, first.Epochs(), res.Epochs())
		assert.True(t, first.ClusterMatrix().Equal(res.ClusterMatrix()))
	}
}

func TestRun_InvariantsOnRandomData(t *testing.T) {
	t.Parallel()

	for _, mode := range []art2a.ShuffleMode{art2a.ShufflePairwiseSwaps, art2a.ShuffleFisherYates} {
		for _, vig := range []float64{0.1, 0.5, 0.9} {
			o := art2a.DefaultOptions(vig)
			o.Shuffle = mode
			o.MaximumEpochs = 25
			res, err := art2a.Cluster(randomFingerprints(60, 20, 7), o)
			require.NoError(t, err)

			n, d := res.ClusterMatrix().Shape()
			assert.Equal(t, res.NumberOfClusters(), n)
			assert.Equal(t, 20, d)
			assert.GreaterOrEqual(t, res.NumberOfClusters(), 1)
			for _, c := range res.Occupation() {
				assert.True(t, c >= 0 && c < res.NumberOfClusters())
			}
			requireUnitRows(t, res, 1e-9)
			if !res.Converged() {
				assert.Equal(t, o.MaximumEpochs, res.Epochs())
			}
		}
	}
}

func TestRun_HigherVigilanceMoreClusters(t *testing.T) {
	t.Parallel()

	rows := [][]float64{
		{1, 0, 0, 0}, {0.9, 0.1, 0, 0},
		{0, 1, 0, 0}, {0, 0.9, 0.1, 0},
		{0, 0, 1, 0}, {0, 0, 0, 1},
	}
	low, err := art2a.Cluster(rows, scenarioOptions(0.01))
	require.NoError(t, err)
	high, err := art2a.Cluster(rows, scenarioOptions(0.99))
	require.NoError(t, err)

	assert.LessOrEqual(t, low.NumberOfClusters(), high.NumberOfClusters())
	assert.GreaterOrEqual(t, high.NumberOfClusters(), 4)
}

func TestRun_Float32UnitRows(t *testing.T) {
	t.Parallel()

	src := randomFingerprints(30, 12, 9)
	rows := make([][]float32, len(src))
	for i, r := range src {
		rows[i] = make([]float32, len(r))
		for j, v := range r {
			rows[i][j] = float32(v)
		}
	}
	res, err := art2a.Cluster(rows, art2a.DefaultOptions(0.5))
	require.NoError(t, err)
	requireUnitRows(t, res, 1e-5)
}

func TestRun_DegenerateVector(t *testing.T) {
	t.Parallel()

	// the squared components underflow, so the Euclidean length is zero
	_, err := art2a.Cluster([][]float64{{1e-200, 0}, {0, 1e-200}}, art2a.DefaultOptions(0.5))
	assert.ErrorIs(t, err, art2a.ErrDegenerateVector)
	assert.NotErrorIs(t, err, art2a.ErrInvalidInput)
}

func TestRunContext_Cancelled(t *testing.T) {
	t.Parallel()

	task, err := art2a.New([][]float64{{1, 0}}, art2a.DefaultOptions(0.5))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = task.RunContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTask_WithOptions(t *testing.T) {
	t.Parallel()

	task, err := art2a.New([][]float64{{1, 0}, {0, 1}}, scenarioOptions(0.9))
	require.NoError(t, err)

	coarse, err := task.WithOptions(scenarioOptions(0.05))
	require.NoError(t, err)
	assert.Equal(t, 0.05, coarse.Options().VigilanceParameter)
	assert.True(t, task.Data().Equal(coarse.Data()))

	_, err = task.WithOptions(art2a.DefaultOptions(0))
	assert.ErrorIs(t, err, art2a.ErrBadVigilance)
}

func TestResult_ReturnsCopies(t *testing.T) {
	t.Parallel()

	res, err := art2a.Cluster([][]float64{{1, 0, 0, 0}}, scenarioOptions(0.5))
	require.NoError(t, err)

	occ := res.Occupation()
	occ[0] = 42
	assert.Equal(t, []int{0}, res.Occupation())

	cm := res.ClusterMatrix()
	require.NoError(t, cm.Set(0, 0, 7))
	w, err := res.ClusterVector(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, w[0])

	_, err = res.ClusterVector(1)
	assert.ErrorIs(t, err, art2a.ErrClusterIndex)
	assert.False(t, res.HasDiagnostics())
	assert.Empty(t, res.ProcessLog())
	assert.Empty(t, res.SummaryLog())
}

func TestRun_DiagnosticsDoNotChangeOutcome(t *testing.T) {
	t.Parallel()

	rows := randomFingerprints(25, 10, 3)
	plain, err := art2a.Cluster(rows, art2a.DefaultOptions(0.5))
	require.NoError(t, err)

	o := art2a.DefaultOptions(0.5)
	o.ExportDiagnostics = true
	traced, err := art2a.Cluster(rows, o)
	require.NoError(t, err)

	assert.Equal(t, plain.Occupation(), traced.Occupation())
	assert.True(t, plain.ClusterMatrix().Equal(traced.ClusterMatrix()))
	assert.True(t, traced.HasDiagnostics())
	assert.Len(t, traced.SummaryLog(), traced.Epochs()+2)
	assert.Empty(t, plain.ProcessLog())
}
