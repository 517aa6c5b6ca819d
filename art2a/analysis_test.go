package art2a_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/art2a/art2a"
)

func TestResult_ClusterIndicesAndRepresentative(t *testing.T) {
	t.Parallel()

	rows := [][]float64{
		{1, 0, 0}, {0, 1, 0}, {0.9, 0, 0}, {0, 0.5, 0}, {0.8, 0, 0},
	}
	res, err := art2a.Cluster(rows, scenarioOptions(0.9))
	require.NoError(t, err)
	require.Equal(t, 2, res.NumberOfClusters())

	occ := res.Occupation()
	xc, yc := occ[0], occ[1]
	require.NotEqual(t, xc, yc)

	xs, err := res.ClusterIndices(xc)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, xs)

	ys, err := res.ClusterIndices(yc)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ys)

	// mean of x-members is 0.9 on the first axis, matched exactly by row 2
	rep, err := res.ClusterRepresentative(xc)
	require.NoError(t, err)
	assert.Equal(t, 2, rep)

	// rows 1 and 3 are equidistant from their mean: lowest index wins
	rep, err = res.ClusterRepresentative(yc)
	require.NoError(t, err)
	assert.Equal(t, 1, rep)

	_, err = res.ClusterIndices(2)
	assert.ErrorIs(t, err, art2a.ErrClusterIndex)
	_, err = res.ClusterRepresentative(-1)
	assert.ErrorIs(t, err, art2a.ErrClusterIndex)
}

func TestResult_AngleBetweenClusters(t *testing.T) {
	t.Parallel()

	res, err := art2a.Cluster([][]float64{{1, 0}, {0, 1}}, scenarioOptions(0.9))
	require.NoError(t, err)

	angle, err := res.AngleBetweenClusters(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, angle, 1e-9)

	angle, err = res.AngleBetweenClusters(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, angle, 1e-6)

	_, err = res.AngleBetweenClusters(0, 2)
	assert.ErrorIs(t, err, art2a.ErrClusterIndex)
}
