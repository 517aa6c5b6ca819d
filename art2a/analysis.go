package art2a

import (
	"math"

	"github.com/katalvlaran/art2a/vecmath"
)

// ClusterIndices returns the indices of the input vectors in cluster c, ascending.
func (r *Result[T]) ClusterIndices(c int) ([]int, error) {
	if c < 0 || c >= r.count {
		return nil, ErrClusterIndex
	}
	var out []int
	for i, oc := range r.occupation {
		if oc == c {
			out = append(out, i)
		}
	}

	return out, nil
}

// ClusterRepresentative returns the index of the member of cluster c that lies
// closest (Euclidean distance on the scaled data) to the arithmetic mean of all
// members. Ties go to the lowest index. A cluster installed in an epoch and
// emptied by later reassignments has no representative; -1 is returned then.
//
// Complexity: O(m·D) for m members.
func (r *Result[T]) ClusterRepresentative(c int) (int, error) {
	members, err := r.ClusterIndices(c)
	if err != nil {
		return -1, err
	}
	if len(members) == 0 {
		return -1, nil
	}

	var (
		d    = r.data.Cols()
		mean = make([]T, d)
		j    int
	)
	for _, i := range members {
		row := r.data.RowView(i)
		for j = 0; j < d; j++ {
			mean[j] += row[j]
		}
	}
	vecmath.Scale(mean, 1/T(len(members)))

	best, bestDist := -1, T(0)
	for _, i := range members {
		dist := vecmath.EuclideanDistance(r.data.RowView(i), mean)
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}

	return best, nil
}

// AngleBetweenClusters returns the angle in degrees between the unit weight
// vectors of clusters a and b.
func (r *Result[T]) AngleBetweenClusters(a, b int) (float64, error) {
	if a < 0 || a >= r.count || b < 0 || b >= r.count {
		return 0, ErrClusterIndex
	}
	dot := float64(vecmath.Dot(r.clusters.RowView(a), r.clusters.RowView(b)))
	dot = math.Max(-1, math.Min(1, dot))

	return math.Acos(dot) * 180 / math.Pi, nil
}
