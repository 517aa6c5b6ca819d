// Package report turns clustering results into serialisable summaries and
// writes them, together with the diagnostic logs, for the art2a command.
package report

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/sweep"
	"github.com/katalvlaran/art2a/vecmath"
)

// Cluster describes one detected cluster.
type Cluster struct {
	Index          int   `yaml:"index"`
	Size           int   `yaml:"size"`
	Representative int   `yaml:"representative"`
	Members        []int `yaml:"members,flow"`
}

// Summary is the serialisable form of an art2a.Result.
type Summary struct {
	Vigilance   float64     `yaml:"vigilance"`
	Epochs      int         `yaml:"epochs"`
	Converged   bool        `yaml:"converged"`
	Vectors     int         `yaml:"vectors"`
	Dimension   int         `yaml:"dimension"`
	NullVectors int         `yaml:"null_vectors"`
	Clusters    int         `yaml:"clusters"`
	SizeMin     int         `yaml:"size_min"`
	SizeMax     int         `yaml:"size_max"`
	SizeMean    float64     `yaml:"size_mean"`
	SizeStdDev  float64     `yaml:"size_stddev"`
	Details     []Cluster   `yaml:"cluster_details"`
	Angles      [][]float64 `yaml:"angles,omitempty"`
	Occupation  []int       `yaml:"occupation,flow"`
}

// Summarize builds a Summary. With angles set, the symmetric matrix of
// inter-cluster angles (degrees) is included; it is O(K²·D).
func Summarize[T vecmath.Float](res *art2a.Result[T], angles bool) (*Summary, error) {
	occ := res.Occupation()
	_, d := res.Data().Shape()
	s := &Summary{
		Vigilance:  res.Vigilance(),
		Epochs:     res.Epochs(),
		Converged:  res.Converged(),
		Vectors:    len(occ),
		Dimension:  d,
		Clusters:   res.NumberOfClusters(),
		Occupation: occ,
	}
	for _, c := range occ {
		if c < 0 {
			s.NullVectors++
		}
	}

	sizes := res.ClusterSizes()
	s.Details = make([]Cluster, len(sizes))
	fsizes := make([]float64, len(sizes))
	for c := range sizes {
		members, err := res.ClusterIndices(c)
		if err != nil {
			return nil, err
		}
		rep, err := res.ClusterRepresentative(c)
		if err != nil {
			return nil, err
		}
		s.Details[c] = Cluster{Index: c, Size: sizes[c], Representative: rep, Members: members}
		fsizes[c] = float64(sizes[c])
	}
	s.SizeMin, s.SizeMax, s.SizeMean, s.SizeStdDev = sizeStats(fsizes)

	if angles {
		m, err := AngleMatrix(res)
		if err != nil {
			return nil, err
		}
		s.Angles = m
	}

	return s, nil
}

// sizeStats returns the extremes, the mean and the sample standard deviation
// of the cluster sizes. The deviation is 0 for fewer than two clusters.
func sizeStats(sizes []float64) (lo, hi int, mean, std float64) {
	if len(sizes) == 0 {
		return 0, 0, 0, 0
	}
	lo, hi = int(floats.Min(sizes)), int(floats.Max(sizes))
	if len(sizes) < 2 {
		return lo, hi, stat.Mean(sizes, nil), 0
	}
	mean, std = stat.MeanStdDev(sizes, nil)

	return lo, hi, mean, std
}

// AngleMatrix returns the K×K matrix of angles in degrees between the cluster
// vectors of res, as given by Result.AngleBetweenClusters.
func AngleMatrix[T vecmath.Float](res *art2a.Result[T]) ([][]float64, error) {
	k := res.NumberOfClusters()
	out := make([][]float64, k)
	for a := range out {
		out[a] = make([]float64, k)
	}
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			angle, err := res.AngleBetweenClusters(a, b)
			if err != nil {
				return nil, err
			}
			out[a][b] = angle
			out[b][a] = angle
		}
	}

	return out, nil
}

// SweepRow is one line of a sweep report.
type SweepRow struct {
	RunID      string  `yaml:"run_id"`
	Vigilance  float64 `yaml:"vigilance"`
	Clusters   int     `yaml:"clusters"`
	Epochs     int     `yaml:"epochs"`
	Converged  bool    `yaml:"converged"`
	DurationMS int64   `yaml:"duration_ms"`
	Error      string  `yaml:"error,omitempty"`
}

// SummarizeSweep flattens sweep outcomes, keeping their order.
func SummarizeSweep[T vecmath.Float](outs []sweep.Outcome[T]) []SweepRow {
	rows := make([]SweepRow, len(outs))
	for i, o := range outs {
		rows[i] = SweepRow{
			RunID:      o.RunID,
			Vigilance:  o.Vigilance,
			DurationMS: o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			rows[i].Error = o.Err.Error()
		}
		if o.Result != nil {
			rows[i].Clusters = o.Result.NumberOfClusters()
			rows[i].Epochs = o.Result.Epochs()
			rows[i].Converged = o.Result.Converged()
		}
	}

	return rows
}

// WriteYAML encodes v as YAML with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}

	return enc.Close()
}

// WriteLines writes one line per element.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteDiagnostics writes the process trace and the epoch summary of res.
// Either writer may be nil.
func WriteDiagnostics[T vecmath.Float](process, summary io.Writer, res *art2a.Result[T]) error {
	if !res.HasDiagnostics() {
		return ErrNoDiagnostics
	}
	if process != nil {
		if err := WriteLines(process, res.ProcessLog()); err != nil {
			return fmt.Errorf("report: write process log: %w", err)
		}
	}
	if summary != nil {
		if err := WriteLines(summary, res.SummaryLog()); err != nil {
			return fmt.Errorf("report: write summary log: %w", err)
		}
	}

	return nil
}
