package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/config"
	"github.com/katalvlaran/art2a/dataio"
	"github.com/katalvlaran/art2a/report"
	"github.com/katalvlaran/art2a/telemetry"
	"github.com/katalvlaran/art2a/vecmath"
)

func newClusterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster an input matrix with one vigilance parameter",
		Example: `  art2a cluster -i fingerprints.csv --vigilance 0.4
  art2a cluster -i fp.txt --precision 32 --diagnostics run1 --output report.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			logger, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.Precision == 32 {
				return runCluster[float32](cmd, cfg, logger)
			}
			return runCluster[float64](cmd, cfg, logger)
		},
	}

	fs := cmd.Flags()
	addRunFlags(fs)
	fs.Float64(config.KeyVigilance, 0.5, "vigilance parameter in (0,1)")
	fs.String(config.KeyDiagnostics, "", "write <prefix>_process.txt and <prefix>_summary.txt diagnostic logs")
	fs.StringP(config.KeyOutput, "o", "", "write the YAML report to this file, - for stdout")
	fs.String(config.KeyAssignments, "", "write vector,cluster CSV to this file")
	fs.Bool(config.KeyAngles, false, "include the inter-cluster angle matrix in the report")

	return cmd
}

func runCluster[T vecmath.Float](cmd *cobra.Command, cfg config.Config, logger *slog.Logger) error {
	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	rows, err := readRows[T](cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := startTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			logger.Warn("telemetry shutdown failed", "error", serr)
		}
	}()

	ctx, span := telemetry.Tracer("art2a/cli").Start(ctx, "art2a.Cluster")
	defer span.End()

	task, err := art2a.New(rows, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	res, err := task.RunContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(
		attribute.Float64("art2a.vigilance", res.Vigilance()),
		attribute.Int("art2a.clusters", res.NumberOfClusters()),
		attribute.Int("art2a.epochs", res.Epochs()),
		attribute.Bool("art2a.converged", res.Converged()),
	)

	if err = writeClusterOutputs(cmd, cfg, res); err != nil {
		return err
	}
	if cfg.FailOnNoConvergence {
		return res.ConvergenceError()
	}

	return nil
}

func readRows[T vecmath.Float](cmd *cobra.Command, cfg config.Config) ([][]T, error) {
	format, err := cfg.InputFormat()
	if err != nil {
		return nil, err
	}
	in, err := openInput(cmd, cfg.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	rows, err := dataio.Read[T](in, dataio.ReadOptions{Format: format, Header: cfg.Header})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	return rows, nil
}

func writeClusterOutputs[T vecmath.Float](cmd *cobra.Command, cfg config.Config, res *art2a.Result[T]) error {
	summary, err := report.Summarize(res, cfg.Angles)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err = writeFile(cmd, cfg.Output, func(w io.Writer) error { return report.WriteYAML(w, summary) }); err != nil {
			return err
		}
	}
	if cfg.Output != "-" {
		renderSummary(cmd.OutOrStdout(), summary)
	}

	if cfg.Assignments != "" {
		err = writeFile(cmd, cfg.Assignments, func(w io.Writer) error {
			return dataio.WriteOccupationCSV(w, res.Occupation())
		})
		if err != nil {
			return err
		}
	}

	if cfg.Diagnostics != "" {
		err = writeFile(cmd, cfg.Diagnostics+"_process.txt", func(process io.Writer) error {
			return writeFile(cmd, cfg.Diagnostics+"_summary.txt", func(summary io.Writer) error {
				return report.WriteDiagnostics(process, summary, res)
			})
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// writeFile creates path, hands it to fn and closes it, keeping the first error.
func writeFile(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	f, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(f)
}
