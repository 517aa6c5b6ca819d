package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/config"
	"github.com/katalvlaran/art2a/report"
	"github.com/katalvlaran/art2a/sweep"
	"github.com/katalvlaran/art2a/vecmath"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Cluster an input matrix with several vigilance parameters in parallel",
		Example: `  art2a sweep -i fingerprints.csv --vigilances 0.1:0.9:0.1
  art2a sweep -i fp.tsv --vigilances 0.2,0.5,0.8 --parallelism 4 -o sweep.yaml`,
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
				return runSweep[float32](cmd, cfg, logger)
			}
			return runSweep[float64](cmd, cfg, logger)
		},
	}

	fs := cmd.Flags()
	addRunFlags(fs)
	fs.String(config.KeyVigilances, "0.1:0.9:0.1", "vigilance list a,b,c or inclusive range start:stop:step")
	fs.Int(config.KeyParallelism, 0, "maximum concurrent runs (default GOMAXPROCS)")
	fs.StringP(config.KeyOutput, "o", "", "write the YAML sweep report to this file, - for stdout")

	return cmd
}

func runSweep[T vecmath.Float](cmd *cobra.Command, cfg config.Config, logger *slog.Logger) error {
	opts, err := cfg.SweepOptions(logger)
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

	// validated here once; sweep.Run only swaps the vigilance
	base := opts.Base
	base.VigilanceParameter = opts.Vigilances[0]
	task, err := art2a.New(rows, base)
	if err != nil {
		return err
	}

	outs, runErr := sweep.Run(ctx, task, opts)
	table := report.SummarizeSweep(outs)
	if cfg.Output != "" {
		if err = writeFile(cmd, cfg.Output, func(w io.Writer) error { return report.WriteYAML(w, table) }); err != nil {
			return err
		}
	}
	if cfg.Output != "-" && len(table) > 0 {
		renderSweep(cmd.OutOrStdout(), table)
	}

	return runErr
}
