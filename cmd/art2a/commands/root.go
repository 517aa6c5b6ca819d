// Package commands implements the art2a command line: cluster, sweep and
// version.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/art2a/config"
	"github.com/katalvlaran/art2a/telemetry"
)

// Version is overridden at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// app carries the per-invocation state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	root := &cobra.Command{
		Use:   "art2a",
		Short: "ART-2A clustering of non-negative vectors",
		Long: `art2a clusters the rows of a numeric matrix with the ART-2A algorithm.

Input is read from CSV, TSV or whitespace-separated text. Settings come from
flags, ART2A_* environment variables and an optional YAML config file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.art2a.yaml)")
	pf.String(config.KeyLogLevel, "warn", "log level: debug, info, warn, error")
	pf.String(config.KeyLogFormat, "text", "log format: text or json")
	pf.String(config.KeyOtelEndpoint, "", "OTLP/HTTP endpoint for traces (default $"+telemetry.EndpointEnv+")")

	root.AddCommand(newClusterCmd(a), newSweepCmd(a), newVersionCmd())

	return root
}

// initConfig binds the flags of the running command and reads the config file.
// A missing default config file is not an error; a missing explicit one is.
func (a *app) initConfig(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	a.v.SetConfigFile(filepath.Join(home, ".art2a.yaml"))
	a.v.SetConfigType("yaml")
	if err = a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// startTelemetry installs the tracer provider for one command run.
func startTelemetry(ctx context.Context, cfg config.Config) (telemetry.ShutdownFunc, error) {
	return telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "art2a",
		ServiceVersion: Version,
		Endpoint:       cfg.OtelEndpoint,
	})
}

// addRunFlags registers the run parameters shared by cluster and sweep.
func addRunFlags(fs *pflag.FlagSet) {
	fs.StringP(config.KeyInput, "i", "", "input matrix file, - for stdin")
	fs.String(config.KeyFormat, "", "input format: csv, tsv or whitespace (default from file extension)")
	fs.Bool(config.KeyHeader, false, "skip the first input line")
	fs.Int(config.KeyPrecision, 64, "floating-point precision: 32 or 64")
	fs.Int(config.KeyMaxEpochs, 10, "maximum number of epochs")
	fs.Float64(config.KeySimilarity, 0.99, "required similarity for convergence")
	fs.Float64(config.KeyLearning, 0.01, "learning parameter")
	fs.Int64(config.KeySeed, 1, "seed of the first epoch's presentation order")
	fs.String(config.KeyShuffle, "pairwise-swaps", "presentation order: pairwise-swaps or fisher-yates")
	fs.Bool(config.KeyFailOnNoConvergence, false, "exit with an error when the epoch budget is exhausted")
}

// openInput opens path for reading; "-" is stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("no input: set --input")
	}
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	return os.Open(path)
}

// createOutput opens path for writing; "-" is the command's stdout.
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}

	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "art2a", Version)
		},
	}
}
