// Package config holds the typed configuration of the art2a command. Values
// come from flags, ART2A_* environment variables and an optional YAML file,
// merged by viper.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/dataio"
	"github.com/katalvlaran/art2a/sweep"
)

// EnvPrefix prefixes every environment variable, e.g. ART2A_VIGILANCE.
const EnvPrefix = "ART2A"

// Keys shared by flags, environment and config file.
const (
	KeyInput               = "input"
	KeyFormat              = "format"
	KeyHeader              = "header"
	KeyPrecision           = "precision"
	KeyVigilance           = "vigilance"
	KeyVigilances          = "vigilances"
	KeyMaxEpochs           = "max-epochs"
	KeySimilarity          = "similarity"
	KeyLearning            = "learning"
	KeySeed                = "seed"
	KeyShuffle             = "shuffle"
	KeyDiagnostics         = "diagnostics"
	KeyOutput              = "output"
	KeyAssignments         = "assignments"
	KeyAngles              = "angles"
	KeyParallelism         = "parallelism"
	KeyFailOnNoConvergence = "fail-on-no-convergence"
	KeyLogLevel            = "log-level"
	KeyLogFormat           = "log-format"
	KeyOtelEndpoint        = "otel-endpoint"
)

var (
	// ErrBadVigilanceList indicates an unparsable --vigilances value.
	ErrBadVigilanceList = errors.New("config: bad vigilance list")
	// ErrBadLogFormat indicates a log format other than text or json.
	ErrBadLogFormat = errors.New("config: log format must be text or json")
)

// Config is the decoded command configuration.
type Config struct {
	Input               string  `mapstructure:"input"`
	Format              string  `mapstructure:"format"`
	Header              bool    `mapstructure:"header"`
	Precision           int     `mapstructure:"precision"`
	Vigilance           float64 `mapstructure:"vigilance"`
	Vigilances          string  `mapstructure:"vigilances"`
	MaxEpochs           int     `mapstructure:"max-epochs"`
	Similarity          float64 `mapstructure:"similarity"`
	Learning            float64 `mapstructure:"learning"`
	Seed                int64   `mapstructure:"seed"`
	Shuffle             string  `mapstructure:"shuffle"`
	Diagnostics         string  `mapstructure:"diagnostics"`
	Output              string  `mapstructure:"output"`
	Assignments         string  `mapstructure:"assignments"`
	Angles              bool    `mapstructure:"angles"`
	Parallelism         int     `mapstructure:"parallelism"`
	FailOnNoConvergence bool    `mapstructure:"fail-on-no-convergence"`
	LogLevel            string  `mapstructure:"log-level"`
	LogFormat           string  `mapstructure:"log-format"`
	OtelEndpoint        string  `mapstructure:"otel-endpoint"`
}

// SetDefaults registers every key with its default, which also makes the key
// visible to AutomaticEnv during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, "")
	v.SetDefault(KeyFormat, "")
	v.SetDefault(KeyHeader, false)
	v.SetDefault(KeyPrecision, 64)
	v.SetDefault(KeyVigilance, 0.5)
	v.SetDefault(KeyVigilances, "0.1:0.9:0.1")
	v.SetDefault(KeyMaxEpochs, art2a.DefaultMaximumEpochs)
	v.SetDefault(KeySimilarity, art2a.DefaultRequiredSimilarity)
	v.SetDefault(KeyLearning, art2a.DefaultLearningParameter)
	v.SetDefault(KeySeed, art2a.DefaultSeed)
	v.SetDefault(KeyShuffle, art2a.ShufflePairwiseSwaps.String())
	v.SetDefault(KeyDiagnostics, "")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyAssignments, "")
	v.SetDefault(KeyAngles, false)
	v.SetDefault(KeyParallelism, 0)
	v.SetDefault(KeyFailOnNoConvergence, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyOtelEndpoint, "")
}

// BindEnv enables ART2A_* environment variables; dashes become underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and checks the fields that are not checked by
// art2a.Options.Validate.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := dataio.ValidatePrecision(c.Precision); err != nil {
		return Config{}, err
	}
	if _, err := c.InputFormat(); err != nil {
		return Config{}, err
	}
	if _, err := art2a.ParseShuffleMode(c.Shuffle); err != nil {
		return Config{}, err
	}

	return c, nil
}

// InputFormat returns the configured format, or the one implied by the input
// file extension when none is configured.
func (c Config) InputFormat() (dataio.Format, error) {
	if c.Format == "" {
		return dataio.FormatFromPath(c.Input), nil
	}

	return dataio.ParseFormat(c.Format)
}

// Options converts the configuration into validated run parameters.
func (c Config) Options(logger *slog.Logger) (art2a.Options, error) {
	mode, err := art2a.ParseShuffleMode(c.Shuffle)
	if err != nil {
		return art2a.Options{}, err
	}
	o := art2a.Options{
		VigilanceParameter: c.Vigilance,
		MaximumEpochs:      c.MaxEpochs,
		RequiredSimilarity: c.Similarity,
		LearningParameter:  c.Learning,
		Seed:               c.Seed,
		Shuffle:            mode,
		ExportDiagnostics:  c.Diagnostics != "",
		Logger:             logger,
	}
	if err = o.Validate(); err != nil {
		return art2a.Options{}, err
	}

	return o, nil
}

// SweepOptions converts the configuration into sweep options. The base run
// parameters are validated with each vigilance by sweep.Run.
func (c Config) SweepOptions(logger *slog.Logger) (sweep.Options, error) {
	vs, err := ParseVigilanceList(c.Vigilances)
	if err != nil {
		return sweep.Options{}, err
	}
	mode, err := art2a.ParseShuffleMode(c.Shuffle)
	if err != nil {
		return sweep.Options{}, err
	}

	return sweep.Options{
		Vigilances: vs,
		Base: art2a.Options{
			MaximumEpochs:      c.MaxEpochs,
			RequiredSimilarity: c.Similarity,
			LearningParameter:  c.Learning,
			Seed:               c.Seed,
			Shuffle:            mode,
			Logger:             logger,
		},
		Parallelism:         c.Parallelism,
		FailOnNoConvergence: c.FailOnNoConvergence,
		Logger:              logger,
	}, nil
}

// ParseVigilanceList accepts a comma-separated list ("0.2,0.5,0.8") or an
// inclusive range "start:stop:step" ("0.1:0.9:0.1").
func ParseVigilanceList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadVigilanceList)
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: range must be start:stop:step, got %q", ErrBadVigilanceList, s)
		}
		var bounds [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadVigilanceList, p)
			}
			bounds[i] = f
		}
		start, stop, step := bounds[0], bounds[1], bounds[2]
		if !(step > 0) || stop < start {
			return nil, fmt.Errorf("%w: empty range %q", ErrBadVigilanceList, s)
		}
		n := int(math.Floor((stop-start)/step+1e-9)) + 1
		out := make([]float64, n)
		for i := range out {
			// rounded to 12 places so 0.1+0.2 reads as 0.3
			out[i] = math.Round((start+float64(i)*step)*1e12) / 1e12
		}
		return out, nil
	}

	var out []float64
	for _, p := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadVigilanceList, p)
		}
		out = append(out, f)
	}

	return out, nil
}

// Logger builds the process logger: a text or JSON slog handler on w at the
// configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadLogFormat, c.LogFormat)
	}
}
