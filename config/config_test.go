package config_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/art2a/art2a"
	"github.com/katalvlaran/art2a/config"
	"github.com/katalvlaran/art2a/dataio"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)

	return v
}

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, 64, c.Precision)
	assert.Equal(t, 0.5, c.Vigilance)
	assert.Equal(t, "warn", c.LogLevel)

	o, err := c.Options(nil)
	require.NoError(t, err)
	want := art2a.DefaultOptions(0.5)
	assert.Equal(t, want, o)
}

func TestLoad_YAMLFile(t *testing.T) {
	v := newViper()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
input: fingerprints.csv
precision: 32
vigilance: 0.35
max-epochs: 40
learning: 0.2
shuffle: fisher-yates
diagnostics: trace
`)))

	c, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 32, c.Precision)

	format, err := c.InputFormat()
	require.NoError(t, err)
	assert.Equal(t, dataio.FormatCSV, format)

	o, err := c.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.35, o.VigilanceParameter)
	assert.Equal(t, 40, o.MaximumEpochs)
	assert.Equal(t, 0.2, o.LearningParameter)
	assert.Equal(t, art2a.ShuffleFisherYates, o.Shuffle)
	assert.True(t, o.ExportDiagnostics)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ART2A_VIGILANCE", "0.8")
	t.Setenv("ART2A_MAX_EPOCHS", "3")

	c, err := config.Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, 0.8, c.Vigilance)
	assert.Equal(t, 3, c.MaxEpochs)
}

func TestLoad_Rejects(t *testing.T) {
	for key, val := range map[string]any{
		config.KeyPrecision: 16,
		config.KeyFormat:    "xlsx",
		config.KeyShuffle:   "riffle",
	} {
		v := newViper()
		v.Set(key, val)
		_, err := config.Load(v)
		assert.Error(t, err, key)
	}
}

func TestOptions_InvalidVigilance(t *testing.T) {
	v := newViper()
	v.Set(config.KeyVigilance, 1.0)
	c, err := config.Load(v)
	require.NoError(t, err)

	_, err = c.Options(nil)
	assert.ErrorIs(t, err, art2a.ErrBadVigilance)
}

func TestSweepOptions(t *testing.T) {
	v := newViper()
	v.Set(config.KeyVigilances, "0.2, 0.4,0.6")
	v.Set(config.KeyParallelism, 3)
	v.Set(config.KeyFailOnNoConvergence, true)
	c, err := config.Load(v)
	require.NoError(t, err)

	o, err := c.SweepOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.4, 0.6}, o.Vigilances)
	assert.Equal(t, 3, o.Parallelism)
	assert.True(t, o.FailOnNoConvergence)
	assert.Equal(t, art2a.DefaultMaximumEpochs, o.Base.MaximumEpochs)
}

func TestParseVigilanceList(t *testing.T) {
	t.Parallel()

	got, err := config.ParseVigilanceList("0.1:0.9:0.1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}, got)

	got, err = config.ParseVigilanceList("0.25:0.5:0.25")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5}, got)

	got, err = config.ParseVigilanceList("0.7")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.7}, got)

	for _, bad := range []string{"", "a,b", "0.1:0.9", "0.5:0.1:0.1", "0.1:0.5:0", "0.1:x:0.1"} {
		_, err = config.ParseVigilanceList(bad)
		assert.ErrorIs(t, err, config.ErrBadVigilanceList, bad)
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := config.Config{LogLevel: "info", LogFormat: "json"}.Logger(&buf)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = config.Config{LogLevel: "loud"}.Logger(&buf)
	assert.Error(t, err)
	_, err = config.Config{LogLevel: "info", LogFormat: "xml"}.Logger(&buf)
	assert.ErrorIs(t, err, config.ErrBadLogFormat)
}
