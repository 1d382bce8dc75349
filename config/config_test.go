package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	gm "chess-influence/goosemg"
	"chess-influence/influence"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxDepth)
	require.Equal(t, "computed_game", cfg.OutputDir)
	w, err := cfg.DepthWeights()
	require.NoError(t, err)
	require.Equal(t, 0.65, w.Weight(2))
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
max_depth: 4
weights:
  - {depth: 1, weight: 1.0}
  - {depth: 2, weight: 0.5}
  - {depth: 3, weight: 0.25}
  - {depth: 4, weight: 0.125}
output_dir: frames
workers: 8
capture_blocking: true
log_level: debug
`))
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxDepth)
	require.Equal(t, "frames", cfg.OutputDir)
	require.Equal(t, 8, cfg.Workers)
	require.True(t, cfg.CaptureBlocking)
	require.Equal(t, zerolog.DebugLevel, cfg.Level())
	require.Equal(t, 80, cfg.CellSize, "unset keys keep their defaults")

	calc, err := cfg.Calculator()
	require.NoError(t, err)
	require.Equal(t, 0.125, calc.Weights().Weight(4))

	var buf bytes.Buffer
	calc, err = cfg.Calculator(influence.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)
	_, err = calc.ComputeBoard(gm.NewBoard(), 1)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "influence computed")
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		yaml string
		is   error
	}{
		"zero depth":      {yaml: "max_depth: 0", is: influence.ErrInvalidDepth},
		"negative depth":  {yaml: "max_depth: -2", is: influence.ErrInvalidDepth},
		"depth too deep":  {yaml: "max_depth: 5", is: influence.ErrDepthBeyondWeights},
		"gap in weights":  {yaml: "weights: [{depth: 1, weight: 1}, {depth: 3, weight: 0.5}]", is: influence.ErrInvalidWeights},
		"negative weight": {yaml: "weights: [{depth: 1, weight: -1}]", is: influence.ErrInvalidWeights},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.ErrorIs(t, err, tc.is)
		})
	}

	_, err := Parse([]byte("log_level: shouty"))
	require.Error(t, err)
	_, err = Parse([]byte("workers: -1"))
	require.Error(t, err)
	_, err = Parse([]byte("max_depth: [nope"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "influence.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 2\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.MaxDepth)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
