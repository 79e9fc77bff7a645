package roadmark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/roadmark/marking"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, marking.KindSolid, cfg.Kind)
	assert.Equal(t, 0.15, cfg.Width)
	assert.Equal(t, 0.3, cfg.Spacing)
	assert.Equal(t, 100, cfg.Iterations)
	assert.Equal(t, 10, cfg.Consensus)
	assert.Equal(t, 0.1, cfg.DistanceThreshold)
	assert.Equal(t, uint64(10), cfg.Seed)
	assert.Equal(t, 10.0, cfg.Proximity)
	assert.False(t, cfg.Preview)
	assert.Equal(t, marking.White, cfg.Color)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero_width", func(c *Config) { c.Width = 0 }},
		{"negative_spacing", func(c *Config) { c.Spacing = -1 }},
		{"no_iterations", func(c *Config) { c.Iterations = 0 }},
		{"no_consensus", func(c *Config) { c.Consensus = 0 }},
		{"zero_threshold", func(c *Config) { c.DistanceThreshold = 0 }},
		{"zero_proximity", func(c *Config) { c.Proximity = 0 }},
		{"zero_crossing_width", func(c *Config) { c.CrossingWidth = 0 }},
		{"bad_color", func(c *Config) { c.Color.G = 1.5 }},
		{"bad_kind", func(c *Config) { c.Kind = marking.Kind(9) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mod(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigSpec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kind = marking.KindCrosswalk
	cfg.CrossingWidth = 7
	assert.Equal(t, marking.Crosswalk{Width: 0.15, Spacing: 0.3, CrossingWidth: 7}, cfg.Spec())

	cfg.Kind = marking.KindGuide
	cfg.ArrowLength = 3
	assert.Equal(t, marking.GuideLine{Width: 0.15, ArrowLength: 3}, cfg.Spec())

	cfg.Kind = marking.KindDashed
	assert.Equal(t, marking.DashedLine{Width: 0.15, Spacing: 0.3}, cfg.Spec())

	p := cfg.FitParams()
	assert.Equal(t, cfg.Iterations, p.MaxIterations)
	assert.Equal(t, cfg.Seed, p.Seed)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "marking.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"kind": "dashed", "spacing": 3, "color": {"r": 1, "g": 1, "b": 0}}`), 0o644))
	cfg, err := LoadConfig(good)
	require.NoError(t, err)
	assert.Equal(t, marking.KindDashed, cfg.Kind)
	assert.Equal(t, 3.0, cfg.Spacing)
	assert.Equal(t, 0.15, cfg.Width, "unset fields keep their defaults")
	assert.Equal(t, marking.Yellow, cfg.Color)

	_, err = LoadConfig(filepath.Join(dir, "marking.yaml"))
	assert.ErrorContains(t, err, ".json extension")

	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"kind": `), 0o644))
	_, err = LoadConfig(broken)
	assert.ErrorContains(t, err, "parse")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"width": -1}`), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	large := filepath.Join(dir, "large.json")
	require.NoError(t, os.WriteFile(large, []byte(strings.Repeat(" ", 2<<20)), 0o644))
	_, err = LoadConfig(large)
	assert.ErrorContains(t, err, "too large")
}
