package config_test

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/internal/config"
	"github.com/aretw0/autocore/internal/testutils"
	"github.com/aretw0/autocore/pkg/safety"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := testutils.WriteFile(t, "autocore.yaml", `
tick_interval: 250ms
ticks: 12
auto_emergency_stop: true
limits:
  max_speed: 90
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, uint64(12), cfg.Ticks)
	assert.True(t, cfg.AutoEmergencyStop)
	assert.Equal(t, 90, cfg.Limits.MaxSpeed)
	assert.Equal(t, safety.DefaultLimits().MaxRPM, cfg.Limits.MaxRPM, "unset limits keep their defaults")

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_JSON(t *testing.T) {
	path := testutils.WriteFile(t, "autocore.json", `{
		"tick_interval": "1s",
		"safety_every": 2,
		"limits": {"max_temperature": 100.5, "min_fuel": 10}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, uint64(2), cfg.SafetyEvery)
	assert.InDelta(t, 100.5, cfg.Limits.MaxTemperature, 1e-9)
	assert.Equal(t, 10, cfg.Limits.MinFuel)
}

func TestLoad_RejectsDurationsWithoutUnit(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"yaml", "autocore.yaml", "tick_interval: 500\n"},
		{"json", "autocore.json", `{"tick_interval": 500}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutils.WriteFile(t, tt.file, tt.content)

			_, err := config.Load(path)
			require.Error(t, err)
			assert.ErrorContains(t, err, "tick_interval")
			assert.ErrorContains(t, err, `use a string such as "500ms"`)
		})
	}
}

func TestDecode_DurationNeedsUnit(t *testing.T) {
	cfg := config.Default()
	err := config.Decode(map[string]any{"tick_interval": 500}, &cfg)
	require.Error(t, err)
	assert.Equal(t, config.Default().TickInterval, cfg.TickInterval)

	require.NoError(t, config.Decode(map[string]any{"tick_interval": "500ms"}, &cfg))
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := testutils.WriteFile(t, "autocore.yaml", "tick_rate: 100ms\n")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "tick_rate")
}

func TestLoad_RejectsMalformedFiles(t *testing.T) {
	path := testutils.WriteFile(t, "autocore.yaml", "limits: [\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero interval", func(c *config.Config) { c.TickInterval = 0 }, "tick_interval"},
		{"zero cadence", func(c *config.Config) { c.SafetyEvery = 0 }, "safety_every"},
		{"negative speed", func(c *config.Config) { c.Limits.MaxSpeed = -1 }, "max_speed"},
		{"fuel above 100", func(c *config.Config) { c.Limits.MinFuel = 101 }, "min_fuel"},
		{"brake pressure", func(c *config.Config) { c.Limits.MaxBrakePressure = 120 }, "max_brake_pressure"},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *config.Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}

func TestRuntime(t *testing.T) {
	cfg := config.Default()
	cfg.VerboseTiming = true
	cfg.AutoEmergencyStop = true

	rc := cfg.Runtime()
	assert.Equal(t, cfg.TickInterval, rc.Scheduler.TickInterval)
	assert.True(t, rc.Scheduler.VerboseTiming)
	assert.True(t, rc.AutoEmergencyStop)
	assert.Equal(t, cfg.Limits, rc.Limits)
}
