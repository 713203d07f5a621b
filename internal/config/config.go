// Package config loads the autocore run configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/autocore/internal/logging"
	"github.com/aretw0/autocore/internal/runtime"
	"github.com/aretw0/autocore/pkg/safety"
	"github.com/aretw0/autocore/pkg/scheduler"
)

// DefaultPath is looked up in the working directory when no --config is given.
const DefaultPath = "autocore.yaml"

// Config is the file-level configuration. Keys are snake_case in both formats.
type Config struct {
	TickInterval      time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`
	Ticks             uint64        `yaml:"ticks" mapstructure:"ticks"`
	VerboseTiming     bool          `yaml:"verbose_timing" mapstructure:"verbose_timing"`
	SafetyEvery       uint64        `yaml:"safety_every" mapstructure:"safety_every"`
	AutoEmergencyStop bool          `yaml:"auto_emergency_stop" mapstructure:"auto_emergency_stop"`
	Limits            safety.Limits `yaml:"limits" mapstructure:"limits"`
	Log               Log           `yaml:"log" mapstructure:"log"`
}

// Log selects the logger level and handler.
type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickInterval: scheduler.DefaultTickInterval,
		Ticks:        60,
		SafetyEvery:  runtime.DefaultSafetyEvery,
		Limits:       safety.DefaultLimits(),
		Log: Log{
			Level:  "info",
			Format: string(logging.FormatText),
		},
	}
}

// Load reads path on top of Default. A missing file is not an error: the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges raw into cfg. Durations must be strings with a unit such as
// "250ms"; bare numbers are rejected. Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			durationNeedsUnitHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

var durationType = reflect.TypeOf(time.Duration(0))

// durationNeedsUnitHookFunc refuses to turn a number into a time.Duration,
// which would otherwise be read as nanoseconds.
func durationNeedsUnitHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != durationType || from == durationType || from.Kind() == reflect.String {
			return data, nil
		}
		return nil, fmt.Errorf("duration %v has no unit (use a string such as \"%vms\")", data, data)
	}
}

// Validate rejects settings the runtime cannot honor.
func (c Config) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.SafetyEvery == 0 {
		errs = append(errs, errors.New("safety_every must be at least 1"))
	}

	l := c.Limits
	if l.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_speed must be positive, got %d", l.MaxSpeed))
	}
	if l.MaxTemperature <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_temperature must be positive, got %.1f", l.MaxTemperature))
	}
	if l.MaxRPM <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_rpm must be positive, got %d", l.MaxRPM))
	}
	if l.MinFuel < 0 || l.MinFuel > 100 {
		errs = append(errs, fmt.Errorf("limits.min_fuel must be within [0, 100], got %d", l.MinFuel))
	}
	if l.MaxBrakePressure < 0 || l.MaxBrakePressure > 100 {
		errs = append(errs, fmt.Errorf("limits.max_brake_pressure must be within [0, 100], got %d", l.MaxBrakePressure))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Runtime converts the file configuration into orchestrator settings.
func (c Config) Runtime() runtime.Config {
	return runtime.Config{
		Scheduler: scheduler.Config{
			TickInterval:  c.TickInterval,
			VerboseTiming: c.VerboseTiming,
		},
		Limits:            c.Limits,
		SafetyEvery:       c.SafetyEvery,
		AutoEmergencyStop: c.AutoEmergencyStop,
	}
}
