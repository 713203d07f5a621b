package safety

import (
	"fmt"
)

// Rule identifies which check produced a Finding.
type Rule int

const (
	SpeedExceeded Rule = iota + 1
	Overheating
	HighRPM
	LowFuel
	BrakePressureTooHigh
	EngineStateInvalid
)

func (r Rule) String() string {
	switch r {
	case SpeedExceeded:
		return "speed_exceeded"
	case Overheating:
		return "overheating"
	case HighRPM:
		return "high_rpm"
	case LowFuel:
		return "low_fuel"
	case BrakePressureTooHigh:
		return "brake_pressure_too_high"
	case EngineStateInvalid:
		return "engine_state_invalid"
	default:
		return "unknown"
	}
}

// Limits are the thresholds a Monitor enforces.
type Limits struct {
	MaxSpeed         int     `yaml:"max_speed" mapstructure:"max_speed"`
	MaxTemperature   float64 `yaml:"max_temperature" mapstructure:"max_temperature"`
	MaxRPM           int     `yaml:"max_rpm" mapstructure:"max_rpm"`
	MinFuel          int     `yaml:"min_fuel" mapstructure:"min_fuel"`
	MaxBrakePressure int     `yaml:"max_brake_pressure" mapstructure:"max_brake_pressure"`
}

// DefaultLimits returns the standard limits: 120 km/h, 95 °C, 6000 rpm,
// 15 % fuel and 80 % brake pressure.
func DefaultLimits() Limits {
	return Limits{
		MaxSpeed:         120,
		MaxTemperature:   95.0,
		MaxRPM:           6000,
		MinFuel:          15,
		MaxBrakePressure: 80,
	}
}

// Readings is a point-in-time snapshot of the values being monitored.
type Readings struct {
	Speed         int     // km/h
	Temperature   float64 // °C
	RPM           int
	Fuel          int // percent
	BrakePressure int // percent
	EngineRunning bool
}

// Finding is a single rule violation with the measured and threshold values.
type Finding struct {
	Rule    Rule
	Current float64
	Limit   float64
}

// Severity derives the grade from the rule's bands.
func (f Finding) Severity() Severity {
	switch f.Rule {
	case SpeedExceeded:
		if f.Current > f.Limit+20 {
			return Critical
		}
		return Warning
	case Overheating:
		switch {
		case f.Current > f.Limit+10:
			return Emergency
		case f.Current > f.Limit:
			return Critical
		default:
			return Warning
		}
	case HighRPM:
		if f.Current > f.Limit+1000 {
			return Critical
		}
		return Warning
	case LowFuel:
		return Warning
	case BrakePressureTooHigh:
		return Info
	case EngineStateInvalid:
		return Emergency
	default:
		return Warning
	}
}

func (f Finding) String() string {
	switch f.Rule {
	case SpeedExceeded:
		return fmt.Sprintf("SPEED EXCEEDED: %.0f km/h (max: %.0f km/h)", f.Current, f.Limit)
	case Overheating:
		return fmt.Sprintf("ENGINE OVERHEATING: %.1f°C (max: %.1f°C)", f.Current, f.Limit)
	case HighRPM:
		return fmt.Sprintf("HIGH RPM: %.0f (max: %.0f)", f.Current, f.Limit)
	case LowFuel:
		return fmt.Sprintf("LOW FUEL: %.0f%%", f.Current)
	case BrakePressureTooHigh:
		return fmt.Sprintf("BRAKE PRESSURE TOO HIGH: %.0f%%", f.Current)
	case EngineStateInvalid:
		return "ENGINE STATE INVALID: engine off but car moving"
	default:
		return fmt.Sprintf("%s: %v (limit %v)", f.Rule, f.Current, f.Limit)
	}
}

// Monitor evaluates Readings against immutable Limits.
type Monitor struct {
	limits Limits
}

// NewMonitor creates a monitor with the given limits.
func NewMonitor(limits Limits) *Monitor {
	return &Monitor{limits: limits}
}

// Limits returns the configured thresholds.
func (m *Monitor) Limits() Limits {
	return m.limits
}

// Check evaluates every rule independently and returns all that fire,
// in rule order. It returns nil when the readings are within limits.
func (m *Monitor) Check(r Readings) []Finding {
	var out []Finding
	l := m.limits

	if r.Speed > l.MaxSpeed {
		out = append(out, Finding{Rule: SpeedExceeded, Current: float64(r.Speed), Limit: float64(l.MaxSpeed)})
	}
	if r.Temperature > l.MaxTemperature {
		out = append(out, Finding{Rule: Overheating, Current: r.Temperature, Limit: l.MaxTemperature})
	}
	if r.RPM > l.MaxRPM {
		out = append(out, Finding{Rule: HighRPM, Current: float64(r.RPM), Limit: float64(l.MaxRPM)})
	}
	if r.Fuel < l.MinFuel {
		out = append(out, Finding{Rule: LowFuel, Current: float64(r.Fuel), Limit: float64(l.MinFuel)})
	}
	if r.BrakePressure > l.MaxBrakePressure {
		out = append(out, Finding{Rule: BrakePressureTooHigh, Current: float64(r.BrakePressure), Limit: float64(l.MaxBrakePressure)})
	}
	// Cross-field consistency: a stopped engine cannot move the car.
	if r.Speed > 0 && !r.EngineRunning {
		out = append(out, Finding{Rule: EngineStateInvalid, Current: float64(r.Speed)})
	}
	return out
}

// IsSafe reports false iff any finding is Critical or worse.
func IsSafe(findings []Finding) bool {
	return Highest(findings) < Critical
}

// Highest returns the most severe grade in findings, or Info when empty.
func Highest(findings []Finding) Severity {
	highest := Info
	for _, f := range findings {
		if s := f.Severity(); s > highest {
			highest = s
		}
	}
	return highest
}
