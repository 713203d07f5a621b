package components

import (
	"fmt"
	"slices"

	"github.com/aretw0/autocore/pkg/domain"
)

const (
	// MaxDisplaySpeed caps the speedometer; faster inputs are clamped, not rejected.
	MaxDisplaySpeed = 200
	lowFuelLevel    = 20
	highSpeed       = 120

	WarningHighSpeed = "High speed - drive carefully"
)

// DashboardView is a render snapshot of the dashboard.
// RPM, temperature, pressure and angle are the last values seen on the bus.
type DashboardView struct {
	Speed           int
	Fuel            int
	Odometer        float64
	RPM             int
	Temperature     float64
	BrakePressure   int
	SteeringAngle   int
	Warnings        []string
	EventsProcessed int
}

// Dashboard aggregates readings from the bus and raises driver warnings.
type Dashboard struct {
	base
	speed    int
	fuel     int
	odometer float64
	warnings []string

	rpm           int
	temperature   float64
	brakePressure int
	angle         int
	processed     int
}

var _ Component = (*Dashboard)(nil)

func NewDashboard(opts ...Option) *Dashboard {
	s := newSettings(opts)
	return &Dashboard{
		base:        newBase(domain.Dashboard, s.logger),
		fuel:        100,
		temperature: ambientTemperature,
	}
}

func (d *Dashboard) Initialize() error {
	d.selfCheck("display", "sensors")
	return nil
}

// SetSpeed clamps kmh to [0, MaxDisplaySpeed].
func (d *Dashboard) SetSpeed(kmh int) {
	d.speed = min(max(kmh, 0), MaxDisplaySpeed)
}

// SetFuelLevel clamps level to [0, 100].
func (d *Dashboard) SetFuelLevel(level int) {
	d.fuel = min(max(level, 0), 100)
}

func (d *Dashboard) UpdateOdometer(km float64) {
	d.odometer += km
}

// AddWarning records w unless it is already shown. It reports whether w was
// new.
func (d *Dashboard) AddWarning(w string) bool {
	if slices.Contains(d.warnings, w) {
		return false
	}
	d.warnings = append(d.warnings, w)
	d.logger.Warn("dashboard warning", "warning", w)
	return true
}

func (d *Dashboard) ClearWarnings() {
	d.warnings = nil
}

func (d *Dashboard) Warnings() []string {
	return slices.Clone(d.warnings)
}

// ProcessEvents folds bus events into the displayed readings.
func (d *Dashboard) ProcessEvents(events []domain.Event) {
	for _, e := range events {
		d.processed++
		switch ev := e.(type) {
		case domain.EngineRPMChanged:
			d.rpm = ev.RPM
		case domain.EngineOverheating:
			d.temperature = ev.Temperature
		case domain.EngineStopped:
			d.rpm = 0
		case domain.BrakeApplied:
			d.brakePressure = ev.Pressure
		case domain.BrakePressureChanged:
			d.brakePressure = ev.Pressure
		case domain.BrakeReleased:
			// pressure keeps decaying; the next sample updates it
		case domain.SteeringTurned:
			d.angle = ev.Angle
		case domain.SteeringCentered:
			d.angle = 0
		case domain.ComponentFault:
			d.AddWarning(fmt.Sprintf("%s fault: %s", ev.Component, ev.Reason))
		}
	}
	if len(events) > 0 {
		d.logger.Debug("processed events", "count", len(events))
	}
}

// Update raises the low fuel and high speed warnings.
func (d *Dashboard) Update() error {
	if d.fuel < lowFuelLevel && d.fuel > 0 {
		if d.AddWarning(fmt.Sprintf("Low fuel (%d%%)", d.fuel)) {
			d.emit(domain.FuelWarning{Level: d.fuel})
		}
	}
	if d.speed > highSpeed {
		d.AddWarning(WarningHighSpeed)
	}
	d.emit(domain.SpeedUpdated{KMH: d.speed})
	return nil
}

func (d *Dashboard) Speed() int           { return d.speed }
func (d *Dashboard) FuelLevel() int       { return d.fuel }
func (d *Dashboard) Odometer() float64    { return d.odometer }
func (d *Dashboard) EventsProcessed() int { return d.processed }

func (d *Dashboard) View() DashboardView {
	return DashboardView{
		Speed:           d.speed,
		Fuel:            d.fuel,
		Odometer:        d.odometer,
		RPM:             d.rpm,
		Temperature:     d.temperature,
		BrakePressure:   d.brakePressure,
		SteeringAngle:   d.angle,
		Warnings:        d.Warnings(),
		EventsProcessed: d.processed,
	}
}
