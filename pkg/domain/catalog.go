package domain

import "fmt"

// EventType is the stable discriminator of an Event variant.
type EventType string

const (
	TypeEngineStarted        EventType = "engine_started"
	TypeEngineStopped        EventType = "engine_stopped"
	TypeEngineOverheating    EventType = "engine_overheating"
	TypeEngineRPMChanged     EventType = "engine_rpm_changed"
	TypeBrakeApplied         EventType = "brake_applied"
	TypeBrakeReleased        EventType = "brake_released"
	TypeBrakePressureChanged EventType = "brake_pressure_changed"
	TypeSteeringTurned       EventType = "steering_turned"
	TypeSteeringCentered     EventType = "steering_centered"
	TypeSpeedUpdated         EventType = "speed_updated"
	TypeFuelWarning          EventType = "fuel_warning"
	TypeComponentFault       EventType = "component_fault"
)

// Event is a notification published by a component.
// The set of variants is closed: only types in this package implement it.
// Every variant is a comparable value, so two events are equal iff ==.
type Event interface {
	Type() EventType
	String() string
	event()
}

type EngineStarted struct{}

type EngineStopped struct{}

type EngineOverheating struct {
	Temperature float64
}

type EngineRPMChanged struct {
	RPM int
}

type BrakeApplied struct {
	Pressure int
}

type BrakeReleased struct{}

type BrakePressureChanged struct {
	Pressure int
}

// SteeringTurned reports the wheel angle; negative is left.
type SteeringTurned struct {
	Angle int
}

type SteeringCentered struct{}

type SpeedUpdated struct {
	KMH int
}

type FuelWarning struct {
	Level int
}

// ComponentFault reports a failure inside a component's update step.
type ComponentFault struct {
	Component string
	Reason    string
}

func (EngineStarted) Type() EventType        { return TypeEngineStarted }
func (EngineStopped) Type() EventType        { return TypeEngineStopped }
func (EngineOverheating) Type() EventType    { return TypeEngineOverheating }
func (EngineRPMChanged) Type() EventType     { return TypeEngineRPMChanged }
func (BrakeApplied) Type() EventType         { return TypeBrakeApplied }
func (BrakeReleased) Type() EventType        { return TypeBrakeReleased }
func (BrakePressureChanged) Type() EventType { return TypeBrakePressureChanged }
func (SteeringTurned) Type() EventType       { return TypeSteeringTurned }
func (SteeringCentered) Type() EventType     { return TypeSteeringCentered }
func (SpeedUpdated) Type() EventType         { return TypeSpeedUpdated }
func (FuelWarning) Type() EventType          { return TypeFuelWarning }
func (ComponentFault) Type() EventType       { return TypeComponentFault }

func (EngineStarted) String() string { return "Engine started" }
func (EngineStopped) String() string { return "Engine stopped" }
func (e EngineOverheating) String() string {
	return fmt.Sprintf("ENGINE OVERHEATING: %.1f°C", e.Temperature)
}
func (e EngineRPMChanged) String() string { return fmt.Sprintf("Engine RPM: %d", e.RPM) }
func (e BrakeApplied) String() string     { return fmt.Sprintf("Brakes applied: %d%%", e.Pressure) }
func (BrakeReleased) String() string      { return "Brakes released" }
func (e BrakePressureChanged) String() string {
	return fmt.Sprintf("Brake pressure: %d%%", e.Pressure)
}
func (e SteeringTurned) String() string { return fmt.Sprintf("Steering turned: %d°", e.Angle) }
func (SteeringCentered) String() string { return "Steering centered" }
func (e SpeedUpdated) String() string   { return fmt.Sprintf("Speed: %d km/h", e.KMH) }
func (e FuelWarning) String() string    { return fmt.Sprintf("LOW FUEL: %d%%", e.Level) }
func (e ComponentFault) String() string {
	return fmt.Sprintf("ERROR in %s: %s", e.Component, e.Reason)
}

func (EngineStarted) event()        {}
func (EngineStopped) event()        {}
func (EngineOverheating) event()    {}
func (EngineRPMChanged) event()     {}
func (BrakeApplied) event()         {}
func (BrakeReleased) event()        {}
func (BrakePressureChanged) event() {}
func (SteeringTurned) event()       {}
func (SteeringCentered) event()     {}
func (SpeedUpdated) event()         {}
func (FuelWarning) event()          {}
func (ComponentFault) event()       {}
