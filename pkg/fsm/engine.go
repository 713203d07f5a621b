package fsm

import "fmt"

// EngineState is the lifecycle state of the engine.
type EngineState int

const (
	EngineOff EngineState = iota
	EngineStarting
	EngineRunning
	EngineStopping
)

// EngineTransitions is the legal edge set of the engine lifecycle.
// Self-loops and skipped states are illegal.
var EngineTransitions = Table[EngineState]{
	EngineOff:      {EngineStarting},
	EngineStarting: {EngineRunning, EngineOff},
	EngineRunning:  {EngineStopping},
	EngineStopping: {EngineOff},
}

// NewEngineMachine returns an engine machine positioned at EngineOff.
func NewEngineMachine(opts ...Option[EngineState]) *Machine[EngineState] {
	return New(EngineOff, EngineTransitions, opts...)
}

// EngineStates lists every engine state in declaration order.
func EngineStates() []EngineState {
	return []EngineState{EngineOff, EngineStarting, EngineRunning, EngineStopping}
}

func (s EngineState) String() string {
	switch s {
	case EngineOff:
		return "OFF"
	case EngineStarting:
		return "STARTING"
	case EngineRunning:
		return "RUNNING"
	case EngineStopping:
		return "STOPPING"
	default:
		return fmt.Sprintf("EngineState(%d)", int(s))
	}
}
