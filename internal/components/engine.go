package components

import (
	"fmt"

	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
)

const (
	ambientTemperature = 20.0
	operatingTemp      = 90.0
	warmupStep         = 0.05
	crankingRPM        = 500
	idleRPM            = 800
)

// OverheatWarning is the temperature at which the engine starts publishing
// EngineOverheating.
const OverheatWarning = operatingTemp

// Engine models ignition, idle RPM jitter and warm-up.
// Its lifecycle is enforced by an fsm.Machine.
type Engine struct {
	base
	machine     *fsm.Machine[fsm.EngineState]
	rpm         int
	temperature float64
	cycle       uint32
}

var _ Component = (*Engine)(nil)

// NewEngine returns a cold engine in the OFF state.
func NewEngine(opts ...Option) *Engine {
	s := newSettings(opts)
	var mopts []fsm.Option[fsm.EngineState]
	if s.observer != nil {
		mopts = append(mopts, fsm.WithObserver(s.observer))
	}
	return &Engine{
		base:        newBase(domain.Engine, s.logger),
		machine:     fsm.NewEngineMachine(mopts...),
		temperature: ambientTemperature,
	}
}

func (e *Engine) Initialize() error {
	e.selfCheck("oil level", "fuel pressure", "ignition system")
	return nil
}

// Start runs the ignition sequence OFF → STARTING → RUNNING.
// Starting an engine that is not OFF returns the machine's *fsm.TransitionError.
func (e *Engine) Start() error {
	if err := e.machine.Transition(fsm.EngineStarting); err != nil {
		return fmt.Errorf("engine start: %w", err)
	}
	e.setStatus(domain.StatusInitializing)
	e.rpm = crankingRPM

	if err := e.machine.Transition(fsm.EngineRunning); err != nil {
		e.state = domain.Faulted(err.Error())
		return fmt.Errorf("engine start: %w", err)
	}
	e.setStatus(domain.StatusOnline)
	e.rpm = idleRPM

	e.logger.Info("engine started", "rpm", e.rpm)
	e.emit(domain.EngineStarted{})
	return nil
}

// Stop runs RUNNING → STOPPING → OFF.
// Stopping an engine that is not running fails with both domain.ErrNotRunning
// and the state machine's transition error.
func (e *Engine) Stop() error {
	if err := e.machine.Transition(fsm.EngineStopping); err != nil {
		if !e.IsRunning() {
			return fmt.Errorf("engine stop: %w: %w", domain.ErrNotRunning, err)
		}
		return fmt.Errorf("engine stop: %w", err)
	}
	e.rpm = 0
	if err := e.machine.Transition(fsm.EngineOff); err != nil {
		e.state = domain.Faulted(err.Error())
		return fmt.Errorf("engine stop: %w", err)
	}
	e.setStatus(domain.StatusOffline)

	e.logger.Info("engine stopped")
	e.emit(domain.EngineStopped{})
	return nil
}

// Update jitters the idle RPM and warms the engine while it runs.
func (e *Engine) Update() error {
	if !e.IsRunning() {
		return nil
	}
	e.cycle++
	e.rpm = idleRPM + int((e.cycle*17)%50)
	if e.temperature < operatingTemp {
		e.temperature += warmupStep
	}

	e.emit(domain.EngineRPMChanged{RPM: e.rpm})
	if e.temperature >= OverheatWarning {
		e.emit(domain.EngineOverheating{Temperature: e.temperature})
	}
	return nil
}

func (e *Engine) RPM() int                     { return e.rpm }
func (e *Engine) Temperature() float64         { return e.temperature }
func (e *Engine) IsRunning() bool              { return e.machine.Current() == fsm.EngineRunning }
func (e *Engine) EngineState() fsm.EngineState { return e.machine.Current() }
