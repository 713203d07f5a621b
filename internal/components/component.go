// Package components holds the simulated vehicle parts driven by the
// orchestrator. Their numeric behavior is deliberately simple; what matters is
// the Component contract they satisfy.
package components

import (
	"log/slog"

	"github.com/aretw0/autocore/internal/logging"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
)

// Component is the contract the orchestrator depends on.
type Component interface {
	ID() domain.ComponentID
	Name() string
	// Initialize runs the self checks and brings the component online.
	Initialize() error
	// Update advances the component by one tick.
	Update() error
	State() domain.ComponentState
	// OutgoingEvents drains the events produced since the last call.
	OutgoingEvents() []domain.Event
}

// Option configures a component.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	observer fsm.Observer[fsm.EngineState]
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEngineObserver reports every engine state transition attempt.
// Only the engine uses it.
func WithEngineObserver(o fsm.Observer[fsm.EngineState]) Option {
	return func(s *settings) {
		s.observer = o
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// base carries the identity, lifecycle state and outbox shared by every
// component.
type base struct {
	id     domain.ComponentID
	state  domain.ComponentState
	outbox []domain.Event
	logger *slog.Logger
}

func newBase(id domain.ComponentID, logger *slog.Logger) base {
	return base{
		id:     id,
		state:  domain.ComponentState{Status: domain.StatusOffline},
		logger: logger.With("component", id.String()),
	}
}

func (b *base) ID() domain.ComponentID             { return b.id }
func (b *base) Name() string                       { return b.id.String() }
func (b *base) State() domain.ComponentState       { return b.state }
func (b *base) setStatus(s domain.ComponentStatus) { b.state = domain.ComponentState{Status: s} }

func (b *base) emit(e domain.Event) {
	b.outbox = append(b.outbox, e)
}

func (b *base) OutgoingEvents() []domain.Event {
	if len(b.outbox) == 0 {
		return nil
	}
	out := b.outbox
	b.outbox = nil
	return out
}

// selfCheck walks the component through Initializing to Online, logging each
// named check.
func (b *base) selfCheck(checks ...string) {
	b.setStatus(domain.StatusInitializing)
	b.logger.Debug("initializing component")
	for _, c := range checks {
		b.logger.Debug("self check passed", "check", c)
	}
	b.setStatus(domain.StatusOnline)
	b.logger.Info("component online")
}
