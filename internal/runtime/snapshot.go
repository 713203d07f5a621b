package runtime

import (
	"github.com/aretw0/autocore/internal/components"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
	"github.com/aretw0/autocore/pkg/safety"
)

// ComponentStatus pairs a component with its lifecycle state.
type ComponentStatus struct {
	ID    domain.ComponentID
	State domain.ComponentState
}

// Snapshot is a read-only view of the system for presentation.
type Snapshot struct {
	Tick        uint64
	EngineState fsm.EngineState
	Readings    safety.Readings
	Dashboard   components.DashboardView
	Direction   string
	// Findings are the results of the most recent safety check.
	Findings   []safety.Finding
	Components []ComponentStatus
	Emergency  bool
}

// Snapshot captures the current state.
func (s *System) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		EngineState: s.engine.EngineState(),
		Readings:    s.Readings(),
		Dashboard:   s.dashboard.View(),
		Direction:   s.steering.Direction(),
		Findings:    append([]safety.Finding(nil), s.findings...),
		Emergency:   s.emergency,
	}
	for _, c := range s.Components() {
		snap.Components = append(snap.Components, ComponentStatus{ID: c.ID(), State: c.State()})
	}
	return snap
}
