package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/internal/components"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/safety"
)

func TestScenario_SpeedProfile(t *testing.T) {
	sc := newScenario()
	brakes := components.NewBrakes()
	steering := components.NewSteering()

	speeds := make([]int, 0, 80)
	for tick := uint64(0); tick < 80; tick++ {
		v, err := sc.step(tick, brakes, steering)
		require.NoError(t, err)
		speeds = append(speeds, v)
	}

	assert.Equal(t, 5, speeds[0])
	assert.Equal(t, 125, speeds[24])
	assert.Equal(t, 130, speeds[25])
	assert.Equal(t, 130, speeds[49], "holds the top speed until the next reversal tick")
	assert.Equal(t, 125, speeds[50])
	assert.Equal(t, 0, speeds[75])
	assert.Equal(t, 0, speeds[79], "holds zero until tick 100")
}

func TestScenario_Inputs(t *testing.T) {
	sc := newScenario()
	brakes := components.NewBrakes()
	steering := components.NewSteering()

	for tick := uint64(0); tick <= 15; tick++ {
		_, err := sc.step(tick, brakes, steering)
		require.NoError(t, err)
	}
	assert.Equal(t, 30, steering.Angle())
	assert.False(t, brakes.IsApplied(), "no brake pulse on tick 0")

	for tick := uint64(16); tick <= 30; tick++ {
		_, err := sc.step(tick, brakes, steering)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, steering.Angle(), "centered on tick 20")
	assert.True(t, brakes.IsApplied())
	assert.Equal(t, 50, brakes.Pressure())
}

var errSensor = errors.New("sensor offline")

// faultyPart is a component whose every update fails.
type faultyPart struct{}

func (faultyPart) ID() domain.ComponentID { return domain.System }
func (faultyPart) Name() string           { return "Sensor" }
func (faultyPart) Initialize() error      { return nil }
func (faultyPart) Update() error          { return errSensor }
func (faultyPart) State() domain.ComponentState {
	return domain.ComponentState{Status: domain.StatusOnline}
}
func (faultyPart) OutgoingEvents() []domain.Event { return nil }

func TestTickOnce_ComponentFaultStillRunsSafetyCheck(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.SafetyEvery = 1
	cfg.Limits.MaxSpeed = 1

	s := New(cfg)
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Start(ctx))
	s.drivers = append(s.drivers, faultyPart{})

	err := s.tickOnce(ctx, 0)
	require.ErrorIs(t, err, errSensor)

	findings := s.Snapshot().Findings
	require.Len(t, findings, 1)
	assert.Equal(t, safety.SpeedExceeded, findings[0].Rule)
	assert.Contains(t, s.Dashboard().Warnings(), "Sensor fault: sensor offline")
}
