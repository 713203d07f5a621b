package autocore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore"
	"github.com/aretw0/autocore/internal/testutils"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
	"github.com/aretw0/autocore/pkg/safety"
)

func TestCar_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clock := testutils.NewClock()

	var stops int
	frames := 0
	car := autocore.New(
		autocore.WithClock(clock),
		autocore.WithTickInterval(50*time.Millisecond),
		autocore.WithLifecycleHooks(domain.LifecycleHooks{
			OnStop: func(context.Context, *domain.StopEvent) { stops++ },
		}),
		autocore.WithFrameObserver(func(context.Context, autocore.Frame) { frames++ }),
	)

	require.NoError(t, car.Initialize())
	require.NoError(t, car.Start(ctx))
	assert.Equal(t, fsm.EngineRunning, car.EngineState())

	report := car.Run(ctx, 10)
	assert.Equal(t, uint64(10), report.Ticks)
	assert.Equal(t, 450*time.Millisecond, report.Elapsed)
	assert.Equal(t, 1, stops)
	assert.Equal(t, 10, frames)
	assert.Equal(t, 50, car.Readings().Speed)

	require.NoError(t, car.Shutdown(ctx))
	assert.Equal(t, fsm.EngineOff, car.EngineState())
	assert.False(t, car.EmergencyStopped())
}

func TestCar_LimitsAndEmergencyStop(t *testing.T) {
	ctx := context.Background()
	limits := safety.DefaultLimits()
	limits.MaxSpeed = 10

	car := autocore.New(
		autocore.WithClock(testutils.NewClock()),
		autocore.WithLimits(limits),
		autocore.WithSafetyEvery(1),
		autocore.WithAutoEmergencyStop(true),
	)
	require.NoError(t, car.Initialize())
	require.NoError(t, car.Start(ctx))

	report := car.Run(ctx, 50)

	// 35 km/h on tick 6 is the first reading more than 20 over the limit.
	assert.Equal(t, uint64(7), report.Ticks)
	assert.True(t, car.EmergencyStopped())
	assert.Equal(t, fsm.EngineOff, car.EngineState())
	assert.NotEmpty(t, car.Frame().Findings)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, autocore.Version)
}
