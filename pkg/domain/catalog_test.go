package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/pkg/domain"
)

func TestEvent_TypeAndString(t *testing.T) {
	cases := []struct {
		event domain.Event
		typ   domain.EventType
		text  string
	}{
		{domain.EngineStarted{}, domain.TypeEngineStarted, "Engine started"},
		{domain.EngineOverheating{Temperature: 101.3}, domain.TypeEngineOverheating, "ENGINE OVERHEATING: 101.3°C"},
		{domain.EngineRPMChanged{RPM: 812}, domain.TypeEngineRPMChanged, "Engine RPM: 812"},
		{domain.BrakePressureChanged{Pressure: 45}, domain.TypeBrakePressureChanged, "Brake pressure: 45%"},
		{domain.SteeringTurned{Angle: -30}, domain.TypeSteeringTurned, "Steering turned: -30°"},
		{domain.SpeedUpdated{KMH: 90}, domain.TypeSpeedUpdated, "Speed: 90 km/h"},
		{domain.FuelWarning{Level: 12}, domain.TypeFuelWarning, "LOW FUEL: 12%"},
		{domain.ComponentFault{Component: "Brakes", Reason: "sensor lost"}, domain.TypeComponentFault, "ERROR in Brakes: sensor lost"},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			assert.Equal(t, tc.typ, tc.event.Type())
			assert.Equal(t, tc.text, tc.event.String())
		})
	}
}

func TestEvent_Equality(t *testing.T) {
	var a, b domain.Event = domain.EngineRPMChanged{RPM: 800}, domain.EngineRPMChanged{RPM: 800}
	assert.True(t, a == b)

	var c domain.Event = domain.EngineRPMChanged{RPM: 801}
	assert.False(t, a == c)

	var d domain.Event = domain.BrakePressureChanged{Pressure: 800}
	assert.False(t, a == d, "different variants never compare equal")
}

func TestComponentID_String(t *testing.T) {
	assert.Equal(t, "Engine", domain.Engine.String())
	assert.Equal(t, "Dashboard", domain.Dashboard.String())
	assert.Equal(t, "ComponentID(42)", domain.ComponentID(42).String())
	assert.Equal(t, []domain.ComponentID{domain.Engine, domain.Brakes, domain.Steering, domain.Dashboard, domain.System}, domain.ComponentIDs())
}

func TestComponentState_String(t *testing.T) {
	assert.Equal(t, "OFFLINE", domain.ComponentState{}.String())
	assert.Equal(t, "ONLINE", domain.ComponentState{Status: domain.StatusOnline}.String())
	assert.Equal(t, "FAULTED: overheated", domain.Faulted("overheated").String())
}

func TestCheckRange(t *testing.T) {
	require.NoError(t, domain.CheckRange("pressure", 100, 0, 100))

	err := domain.CheckRange("pressure", 101, 0, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutOfRange))
	assert.EqualError(t, err, "pressure 101 outside [0, 100]")

	var re *domain.RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 101, re.Value)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnTick: func(context.Context, *domain.TickEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnTick: func(context.Context, *domain.TickEvent) { calls = append(calls, "b") },
		OnStop: func(context.Context, *domain.StopEvent) { calls = append(calls, "stop") },
	}

	merged := a.Merge(b)
	merged.OnTick(context.Background(), &domain.TickEvent{})
	merged.OnStop(context.Background(), &domain.StopEvent{})

	assert.Equal(t, []string{"a", "b", "stop"}, calls)
	assert.Nil(t, merged.OnStep)
}
