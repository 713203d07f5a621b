package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/pkg/bus"
	"github.com/aretw0/autocore/pkg/domain"
)

func newBus(subscribed ...domain.ComponentID) *bus.Bus {
	b := bus.New()
	for _, id := range []domain.ComponentID{domain.Engine, domain.Brakes, domain.Steering, domain.Dashboard} {
		b.Register(id)
	}
	for _, id := range subscribed {
		b.SubscribeAll(id)
	}
	return b
}

func TestBus_PublishBroadcastsToSubscribersOnly(t *testing.T) {
	b := newBus(domain.Dashboard, domain.Steering)

	delivered := b.Publish(domain.Engine, domain.EngineRPMChanged{RPM: 810})

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, b.PendingCount(domain.Dashboard))
	assert.Equal(t, 1, b.PendingCount(domain.Steering))
	assert.Equal(t, 0, b.PendingCount(domain.Brakes), "registered but not subscribed")
	assert.Equal(t, 0, b.PendingCount(domain.Engine), "publisher")
	assert.Equal(t, 2, b.TotalPending())
}

func TestBus_NoSelfDelivery(t *testing.T) {
	b := newBus(domain.Dashboard, domain.Engine)

	b.Publish(domain.Dashboard, domain.FuelWarning{Level: 10})
	b.Publish(domain.Engine, domain.EngineStarted{})

	assert.Equal(t, []domain.Event{domain.EngineStarted{}}, b.ReceiveAll(domain.Dashboard))
	assert.Equal(t, []domain.Event{domain.FuelWarning{Level: 10}}, b.ReceiveAll(domain.Engine))
}

func TestBus_FIFOAcrossPublishes(t *testing.T) {
	b := newBus(domain.Dashboard)

	sent := []domain.Event{
		domain.EngineRPMChanged{RPM: 800},
		domain.BrakePressureChanged{Pressure: 50},
		domain.SteeringTurned{Angle: 30},
		domain.EngineRPMChanged{RPM: 817},
	}
	b.Publish(domain.Engine, sent[0])
	b.Publish(domain.Brakes, sent[1])
	b.Publish(domain.Steering, sent[2])
	b.Publish(domain.Engine, sent[3])

	first, ok := b.Receive(domain.Dashboard)
	require.True(t, ok)
	assert.Equal(t, sent[0], first)

	assert.Equal(t, sent[1:], b.ReceiveAll(domain.Dashboard))
	assert.False(t, b.HasPending(domain.Dashboard))

	_, ok = b.Receive(domain.Dashboard)
	assert.False(t, ok)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	b := newBus()

	assert.Equal(t, 0, b.Publish(domain.Engine, domain.EngineStopped{}))
	assert.Equal(t, 0, b.TotalPending())
}

func TestBus_RegisterIsIdempotent(t *testing.T) {
	b := newBus(domain.Dashboard)
	b.Publish(domain.Engine, domain.EngineStarted{})

	b.Register(domain.Dashboard)

	assert.Len(t, b.Registered(), 4)
	assert.Equal(t, 1, b.PendingCount(domain.Dashboard), "re-registration must keep pending events")
}

func TestBus_UnregisteredID(t *testing.T) {
	b := bus.New()
	b.SubscribeAll(domain.Dashboard)

	assert.Equal(t, 0, b.Publish(domain.Engine, domain.EngineStarted{}))

	_, ok := b.Receive(domain.Dashboard)
	assert.False(t, ok)
	assert.Empty(t, b.ReceiveAll(domain.Dashboard))
	assert.Equal(t, 0, b.PendingCount(domain.System))
	assert.False(t, b.HasPending(domain.System))
	b.Clear(domain.System)

	b.Register(domain.Dashboard)
	assert.Equal(t, 1, b.Publish(domain.Engine, domain.EngineStarted{}), "subscription applies once registered")
}

func TestBus_Clear(t *testing.T) {
	b := newBus(domain.Dashboard, domain.Brakes)
	b.Publish(domain.Engine, domain.EngineStarted{})

	b.Clear(domain.Dashboard)

	assert.Equal(t, 0, b.PendingCount(domain.Dashboard))
	assert.Equal(t, 1, b.PendingCount(domain.Brakes))
}

func TestBus_ReceiveAllAfterDrainIsEmpty(t *testing.T) {
	b := newBus(domain.Dashboard)
	b.Publish(domain.Engine, domain.EngineStarted{})

	first := b.ReceiveAll(domain.Dashboard)
	second := b.ReceiveAll(domain.Dashboard)

	assert.Len(t, first, 1)
	assert.Empty(t, second)

	b.Publish(domain.Engine, domain.EngineStopped{})
	assert.Equal(t, []domain.Event{domain.EngineStopped{}}, b.ReceiveAll(domain.Dashboard))
	assert.Equal(t, []domain.Event{domain.EngineStarted{}}, first, "drained slice is not aliased by the queue")
}

func TestBus_RegisteredSorted(t *testing.T) {
	b := bus.New()
	b.Register(domain.Dashboard)
	b.Register(domain.Engine)
	b.Register(domain.Steering)

	assert.Equal(t, []domain.ComponentID{domain.Engine, domain.Steering, domain.Dashboard}, b.Registered())
	assert.False(t, b.IsSubscribed(domain.Engine))
}
