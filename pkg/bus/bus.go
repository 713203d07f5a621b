package bus

import (
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/autocore/pkg/domain"
)

// Bus is the central hub that routes events between components.
type Bus struct {
	queues      map[domain.ComponentID]*queue
	subscribers map[domain.ComponentID]bool
	logger      *slog.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates an empty bus with no registered components.
func New(opts ...Option) *Bus {
	b := &Bus{
		queues:      make(map[domain.ComponentID]*queue),
		subscribers: make(map[domain.ComponentID]bool),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register creates the queue for id.
// Registering twice keeps the existing queue and its pending events.
func (b *Bus) Register(id domain.ComponentID) {
	if _, ok := b.queues[id]; ok {
		return
	}
	b.queues[id] = &queue{}
	b.logger.Debug("bus: component registered", "component", id)
}

// SubscribeAll marks id as receiving every event not published by itself.
func (b *Bus) SubscribeAll(id domain.ComponentID) {
	b.subscribers[id] = true
	b.logger.Debug("bus: subscribed to all events", "component", id)
}

// IsSubscribed reports whether id receives broadcast events.
func (b *Bus) IsSubscribed(id domain.ComponentID) bool {
	return b.subscribers[id]
}

// Publish appends e to the queue of every registered subscriber except from.
// Subscribers are visited in ascending id order.
// It returns the number of queues the event was delivered to.
func (b *Bus) Publish(from domain.ComponentID, e domain.Event) int {
	delivered := 0
	for _, id := range b.subscriberIDs() {
		if id == from {
			continue
		}
		q, ok := b.queues[id]
		if !ok {
			continue
		}
		q.push(e)
		delivered++
	}
	b.logger.Debug("bus: published",
		"from", from,
		"type", e.Type(),
		"event", e.String(),
		"delivered", delivered,
	)
	return delivered
}

// Receive pops the oldest pending event for id.
// It returns false when the queue is empty or id is not registered.
func (b *Bus) Receive(id domain.ComponentID) (domain.Event, bool) {
	q, ok := b.queues[id]
	if !ok {
		return nil, false
	}
	return q.pop()
}

// ReceiveAll drains every pending event for id in FIFO order.
func (b *Bus) ReceiveAll(id domain.ComponentID) []domain.Event {
	q, ok := b.queues[id]
	if !ok {
		return nil
	}
	return q.drain()
}

// Clear discards the pending events for id.
func (b *Bus) Clear(id domain.ComponentID) {
	if q, ok := b.queues[id]; ok {
		q.drain()
	}
}

// PendingCount returns the number of events waiting for id.
func (b *Bus) PendingCount(id domain.ComponentID) int {
	q, ok := b.queues[id]
	if !ok {
		return 0
	}
	return q.len()
}

// HasPending reports whether id has at least one event waiting.
func (b *Bus) HasPending(id domain.ComponentID) bool {
	return b.PendingCount(id) > 0
}

// TotalPending returns the number of undelivered events across all queues.
func (b *Bus) TotalPending() int {
	total := 0
	for _, q := range b.queues {
		total += q.len()
	}
	return total
}

// Registered returns the registered ids in ascending order.
func (b *Bus) Registered() []domain.ComponentID {
	ids := make([]domain.ComponentID, 0, len(b.queues))
	for id := range b.queues {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (b *Bus) subscriberIDs() []domain.ComponentID {
	ids := make([]domain.ComponentID, 0, len(b.subscribers))
	for id, on := range b.subscribers {
		if on {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
