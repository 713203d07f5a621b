/*
Package bus routes component events through per-subscriber FIFO queues.

The topology is broadcast-only: a subscriber either receives every event or
nothing. A publisher never receives its own events. Receiving never blocks;
callers drain their queue once per tick.

A Bus is owned by a single goroutine and is not safe for concurrent use.

	b := bus.New()
	b.Register(domain.Engine)
	b.Register(domain.Dashboard)
	b.SubscribeAll(domain.Dashboard)

	b.Publish(domain.Engine, domain.EngineRPMChanged{RPM: 820})
	for _, e := range b.ReceiveAll(domain.Dashboard) {
		fmt.Println(e)
	}
*/
package bus
