/*
Package scheduler drives periodic work at a fixed tick rate.

A Loop moves through Idle → Running → Stopped. Each tick invokes a callback
once, measures how long it took and then sleeps for whatever is left of the
interval. When a callback takes longer than the interval the loop skips the
sleep and logs an overrun instead of falling further behind.

A failing tick never ends the loop. Errors and panics raised by the callback
are logged, counted and reported through the OnTick hook; only Stop, context
cancellation or tick-count exhaustion end a run. Stop is observed at the next
tick boundary, never mid-tick.

There is no timeout on an individual callback: a callback that never returns
stalls the loop.
*/
package scheduler
