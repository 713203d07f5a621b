/*
Package autocore is a simulated real-time control framework for cooperating vehicle components.

The interesting part is not the vehicle but the coordination substrate it exercises:

  - Event Bus (pkg/bus): per-subscriber FIFO queues; a publisher never receives its own event.
  - State Machine (pkg/fsm): a generic machine over a fixed transition table, used for the engine lifecycle.
  - Scheduler (pkg/scheduler): a fixed-tick loop with overrun diagnostics and per-tick panic recovery.
  - Safety Monitor (pkg/safety): stateless rules over a snapshot of readings, graded by severity.
  - Workflows (pkg/workflow): named step sequences that abort on the first failure.

# Usage

The Car type wires everything together around an engine, brakes, steering and a dashboard.

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/autocore"
	)

	func main() {
		ctx := context.Background()
		car := autocore.New(autocore.WithAutoEmergencyStop(true))

		if err := car.Initialize(); err != nil {
			log.Fatal(err)
		}
		if err := car.Start(ctx); err != nil {
			log.Fatal(err)
		}

		report := car.Run(ctx, 60) // 60 ticks at 2 Hz
		log.Printf("ran %d ticks, %d failed", report.Ticks, report.Failures)

		if !car.EmergencyStopped() {
			if err := car.Shutdown(ctx); err != nil {
				log.Fatal(err)
			}
		}
	}
*/
package autocore
