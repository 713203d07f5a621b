/*
Package domain contains the shared vocabulary of the autocore control framework.

It defines the closed set of events that components exchange over the bus, the
identities of the addressable components, their lifecycle state and the hook
types used for observability. This package has no dependencies on the rest of
the module so every other package can import it.

# Key Entities

  - Event: An immutable, comparable notification published by a component.
  - ComponentID: The closed set of bus participants (publish source and queue key).
  - ComponentState: The lifecycle phase of a component (Offline, Initializing, Online, Faulted).
  - LifecycleHooks: Optional callbacks fired by the scheduler, workflows and orchestrator.
*/
package domain
