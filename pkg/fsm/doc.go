/*
Package fsm provides a validated finite-state machine over a fixed transition table.

States are never assigned directly. Every change goes through Transition, which
applies the request only if the target is in the current state's legal set and
otherwise returns a *TransitionError naming the rejected pair.

The engine lifecycle (Off, Starting, Running, Stopping) is provided as a
ready-made instance via NewEngineMachine.
*/
package fsm
