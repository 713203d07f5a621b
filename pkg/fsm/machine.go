package fsm

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition is matched by every TransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// StateMachine is the contract of an entity whose state changes only through
// validated transitions.
type StateMachine[S comparable] interface {
	Current() S
	CanTransitionTo(target S) bool
	Transition(target S) error
}

// Table maps each state to the states reachable from it in one step.
type Table[S comparable] map[S][]S

// Validate checks that every target in the table is itself a declared state.
func (t Table[S]) Validate() error {
	for from, targets := range t {
		for _, to := range targets {
			if _, ok := t[to]; !ok {
				return fmt.Errorf("transition %v → %v targets undeclared state", from, to)
			}
		}
	}
	return nil
}

// TransitionError names a rejected source → target pair.
type TransitionError struct {
	From any
	To   any
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %v → %v", e.From, e.To)
}

// Is reports whether target is ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Observer is notified of every transition attempt.
// err is nil when the transition was applied.
type Observer[S comparable] func(from, to S, err error)

// Machine is a StateMachine backed by a Table.
type Machine[S comparable] struct {
	current  S
	table    Table[S]
	observer Observer[S]
}

// Option configures a Machine.
type Option[S comparable] func(*Machine[S])

// WithObserver registers a callback fired after every transition attempt.
func WithObserver[S comparable](o Observer[S]) Option[S] {
	return func(m *Machine[S]) {
		m.observer = o
	}
}

// New creates a machine positioned at initial.
// The table is copied so later edits by the caller have no effect.
func New[S comparable](initial S, table Table[S], opts ...Option[S]) *Machine[S] {
	m := &Machine[S]{
		current: initial,
		table:   make(Table[S], len(table)),
	}
	for from, targets := range table {
		m.table[from] = slices.Clone(targets)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the current state.
func (m *Machine[S]) Current() S {
	return m.current
}

// ValidTransitions returns the states reachable from the current state.
func (m *Machine[S]) ValidTransitions() []S {
	return slices.Clone(m.table[m.current])
}

// CanTransitionTo reports whether target is legal from the current state.
func (m *Machine[S]) CanTransitionTo(target S) bool {
	return slices.Contains(m.table[m.current], target)
}

// Transition moves to target if the edge is legal.
// On rejection the state is left unchanged and a *TransitionError is returned.
func (m *Machine[S]) Transition(target S) error {
	from := m.current
	if !m.CanTransitionTo(target) {
		err := &TransitionError{From: from, To: target}
		m.notify(from, target, err)
		return err
	}
	m.current = target
	m.notify(from, target, nil)
	return nil
}

// Walk applies the targets in order and stops at the first rejected edge.
func (m *Machine[S]) Walk(targets ...S) error {
	for _, t := range targets {
		if err := m.Transition(t); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine[S]) notify(from, to S, err error) {
	if m.observer != nil {
		m.observer(from, to, err)
	}
}
