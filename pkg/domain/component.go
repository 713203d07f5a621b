package domain

import (
	"fmt"
	"strings"
)

// ComponentID names an addressable participant on the bus.
// Values are ordered; the bus iterates subscribers in ascending order.
type ComponentID int

const (
	Engine ComponentID = iota + 1
	Brakes
	Steering
	Dashboard
	System
)

// ComponentIDs lists every known identity in ascending order.
func ComponentIDs() []ComponentID {
	return []ComponentID{Engine, Brakes, Steering, Dashboard, System}
}

func (id ComponentID) String() string {
	switch id {
	case Engine:
		return "Engine"
	case Brakes:
		return "Brakes"
	case Steering:
		return "Steering"
	case Dashboard:
		return "Dashboard"
	case System:
		return "System"
	default:
		return fmt.Sprintf("ComponentID(%d)", int(id))
	}
}

// ComponentStatus is the lifecycle phase of a component.
type ComponentStatus string

const (
	StatusOffline      ComponentStatus = "offline"
	StatusInitializing ComponentStatus = "initializing"
	StatusOnline       ComponentStatus = "online"
	StatusFaulted      ComponentStatus = "faulted"
)

// ComponentState captures a component's lifecycle phase.
// Reason is only set when Status is StatusFaulted.
type ComponentState struct {
	Status ComponentStatus
	Reason string
}

// Faulted builds a faulted state carrying the given reason.
func Faulted(reason string) ComponentState {
	return ComponentState{Status: StatusFaulted, Reason: reason}
}

func (s ComponentState) String() string {
	switch s.Status {
	case StatusFaulted:
		return "FAULTED: " + s.Reason
	case "":
		return "OFFLINE"
	default:
		return strings.ToUpper(string(s.Status))
	}
}
