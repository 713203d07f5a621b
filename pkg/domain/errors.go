package domain

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every RangeError.
var ErrOutOfRange = errors.New("value out of range")

// ErrNotRunning is returned when an operation needs a running engine.
var ErrNotRunning = errors.New("engine not running")

// RangeError is returned when an input falls outside its legal bounds.
// Components reject such inputs instead of clamping them.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// CheckRange returns a RangeError if v is outside [min, max].
func CheckRange(field string, v, min, max int) error {
	if v < min || v > max {
		return &RangeError{Field: field, Value: v, Min: min, Max: max}
	}
	return nil
}
