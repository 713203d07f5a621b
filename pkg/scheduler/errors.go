package scheduler

import "fmt"

// PanicError wraps a value recovered from a panicking tick callback.
type PanicError struct {
	Tick  uint64
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tick %d panicked: %v", e.Tick, e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
