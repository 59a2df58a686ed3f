package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCycle            = errors.New("reactive: cyclic effect dependency")
	ErrMaxDepth         = errors.New("reactive: maximum effect depth exceeded")
	ErrTypeMismatch     = errors.New("reactive: signal type mismatch")
	ErrInvalidSignal    = errors.New("reactive: invalid signal")
	ErrForeignGoroutine = errors.New("reactive: runtime used from another goroutine")
	ErrDisposed         = errors.New("reactive: effect disposed")
)

// CycleError is reported when an effect is notified while it is already running,
// i.e. its own execution (directly or through other effects) wrote to a signal it reads.
type CycleError struct {
	Effect EffectID

	// running effects at the time of the rejection, outermost first
	Stack []EffectID
}

func (e *CycleError) Error() string {
	path := make([]string, 0, len(e.Stack)+1)
	for _, id := range e.Stack {
		path = append(path, fmt.Sprint(id))
	}
	path = append(path, fmt.Sprint(e.Effect))

	return fmt.Sprintf("%s: effect %d re-triggered itself (%s)", ErrCycle, e.Effect, strings.Join(path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// TypeMismatchError is returned when a signal holds a value of another type than its handle expects.
type TypeMismatchError struct {
	Signal SignalID
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: signal %d holds %s, handle expects %s", ErrTypeMismatch, e.Signal, e.Got, e.Want)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// EffectPanicError wraps a value recovered from a panicking effect or one of its cleanups.
type EffectPanicError struct {
	Effect EffectID
	Value  any

	// stack of the goroutine when the panic was raised
	Stack []byte
}

func (e *EffectPanicError) Error() string {
	return fmt.Sprintf("reactive: effect %d panicked: %v", e.Effect, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *EffectPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}
