package reactive

import (
	"fmt"
	"reflect"

	"github.com/AnatoleLucet/reactive/internal"
)

// as recovers the typed value of a signal cell. A nil cell only fits an interface type.
func as[T any](id SignalID, v any) (T, error) {
	var zero T
	if v == nil && reflect.TypeFor[T]().Kind() == reflect.Interface {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Signal: id,
			Want:   reflect.TypeFor[T]().String(),
			Got:    fmt.Sprintf("%T", v),
		}
	}

	return t, nil
}

// Signal is a handle to a cell owned by a Runtime. Handles are values: copies refer to the same cell.
type Signal[T any] struct {
	rt *internal.Runtime
	id SignalID
}

// NewSignal creates a cell holding initial.
func NewSignal[T any](r *Runtime, initial T) Signal[T] {
	s := r.rt.NewSignal(initial)

	return Signal[T]{rt: r.rt, id: s.ID()}
}

func (s Signal[T]) ID() SignalID { return s.id }

// Get returns the current value, subscribing the running effect if there is one.
func (s Signal[T]) Get() T {
	v, err := s.TryGet()
	if err != nil {
		panic(err)
	}

	return v
}

// TryGet is Get reporting invalid handles and type mismatches as errors.
func (s Signal[T]) TryGet() (T, error) {
	v, err := s.rt.Read(s.id)
	if err != nil {
		var zero T
		return zero, err
	}

	return as[T](s.id, v)
}

// Peek returns the current value without subscribing anyone.
func (s Signal[T]) Peek() T {
	v, err := s.rt.Peek(s.id)
	if err != nil {
		panic(err)
	}

	t, err := as[T](s.id, v)
	if err != nil {
		panic(err)
	}

	return t
}

// Set stores v and re-runs every effect subscribed to the signal before returning.
func (s Signal[T]) Set(v T) {
	s.Peek() // validates the handle

	if err := s.rt.Write(s.id, v); err != nil {
		panic(err)
	}
}

// Update sets the signal to fn applied to its current value. The read does not subscribe.
func (s Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Peek()))
}

// Subscribers returns the effects currently subscribed to the signal.
func (s Signal[T]) Subscribers() []EffectID {
	ids, err := s.rt.Subscribers(s.id)
	if err != nil {
		panic(err)
	}

	return ids
}

func (s Signal[T]) String() string {
	return fmt.Sprintf("Signal[%s](%d)", reflect.TypeFor[T](), s.id)
}
