package reactive

// Derived is a read-only signal whose value is recomputed by an effect
// whenever the signals read by its function change.
type Derived[T any] struct {
	signal Signal[T]
	effect *Effect
}

// Derive creates a derived signal from fn. fn runs immediately and then on every change of its inputs.
func Derive[T any](r *Runtime, fn func() T) *Derived[T] {
	var zero T

	d := &Derived[T]{signal: NewSignal(r, zero)}
	d.effect = r.NewEffect(func() {
		d.signal.Set(fn())
	})

	return d
}

func (d *Derived[T]) ID() SignalID { return d.signal.ID() }

// Get returns the latest computed value, subscribing the running effect.
func (d *Derived[T]) Get() T { return d.signal.Get() }

func (d *Derived[T]) Peek() T { return d.signal.Peek() }

// Dispose stops recomputing. The last value stays readable.
func (d *Derived[T]) Dispose() { d.effect.Dispose() }
