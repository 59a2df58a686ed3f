// Package reactive is a fine-grained push-based reactive runtime.
//
// Signals are mutable cells; effects are computations that read them. Every
// signal read made while an effect runs subscribes that effect, and every
// write re-runs the subscribed effects before returning:
//
//	rt := reactive.New()
//	count := reactive.NewSignal(rt, 0)
//
//	rt.NewEffect(func() {
//		fmt.Println("count is", count.Get())
//	})
//
//	count.Set(5) // prints "count is 5"
//
// A Runtime is single-threaded: use it from the goroutine that created it.
package reactive

import (
	"github.com/AnatoleLucet/reactive/internal"
)

type (
	SignalID    = internal.SignalID
	EffectID    = internal.EffectID
	Observer    = internal.Observer
	CyclePolicy = internal.CyclePolicy
	Stats       = internal.Stats
)

const (
	CycleSkip  = internal.CycleSkip
	CyclePanic = internal.CyclePanic

	DefaultMaxDepth = internal.DefaultMaxDepth
)

// Runtime owns signal storage, effects and the subscription graph.
type Runtime struct {
	rt *internal.Runtime
}

// New creates an independent runtime.
func New(opts ...Option) *Runtime {
	cfg := internal.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Runtime{internal.NewRuntime(cfg)}
}

// Current returns the calling goroutine's default runtime, creating it on first use.
func Current() *Runtime {
	return &Runtime{internal.GetRuntime()}
}

// Release forgets the calling goroutine's default runtime.
func Release() {
	internal.ReleaseRuntime()
}

// NewEffect registers fn and runs it immediately. It runs again every time a signal
// it read during its latest run is written.
func (r *Runtime) NewEffect(fn func()) *Effect {
	return &Effect{r.rt.NewEffect(fn)}
}

// Batch defers notifications until fn returns, so an effect depending on several
// signals written in fn runs once.
func (r *Runtime) Batch(fn func()) {
	r.rt.Batch(fn)
}

// Untrack runs fn without subscribing the running effect to what fn reads.
func (r *Runtime) Untrack(fn func()) {
	r.rt.Untrack(fn)
}

// Untracked is Untrack for functions returning a value.
func Untracked[T any](r *Runtime, fn func() T) T {
	var result T
	r.rt.Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers fn on the running effect. It is called before the effect
// runs again and when it is disposed. Outside of an effect it does nothing.
func (r *Runtime) OnCleanup(fn func()) {
	r.rt.OnCleanup(fn)
}

// OnSettled calls fn once, after the current propagation wave completes.
func (r *Runtime) OnSettled(fn func()) {
	r.rt.OnSettled(fn)
}

// OnError registers a handler for rejected runs (cycles, depth limit) and effect panics.
// Once a handler is registered, panics in effects and their cleanups are recovered and reported here
// as *EffectPanicError. Without handlers they propagate as *EffectPanicError.
func (r *Runtime) OnError(fn func(error)) {
	r.rt.OnError(fn)
}

// Subscribers returns the effects that will re-run when the signal is written, in run order.
func (r *Runtime) Subscribers(id SignalID) []EffectID {
	ids, err := r.rt.Subscribers(id)
	if err != nil {
		panic(err)
	}

	return ids
}

func (r *Runtime) Stats() Stats {
	return r.rt.Stats()
}

// Dispose disposes every effect of the runtime. Signals remain usable.
func (r *Runtime) Dispose() {
	r.rt.Dispose()
}
