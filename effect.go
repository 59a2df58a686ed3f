package reactive

import "github.com/AnatoleLucet/reactive/internal"

// Effect is a handle to a registered computation.
type Effect struct {
	node *internal.EffectNode
}

func (e *Effect) ID() EffectID { return e.node.ID() }

// Deps returns the signals read during the latest run.
func (e *Effect) Deps() []SignalID { return e.node.Deps() }

// Runs returns how many times the effect ran, including the first run.
func (e *Effect) Runs() int { return e.node.Runs() }

// Run forces a re-run. It returns ErrDisposed once the effect is disposed.
func (e *Effect) Run() error { return e.node.Run() }

// Dispose unsubscribes the effect from every signal, disposes the effects it created
// and runs its cleanups. Disposing twice is a no-op.
func (e *Effect) Dispose() { e.node.Dispose() }

func (e *Effect) Disposed() bool { return e.node.Disposed() }
