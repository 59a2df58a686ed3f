package internal

import (
	"fmt"
	"time"
)

type EffectID int

type EffectNode struct {
	Owner

	id EffectID
	rt *Runtime

	fn func()

	depsHead *DependencyLink
	depIndex map[*SignalNode]*DependencyLink

	running  bool
	disposed bool
	runs     int
}

// NewEffect registers fn and runs it once right away; that first run establishes its subscriptions.
// An effect created while another one runs is owned by it and disposed before the owner re-runs.
func (r *Runtime) NewEffect(fn func()) *EffectNode {
	r.guard()

	e := &EffectNode{
		id:       EffectID(len(r.effects)),
		rt:       r,
		fn:       fn,
		depIndex: make(map[*SignalNode]*DependencyLink),
	}
	r.effects = append(r.effects, e)

	if parent := r.tracker.Current(); parent != nil {
		if parent.disposed {
			// nothing would ever dispose it
			e.disposed = true
			r.log.V(1).Info("effect created by a disposed effect, not running", "effect", e.id, "parent", parent.id)
			return e
		}

		parent.adopt(e)
	}

	r.log.V(1).Info("effect created", "effect", e.id)

	r.scheduler.Run(func() { r.runEffect(e) }, r.settle)

	return e
}

func (e *EffectNode) ID() EffectID { return e.id }

func (e *EffectNode) Disposed() bool { return e.disposed }

func (e *EffectNode) Runs() int { return e.runs }

// Deps returns the ids of the signals read during the latest run, in read order.
func (e *EffectNode) Deps() []SignalID {
	e.rt.guard()

	ids := make([]SignalID, 0, len(e.depIndex))
	for link := e.depsHead; link != nil; link = link.nextDep {
		ids = append(ids, link.dep.id)
	}

	return ids
}

// Run re-runs the effect outside of any signal write.
func (e *EffectNode) Run() error {
	if e.disposed {
		return ErrDisposed
	}

	r := e.rt
	r.guard()
	r.scheduler.Run(func() { r.runEffect(e) }, r.settle)

	return nil
}

// Dispose unsubscribes the effect, disposes its children and runs its cleanups. It never runs again.
// A panic in a cleanup is reported like an effect panic once everything is released.
func (e *EffectNode) Dispose() {
	r := e.rt
	r.guard()

	if e.disposed {
		return
	}
	e.disposed = true

	rec := e.release()
	e.ClearDeps()

	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}

	r.log.V(1).Info("effect disposed", "effect", e.id)

	if rec != nil {
		r.report(e, rec)
	}
}

// release disposes the children and runs the cleanups left by the previous run.
// Whatever they read does not subscribe the effect that happens to be running.
func (e *EffectNode) release() (rec *recovered) {
	e.rt.tracker.RunUntracked(func() {
		rec = e.DisposeChildren()
		if cleanupRec := e.RunCleanups(); rec == nil {
			rec = cleanupRec
		}
	})

	return rec
}

// runEffect is the run protocol: reject re-entrant or too deep runs, release what
// the previous run left, then call fn with e as the running effect.
func (r *Runtime) runEffect(e *EffectNode) {
	if e.disposed {
		return
	}

	if e.running {
		r.reject(e, &CycleError{Effect: e.id, Stack: r.tracker.Stack()})
		return
	}

	depth := r.tracker.Depth()
	if depth >= r.cfg.MaxDepth {
		r.reject(e, fmt.Errorf("%w: %d effects running", ErrMaxDepth, depth))
		return
	}

	e.running = true
	defer func() { e.running = false }()

	if rec := e.release(); rec != nil {
		r.report(e, rec)
	}
	if !r.cfg.StaleSubscriptions {
		e.ClearDeps()
	}

	e.runs++
	r.runs++

	r.observers.effectStarted(e.id, depth)
	start := time.Now()

	rec := try(func() { r.tracker.RunWithEffect(e, e.fn) })

	elapsed := time.Since(start)
	var err error
	if rec != nil {
		err = panicError(e, rec)
	}

	r.log.V(1).Info("effect ran", "effect", e.id, "run", e.runs, "depth", depth, "elapsed", elapsed)
	r.observers.effectFinished(e.id, elapsed, err)

	if rec != nil {
		r.report(e, rec)
	}
}

func panicError(e *EffectNode, rec *recovered) *EffectPanicError {
	// a nested effect already wrapped it
	if inner, ok := rec.value.(*EffectPanicError); ok {
		return inner
	}

	return &EffectPanicError{Effect: e.id, Value: rec.value, Stack: rec.stack}
}

// report hands a panic raised by e, its cleanups or its children to the error handlers.
// Without handlers it panics again with an *EffectPanicError carrying the original stack.
func (r *Runtime) report(e *EffectNode, rec *recovered) {
	err := panicError(e, rec)
	if len(r.catchers) == 0 {
		panic(err)
	}

	r.log.Error(err, "effect failed", "effect", e.id)
	r.fail(err)
}

func (r *Runtime) reject(e *EffectNode, err error) {
	r.log.Error(err, "effect run rejected", "effect", e.id, "depth", r.tracker.Depth())
	r.observers.effectRejected(e.id, err)

	if r.cfg.CyclePolicy == CyclePanic {
		panic(err)
	}

	r.fail(err)
}

func (r *Runtime) fail(err error) {
	for _, catcher := range r.catchers {
		catcher(err)
	}
}
