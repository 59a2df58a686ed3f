package internal

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/petermattis/goid"
)

// Runtime owns every signal cell, every effect and the subscription graph between them.
// It is not safe for concurrent use: all calls must come from one goroutine.
type Runtime struct {
	cfg       Config
	log       logr.Logger
	observers observers

	// goroutine that created the runtime
	gid int64

	signals []*SignalNode
	effects []*EffectNode

	tracker     *Tracker
	batcher     *Batcher
	scheduler   *Scheduler
	effectQueue *EffectQueue
	settled     *SettledQueue

	catchers []func(error)

	runs int
}

func NewRuntime(cfg Config) *Runtime {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}

	return &Runtime{
		cfg:       cfg,
		log:       cfg.Logger,
		observers: observers(cfg.Observers),
		gid:       goid.Get(),

		signals: make([]*SignalNode, 0),
		effects: make([]*EffectNode, 0),

		tracker:     NewTracker(),
		batcher:     NewBatcher(),
		scheduler:   NewScheduler(),
		effectQueue: NewEffectQueue(),
		settled:     NewSettledQueue(),
	}
}

func (r *Runtime) Config() Config {
	return r.cfg
}

func (r *Runtime) guard() {
	if !r.cfg.GoroutineCheck {
		return
	}

	if gid := goid.Get(); gid != r.gid {
		panic(fmt.Errorf("%w: created on goroutine %d, used on goroutine %d", ErrForeignGoroutine, r.gid, gid))
	}
}

func (r *Runtime) CurrentEffect() *EffectNode {
	return r.tracker.Current()
}

func (r *Runtime) Untrack(fn func()) {
	r.guard()
	r.tracker.RunUntracked(fn)
}

// OnCleanup registers fn on the running effect. Outside of an effect it is dropped.
// An effect that disposed itself during its run calls fn right away.
func (r *Runtime) OnCleanup(fn func()) {
	r.guard()

	current := r.CurrentEffect()
	if current == nil {
		r.log.V(1).Info("cleanup registered outside of an effect, ignoring")
		return
	}

	if current.disposed {
		r.tracker.RunUntracked(fn)
		return
	}

	current.OnCleanup(fn)
}

// OnSettled registers fn to run once, after the current wave (or the next one when idle) completes.
func (r *Runtime) OnSettled(fn func()) {
	r.guard()
	r.settled.Enqueue(fn)
}

// OnError registers a handler for rejected runs and effect panics.
// Without handlers effect panics propagate to the caller.
func (r *Runtime) OnError(fn func(error)) {
	r.guard()
	r.catchers = append(r.catchers, fn)
}

func (r *Runtime) settle() {
	r.settled.Run()
}

// Dispose disposes every effect. Signals stay readable and writable.
// Without error handlers, the first cleanup panic is raised once every effect is disposed.
func (r *Runtime) Dispose() {
	r.guard()

	var first *recovered
	for _, e := range r.effects {
		if rec := try(e.Dispose); rec != nil && first == nil {
			first = rec
		}
	}

	r.release()

	if first != nil {
		panic(first.value)
	}
}

type Stats struct {
	Signals       int
	Effects       int
	ActiveEffects int
	Subscriptions int
	Runs          int
	Waves         int
}

func (r *Runtime) Stats() Stats {
	r.guard()

	stats := Stats{
		Signals: len(r.signals),
		Effects: len(r.effects),
		Runs:    r.runs,
		Waves:   r.scheduler.Time(),
	}

	for _, e := range r.effects {
		if !e.disposed {
			stats.ActiveEffects++
		}
	}
	for _, s := range r.signals {
		stats.Subscriptions += s.subsLen
	}

	return stats
}
