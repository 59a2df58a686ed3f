package reactive

import (
	"github.com/go-logr/logr"

	"github.com/AnatoleLucet/reactive/internal"
)

type Option func(*internal.Config)

// WithLogger sets the runtime logger. V(1) logs effect runs, V(2) signal writes.
func WithLogger(l logr.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = l
	}
}

// WithObserver adds an observer notified of signal and effect activity.
func WithObserver(o Observer) Option {
	return func(c *internal.Config) {
		c.Observers = append(c.Observers, o)
	}
}

// WithCyclePolicy chooses what happens when an effect is re-triggered while it runs.
func WithCyclePolicy(p CyclePolicy) Option {
	return func(c *internal.Config) {
		c.CyclePolicy = p
	}
}

// WithMaxDepth bounds the number of effects nested on the running stack.
func WithMaxDepth(n int) Option {
	return func(c *internal.Config) {
		c.MaxDepth = n
	}
}

// WithStaleSubscriptions keeps an effect subscribed to everything it ever read
// instead of only what it read during its latest run.
//
// This reproduces the behavior of the first versions of the runtime and is only
// meant for comparison: effects re-run on writes to signals they no longer read.
func WithStaleSubscriptions() Option {
	return func(c *internal.Config) {
		c.StaleSubscriptions = true
	}
}

// WithGoroutineCheck makes every operation panic with ErrForeignGoroutine when
// called from a goroutine other than the one that created the runtime.
func WithGoroutineCheck() Option {
	return func(c *internal.Config) {
		c.GoroutineCheck = true
	}
}
