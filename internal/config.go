package internal

import "github.com/go-logr/logr"

type CyclePolicy int

const (
	// CycleSkip turns a re-entrant run into a no-op and reports the error to the error handlers.
	CycleSkip CyclePolicy = iota

	// CyclePanic panics with the rejection error.
	CyclePanic
)

func (p CyclePolicy) String() string {
	switch p {
	case CycleSkip:
		return "skip"
	case CyclePanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DefaultMaxDepth bounds how many effects can be nested on the running stack.
const DefaultMaxDepth = 256

type Config struct {
	Logger    logr.Logger
	Observers []Observer

	CyclePolicy CyclePolicy
	MaxDepth    int

	// keep subscriptions from previous runs instead of clearing them before each run
	StaleSubscriptions bool

	// panic when the runtime is used from a goroutine other than the one that created it
	GoroutineCheck bool
}

func DefaultConfig() Config {
	return Config{
		Logger:      logr.Discard(),
		CyclePolicy: CycleSkip,
		MaxDepth:    DefaultMaxDepth,
	}
}
