package reactive

import "github.com/AnatoleLucet/reactive/internal"

var (
	// ErrCycle is wrapped by *CycleError.
	ErrCycle = internal.ErrCycle

	// ErrMaxDepth is reported when the running stack reaches the configured maximum depth.
	ErrMaxDepth = internal.ErrMaxDepth

	// ErrTypeMismatch is wrapped by *TypeMismatchError.
	ErrTypeMismatch = internal.ErrTypeMismatch

	// ErrInvalidSignal is returned for zero-value or out of range signal handles.
	ErrInvalidSignal = internal.ErrInvalidSignal

	ErrForeignGoroutine = internal.ErrForeignGoroutine
	ErrDisposed         = internal.ErrDisposed
)

type (
	CycleError        = internal.CycleError
	TypeMismatchError = internal.TypeMismatchError
	EffectPanicError  = internal.EffectPanicError
)
