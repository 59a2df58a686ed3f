package internal

import "time"

// Observer receives runtime events. Calls happen synchronously on the runtime's goroutine.
type Observer interface {
	SignalCreated(id SignalID)

	// notified is the number of effects in the subscriber snapshot
	SignalWritten(id SignalID, notified int)

	// depth is the number of effects already running when this one starts
	EffectStarted(id EffectID, depth int)
	EffectFinished(id EffectID, elapsed time.Duration, err error)

	// a run was refused (cycle or depth limit)
	EffectRejected(id EffectID, err error)
}

type observers []Observer

func (o observers) signalCreated(id SignalID) {
	for _, obs := range o {
		obs.SignalCreated(id)
	}
}

func (o observers) signalWritten(id SignalID, notified int) {
	for _, obs := range o {
		obs.SignalWritten(id, notified)
	}
}

func (o observers) effectStarted(id EffectID, depth int) {
	for _, obs := range o {
		obs.EffectStarted(id, depth)
	}
}

func (o observers) effectFinished(id EffectID, elapsed time.Duration, err error) {
	for _, obs := range o {
		obs.EffectFinished(id, elapsed, err)
	}
}

func (o observers) effectRejected(id EffectID, err error) {
	for _, obs := range o {
		obs.EffectRejected(id, err)
	}
}
