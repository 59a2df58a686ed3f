package internal

import (
	"fmt"
	"iter"
)

type SignalID int

type SignalNode struct {
	id    SignalID
	value any

	subsHead *DependencyLink
	subsLen  int
}

func (s *SignalNode) ID() SignalID { return s.id }

func (s *SignalNode) Value() any { return s.value }

// Subs returns an iterator over the subscribed effects, in subscription order.
func (s *SignalNode) Subs() iter.Seq[*EffectNode] {
	return func(yield func(*EffectNode) bool) {
		for link := s.subsHead; link != nil; link = link.nextSub {
			if !yield(link.sub) {
				return
			}
		}
	}
}

// snapshot copies the subscriber list so re-runs can relink freely while it is being notified.
func (s *SignalNode) snapshot() []*EffectNode {
	subs := make([]*EffectNode, 0, s.subsLen)
	for sub := range s.Subs() {
		subs = append(subs, sub)
	}

	return subs
}

// NewSignal appends a storage cell. Its id is the store length before insertion.
func (r *Runtime) NewSignal(initial any) *SignalNode {
	r.guard()

	s := &SignalNode{
		id:    SignalID(len(r.signals)),
		value: initial,
	}
	r.signals = append(r.signals, s)

	r.log.V(2).Info("signal created", "signal", s.id)
	r.observers.signalCreated(s.id)

	return s
}

func (r *Runtime) lookup(id SignalID) (*SignalNode, error) {
	if r == nil || id < 0 || int(id) >= len(r.signals) {
		return nil, fmt.Errorf("%w: id %d", ErrInvalidSignal, id)
	}

	return r.signals[id], nil
}

// Read returns the signal's value and subscribes the running effect, if any.
func (r *Runtime) Read(id SignalID) (any, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	r.guard()

	r.tracker.Track(s)

	return s.value, nil
}

// Peek returns the signal's value without subscribing anyone.
func (r *Runtime) Peek(id SignalID) (any, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	r.guard()

	return s.value, nil
}

// Write stores v and synchronously re-runs every effect subscribed at the time of the write.
// Inside a batch the subscribers are queued instead.
func (r *Runtime) Write(id SignalID, v any) error {
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	r.guard()

	s.value = v
	subs := s.snapshot()

	r.log.V(2).Info("signal written", "signal", s.id, "subscribers", len(subs))
	r.observers.signalWritten(s.id, len(subs))

	r.scheduler.Run(func() {
		if r.batcher.IsBatching() {
			for _, sub := range subs {
				r.effectQueue.Enqueue(sub)
			}
			return
		}

		for _, sub := range subs {
			r.runEffect(sub)
		}
	}, r.settle)

	return nil
}

// Subscribers returns the ids of the effects subscribed to the signal, in notification order.
func (r *Runtime) Subscribers(id SignalID) ([]EffectID, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	r.guard()

	ids := make([]EffectID, 0, s.subsLen)
	for sub := range s.Subs() {
		ids = append(ids, sub.id)
	}

	return ids, nil
}
