package internal

// EffectQueue holds effects notified during a batch, deduplicated and in first-notified order.
type EffectQueue struct {
	effects []*EffectNode
	queued  map[*EffectNode]struct{}
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{
		effects: make([]*EffectNode, 0),
		queued:  make(map[*EffectNode]struct{}),
	}
}

func (q *EffectQueue) Enqueue(e *EffectNode) {
	if _, ok := q.queued[e]; ok {
		return
	}

	q.queued[e] = struct{}{}
	q.effects = append(q.effects, e)
}

func (q *EffectQueue) Len() int {
	return len(q.effects)
}

// Drain returns the queued effects and empties the queue.
func (q *EffectQueue) Drain() []*EffectNode {
	effects := q.effects
	q.effects = make([]*EffectNode, 0)
	clear(q.queued)

	return effects
}

// SettledQueue holds one-shot callbacks to run once the current wave completes.
type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *SettledQueue) Len() int {
	return len(q.callbacks)
}

// Run calls the queued callbacks. Callbacks enqueued meanwhile wait for the next run.
func (q *SettledQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = nil

	for _, cb := range callbacks {
		cb()
	}
}
