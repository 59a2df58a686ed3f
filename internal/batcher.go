package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, notifications are queued until the outermost batch is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn and calls onComplete once the outermost batch returns normally.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	func() {
		defer func() { b.depth-- }()
		fn()
	}()

	if b.depth == 0 && onComplete != nil {
		onComplete()
	}
}

// Batch defers effect notifications until fn returns, then runs each notified effect once,
// in the order it was first notified.
func (r *Runtime) Batch(fn func()) {
	r.guard()

	r.scheduler.Run(func() {
		defer func() {
			// a panicking batch drops what it queued
			if !r.batcher.IsBatching() && r.effectQueue.Len() > 0 {
				r.effectQueue.Drain()
			}
		}()

		r.batcher.Batch(fn, r.flush)
	}, r.settle)
}

func (r *Runtime) flush() {
	for r.effectQueue.Len() > 0 {
		for _, e := range r.effectQueue.Drain() {
			r.runEffect(e)
		}
	}
}
