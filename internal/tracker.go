package internal

type Tracker struct {
	tracking bool

	// running effects, innermost last
	stack []*EffectNode
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

// RunWithEffect runs fn with e as the running effect, restoring the previous one afterwards (even on panic).
func (t *Tracker) RunWithEffect(e *EffectNode, fn func()) {
	prevTracking := t.tracking
	t.tracking = true
	t.stack = append(t.stack, e)

	defer func() {
		t.stack[len(t.stack)-1] = nil
		t.stack = t.stack[:len(t.stack)-1]
		t.tracking = prevTracking
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

// Current returns the innermost running effect, or nil.
func (t *Tracker) Current() *EffectNode {
	if len(t.stack) == 0 {
		return nil
	}

	return t.stack[len(t.stack)-1]
}

func (t *Tracker) Depth() int {
	return len(t.stack)
}

// Stack returns the ids of the running effects, outermost first.
func (t *Tracker) Stack() []EffectID {
	ids := make([]EffectID, len(t.stack))
	for i, e := range t.stack {
		ids[i] = e.id
	}

	return ids
}

func (t *Tracker) Track(s *SignalNode) {
	if t.ShouldTrack() {
		t.Current().Link(s)
	}
}

func (t *Tracker) ShouldTrack() bool {
	current := t.Current()
	return current != nil && !current.disposed && t.tracking
}
