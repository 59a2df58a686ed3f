package internal

// Scheduler tracks propagation waves. A wave starts at the outermost write, batch,
// effect creation or manual run and ends when every effect it triggered has returned.
type Scheduler struct {
	// incremented each time an outermost wave completes
	clock int

	// nesting of Run calls
	depth int
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		clock: 0,
		depth: 0,
	}
}

// Run executes fn as part of the current wave; if fn opened the wave, onSettled is called after it.
// A panicking fn does not settle.
func (s *Scheduler) Run(fn func(), onSettled func()) {
	s.depth++
	func() {
		defer func() { s.depth-- }()
		fn()
	}()

	if s.depth == 0 {
		s.clock++

		if onSettled != nil {
			onSettled()
		}
	}
}

func (s *Scheduler) Running() bool {
	return s.depth > 0
}

func (s *Scheduler) Time() int {
	return s.clock
}
