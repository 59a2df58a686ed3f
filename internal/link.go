package internal

// DependencyLink records that an effect (sub) read a signal (dep) during its latest run.
// Each link lives in two lists at once: the signal's subscribers and the effect's dependencies.
type DependencyLink struct {
	dep *SignalNode
	sub *EffectNode

	prevDep *DependencyLink
	nextDep *DependencyLink

	prevSub *DependencyLink
	nextSub *DependencyLink
}

// In both lists the head's prev pointer loops to the tail, giving O(1) append.

func (s *SignalNode) addSubLink(link *DependencyLink) {
	if s.subsHead == nil {
		s.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := s.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		s.subsHead.prevSub = link
	}

	s.subsLen++
}

func (s *SignalNode) removeSubLink(link *DependencyLink) {
	head := s.subsHead

	if link == head {
		s.subsHead = link.nextSub
		if s.subsHead != nil {
			s.subsHead.prevSub = link.prevSub
		}
	} else {
		link.prevSub.nextSub = link.nextSub
		if link.nextSub != nil {
			link.nextSub.prevSub = link.prevSub
		} else {
			head.prevSub = link.prevSub
		}
	}

	link.prevSub = nil
	link.nextSub = nil
	s.subsLen--
}

func (e *EffectNode) addDepLink(link *DependencyLink) {
	if e.depsHead == nil {
		e.depsHead = link
		link.prevDep = link // loop to self
		link.nextDep = nil
	} else {
		tail := e.depsHead.prevDep
		tail.nextDep = link
		link.prevDep = tail
		link.nextDep = nil
		e.depsHead.prevDep = link
	}
}

// Link subscribes the effect to the given signal, once.
func (e *EffectNode) Link(dep *SignalNode) {
	// fast path: same signal read twice in a row
	if e.depsHead != nil && e.depsHead.prevDep.dep == dep {
		return
	}

	if _, ok := e.depIndex[dep]; ok {
		return
	}

	link := &DependencyLink{dep: dep, sub: e}

	e.addDepLink(link)
	dep.addSubLink(link)
	e.depIndex[dep] = link
}

// ClearDeps removes the effect from every signal it is subscribed to.
func (e *EffectNode) ClearDeps() {
	for link := e.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link.prevDep = nil
		link.nextDep = nil
		link = next
	}

	e.depsHead = nil
	clear(e.depIndex)
}
