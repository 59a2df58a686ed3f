package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func subIDs(s *SignalNode) []EffectID {
	ids := []EffectID{}
	for sub := range s.Subs() {
		ids = append(ids, sub.id)
	}
	return ids
}

func TestLink(t *testing.T) {
	newEffect := func(id EffectID) *EffectNode {
		return &EffectNode{id: id, depIndex: make(map[*SignalNode]*DependencyLink)}
	}

	t.Run("links both directions", func(t *testing.T) {
		a := &SignalNode{id: 0}
		b := &SignalNode{id: 1}
		e := newEffect(0)

		e.Link(a)
		e.Link(b)

		assert.Equal(t, []SignalID{0, 1}, e.Deps())
		assert.Equal(t, []EffectID{0}, subIDs(a))
		assert.Equal(t, []EffectID{0}, subIDs(b))
		assert.Equal(t, 1, a.subsLen)
	})

	t.Run("links once", func(t *testing.T) {
		a := &SignalNode{id: 0}
		b := &SignalNode{id: 1}
		e := newEffect(0)

		e.Link(a)
		e.Link(a)
		e.Link(b)
		e.Link(a)

		assert.Equal(t, []SignalID{0, 1}, e.Deps())
		assert.Equal(t, 1, a.subsLen)
	})

	t.Run("appends subscribers in order", func(t *testing.T) {
		s := &SignalNode{id: 0}
		for i := range 4 {
			newEffect(EffectID(i)).Link(s)
		}

		assert.Equal(t, []EffectID{0, 1, 2, 3}, subIDs(s))
		assert.Equal(t, 4, s.subsLen)
	})

	t.Run("clear unlinks from the middle, head and tail", func(t *testing.T) {
		s := &SignalNode{id: 0}
		effects := []*EffectNode{}
		for i := range 4 {
			e := newEffect(EffectID(i))
			e.Link(s)
			effects = append(effects, e)
		}

		effects[1].ClearDeps()
		assert.Equal(t, []EffectID{0, 2, 3}, subIDs(s))

		effects[0].ClearDeps()
		assert.Equal(t, []EffectID{2, 3}, subIDs(s))

		effects[3].ClearDeps()
		assert.Equal(t, []EffectID{2}, subIDs(s))

		// the tail pointer still works after removals
		effects[0].Link(s)
		assert.Equal(t, []EffectID{2, 0}, subIDs(s))
		assert.Equal(t, 2, s.subsLen)
	})

	t.Run("clear resets the dependency index", func(t *testing.T) {
		a := &SignalNode{id: 0}
		e := newEffect(0)

		e.Link(a)
		e.ClearDeps()

		assert.Empty(t, e.Deps())
		assert.Empty(t, e.depIndex)
		assert.Nil(t, a.subsHead)
		assert.Equal(t, 0, a.subsLen)

		e.Link(a)
		assert.Equal(t, []SignalID{0}, e.Deps())
	})
}
