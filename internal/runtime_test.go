package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwner(t *testing.T) {
	t.Run("children are disposed before the parent re-runs", func(t *testing.T) {
		r := NewRuntime(DefaultConfig())
		s := r.NewSignal(0)

		var child *EffectNode
		parent := r.NewEffect(func() {
			r.Read(s.ID())
			child = r.NewEffect(func() {})
		})

		first := child
		assert.Equal(t, []*EffectNode{first}, parent.Children())

		r.Write(s.ID(), 1)

		assert.True(t, first.Disposed())
		assert.Equal(t, []*EffectNode{child}, parent.Children())
		assert.NotSame(t, first, child)
	})

	t.Run("disposing a child detaches it", func(t *testing.T) {
		r := NewRuntime(DefaultConfig())

		var child *EffectNode
		parent := r.NewEffect(func() {
			child = r.NewEffect(func() {})
		})

		child.Dispose()
		assert.Empty(t, parent.Children())
	})
}

func TestRunCleanups(t *testing.T) {
	log := []string{}

	o := &Owner{}
	o.OnCleanup(func() { panic("first") })
	o.OnCleanup(func() { log = append(log, "second") })
	o.OnCleanup(func() { panic("third") })

	rec := o.RunCleanups()

	assert.Equal(t, []string{"second"}, log)
	if assert.NotNil(t, rec) {
		assert.Equal(t, "first", rec.value)
		assert.Contains(t, string(rec.stack), "runtime_test.go")
	}
	assert.Nil(t, o.RunCleanups())
}
