package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		rt := New()
		log := []string{}

		count := NewSignal(rt, 0)
		log = append(log, fmt.Sprintf("%d", count.Get()))

		rt.NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Get()))

			rt.OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Set(10)
		log = append(log, fmt.Sprintf("%d", count.Get()))
		count.Set(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		rt := New()
		log := []string{}

		count := NewSignal(rt, 0)
		double := NewSignal(rt, 0)

		rt.NewEffect(func() {
			double.Set(count.Get() * 2)
		})

		rt.NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Get()))

			rt.OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Set(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("every set propagates, even with the same value", func(t *testing.T) {
		rt := New()
		log := []int{}

		count := NewSignal(rt, 1)
		rt.NewEffect(func() {
			log = append(log, count.Get())
		})

		count.Set(1)
		count.Set(1)

		assert.Equal(t, []int{1, 1, 1}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		rt := New()
		log := []string{}

		count := NewSignal(rt, 0)

		rt.NewEffect(func() {
			count.Get()
			log = append(log, "running")

			rt.NewEffect(func() {
				log = append(log, "running nested")

				rt.OnCleanup(func() {
					log = append(log, "cleanup nested")
				})
			})

			rt.OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Set(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("nested effect is not re-run by its parent's signals", func(t *testing.T) {
		rt := New()
		log := []string{}

		outer := NewSignal(rt, 0)
		inner := NewSignal(rt, 0)

		var nested *Effect
		rt.NewEffect(func() {
			log = append(log, fmt.Sprintf("outer %d", outer.Get()))

			nested = rt.NewEffect(func() {
				log = append(log, fmt.Sprintf("inner %d", inner.Get()))
			})
		})

		first := nested
		inner.Set(1)
		outer.Set(1)
		inner.Set(2)

		assert.True(t, first.Disposed())
		assert.False(t, nested.Disposed())
		assert.Equal(t, []string{
			"outer 0",
			"inner 0",
			"inner 1",
			"outer 1",
			"inner 1",
			"inner 2",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		rt := New()
		log := []string{}

		count := NewSignal(rt, 0)

		initialized := false
		rt.NewEffect(func() {
			log = append(log, "running")
			if !initialized {
				count.Get()
			}
			initialized = true
		})

		count.Set(1)
		count.Set(2) // should not trigger since effect no longer depends on count

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("reading twice subscribes once", func(t *testing.T) {
		rt := New()
		runs := 0

		a := NewSignal(rt, 0)
		b := NewSignal(rt, 0)

		e := rt.NewEffect(func() {
			a.Get()
			b.Get()
			a.Get()
			runs++
		})

		a.Set(1)

		assert.Equal(t, 2, runs)
		assert.Equal(t, []SignalID{a.ID(), b.ID()}, e.Deps())
		assert.Equal(t, []EffectID{e.ID()}, a.Subscribers())
	})

	t.Run("dispose", func(t *testing.T) {
		rt := New()
		log := []string{}

		count := NewSignal(rt, 0)

		e := rt.NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Get()))

			rt.NewEffect(func() {
				rt.OnCleanup(func() { log = append(log, "cleanup nested") })
			})

			rt.OnCleanup(func() { log = append(log, "cleanup") })
		})

		e.Dispose()
		e.Dispose()
		count.Set(10)

		assert.True(t, e.Disposed())
		assert.Empty(t, count.Subscribers())
		assert.ErrorIs(t, e.Run(), ErrDisposed)
		assert.Equal(t, []string{
			"changed 0",
			"cleanup nested",
			"cleanup",
		}, log)
	})

	t.Run("dispose from inside the effect", func(t *testing.T) {
		rt := New()
		log := []int{}

		count := NewSignal(rt, 0)

		var e *Effect
		e = rt.NewEffect(func() {
			v := count.Get()
			log = append(log, v)

			if v == 1 {
				e.Dispose()
				count.Get() // must not resubscribe
			}
		})

		count.Set(1)
		count.Set(2)

		assert.Equal(t, []int{0, 1}, log)
		assert.Empty(t, count.Subscribers())
	})

	t.Run("effects and cleanups created after disposing itself", func(t *testing.T) {
		rt := New()
		log := []string{}

		trigger := NewSignal(rt, false)
		count := NewSignal(rt, 0)

		var e, child *Effect
		e = rt.NewEffect(func() {
			if !trigger.Get() {
				return
			}

			e.Dispose()
			child = rt.NewEffect(func() {
				log = append(log, fmt.Sprintf("child %d", count.Get()))
			})
			rt.OnCleanup(func() { log = append(log, "cleanup") })
			log = append(log, "disposed")
		})

		trigger.Set(true)
		count.Set(7)
		rt.Dispose()

		assert.Equal(t, []string{"cleanup", "disposed"}, log)
		assert.True(t, child.Disposed())
		assert.Equal(t, 0, child.Runs())
		assert.Empty(t, count.Subscribers())
		assert.Equal(t, 0, rt.Stats().ActiveEffects)
	})

	t.Run("manual run", func(t *testing.T) {
		rt := New()
		runs := 0

		e := rt.NewEffect(func() { runs++ })

		assert.NoError(t, e.Run())
		assert.Equal(t, 2, runs)
		assert.Equal(t, 2, e.Runs())
	})

	t.Run("cleanup reads do not subscribe", func(t *testing.T) {
		rt := New()
		runs := 0

		a := NewSignal(rt, 0)
		b := NewSignal(rt, 0)

		e := rt.NewEffect(func() {
			a.Get()
			runs++

			rt.OnCleanup(func() { b.Get() })
		})

		a.Set(1)
		b.Set(1)

		assert.Equal(t, 2, runs)
		assert.Equal(t, []SignalID{a.ID()}, e.Deps())
	})

	t.Run("cleanup outside of an effect is ignored", func(t *testing.T) {
		rt := New()
		called := false

		rt.OnCleanup(func() { called = true })
		rt.Dispose()

		assert.False(t, called)
	})
}
