package internal

import "runtime/debug"

// Owner holds what an effect run leaves behind: the cleanups it registered
// and the effects it created. Both are released before the next run and on disposal.
type Owner struct {
	// cleanup functions registered during the latest run
	cleanups []func()

	parent   *EffectNode
	children []*EffectNode
}

// recovered is a panic caught while running user code, with the stack it was raised on.
type recovered struct {
	value any
	stack []byte
}

// try calls fn and returns what it panicked with, if anything.
func try(fn func()) (rec *recovered) {
	defer func() {
		if v := recover(); v != nil {
			rec = &recovered{value: v, stack: debug.Stack()}
		}
	}()

	fn()
	return nil
}

func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

// RunCleanups calls the registered cleanups in registration order and forgets them.
// A panicking cleanup does not stop the others; the first panic is returned.
func (o *Owner) RunCleanups() *recovered {
	cleanups := o.cleanups
	o.cleanups = nil

	var first *recovered
	for _, cleanup := range cleanups {
		if rec := try(cleanup); rec != nil && first == nil {
			first = rec
		}
	}

	return first
}

func (o *Owner) Children() []*EffectNode {
	return o.children
}

// DisposeChildren disposes every child, even when one of them panics. The first panic is returned.
func (o *Owner) DisposeChildren() *recovered {
	children := o.children
	o.children = nil

	var first *recovered
	for _, child := range children {
		child.parent = nil
		if rec := try(child.Dispose); rec != nil && first == nil {
			first = rec
		}
	}

	return first
}

func (o *Owner) removeChild(child *EffectNode) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (e *EffectNode) adopt(child *EffectNode) {
	child.parent = e
	e.children = append(e.children, child)
}
