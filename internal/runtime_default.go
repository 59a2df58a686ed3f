//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// one default runtime per goroutine
var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime(DefaultConfig())
	runtimes.Store(gid, r)
	return r
}

// ReleaseRuntime forgets the calling goroutine's default runtime.
func ReleaseRuntime() {
	runtimes.Delete(getGID())
}

func (r *Runtime) release() {
	runtimes.CompareAndDelete(r.gid, r)
}

func getGID() int64 {
	return goid.Get()
}
