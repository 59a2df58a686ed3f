//go:build wasm

package internal

import "sync"

var (
	mu            sync.Mutex
	globalRuntime *Runtime
)

// GetRuntime returns the single global runtime; wasm programs run on one thread.
func GetRuntime() *Runtime {
	mu.Lock()
	defer mu.Unlock()

	if globalRuntime == nil {
		globalRuntime = NewRuntime(DefaultConfig())
	}

	return globalRuntime
}

func ReleaseRuntime() {
	mu.Lock()
	globalRuntime = nil
	mu.Unlock()
}

func (r *Runtime) release() {
	mu.Lock()
	if globalRuntime == r {
		globalRuntime = nil
	}
	mu.Unlock()
}
