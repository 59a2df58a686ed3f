package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/reactive"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf, err := Parse("")
		require.NoError(t, err)
		assert.Equal(t, Default(), conf)
		assert.Equal(t, reactive.DefaultMaxDepth, conf.Runtime.MaxDepth)
	})

	t.Run("overrides", func(t *testing.T) {
		conf, err := Parse(`
[runtime]
max_depth = 16
cycle_policy = "panic"
goroutine_check = true

[log]
verbosity = 2

[metrics]
addr = ":9090"
`)
		require.NoError(t, err)
		assert.Equal(t, 16, conf.Runtime.MaxDepth)
		assert.Equal(t, "panic", conf.Runtime.CyclePolicy)
		assert.True(t, conf.Runtime.GoroutineCheck)
		assert.False(t, conf.Runtime.StaleSubscriptions)
		assert.Equal(t, 2, conf.Log.Verbosity)
		assert.Equal(t, ":9090", conf.Metrics.Addr)
		assert.Equal(t, "reactive", conf.Metrics.Namespace)
	})

	t.Run("unknown keys", func(t *testing.T) {
		_, err := Parse(`
[runtime]
max_dept = 16
`)
		assert.ErrorContains(t, err, "unknown keys: runtime.max_dept")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Parse(`
[runtime]
max_depth = 0
cycle_policy = "retry"
`)
		assert.ErrorContains(t, err, "runtime.max_depth must be positive")
		assert.ErrorContains(t, err, `runtime.cycle_policy must be "skip" or "panic", got "retry"`)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Parse("[runtime")
		assert.ErrorContains(t, err, "parsing config")
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "counter.toml")
		require.NoError(t, os.WriteFile(path, []byte("[runtime]\nstale_subscriptions = true\n"), 0o644))

		conf, err := Load(path)
		require.NoError(t, err)
		assert.True(t, conf.Runtime.StaleSubscriptions)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Write(&buf))

	conf, err := Parse(buf.String())
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestOptions(t *testing.T) {
	conf := Default()
	assert.Len(t, conf.Options(), 2)

	conf.Runtime.StaleSubscriptions = true
	conf.Runtime.GoroutineCheck = true
	assert.Len(t, conf.Options(), 4)
}
