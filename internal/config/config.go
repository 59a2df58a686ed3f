// Package config reads the TOML configuration of the counter command.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AnatoleLucet/reactive"
)

type Config struct {
	Runtime Runtime `toml:"runtime"`
	Log     Log     `toml:"log"`
	Metrics Metrics `toml:"metrics"`
}

type Runtime struct {
	MaxDepth int `toml:"max_depth"`

	// "skip" or "panic"
	CyclePolicy string `toml:"cycle_policy"`

	StaleSubscriptions bool `toml:"stale_subscriptions"`
	GoroutineCheck     bool `toml:"goroutine_check"`
}

type Log struct {
	// logr verbosity: 1 logs effect runs, 2 signal writes
	Verbosity int `toml:"verbosity"`
}

type Metrics struct {
	// address of the /metrics endpoint, empty to disable it
	Addr      string `toml:"addr"`
	Namespace string `toml:"namespace"`
}

func Default() Config {
	return Config{
		Runtime: Runtime{
			MaxDepth:    reactive.DefaultMaxDepth,
			CyclePolicy: reactive.CycleSkip.String(),
		},
		Metrics: Metrics{
			Namespace: "reactive",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	conf := Default()

	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := checkUndecoded(md); err != nil {
		return conf, fmt.Errorf("reading config %s: %w", path, err)
	}

	return conf, conf.Validate()
}

// Parse is Load for an in-memory document.
func Parse(data string) (Config, error) {
	conf := Default()

	md, err := toml.Decode(data, &conf)
	if err != nil {
		return conf, fmt.Errorf("parsing config: %w", err)
	}

	if err := checkUndecoded(md); err != nil {
		return conf, fmt.Errorf("parsing config: %w", err)
	}

	return conf, conf.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}

	keys := make([]string, len(undecoded))
	for i, key := range undecoded {
		keys[i] = key.String()
	}

	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

func (c Config) Validate() error {
	var errs []error

	if c.Runtime.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("runtime.max_depth must be positive, got %d", c.Runtime.MaxDepth))
	}
	if _, err := c.cyclePolicy(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity))
	}

	return errors.Join(errs...)
}

func (c Config) cyclePolicy() (reactive.CyclePolicy, error) {
	switch c.Runtime.CyclePolicy {
	case "", reactive.CycleSkip.String():
		return reactive.CycleSkip, nil
	case reactive.CyclePanic.String():
		return reactive.CyclePanic, nil
	default:
		return reactive.CycleSkip, fmt.Errorf("runtime.cycle_policy must be %q or %q, got %q",
			reactive.CycleSkip, reactive.CyclePanic, c.Runtime.CyclePolicy)
	}
}

// Options converts the runtime section into runtime options. The config must be valid.
func (c Config) Options() []reactive.Option {
	policy, _ := c.cyclePolicy()

	opts := []reactive.Option{
		reactive.WithMaxDepth(c.Runtime.MaxDepth),
		reactive.WithCyclePolicy(policy),
	}
	if c.Runtime.StaleSubscriptions {
		opts = append(opts, reactive.WithStaleSubscriptions())
	}
	if c.Runtime.GoroutineCheck {
		opts = append(opts, reactive.WithGoroutineCheck())
	}

	return opts
}

// Write encodes the config as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
