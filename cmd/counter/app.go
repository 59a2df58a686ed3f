package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AnatoleLucet/reactive"
)

type counter struct {
	rt  *reactive.Runtime
	out io.Writer

	count  reactive.Signal[int]
	step   reactive.Signal[int]
	double *reactive.Derived[float64]
}

func newCounter(out io.Writer, opts ...reactive.Option) *counter {
	rt := reactive.New(opts...)

	c := &counter{
		rt:    rt,
		out:   out,
		count: reactive.NewSignal(rt, 0),
		step:  reactive.NewSignal(rt, 1),
	}

	rt.NewEffect(func() {
		fmt.Fprintf(out, "count: %d\n", c.count.Get())
	})

	c.double = reactive.Derive(rt, func() float64 {
		return float64(c.count.Get()) * 2.3
	})
	rt.NewEffect(func() {
		fmt.Fprintf(out, "double: %.1f\n", c.double.Get())
	})

	rt.NewEffect(func() {
		fmt.Fprintf(out, "step: %d\n", c.step.Get())
	})

	return c
}

// exec runs one command line.
func (c *counter) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "+", "inc":
		c.count.Update(func(n int) int { return n + c.step.Peek() })
	case "-", "dec":
		c.count.Update(func(n int) int { return n - c.step.Peek() })
	case "set", "step":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s N", cmd)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("%s: %w", cmd, err)
		}

		if cmd == "set" {
			c.count.Set(n)
		} else {
			c.step.Set(n)
		}
	case "reset":
		c.rt.Batch(func() {
			c.count.Set(0)
			c.step.Set(1)
		})
	case "stats":
		s := c.rt.Stats()
		fmt.Fprintf(c.out, "signals: %d, effects: %d, subscriptions: %d, runs: %d, waves: %d\n",
			s.Signals, s.Effects, s.Subscriptions, s.Runs, s.Waves)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}

	return false, nil
}

// run executes commands read from in until quit or EOF, then disposes the runtime.
func run(in io.Reader, out io.Writer, opts ...reactive.Option) error {
	c := newCounter(out, opts...)
	defer c.rt.Dispose()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := c.exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		if quit {
			return nil
		}
	}

	return scanner.Err()
}
