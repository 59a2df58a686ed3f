// Command counter is an interactive counter driven by the reactive runtime.
//
// It reads commands from stdin (+, -, set N, step N, reset, stats, quit) and
// prints whatever the effects print in response.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/internal/config"
	"github.com/AnatoleLucet/reactive/metrics"
	"github.com/AnatoleLucet/reactive/tracing"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	metricsAddr string
	verbosity   int
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Interactive counter driven by signals and effects",
		Long: `counter keeps a count, a step and a derived value in signals.
Effects print them every time they change.

Commands (one per line on stdin):
  +, inc      add the step to the count
  -, dec      subtract the step from the count
  set N       set the count
  step N      set the step
  reset       reset the count and the step in one batch
  stats       print runtime statistics
  quit        exit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := f.load(cmd)
			if err != nil {
				return err
			}

			stdr.SetVerbosity(conf.Log.Verbosity)
			logger := stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)).WithName("counter")

			reg := prometheus.NewRegistry()
			opts := append(conf.Options(),
				reactive.WithLogger(logger),
				reactive.WithObserver(metrics.New(
					metrics.WithRegistry(reg),
					metrics.WithNamespace(conf.Metrics.Namespace),
				)),
				reactive.WithObserver(tracing.New(tracing.WithContext(cmd.Context()))),
			)

			if conf.Metrics.Addr != "" {
				srv := serveMetrics(conf.Metrics.Addr, reg, logger)
				defer srv.Close()
			}

			return run(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
		},
	}

	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "path to a TOML config file")
	cmd.PersistentFlags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.PersistentFlags().IntVarP(&f.verbosity, "verbosity", "v", 0, "log verbosity (1: effect runs, 2: signal writes)")

	cmd.AddCommand(configCmd(f))

	return cmd
}

// load reads the config file, if any, and applies the flags set on the command line over it.
func (f *flags) load(cmd *cobra.Command) (config.Config, error) {
	conf := config.Default()
	if f.configPath != "" {
		var err error
		if conf, err = config.Load(f.configPath); err != nil {
			return conf, err
		}
	}

	// Flags() includes the persistent flags inherited from the root command
	if cmd.Flags().Changed("metrics-addr") {
		conf.Metrics.Addr = f.metricsAddr
	}
	if cmd.Flags().Changed("verbosity") {
		conf.Log.Verbosity = f.verbosity
	}

	return conf, conf.Validate()
}

func configCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := f.load(cmd)
			if err != nil {
				return err
			}

			return conf.Write(cmd.OutOrStdout())
		},
	}
}

func metricsRouter(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logr.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsRouter(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "metrics server stopped")
		}
	}()

	return srv
}
