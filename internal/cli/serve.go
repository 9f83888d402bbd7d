package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tracehook"
	httpAdapter "github.com/aretw0/tracehook/internal/adapters/http"
	"github.com/aretw0/tracehook/internal/logging"
	"github.com/aretw0/tracehook/pkg/observability"
	"github.com/aretw0/tracehook/pkg/plugin"
	"github.com/aretw0/tracehook/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout bounds how long in-flight requests may take once a signal arrives.
const shutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the Serve command.
type ServeOptions struct {
	Port       string
	ConfigPath string
	Overrides  ConfigOverrides
	Gas        uint64
	LogLevel   string

	// Output receives operator messages (default: io.Discard).
	Output io.Writer
}

// newPluginRegistry builds a registry holding p.
func newPluginRegistry(p *plugin.Plugin) (*registry.Registry, error) {
	reg := registry.NewRegistry()
	if err := p.Register(reg); err != nil {
		return nil, fmt.Errorf("error registering plugin: %w", err)
	}
	return reg, nil
}

// NewServerHandler wires the HTTP handler: one session per request, shared metrics.
func NewServerHandler(opts ServeOptions, logger *slog.Logger, promReg *prometheus.Registry) (http.Handler, error) {
	cfg, err := ResolveConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics(promReg)
	if err != nil {
		return nil, fmt.Errorf("error registering metrics: %w", err)
	}

	plugins, err := newPluginRegistry(plugin.New(cfg, plugin.WithLogger(logger), plugin.WithOutput(io.Discard)))
	if err != nil {
		return nil, err
	}

	return httpAdapter.NewHandler(&httpAdapter.Server{
		NewExecutor: func(out io.Writer) (httpAdapter.Executor, error) {
			return tracehook.New(
				tracehook.WithPlugin(plugin.New(cfg, plugin.WithLogger(logger), plugin.WithOutput(out))),
				tracehook.WithLogger(logger),
				tracehook.WithMetrics(metrics),
				tracehook.WithGasLimit(opts.Gas),
			)
		},
		Plugins:  plugins,
		Gatherer: promReg,
		Logger:   logger,
	}), nil
}

// Serve runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives.
func Serve(ctx context.Context, opts ServeOptions) error {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewJSON(level)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := NewServerHandler(opts, logger, promReg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := withSignals(ctx)
	defer stop()

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Starting tracehook server on %s", srv.Addr)
		logger.Info("server started", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		if sig := stopSignal(ctx); sig != nil {
			printSystemMessage(out, "Shutting down (signal: %v)", sig)
		} else {
			printSystemMessage(out, "Shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("server stopped")
		return nil
	}
}
