// Package daemon runs the API server and the cleanup scheduler, and swaps them when the
// configuration file changes.
package daemon

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
	"git.home.luguber.info/inful/sitegraph/internal/scheduler"
	"git.home.luguber.info/inful/sitegraph/internal/server"
	"git.home.luguber.info/inful/sitegraph/internal/services"
)

// Daemon owns the running services of the current configuration.
type Daemon struct {
	configPath string
	logger     *slog.Logger
	recorder   metrics.Recorder
	metrics    http.Handler
	debounce   time.Duration

	mu           sync.RWMutex
	cfg          *config.Config
	orchestrator *services.ServiceOrchestrator
	http         *server.Server
	watcher      *ConfigWatcher
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(d *Daemon) { d.logger = l } }

// WithReloadDebounce sets how long the config watcher waits for writes to settle.
func WithReloadDebounce(delay time.Duration) Option { return func(d *Daemon) { d.debounce = delay } }

// New creates a daemon for cfg. configPath enables reloads on file change when non-empty.
// The metrics registry is created once and survives reloads.
func New(configPath string, cfg *config.Config, opts ...Option) *Daemon {
	d := &Daemon{
		configPath: configPath,
		cfg:        cfg,
		logger:     slog.Default(),
		recorder:   metrics.NoopRecorder{},
		debounce:   2 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	if cfg.Monitoring.Metrics.Enabled {
		rec := metrics.NewPrometheusRecorder(nil)
		d.recorder = rec
		d.metrics = metrics.HTTPHandler(rec.Registry())
	}
	return d
}

// Start starts the services and, when a config path is set, the config watcher.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.startServices(ctx, d.cfg); err != nil {
		return err
	}
	if d.configPath == "" {
		return nil
	}
	watcher, err := NewConfigWatcher(d.configPath, d, d.logger, d.debounce)
	if err != nil {
		return d.abortStart(ctx, err)
	}
	if err := watcher.Start(ctx); err != nil {
		return d.abortStart(ctx, err)
	}
	d.watcher = watcher
	return nil
}

func (d *Daemon) abortStart(ctx context.Context, err error) error {
	if stopErr := d.orchestrator.StopAll(ctx); stopErr != nil {
		d.logger.Error("Failed to stop services after start failure", logfields.Error(stopErr))
	}
	d.orchestrator = nil
	d.http = nil
	return err
}

// Run starts the daemon and blocks until ctx is done, then stops it within shutdownTimeout.
func (d *Daemon) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	d.logger.Info("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return d.Stop(sctx)
}

// Stop stops the watcher and all services.
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.watcher != nil {
		d.watcher.Stop()
		d.watcher = nil
	}
	if d.orchestrator == nil {
		return nil
	}
	err := d.orchestrator.StopAll(ctx)
	d.orchestrator = nil
	d.http = nil
	return err
}

// ReloadConfig replaces the running services with ones built from cfg. When the new
// services fail to start, the previous configuration is restored.
func (d *Daemon) ReloadConfig(ctx context.Context, cfg *config.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.orchestrator == nil {
		return errors.InternalError("daemon is not running").Build()
	}
	if cfg.HTTP.Addr != d.cfg.HTTP.Addr {
		d.logger.Info("HTTP address changed", slog.String("from", d.cfg.HTTP.Addr), slog.String("to", cfg.HTTP.Addr))
	}
	if cfg.Monitoring.Metrics.Enabled != d.cfg.Monitoring.Metrics.Enabled {
		d.logger.Warn("Metrics toggle changes require a restart")
	}

	if err := d.orchestrator.StopAll(ctx); err != nil {
		d.logger.Warn("Errors while stopping previous services", logfields.Error(err))
	}
	if err := d.startServices(ctx, cfg); err != nil {
		d.logger.Error("Failed to start services for new configuration, restoring previous", logfields.Error(err))
		if restoreErr := d.startServices(ctx, d.cfg); restoreErr != nil {
			d.orchestrator = nil
			d.http = nil
			return errors.InternalError("failed to restore previous configuration").WithCause(restoreErr).Build()
		}
		return err
	}
	d.cfg = cfg
	return nil
}

// startServices builds a runtime for cfg and starts its services. Callers hold d.mu.
func (d *Daemon) startServices(ctx context.Context, cfg *config.Config) error {
	rt, err := NewRuntime(cfg, d.recorder, d.logger)
	if err != nil {
		return err
	}

	orchestrator := services.NewServiceOrchestrator().WithLogger(d.logger)
	srv := server.New(server.Config{
		Addr:        cfg.HTTP.Addr,
		MetricsPath: cfg.Monitoring.Metrics.Path,
		Metrics:     d.metrics,
	}, server.Services{
		Selector: rt.Selector,
		Graph:    rt.Generator,
		Posts:    rt.Store,
		Authors:  rt.Store,
		Health:   rt.Store,
		SiteURL:  cfg.Site.URL,
	}, server.WithRecorder(d.recorder), server.WithLogger(d.logger))

	managed := []services.ManagedService{&storageService{rt: rt}, &httpService{srv: srv}}
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(rt.Store, cfg.Scheduler.Group,
			scheduler.WithRecorder(d.recorder), scheduler.WithLogger(d.logger))
		if err != nil {
			_ = rt.Close()
			return err
		}
		managed = append(managed, &schedulerService{sched: sched, interval: cfg.CleanupInterval()})
	}
	for _, svc := range managed {
		if err := orchestrator.RegisterService(svc); err != nil {
			_ = rt.Close()
			return err
		}
	}
	if err := orchestrator.StartAll(ctx); err != nil {
		_ = rt.Close()
		return err
	}

	d.orchestrator = orchestrator
	d.http = srv
	return nil
}

// Config returns the active configuration.
func (d *Daemon) Config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// HTTPAddr returns the bound API address, or "" when not running.
func (d *Daemon) HTTPAddr() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.http == nil {
		return ""
	}
	return d.http.ListenAddr()
}

// Status reports the managed services.
func (d *Daemon) Status() []services.ServiceInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.orchestrator == nil {
		return nil
	}
	return d.orchestrator.AllServiceInfo()
}
