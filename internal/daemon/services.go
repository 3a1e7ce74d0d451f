package daemon

import (
	"context"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/scheduler"
	"git.home.luguber.info/inful/sitegraph/internal/server"
	"git.home.luguber.info/inful/sitegraph/internal/services"
)

const (
	serviceStorage   = "storage"
	serviceScheduler = "scheduler"
	serviceHTTP      = "http"
)

// storageService owns the runtime's content store.
type storageService struct {
	rt      *Runtime
	running atomic.Bool
}

func (s *storageService) Name() string           { return serviceStorage }
func (s *storageService) Dependencies() []string { return nil }

func (s *storageService) Start(ctx context.Context) error {
	if err := s.rt.Store.Ping(ctx); err != nil {
		return err
	}
	s.running.Store(true)
	return nil
}

func (s *storageService) Stop(context.Context) error {
	s.running.Store(false)
	return s.rt.Close()
}

func (s *storageService) Health() services.HealthStatus {
	if !s.running.Load() {
		return services.Unhealthy("storage closed")
	}
	if err := s.rt.Store.Ping(context.Background()); err != nil {
		return services.Unhealthy(err.Error())
	}
	return services.Healthy()
}

// schedulerService runs the bookkeeping cleanup job.
type schedulerService struct {
	sched    *scheduler.Scheduler
	interval time.Duration
	running  atomic.Bool
}

func (s *schedulerService) Name() string           { return serviceScheduler }
func (s *schedulerService) Dependencies() []string { return []string{serviceStorage} }

func (s *schedulerService) Start(context.Context) error {
	if _, err := s.sched.ScheduleCleanup(s.interval); err != nil {
		return err
	}
	s.sched.Start()
	s.running.Store(true)
	return nil
}

func (s *schedulerService) Stop(context.Context) error {
	s.running.Store(false)
	return s.sched.Stop()
}

func (s *schedulerService) Health() services.HealthStatus {
	if s.running.Load() {
		return services.Healthy()
	}
	return services.Unhealthy("scheduler not running")
}

// httpService serves the API.
type httpService struct {
	srv     *server.Server
	running atomic.Bool
}

func (s *httpService) Name() string           { return serviceHTTP }
func (s *httpService) Dependencies() []string { return []string{serviceStorage} }

func (s *httpService) Start(context.Context) error {
	if err := s.srv.Start(); err != nil {
		return err
	}
	s.running.Store(true)
	return nil
}

func (s *httpService) Stop(ctx context.Context) error {
	s.running.Store(false)
	return s.srv.Shutdown(ctx)
}

func (s *httpService) Health() services.HealthStatus {
	if s.running.Load() {
		return services.Healthy()
	}
	return services.Unhealthy("http server not running")
}
