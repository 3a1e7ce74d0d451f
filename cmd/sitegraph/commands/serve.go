package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/daemon"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr            string        `help:"Listen address, overrides http.addr"`
	ShutdownTimeout time.Duration `name:"shutdown-timeout" help:"Grace period for in-flight requests" default:"30s"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := g.loadConfig(root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.HTTP.Addr = s.Addr
	}
	return runUntilSignal(daemon.New("", cfg, daemon.WithLogger(g.Logger)), s.ShutdownTimeout)
}

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct {
	ShutdownTimeout time.Duration `name:"shutdown-timeout" help:"Grace period for in-flight requests" default:"30s"`
	ReloadDebounce  time.Duration `name:"reload-debounce" help:"Quiet period before a changed configuration is applied" default:"2s"`
}

func (d *DaemonCmd) Run(g *Global, root *CLI) error {
	cfg, err := g.loadConfig(root)
	if err != nil {
		return err
	}
	return runUntilSignal(daemon.New(root.Config, cfg,
		daemon.WithLogger(g.Logger),
		daemon.WithReloadDebounce(d.ReloadDebounce)), d.ShutdownTimeout)
}

func runUntilSignal(d *daemon.Daemon, shutdownTimeout time.Duration) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return d.Run(ctx, shutdownTimeout)
}
