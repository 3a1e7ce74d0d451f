package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/scheduler"
)

// CleanupCmd implements the 'cleanup' command.
type CleanupCmd struct {
	Group string `help:"Scheduler group to clean, defaults to the configured group"`
}

func (c *CleanupCmd) Run(g *Global, root *CLI) error {
	rt, err := g.openRuntime(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			g.Logger.Warn("Failed to close content store", logfields.Error(err))
		}
	}()

	group := c.Group
	if group == "" {
		group = rt.Config.Scheduler.Group
	}
	sched, err := scheduler.New(rt.Store, group, scheduler.WithLogger(g.Logger))
	if err != nil {
		return err
	}
	defer func() { _ = sched.Stop() }()

	removed, err := sched.RunCleanup(context.Background())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Removed %d actions from group %s\n", removed, group)
	return nil
}
