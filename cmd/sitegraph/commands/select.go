package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/logfields"
)

// SelectCmd implements the 'select' command.
type SelectCmd struct {
	Types       []string `arg:"" help:"Content types to select"`
	WindowFlags `embed:""`
}

func (s *SelectCmd) Run(g *Global, root *CLI) error {
	opts, err := s.options(time.Now())
	if err != nil {
		return err
	}
	rt, err := g.openRuntime(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			g.Logger.Warn("Failed to close content store", logfields.Error(err))
		}
	}()

	items, err := rt.Selector.SelectContent(context.Background(), s.Types, opts)
	if err != nil {
		return err
	}
	return g.printJSON(items)
}

// TermsCmd implements the 'terms' command.
type TermsCmd struct {
	Taxonomy    string `arg:"" help:"Taxonomy to select"`
	WindowFlags `embed:""`
}

func (c *TermsCmd) Run(g *Global, root *CLI) error {
	opts, err := c.options(time.Now())
	if err != nil {
		return err
	}
	rt, err := g.openRuntime(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			g.Logger.Warn("Failed to close content store", logfields.Error(err))
		}
	}()

	terms, err := rt.Selector.SelectTerms(context.Background(), c.Taxonomy, opts)
	if err != nil {
		return err
	}
	return g.printJSON(terms)
}
