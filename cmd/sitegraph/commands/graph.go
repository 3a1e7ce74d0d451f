package commands

import (
	"context"

	"git.home.luguber.info/inful/sitegraph/internal/daemon"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/schema"
)

// GraphCmd groups the graph subcommands, one per page kind.
type GraphCmd struct {
	Home   GraphHomeCmd   `cmd:"" help:"Graph of the front page"`
	Post   GraphPostCmd   `cmd:"" help:"Graph of the singular page of a post"`
	Author GraphAuthorCmd `cmd:"" help:"Graph of the archive page of an author"`
	Search GraphSearchCmd `cmd:"" help:"Graph of a search results page"`
}

type pageResolver func(ctx context.Context, rt *daemon.Runtime) (*schema.PageContext, error)

// printGraph resolves the page against a fresh runtime and prints its graph as JSON-LD.
func (g *Global) printGraph(root *CLI, resolve pageResolver) error {
	rt, err := g.openRuntime(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			g.Logger.Warn("Failed to close content store", logfields.Error(err))
		}
	}()

	ctx := context.Background()
	pc, err := resolve(ctx, rt)
	if err != nil {
		return err
	}
	nodes, err := rt.Generator.BuildGraph(ctx, pc)
	if err != nil {
		return err
	}
	return g.printJSON(schema.NewGraph(nodes))
}

type GraphHomeCmd struct{}

func (c *GraphHomeCmd) Run(g *Global, root *CLI) error {
	return g.printGraph(root, func(_ context.Context, rt *daemon.Runtime) (*schema.PageContext, error) {
		return schema.HomeContext(rt.Config.Site.URL), nil
	})
}

type GraphPostCmd struct {
	ID  int64  `arg:"" help:"Post id"`
	URL string `help:"Canonical URL of the page, defaults to the ?p= permalink"`
}

func (c *GraphPostCmd) Run(g *Global, root *CLI) error {
	return g.printGraph(root, func(ctx context.Context, rt *daemon.Runtime) (*schema.PageContext, error) {
		post, ok, err := rt.Store.Post(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NotFoundError("post not found").WithContext("id", c.ID).Build()
		}
		return schema.PostContext(rt.Config.Site.URL, &post, c.URL), nil
	})
}

type GraphAuthorCmd struct {
	ID int64 `arg:"" help:"Author id"`
}

func (c *GraphAuthorCmd) Run(g *Global, root *CLI) error {
	return g.printGraph(root, func(ctx context.Context, rt *daemon.Runtime) (*schema.PageContext, error) {
		author, ok, err := rt.Store.Author(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NotFoundError("author not found").WithContext("id", c.ID).Build()
		}
		return schema.AuthorContext(rt.Config.Site.URL, &author), nil
	})
}

type GraphSearchCmd struct {
	Query string `arg:"" help:"Search terms"`
}

func (c *GraphSearchCmd) Run(g *Global, root *CLI) error {
	return g.printGraph(root, func(_ context.Context, rt *daemon.Runtime) (*schema.PageContext, error) {
		return schema.SearchContext(rt.Config.Site.URL, c.Query), nil
	})
}
