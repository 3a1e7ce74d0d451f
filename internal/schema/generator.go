package schema

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
)

// Builder produces one graph node for a page. A nil node with a nil error means the node
// does not apply (or its prerequisites are missing) and is left out of the graph.
type Builder interface {
	Build(ctx context.Context, pc *PageContext) (*Node, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, pc *PageContext) (*Node, error)

func (f BuilderFunc) Build(ctx context.Context, pc *PageContext) (*Node, error) { return f(ctx, pc) }

// Generator assembles JSON-LD graphs. It is safe for concurrent use; all per-request state
// lives on the PageContext.
type Generator struct {
	site     Site
	social   SocialResolver
	media    content.MediaStore
	authors  content.AuthorStore
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(g *Generator) { g.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(g *Generator) { g.logger = l } }

// NewGenerator returns a Generator for site.
func NewGenerator(site Site, media content.MediaStore, authors content.AuthorStore, opts ...Option) *Generator {
	g := &Generator{
		site:     site,
		social:   NewSocialResolver(site.Social),
		media:    media,
		authors:  authors,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildGraph builds every node that applies to pc, in a fixed order, omitting empty
// results. Storage errors abort the build and are returned unmodified.
func (g *Generator) BuildGraph(ctx context.Context, pc *PageContext) ([]*Node, error) {
	start := time.Now()
	var nodes []*Node
	for _, b := range g.builders(pc) {
		n, err := b.Build(ctx, pc)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		nodes = append(nodes, n)
	}
	g.recorder.ObserveGraphDuration(string(pc.Kind), time.Since(start))
	g.recorder.ObserveGraphNodes(string(pc.Kind), len(nodes))
	g.logger.DebugContext(ctx, "Built structured data graph",
		logfields.PageKind(string(pc.Kind)), logfields.URL(pc.URL), logfields.Count(len(nodes)))
	return nodes, nil
}

func (g *Generator) builders(pc *PageContext) []Builder {
	list := []Builder{g.WebSite(), g.Owner(), g.Page(pc)}
	switch pc.Kind {
	case KindSingular:
		if b := g.ArticleFor(pc); b != nil {
			list = append(list, b)
		}
		list = append(list, g.AuthorPerson())
	case KindAuthor:
		list = append(list, g.AuthorPerson())
	}
	return list
}

// pageAuthor returns the author the page is about or written by, memoized on pc.
func (g *Generator) pageAuthor(ctx context.Context, pc *PageContext) (*content.Author, error) {
	if pc.authorDone {
		return pc.author, nil
	}
	switch {
	case pc.Author != nil:
		pc.author = pc.Author
	case pc.Post != nil && pc.Post.AuthorID > 0 && g.authors != nil:
		a, ok, err := g.authors.Author(ctx, pc.Post.AuthorID)
		if err != nil {
			return nil, err
		}
		if ok {
			pc.author = &a
		}
	}
	pc.authorDone = true
	return pc.author, nil
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
