package sitemap

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
)

// Options are the per-call selection arguments.
type Options struct {
	// Root requests the index/count fast path.
	Root bool
	// MaxAge is a lower bound on modification time when non-zero.
	MaxAge time.Time
	// Offset positions the window when indexes are enabled.
	Offset int
}

// Selector resolves sitemap entries. It holds no per-call state and is safe for
// concurrent use.
type Selector struct {
	store      content.Store
	settings   Settings
	exclusions Exclusions
	commerce   Commerce
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithExclusions sets the exclusion computation.
func WithExclusions(e Exclusions) Option { return func(s *Selector) { s.exclusions = e } }

// WithCommerce sets the commerce integration. Without one, no commerce filter runs.
func WithCommerce(c Commerce) Option { return func(s *Selector) { s.commerce = c } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(s *Selector) { s.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Selector) { s.logger = l } }

// New constructs a Selector over store.
func New(store content.Store, settings Settings, opts ...Option) *Selector {
	s := &Selector{
		store:      store,
		settings:   settings,
		exclusions: noExclusions{},
		commerce:   noCommerce{},
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectContent returns the eligible content of the requested types in ascending id order.
// Unregistered types are ignored; when none remain the result is empty. Storage errors
// are returned unmodified and never accompanied by a partial result.
func (s *Selector) SelectContent(ctx context.Context, types []string, opts Options) ([]content.ContentItem, error) {
	start := time.Now()
	items, err := s.selectContent(ctx, types, opts)
	s.observe(metrics.KindContent, start, len(items), err)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Selected sitemap content",
		logfields.ContentTypes(types), logfields.Offset(opts.Offset), logfields.Count(len(items)),
		slog.Bool("root", opts.Root))
	return items, nil
}

func (s *Selector) selectContent(ctx context.Context, types []string, opts Options) ([]content.ContentItem, error) {
	requested := s.registeredTypes(types)
	if len(requested) == 0 {
		return nil, nil
	}
	attachmentOnly := len(requested) == 1 && requested[0] == content.TypeAttachment
	if attachmentOnly && s.settings.AttachmentsRedirected {
		return nil, nil
	}

	excludedPosts, err := s.exclusions.ExcludedPosts(ctx)
	if err != nil {
		return nil, err
	}
	excludedTerms, err := s.exclusions.ExcludedTerms(ctx)
	if err != nil {
		return nil, err
	}

	q := content.PostQuery{
		ExcludedIDs:     excludedPosts,
		ExcludedTermIDs: excludedTerms,
		ModifiedAfter:   opts.MaxAge,
		// Attachments are always materialized because the parent filter needs their rows.
		IDsOnly: opts.Root && !attachmentOnly,
	}
	for _, t := range requested {
		q.Clauses = append(q.Clauses, content.ClauseFor(t, s.settings.ContentTypes[t]))
	}
	if s.settings.Indexes && !opts.Root {
		q.Offset = opts.Offset
		q.Limit = s.settings.LinksPerIndex
	}

	items, err := s.store.Posts(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.IDsOnly {
		return items, nil
	}
	return s.filter(ctx, requested, items)
}

// SelectTerms returns the eligible terms of a registered taxonomy in ascending id order.
func (s *Selector) SelectTerms(ctx context.Context, taxonomy string, opts Options) ([]content.TermItem, error) {
	start := time.Now()
	terms, err := s.selectTerms(ctx, taxonomy, opts)
	s.observe(metrics.KindTerms, start, len(terms), err)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Selected sitemap terms",
		logfields.Taxonomy(taxonomy), logfields.Offset(opts.Offset), logfields.Count(len(terms)))
	return terms, nil
}

func (s *Selector) selectTerms(ctx context.Context, taxonomy string, opts Options) ([]content.TermItem, error) {
	if taxonomy == "" || !s.settings.hasTaxonomy(taxonomy) {
		return nil, nil
	}
	excludedTerms, err := s.exclusions.ExcludedTerms(ctx)
	if err != nil {
		return nil, err
	}
	q := content.TermQuery{Taxonomy: taxonomy, ExcludedTermIDs: excludedTerms}
	if s.settings.Indexes && !opts.Root {
		q.Offset = opts.Offset
		q.Limit = s.settings.LinksPerIndex
	}
	return s.store.Terms(ctx, q)
}

// registeredTypes keeps the registered, distinct requested types in request order.
func (s *Selector) registeredTypes(types []string) []string {
	out := make([]string, 0, len(types))
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if t == "" || seen[t] || !s.settings.registered(t) {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (s *Selector) observe(kind string, start time.Time, n int, err error) {
	s.recorder.ObserveSelectDuration(kind, time.Since(start))
	switch {
	case err != nil:
		s.recorder.IncSelectResult(kind, metrics.ResultError)
	case n == 0:
		s.recorder.IncSelectResult(kind, metrics.ResultEmpty)
	default:
		s.recorder.IncSelectResult(kind, metrics.ResultSuccess)
		s.recorder.AddSelected(kind, n)
	}
}
