package daemon

import (
	"log/slog"

	"git.home.luguber.info/inful/sitegraph/internal/commerce"
	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/content/sqlite"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
	"git.home.luguber.info/inful/sitegraph/internal/schema"
	"git.home.luguber.info/inful/sitegraph/internal/sitemap"
)

// Runtime is the set of request-serving components derived from one configuration.
type Runtime struct {
	Config    *config.Config
	Store     *sqlite.Store
	Selector  *sitemap.Selector
	Generator *schema.Generator
}

// NewRuntime opens the content store and wires the selector and graph generator.
func NewRuntime(cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) (*Runtime, error) {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	store, err := sqlite.Open(cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}

	selector := sitemap.New(store, sitemap.SettingsFromConfig(cfg),
		sitemap.WithExclusions(sitemap.NewStaticExclusions(cfg.Sitemap.ExcludedPosts, cfg.Sitemap.ExcludedTerms)),
		sitemap.WithCommerce(commerce.New(cfg.Commerce, store)),
		sitemap.WithRecorder(recorder),
		sitemap.WithLogger(logger))
	generator := schema.NewGenerator(schema.SiteFromConfig(cfg), store, store,
		schema.WithRecorder(recorder),
		schema.WithLogger(logger))

	return &Runtime{Config: cfg, Store: store, Selector: selector, Generator: generator}, nil
}

// Close releases the content store.
func (r *Runtime) Close() error {
	return r.Store.Close()
}
