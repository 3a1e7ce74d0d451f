// Package commerce is the configuration-backed store integration: which pages are store
// pages, and which products are hidden from the catalog.
package commerce

import (
	"context"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/util/sets"
)

// VisibilityStore reports catalog visibility of products.
type VisibilityStore interface {
	CatalogHidden(ctx context.Context, ids []int64) (sets.Set[int64], error)
}

// Integration implements sitemap.Commerce from configuration and storage.
type Integration struct {
	cfg        config.CommerceConfig
	storePages sets.Set[int64]
	visibility VisibilityStore
}

// New returns the integration described by cfg.
func New(cfg config.CommerceConfig, visibility VisibilityStore) *Integration {
	return &Integration{
		cfg:        cfg,
		storePages: sets.New(cfg.StorePageIDs...),
		visibility: visibility,
	}
}

func (i *Integration) Active() bool                 { return i.cfg.Enabled }
func (i *Integration) NoindexesStorePages() bool    { return i.cfg.NoindexStorePages }
func (i *Integration) ExcludesHiddenProducts() bool { return i.cfg.ExcludeHiddenProducts }

// IsStorePage reports whether id is one of the configured store pages.
func (i *Integration) IsStorePage(id int64) bool { return i.storePages.Has(id) }

// CatalogHidden returns the subset of ids hidden from the catalog.
func (i *Integration) CatalogHidden(ctx context.Context, ids []int64) (sets.Set[int64], error) {
	if i.visibility == nil || len(ids) == 0 {
		return sets.New[int64](), nil
	}
	return i.visibility.CatalogHidden(ctx, ids)
}
