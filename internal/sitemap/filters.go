package sitemap

import (
	"context"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/util/sets"
)

// Filter names used in logs and metrics.
const (
	FilterCommercePage      = "commerce_page"
	FilterProductVisibility = "product_visibility"
	FilterAttachmentParent  = "attachment_parent"
)

// Commerce is the optional store integration consulted by the eligibility filters.
type Commerce interface {
	// Active reports whether the integration is present.
	Active() bool
	// NoindexesStorePages reports whether the integration noindexes its informational pages.
	NoindexesStorePages() bool
	IsStorePage(id int64) bool
	// ExcludesHiddenProducts reports whether catalog-hidden products leave the sitemap.
	ExcludesHiddenProducts() bool
	CatalogHidden(ctx context.Context, ids []int64) (sets.Set[int64], error)
}

type noCommerce struct{}

func (noCommerce) Active() bool                 { return false }
func (noCommerce) NoindexesStorePages() bool    { return false }
func (noCommerce) IsStorePage(int64) bool       { return false }
func (noCommerce) ExcludesHiddenProducts() bool { return false }
func (noCommerce) CatalogHidden(context.Context, []int64) (sets.Set[int64], error) {
	return sets.New[int64](), nil
}

// filter runs the eligibility filter of each requested type. Each filter only inspects
// rows of its own type.
func (s *Selector) filter(ctx context.Context, types []string, items []content.ContentItem) ([]content.ContentItem, error) {
	var err error
	for _, t := range types {
		if len(items) == 0 {
			break
		}
		switch t {
		case content.TypePage:
			items = s.filterStorePages(ctx, items)
		case content.TypeProduct:
			items, err = s.filterHiddenProducts(ctx, items)
		case content.TypeAttachment:
			items, err = s.filterAttachments(ctx, items)
		}
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

// filterStorePages drops store informational pages (cart, checkout, account) when the
// commerce integration noindexes them.
func (s *Selector) filterStorePages(ctx context.Context, items []content.ContentItem) []content.ContentItem {
	if !s.commerce.Active() || !s.commerce.NoindexesStorePages() {
		return items
	}
	kept := make([]content.ContentItem, 0, len(items))
	for _, it := range items {
		if it.Type == content.TypePage && s.commerce.IsStorePage(it.ID) {
			continue
		}
		kept = append(kept, it)
	}
	s.dropped(ctx, FilterCommercePage, len(items)-len(kept))
	return kept
}

// filterHiddenProducts drops products whose catalog visibility is hidden.
func (s *Selector) filterHiddenProducts(ctx context.Context, items []content.ContentItem) ([]content.ContentItem, error) {
	if !s.commerce.Active() || !s.commerce.ExcludesHiddenProducts() {
		return items, nil
	}
	var productIDs []int64
	for _, it := range items {
		if it.Type == content.TypeProduct {
			productIDs = append(productIDs, it.ID)
		}
	}
	if len(productIDs) == 0 {
		return items, nil
	}
	hidden, err := s.commerce.CatalogHidden(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	kept := make([]content.ContentItem, 0, len(items))
	for _, it := range items {
		if it.Type == content.TypeProduct && hidden.Has(it.ID) {
			continue
		}
		kept = append(kept, it)
	}
	s.dropped(ctx, FilterProductVisibility, len(items)-len(kept))
	return kept, nil
}

// filterAttachments drops attachments whose parent is missing, unpublished,
// password-protected or of an unregistered type. Attachments without a parent pass.
func (s *Selector) filterAttachments(ctx context.Context, items []content.ContentItem) ([]content.ContentItem, error) {
	kept := make([]content.ContentItem, 0, len(items))
	parents := make(map[int64]bool)
	for _, it := range items {
		if it.Type != content.TypeAttachment || it.ParentID == 0 {
			kept = append(kept, it)
			continue
		}
		ok, cached := parents[it.ParentID]
		if !cached {
			parent, found, err := s.store.Post(ctx, it.ParentID)
			if err != nil {
				return nil, err
			}
			ok = found && s.eligibleParent(parent)
			parents[it.ParentID] = ok
		}
		if ok {
			kept = append(kept, it)
		}
	}
	s.dropped(ctx, FilterAttachmentParent, len(items)-len(kept))
	return kept, nil
}

func (s *Selector) eligibleParent(parent content.ContentItem) bool {
	return parent.Status == content.StatusPublish && !parent.Protected && s.settings.registered(parent.Type)
}

func (s *Selector) dropped(ctx context.Context, filter string, n int) {
	if n == 0 {
		return
	}
	s.recorder.AddFilterDropped(filter, n)
	s.logger.DebugContext(ctx, "Eligibility filter dropped entries", logfields.Filter(filter), logfields.Dropped(n))
}
