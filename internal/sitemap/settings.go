package sitemap

import (
	"slices"

	"git.home.luguber.info/inful/sitegraph/internal/config"
)

// Settings is the selection configuration.
type Settings struct {
	// Indexes splits selections into windows of LinksPerIndex entries.
	Indexes       bool
	LinksPerIndex int
	// AttachmentsRedirected drops attachment-only selections because attachment URLs
	// redirect elsewhere.
	AttachmentsRedirected bool
	// ContentTypes maps every registered type to its noindex-by-default flag.
	ContentTypes map[string]bool
	Taxonomies   []string
}

// SettingsFromConfig derives selection settings from the configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	types := make(map[string]bool, len(cfg.ContentTypes))
	for _, ct := range cfg.ContentTypes {
		types[ct.Name] = ct.Noindex
	}
	return Settings{
		Indexes:               cfg.Sitemap.Indexes,
		LinksPerIndex:         cfg.Sitemap.LinksPerIndex,
		AttachmentsRedirected: cfg.Sitemap.AttachmentRedirect != config.AttachmentRedirectDisabled,
		ContentTypes:          types,
		Taxonomies:            append([]string(nil), cfg.Taxonomies...),
	}
}

func (s Settings) registered(contentType string) bool {
	_, ok := s.ContentTypes[contentType]
	return ok
}

func (s Settings) hasTaxonomy(taxonomy string) bool {
	return slices.Contains(s.Taxonomies, taxonomy)
}
