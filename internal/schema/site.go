package schema

import (
	"git.home.luguber.info/inful/sitegraph/internal/config"
)

// Site is the site-wide input of graph assembly.
type Site struct {
	URL              string
	Name             string
	Description      string
	Language         string
	Represents       config.Represents
	OrganizationName string
	LogoURL          string
	LogoID           int64
	PersonID         int64
	ContactPageID    int64
	ShowAvatars      bool
	Social           config.SocialConfig
	// ArticleTypes maps content types to their article variant; absent means none.
	ArticleTypes map[string]config.ArticleType
}

// SiteFromConfig derives the graph site settings from the configuration.
func SiteFromConfig(cfg *config.Config) Site {
	articleTypes := make(map[string]config.ArticleType, len(cfg.ContentTypes))
	for _, ct := range cfg.ContentTypes {
		if ct.ArticleType != config.ArticleTypeNone && ct.ArticleType != "" {
			articleTypes[ct.Name] = ct.ArticleType
		}
	}
	return Site{
		URL:              cfg.Site.URL,
		Name:             cfg.Site.Name,
		Description:      cfg.Site.Description,
		Language:         cfg.Site.Language,
		Represents:       cfg.Site.Represents,
		OrganizationName: cfg.Site.OrganizationName,
		LogoURL:          cfg.Site.LogoURL,
		LogoID:           cfg.Site.LogoID,
		PersonID:         cfg.Site.PersonID,
		ContactPageID:    cfg.Site.ContactPageID,
		ShowAvatars:      cfg.Site.ShowAvatars,
		Social:           cfg.Social,
		ArticleTypes:     articleTypes,
	}
}

// Home returns the trailing-slashed home URL.
func (s Site) Home() string { return homeURL(s.URL) }

func (s Site) ownerID() string {
	if s.Represents == config.RepresentsPerson {
		return siteNodeID(s.URL, "person")
	}
	return siteNodeID(s.URL, "organization")
}
