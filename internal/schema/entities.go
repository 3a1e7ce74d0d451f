package schema

import (
	"context"
	"strconv"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/content"
)

// WebSite builds the site node, with a search action on the home page.
func (g *Generator) WebSite() Builder {
	return BuilderFunc(func(_ context.Context, pc *PageContext) (*Node, error) {
		if g.site.URL == "" {
			return nil, nil
		}
		home := g.site.Home()
		n := NewNode("WebSite", siteNodeID(g.site.URL, "website")).
			Set("url", home).
			Set("name", plainText(g.site.Name)).
			Set("description", plainText(g.site.Description)).
			Set("inLanguage", g.site.Language).
			Set("publisher", Ref{ID: g.site.ownerID()})
		if pc.Kind == KindHome {
			n.Set("potentialAction", searchAction(home))
		}
		return n, nil
	})
}

func searchAction(home string) *Node {
	target := NewNode("EntryPoint", "").Set("urlTemplate", home+"?s={search_term_string}")
	return NewNode("SearchAction", "").
		Set("target", target).
		Set("query-input", "required name=search_term_string")
}

// Owner builds the node of whoever the site represents.
func (g *Generator) Owner() Builder {
	if g.site.Represents == config.RepresentsPerson {
		return g.SitePerson()
	}
	return g.Organization()
}

// Organization builds the publishing organization.
func (g *Generator) Organization() Builder {
	return BuilderFunc(func(ctx context.Context, _ *PageContext) (*Node, error) {
		if g.site.URL == "" {
			return nil, nil
		}
		name := g.site.OrganizationName
		if name == "" {
			name = g.site.Name
		}
		n := NewNode("Organization", siteNodeID(g.site.URL, "organization")).
			Set("name", plainText(name)).
			Set("url", g.site.Home())

		logo, err := g.image(ctx, ImageRef{ID: g.site.LogoID, URL: g.site.LogoURL}, graphIDOrganizationLogo)
		if err != nil {
			return nil, err
		}
		if logo != nil {
			n.Set("logo", logo).Set("image", logo.Ref())
		}
		return n.Set("sameAs", g.social.SiteURLs()), nil
	})
}

// SitePerson builds the person the site represents.
func (g *Generator) SitePerson() Builder {
	return BuilderFunc(func(ctx context.Context, pc *PageContext) (*Node, error) {
		if g.site.URL == "" || g.site.PersonID <= 0 || g.authors == nil {
			return nil, nil
		}
		a, ok, err := g.authors.Author(ctx, g.site.PersonID)
		if err != nil || !ok {
			return nil, err
		}
		n := NewNode("Person", siteNodeID(g.site.URL, "person")).
			Set("name", plainText(a.FullName())).
			Set("image", g.avatar(pc, a, graphIDPersonImage)).
			Set("sameAs", g.social.AuthorURLs(a))
		return n, nil
	})
}

// AuthorPerson builds the person who wrote the post, or whose archive is shown.
func (g *Generator) AuthorPerson() Builder {
	return BuilderFunc(func(ctx context.Context, pc *PageContext) (*Node, error) {
		if pc.Kind != KindSingular && pc.Kind != KindAuthor {
			return nil, nil
		}
		a, err := g.pageAuthor(ctx, pc)
		if err != nil || a == nil {
			return nil, err
		}
		n := NewNode("Person", g.authorID(*a)).
			Set("url", g.authorURL(*a)).
			Set("name", plainText(a.FullName())).
			Set("description", plainText(a.Description)).
			Set("image", g.avatar(pc, *a, graphIDAuthorImage)).
			Set("sameAs", g.social.AuthorURLs(*a))
		return n, nil
	})
}

func (g *Generator) authorURL(a content.Author) string {
	return authorURL(g.site.URL, &a)
}

func (g *Generator) authorID(a content.Author) string {
	return g.authorURL(a) + "#author"
}

// authorURL is the author's archive URL, falling back to the author query on the home URL.
func authorURL(siteURL string, a *content.Author) string {
	if a.URL != "" {
		return a.URL
	}
	return homeURL(siteURL) + "?author=" + strconv.FormatInt(a.ID, 10)
}
