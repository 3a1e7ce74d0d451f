package schema

import (
	"context"
	"strings"
)

// Page node types.
const (
	TypeWebPage           = "WebPage"
	TypeContactPage       = "ContactPage"
	TypeCollectionPage    = "CollectionPage"
	TypeProfilePage       = "ProfilePage"
	TypeSearchResultsPage = "SearchResultsPage"
)

// pageType picks the page variant for pc.
func (g *Generator) pageType(pc *PageContext) string {
	switch pc.Kind {
	case KindSingular:
		if pc.Post != nil && g.site.ContactPageID > 0 && pc.Post.ID == g.site.ContactPageID {
			return TypeContactPage
		}
		return TypeWebPage
	case KindTerm, KindDate, KindArchive:
		return TypeCollectionPage
	case KindAuthor:
		return TypeProfilePage
	case KindSearch:
		return TypeSearchResultsPage
	default:
		return TypeWebPage
	}
}

// pageNodeID is the id of the page node built for pc.
func (g *Generator) pageNodeID(pc *PageContext) string {
	return pc.nodeID(strings.ToLower(g.pageType(pc)))
}

// Page returns the builder of the page variant that applies to pc.
func (g *Generator) Page(pc *PageContext) Builder {
	return g.PageOf(g.pageType(pc))
}

// PageOf returns a page builder producing nodes of the given type.
func (g *Generator) PageOf(typ string) Builder {
	return BuilderFunc(func(ctx context.Context, pc *PageContext) (*Node, error) {
		return g.buildPage(ctx, pc, typ)
	})
}

func (g *Generator) buildPage(ctx context.Context, pc *PageContext, typ string) (*Node, error) {
	if pc.URL == "" {
		return nil, nil
	}
	n := NewNode(typ, pc.nodeID(strings.ToLower(typ))).
		Set("url", pc.URL).
		Set("name", g.title(pc)).
		Set("description", g.pageDescription(pc)).
		Set("inLanguage", g.site.Language).
		Set("isPartOf", Ref{ID: siteNodeID(g.site.URL, "website")})

	switch pc.Kind {
	case KindHome:
		n.Set("about", Ref{ID: g.site.ownerID()})
	case KindSingular:
		if pc.Post == nil {
			break
		}
		img, err := g.featuredImage(ctx, pc.Post)
		if err != nil {
			return nil, err
		}
		if img != nil {
			n.Set("primaryImageOfPage", img.Ref())
		}
		a, err := g.pageAuthor(ctx, pc)
		if err != nil {
			return nil, err
		}
		if a != nil {
			n.Set("author", Ref{ID: g.authorID(*a)})
		}
		n.Set("datePublished", dateString(pc.Post.PublishedAt)).
			Set("dateModified", dateString(pc.Post.ModifiedAt))
	case KindAuthor:
		if pc.Author != nil {
			n.Set("mainEntity", Ref{ID: g.authorID(*pc.Author)})
		}
	}
	return n, nil
}

func (g *Generator) pageDescription(pc *PageContext) string {
	switch pc.Kind {
	case KindHome:
		return plainText(g.site.Description)
	case KindSingular:
		if pc.Post != nil {
			return description(pc.Post.Excerpt, pc.Post.Content)
		}
	case KindAuthor:
		if pc.Author != nil {
			return plainText(pc.Author.Description)
		}
	}
	return ""
}
