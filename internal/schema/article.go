package schema

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/sitegraph/internal/config"
)

// Article node types.
const (
	TypeArticle     = "Article"
	TypeBlogPosting = "BlogPosting"
	TypeNewsArticle = "NewsArticle"
)

// Article builds the base article node of a singular page.
func (g *Generator) Article() Builder {
	return BuilderFunc(g.buildArticle)
}

// BlogPosting derives from Article, replacing only the type and id.
func (g *Generator) BlogPosting() Builder { return g.derivedArticle(TypeBlogPosting) }

// NewsArticle derives from Article, replacing only the type and id.
func (g *Generator) NewsArticle() Builder { return g.derivedArticle(TypeNewsArticle) }

// ArticleFor returns the article variant configured for the page's content type, or nil.
func (g *Generator) ArticleFor(pc *PageContext) Builder {
	if pc.Post == nil {
		return nil
	}
	switch g.site.ArticleTypes[pc.Post.Type] {
	case config.ArticleTypeArticle:
		return g.Article()
	case config.ArticleTypeBlogPosting:
		return g.BlogPosting()
	case config.ArticleTypeNewsArticle:
		return g.NewsArticle()
	default:
		return nil
	}
}

func (g *Generator) derivedArticle(typ string) Builder {
	parent := g.Article()
	return BuilderFunc(func(ctx context.Context, pc *PageContext) (*Node, error) {
		base, err := parent.Build(ctx, pc)
		if err != nil || base == nil {
			return nil, err
		}
		return base.Clone().
			Set("@type", typ).
			Set("@id", pc.nodeID(strings.ToLower(typ))), nil
	})
}

func (g *Generator) buildArticle(ctx context.Context, pc *PageContext) (*Node, error) {
	if pc.Kind != KindSingular || pc.Post == nil || pc.URL == "" {
		return nil, nil
	}
	post := pc.Post
	n := NewNode(TypeArticle, pc.nodeID("article")).
		Set("name", g.title(pc)).
		Set("headline", plainText(post.Title)).
		Set("description", description(post.Excerpt, post.Content))

	a, err := g.pageAuthor(ctx, pc)
	if err != nil {
		return nil, err
	}
	if a != nil {
		n.Set("author", Ref{ID: g.authorID(*a)})
	}
	page := Ref{ID: g.pageNodeID(pc)}
	n.Set("publisher", Ref{ID: g.site.ownerID()}).
		Set("datePublished", dateString(post.PublishedAt)).
		Set("dateModified", dateString(post.ModifiedAt)).
		Set("inLanguage", g.site.Language).
		Set("mainEntityOfPage", page).
		Set("isPartOf", page)

	img, err := g.featuredImage(ctx, post)
	if err != nil {
		return nil, err
	}
	return n.Set("image", img), nil
}
