package schema

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/content"
	ferrors "git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/testutil/sitefixture"
)

const postURL = "https://example.com/hello/"

func testSite() Site {
	return Site{
		URL:          "https://example.com",
		Name:         "Example",
		Description:  "Just <b>a</b> site",
		Language:     "en-US",
		Represents:   config.RepresentsOrganization,
		LogoURL:      "https://example.com/logo.png",
		ShowAvatars:  true,
		ArticleTypes: map[string]config.ArticleType{content.TypePost: config.ArticleTypeBlogPosting},
	}
}

func seededSite(t *testing.T) *sitefixture.Site {
	t.Helper()
	return sitefixture.New(t).
		AddAttachment(50, 0, content.Attachment{URL: "https://example.com/logo.png", Width: 200, Height: 100}).
		AddAttachment(60, 10, content.Attachment{URL: "https://example.com/hero.jpg", Width: 1200, Height: 630, Caption: "Hero"}).
		AddAuthor(content.Author{
			ID: 7, FirstName: "Jane", LastName: "Doe", URL: "https://example.com/author/jane/",
			Description: "Writes things", AvatarURL: "https://avatars.example.com/jane.png", AvatarWidth: 96, AvatarHeight: 96,
		}).
		AddPost(sitefixture.Post{ID: 10, Title: "Hello <em>World</em>", Content: "<p>Body text</p>", AuthorID: 7, FeaturedID: 60}).
		AddPost(sitefixture.Post{ID: 11, Title: "No image", AuthorID: 7, FeaturedID: 999})
}

func newTestGenerator(site Site, fx *sitefixture.Site) *Generator {
	return NewGenerator(site, fx.Store, fx.Store, WithLogger(slog.New(slog.DiscardHandler)))
}

func singular(t *testing.T, fx *sitefixture.Site, id int64, url string) *PageContext {
	t.Helper()
	post, ok, err := fx.Store.Post(t.Context(), id)
	require.NoError(t, err)
	require.True(t, ok)
	return &PageContext{Kind: KindSingular, URL: url, Post: &post}
}

func types(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Type())
	}
	return out
}

func byType(t *testing.T, nodes []*Node, typ string) *Node {
	t.Helper()
	for _, n := range nodes {
		if n.Type() == typ {
			return n
		}
	}
	t.Fatalf("no %s node in graph %v", typ, types(nodes))
	return nil
}

func TestBuildGraphHome(t *testing.T) {
	fx := seededSite(t)
	g := newTestGenerator(testSite(), fx)

	nodes, err := g.BuildGraph(t.Context(), &PageContext{Kind: KindHome, URL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"WebSite", "Organization", "WebPage"}, types(nodes))

	site := byType(t, nodes, "WebSite")
	assert.Equal(t, "https://example.com/#website", site.ID())
	assert.Equal(t, "Just a site", site.GetString("description"))
	assert.Equal(t, Ref{ID: "https://example.com/#organization"}, mustGet(t, site, "publisher"))
	_, ok := site.Get("potentialAction")
	assert.True(t, ok)

	org := byType(t, nodes, "Organization")
	logo, ok := mustGet(t, org, "logo").(*Node)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/#organizationLogo", logo.ID())
	assert.Equal(t, 200, mustGet(t, logo, "width"))
	assert.Equal(t, Ref{ID: logo.ID()}, mustGet(t, org, "image"))

	page := byType(t, nodes, "WebPage")
	assert.Equal(t, "https://example.com/#webpage", page.ID())
	assert.Equal(t, "Example", page.GetString("name"))
	assert.Equal(t, Ref{ID: "https://example.com/#organization"}, mustGet(t, page, "about"))
}

func TestBuildGraphSingular(t *testing.T) {
	fx := seededSite(t)
	g := newTestGenerator(testSite(), fx)

	nodes, err := g.BuildGraph(t.Context(), singular(t, fx, 10, postURL))
	require.NoError(t, err)
	assert.Equal(t, []string{"WebSite", "Organization", "WebPage", "BlogPosting", "Person"}, types(nodes))

	page := byType(t, nodes, "WebPage")
	assert.Equal(t, postURL+"#webpage", page.ID())
	assert.Equal(t, "Hello World - Example", page.GetString("name"))
	assert.Equal(t, "Body text", page.GetString("description"))
	assert.Equal(t, Ref{ID: "https://example.com/#mainImage"}, mustGet(t, page, "primaryImageOfPage"))
	assert.Equal(t, Ref{ID: "https://example.com/author/jane/#author"}, mustGet(t, page, "author"))
	assert.Equal(t, "2024-01-01T12:00:00Z", page.GetString("datePublished"))
	_, hasAbout := page.Get("about")
	assert.False(t, hasAbout)

	post := byType(t, nodes, "BlogPosting")
	assert.Equal(t, "Hello World", post.GetString("headline"))
	img, ok := mustGet(t, post, "image").(*Node)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/hero.jpg", img.GetString("url"))
	assert.Equal(t, "Hero", img.GetString("caption"))
	assert.Equal(t, Ref{ID: page.ID()}, mustGet(t, post, "mainEntityOfPage"))

	person := byType(t, nodes, "Person")
	assert.Equal(t, "https://example.com/author/jane/#author", person.ID())
	assert.Equal(t, "Jane Doe", person.GetString("name"))
	avatar, ok := mustGet(t, person, "image").(*Node)
	require.True(t, ok)
	assert.Equal(t, postURL+"#authorImage", avatar.ID())
}

func TestWebPageIDIsStable(t *testing.T) {
	fx := seededSite(t)
	g := newTestGenerator(testSite(), fx)

	first, err := g.PageOf(TypeWebPage).Build(t.Context(), singular(t, fx, 10, postURL))
	require.NoError(t, err)
	second, err := g.PageOf(TypeWebPage).Build(t.Context(), singular(t, fx, 10, postURL))
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, postURL+"#webpage", first.ID())
}

func TestBlogPostingDerivesFromArticle(t *testing.T) {
	fx := seededSite(t)
	g := newTestGenerator(testSite(), fx)
	pc := singular(t, fx, 10, postURL)

	article, err := g.Article().Build(t.Context(), pc)
	require.NoError(t, err)
	posting, err := g.BlogPosting().Build(t.Context(), pc)
	require.NoError(t, err)
	news, err := g.NewsArticle().Build(t.Context(), pc)
	require.NoError(t, err)

	assert.Equal(t, "BlogPosting", posting.Type())
	assert.Equal(t, postURL+"#blogposting", posting.ID())
	assert.Equal(t, postURL+"#newsarticle", news.ID())
	assert.Equal(t, article.Keys(), posting.Keys())
	for _, k := range article.Keys() {
		if k == "@type" || k == "@id" {
			continue
		}
		a, _ := article.Get(k)
		b, _ := posting.Get(k)
		assert.Equal(t, a, b, k)
	}
	assert.Equal(t, "Article", article.Type())
}

func TestArticleEmptyOutsideSingular(t *testing.T) {
	fx := seededSite(t)
	g := newTestGenerator(testSite(), fx)
	pc := &PageContext{Kind: KindHome, URL: "https://example.com/"}

	for _, b := range []Builder{g.Article(), g.BlogPosting(), g.NewsArticle()} {
		n, err := b.Build(t.Context(), pc)
		require.NoError(t, err)
		assert.Nil(t, n)
	}
}

func TestArticleVariantFollowsContentType(t *testing.T) {
	fx := seededSite(t)
	site := testSite()
	site.ArticleTypes = map[string]config.ArticleType{content.TypePost: config.ArticleTypeNewsArticle}
	g := newTestGenerator(site, fx)

	nodes, err := g.BuildGraph(t.Context(), singular(t, fx, 10, postURL))
	require.NoError(t, err)
	assert.Contains(t, types(nodes), "NewsArticle")

	site.ArticleTypes = nil
	g = newTestGenerator(site, fx)
	nodes, err = g.BuildGraph(t.Context(), singular(t, fx, 10, postURL))
	require.NoError(t, err)
	assert.Equal(t, []string{"WebSite", "Organization", "WebPage", "Person"}, types(nodes))
}

func TestMissingImagesDegrade(t *testing.T) {
	fx := seededSite(t)

	t.Run("logo outside media library keeps url", func(t *testing.T) {
		site := testSite()
		site.LogoURL = "https://cdn.example.com/logo.svg"
		n, err := newTestGenerator(site, fx).Organization().Build(t.Context(), &PageContext{Kind: KindHome})
		require.NoError(t, err)
		logo, ok := mustGet(t, n, "logo").(*Node)
		require.True(t, ok)
		assert.Equal(t, []string{"@type", "@id", "url"}, logo.Keys())
	})

	t.Run("unknown logo id drops logo", func(t *testing.T) {
		site := testSite()
		site.LogoURL = ""
		site.LogoID = 999
		n, err := newTestGenerator(site, fx).Organization().Build(t.Context(), &PageContext{Kind: KindHome})
		require.NoError(t, err)
		_, ok := n.Get("logo")
		assert.False(t, ok)
		_, ok = n.Get("image")
		assert.False(t, ok)
	})

	t.Run("unknown featured image", func(t *testing.T) {
		g := newTestGenerator(testSite(), fx)
		pc := singular(t, fx, 11, "https://example.com/no-image/")
		page, err := g.PageOf(TypeWebPage).Build(t.Context(), pc)
		require.NoError(t, err)
		_, ok := page.Get("primaryImageOfPage")
		assert.False(t, ok)
		article, err := g.Article().Build(t.Context(), pc)
		require.NoError(t, err)
		_, ok = article.Get("image")
		assert.False(t, ok)
	})

	t.Run("avatars disabled", func(t *testing.T) {
		site := testSite()
		site.ShowAvatars = false
		n, err := newTestGenerator(site, fx).AuthorPerson().Build(t.Context(), singular(t, fx, 10, postURL))
		require.NoError(t, err)
		_, ok := n.Get("image")
		assert.False(t, ok)
	})
}

func TestSitePersonOwner(t *testing.T) {
	fx := seededSite(t)
	site := testSite()
	site.Represents = config.RepresentsPerson
	site.PersonID = 7
	g := newTestGenerator(site, fx)

	nodes, err := g.BuildGraph(t.Context(), &PageContext{Kind: KindHome, URL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"WebSite", "Person", "WebPage"}, types(nodes))
	person := byType(t, nodes, "Person")
	assert.Equal(t, "https://example.com/#person", person.ID())
	assert.Equal(t, Ref{ID: person.ID()}, mustGet(t, byType(t, nodes, "WebPage"), "about"))

	site.PersonID = 404
	nodes, err = newTestGenerator(site, fx).BuildGraph(t.Context(), &PageContext{Kind: KindHome, URL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"WebSite", "WebPage"}, types(nodes))
}

func TestPageVariants(t *testing.T) {
	fx := seededSite(t)
	site := testSite()
	site.ContactPageID = 11
	g := newTestGenerator(site, fx)
	author := content.Author{ID: 7, DisplayName: "jane", URL: "https://example.com/author/jane/"}

	tests := []struct {
		name     string
		pc       *PageContext
		wantType string
		wantName string
	}{
		{
			name:     "contact page",
			pc:       singular(t, fx, 11, "https://example.com/contact/"),
			wantType: TypeContactPage,
			wantName: "No image - Example",
		},
		{
			name:     "term archive",
			pc:       &PageContext{Kind: KindTerm, URL: "https://example.com/category/news/", Term: &content.TermItem{ID: 3, Name: "News"}},
			wantType: TypeCollectionPage,
			wantName: "News - Example",
		},
		{
			name:     "author archive",
			pc:       &PageContext{Kind: KindAuthor, URL: author.URL, Author: &author},
			wantType: TypeProfilePage,
			wantName: "jane - Example",
		},
		{
			name:     "search",
			pc:       &PageContext{Kind: KindSearch, URL: "https://example.com/?s=shoes", SearchQuery: "shoes"},
			wantType: TypeSearchResultsPage,
			wantName: "You searched for shoes - Example",
		},
		{
			name:     "not found",
			pc:       &PageContext{Kind: KindNotFound, URL: "https://example.com/missing/"},
			wantType: TypeWebPage,
			wantName: "Page not found - Example",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := g.Page(tt.pc).Build(t.Context(), tt.pc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, n.Type())
			assert.Equal(t, tt.pc.URL+"#"+strings.ToLower(tt.wantType), n.ID())
			assert.Equal(t, tt.wantName, n.GetString("name"))
		})
	}
}

func TestAuthorArchiveGraph(t *testing.T) {
	fx := seededSite(t)
	g := newTestGenerator(testSite(), fx)
	author := content.Author{ID: 7, FirstName: "Jane", URL: "https://example.com/author/jane/"}

	nodes, err := g.BuildGraph(t.Context(), &PageContext{Kind: KindAuthor, URL: author.URL, Author: &author})
	require.NoError(t, err)
	assert.Equal(t, []string{"WebSite", "Organization", "ProfilePage", "Person"}, types(nodes))
	assert.Equal(t, Ref{ID: author.URL + "#author"}, mustGet(t, byType(t, nodes, "ProfilePage"), "mainEntity"))
}

func TestPageRequiresURL(t *testing.T) {
	fx := seededSite(t)
	n, err := newTestGenerator(testSite(), fx).PageOf(TypeWebPage).Build(t.Context(), &PageContext{Kind: KindHome})
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestBuildGraphPropagatesStorageErrors(t *testing.T) {
	fx := seededSite(t)
	pc := singular(t, fx, 10, postURL)
	require.NoError(t, fx.Store.Close())

	nodes, err := newTestGenerator(testSite(), fx).BuildGraph(t.Context(), pc)
	require.Error(t, err)
	assert.Nil(t, nodes)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryStorage))
}

func TestTitleIsMemoized(t *testing.T) {
	calls := 0
	pc := &PageContext{Kind: KindHome}
	resolve := func(*PageContext) string { calls++; return "Example" }
	assert.Equal(t, "Example", pc.Title(resolve))
	assert.Equal(t, "Example", pc.Title(resolve))
	assert.Equal(t, 1, calls)
}

func mustGet(t *testing.T, n *Node, key string) any {
	t.Helper()
	v, ok := n.Get(key)
	require.True(t, ok, "missing %s on %s", key, n.ID())
	return v
}
