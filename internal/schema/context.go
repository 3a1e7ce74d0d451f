package schema

import (
	"net/url"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitegraph/internal/content"
)

// PageKind classifies the page a graph is built for.
type PageKind string

const (
	KindHome     PageKind = "home"
	KindSingular PageKind = "singular"
	KindTerm     PageKind = "term"
	KindAuthor   PageKind = "author"
	KindSearch   PageKind = "search"
	KindDate     PageKind = "date"
	KindArchive  PageKind = "archive"
	KindNotFound PageKind = "notfound"
)

// PageContext is the per-request state of one graph build. Builders read it; the only
// mutable parts are the memoized title and author.
type PageContext struct {
	Kind PageKind
	// URL is the canonical URL of the page.
	URL         string
	Post        *content.ContentItem
	Term        *content.TermItem
	Author      *content.Author
	SearchQuery string

	title      string
	titleDone  bool
	author     *content.Author
	authorDone bool
}

// Title returns the page title, computing it with resolve on first use.
func (pc *PageContext) Title(resolve func(*PageContext) string) string {
	if !pc.titleDone {
		pc.title = resolve(pc)
		pc.titleDone = true
	}
	return pc.title
}

// nodeID derives the id of a page-scoped node from the canonical URL.
func (pc *PageContext) nodeID(suffix string) string {
	return pc.URL + "#" + suffix
}

// homeURL returns the site URL with exactly one trailing slash.
func homeURL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/"
}

// siteNodeID derives the id of a site-scoped node.
func siteNodeID(siteURL, suffix string) string {
	return homeURL(siteURL) + "#" + suffix
}

// HomeContext describes the front page of the site.
func HomeContext(siteURL string) *PageContext {
	return &PageContext{Kind: KindHome, URL: homeURL(siteURL)}
}

// PostContext describes the singular page of post. An empty pageURL falls back to the
// "?p=" permalink.
func PostContext(siteURL string, post *content.ContentItem, pageURL string) *PageContext {
	if pageURL == "" {
		pageURL = homeURL(siteURL) + "?p=" + strconv.FormatInt(post.ID, 10)
	}
	return &PageContext{Kind: KindSingular, URL: pageURL, Post: post}
}

// AuthorContext describes the archive page of author.
func AuthorContext(siteURL string, author *content.Author) *PageContext {
	return &PageContext{Kind: KindAuthor, URL: authorURL(siteURL, author), Author: author}
}

// SearchContext describes the results page for query.
func SearchContext(siteURL, query string) *PageContext {
	return &PageContext{
		Kind:        KindSearch,
		URL:         homeURL(siteURL) + "?s=" + url.QueryEscape(query),
		SearchQuery: query,
	}
}
