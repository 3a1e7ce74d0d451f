package sitemap

import (
	"context"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitegraph/internal/content"
)

// Exclusions computes the opaque id-list literals subtracted from every selection.
type Exclusions interface {
	ExcludedPosts(ctx context.Context) (content.IDList, error)
	ExcludedTerms(ctx context.Context) (content.IDList, error)
}

// StaticExclusions serves exclusion lists fixed at construction.
type StaticExclusions struct {
	posts content.IDList
	terms content.IDList
}

// NewStaticExclusions joins configured ids into id-list literals.
func NewStaticExclusions(posts, terms []int64) StaticExclusions {
	return StaticExclusions{posts: joinIDs(posts), terms: joinIDs(terms)}
}

func (e StaticExclusions) ExcludedPosts(context.Context) (content.IDList, error) { return e.posts, nil }
func (e StaticExclusions) ExcludedTerms(context.Context) (content.IDList, error) { return e.terms, nil }

func joinIDs(ids []int64) content.IDList {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return content.IDList(strings.Join(parts, ","))
}

type noExclusions struct{}

func (noExclusions) ExcludedPosts(context.Context) (content.IDList, error) { return "", nil }
func (noExclusions) ExcludedTerms(context.Context) (content.IDList, error) { return "", nil }
