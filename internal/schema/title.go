package schema

import "fmt"

const titleSeparator = " - "

// title returns the page title, resolved once per page context.
func (g *Generator) title(pc *PageContext) string {
	return pc.Title(g.resolveTitle)
}

func (g *Generator) resolveTitle(pc *PageContext) string {
	var t string
	switch pc.Kind {
	case KindHome:
		return plainText(g.site.Name)
	case KindSingular:
		if pc.Post != nil {
			t = plainText(pc.Post.Title)
		}
	case KindTerm:
		if pc.Term != nil {
			t = plainText(pc.Term.Name)
		}
	case KindAuthor:
		if pc.Author != nil {
			t = plainText(pc.Author.FullName())
		}
	case KindSearch:
		if q := plainText(pc.SearchQuery); q != "" {
			t = fmt.Sprintf("You searched for %s", q)
		}
	case KindNotFound:
		t = "Page not found"
	case KindDate, KindArchive:
		t = "Archives"
	}
	site := plainText(g.site.Name)
	if t == "" || t == site {
		return site
	}
	if site == "" {
		return t
	}
	return t + titleSeparator + site
}
