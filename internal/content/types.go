package content

import "time"

// Well-known content statuses and types.
const (
	StatusPublish = "publish"
	StatusInherit = "inherit"
	StatusDraft   = "draft"

	TypePost       = "post"
	TypePage       = "page"
	TypeAttachment = "attachment"
	TypeProduct    = "product"
)

// ContentItem is a read-only projection of one content row. Rows selected in root mode
// carry only the id; the zero-valued fields are left out of the JSON form.
type ContentItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"-"`
	Excerpt     string    `json:"-"`
	Type        string    `json:"type,omitzero"`
	Status      string    `json:"status,omitzero"`
	Protected   bool      `json:"-"` // password set
	ParentID    int64     `json:"parent_id,omitempty"`
	AuthorID    int64     `json:"author_id,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
	ModifiedAt  time.Time `json:"modified_at,omitzero"`
	Priority    *float64  `json:"priority,omitempty"`
	Frequency   string    `json:"frequency,omitempty"`
	Robots      Robots    `json:"-"`
}

// Robots is the per-item robots override from the extension table.
type Robots struct {
	// Set is false when the item has no override row.
	Set        bool
	Noindex    bool
	UseDefault bool
}

// Indexable resolves the directive against the type default. A type that indexes by
// default is indexable unless explicitly noindexed without "use default"; a type that
// noindexes by default is indexable only when explicitly forced.
func (r Robots) Indexable(typeNoindexed bool) bool {
	if !typeNoindexed {
		return !r.Set || r.UseDefault || !r.Noindex
	}
	return r.Set && !r.UseDefault && !r.Noindex
}

// TermItem is a taxonomy term eligible for a term sitemap.
type TermItem struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
	Name     string `json:"name,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

// Attachment is the media metadata of an attachment item. Zero dimensions mean unknown.
type Attachment struct {
	ID      int64
	URL     string
	Width   int
	Height  int
	Caption string
}

// Author is the profile of a content author.
type Author struct {
	ID           int64
	FirstName    string
	LastName     string
	DisplayName  string
	URL          string
	Description  string
	AvatarURL    string
	AvatarWidth  int
	AvatarHeight int
	FacebookURL  string
	TwitterURL   string
}

// FullName returns "first last", falling back to the display name.
func (a Author) FullName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	default:
		return a.DisplayName
	}
}
