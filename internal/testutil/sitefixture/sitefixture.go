// Package sitefixture seeds an in-memory content database for tests.
package sitefixture

import (
	"testing"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/content/sqlite"
)

// Epoch is the publish time of seeded posts unless overridden.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Post describes one seeded content row.
type Post struct {
	ID         int64
	Title      string
	Content    string
	Excerpt    string
	Type       string
	Status     string
	Password   string
	ParentID   int64
	AuthorID   int64
	Published  time.Time
	Modified   time.Time
	Priority   *float64
	Frequency  string
	Robots     *content.Robots
	FeaturedID int64
}

// Site seeds rows into a fresh in-memory store.
type Site struct {
	t     *testing.T
	Store *sqlite.Store
}

// New opens an in-memory store closed at test cleanup.
func New(t *testing.T) *Site {
	t.Helper()
	return Open(t, ":memory:")
}

// Open opens the store at dsn, for tests that share a database file with other code.
func Open(t *testing.T, dsn string) *Site {
	t.Helper()
	store, err := sqlite.Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return &Site{t: t, Store: store}
}

func (s *Site) exec(query string, args ...any) {
	s.t.Helper()
	if _, err := s.Store.DB().ExecContext(s.t.Context(), query, args...); err != nil {
		s.t.Fatalf("seed %q: %v", query, err)
	}
}

// AddPost inserts a content row. Type defaults to post and Status to publish.
func (s *Site) AddPost(p Post) *Site {
	s.t.Helper()
	if p.Type == "" {
		p.Type = content.TypePost
	}
	if p.Status == "" {
		p.Status = content.StatusPublish
	}
	if p.Published.IsZero() {
		p.Published = Epoch
	}
	if p.Modified.IsZero() {
		p.Modified = p.Published
	}
	s.exec(`INSERT INTO posts (id, post_title, post_content, post_excerpt, post_type, post_status,
	post_password, post_parent, post_author, post_date_gmt, post_modified_gmt)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.Excerpt, p.Type, p.Status, p.Password, p.ParentID, p.AuthorID,
		p.Published.UTC().Format(sqlite.TimeLayout), p.Modified.UTC().Format(sqlite.TimeLayout))

	if p.Robots != nil || p.Priority != nil || p.Frequency != "" {
		var noindex, useDefault any = nil, 1
		if p.Robots != nil {
			if p.Robots.Set {
				noindex = boolInt(p.Robots.Noindex)
			}
			useDefault = boolInt(p.Robots.UseDefault)
		}
		var frequency any
		if p.Frequency != "" {
			frequency = p.Frequency
		}
		s.exec(`INSERT INTO seo_posts (post_id, priority, frequency, robots_noindex, robots_default)
VALUES (?, ?, ?, ?, ?)`, p.ID, p.Priority, frequency, noindex, useDefault)
	}
	if p.FeaturedID > 0 {
		s.exec("INSERT INTO post_meta (post_id, meta_key, meta_value) VALUES (?, '_thumbnail_id', ?)",
			p.ID, p.FeaturedID)
	}
	return s
}

// AddPages inserts published pages with the given ids.
func (s *Site) AddPages(ids ...int64) *Site {
	s.t.Helper()
	for _, id := range ids {
		s.AddPost(Post{ID: id, Type: content.TypePage, Title: "Page"})
	}
	return s
}

// AddAttachment inserts an attachment row with its media metadata.
func (s *Site) AddAttachment(id, parentID int64, a content.Attachment) *Site {
	s.t.Helper()
	s.AddPost(Post{ID: id, Type: content.TypeAttachment, Status: content.StatusInherit, ParentID: parentID})
	var width, height any
	if a.Width > 0 {
		width = a.Width
	}
	if a.Height > 0 {
		height = a.Height
	}
	s.exec("INSERT INTO attachment_meta (post_id, url, width, height, caption) VALUES (?, ?, ?, ?, ?)",
		id, a.URL, width, height, a.Caption)
	return s
}

// AddTerm registers a term in a taxonomy. The term-taxonomy id equals the term id.
func (s *Site) AddTerm(id int64, taxonomy, name string, count int) *Site {
	s.t.Helper()
	s.exec("INSERT INTO terms (term_id, name, slug) VALUES (?, ?, ?)", id, name, name)
	s.exec("INSERT INTO term_taxonomy (term_taxonomy_id, term_id, taxonomy, count) VALUES (?, ?, ?, ?)",
		id, id, taxonomy, count)
	return s
}

// Assign links a content row to a term-taxonomy id.
func (s *Site) Assign(objectID, termTaxonomyID int64) *Site {
	s.t.Helper()
	s.exec("INSERT INTO term_relationships (object_id, term_taxonomy_id) VALUES (?, ?)", objectID, termTaxonomyID)
	return s
}

// HideFromCatalog tags a product as hidden from the catalog.
func (s *Site) HideFromCatalog(productID int64) *Site {
	s.t.Helper()
	const hiddenTermID = 9000
	var n int
	if err := s.Store.DB().QueryRowContext(s.t.Context(),
		"SELECT COUNT(*) FROM terms WHERE term_id = ?", hiddenTermID).Scan(&n); err != nil {
		s.t.Fatalf("lookup visibility term: %v", err)
	}
	if n == 0 {
		s.exec("INSERT INTO terms (term_id, name, slug) VALUES (?, 'exclude-from-catalog', 'exclude-from-catalog')", hiddenTermID)
		s.exec("INSERT INTO term_taxonomy (term_taxonomy_id, term_id, taxonomy, count) VALUES (?, ?, 'product_visibility', 0)",
			hiddenTermID, hiddenTermID)
	}
	return s.Assign(productID, hiddenTermID)
}

// AddAuthor inserts a user profile.
func (s *Site) AddAuthor(a content.Author) *Site {
	s.t.Helper()
	s.exec(`INSERT INTO users (id, first_name, last_name, display_name, url, description,
	avatar_url, avatar_width, avatar_height, facebook_url, twitter_url)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FirstName, a.LastName, a.DisplayName, a.URL, a.Description,
		a.AvatarURL, a.AvatarWidth, a.AvatarHeight, a.FacebookURL, a.TwitterURL)
	return s
}

// AddSchedulerAction inserts a bookkeeping action in a group, creating the group on demand.
func (s *Site) AddSchedulerAction(group, status string) *Site {
	s.t.Helper()
	s.exec("INSERT OR IGNORE INTO scheduler_groups (slug) VALUES (?)", group)
	s.exec(`INSERT INTO scheduler_actions (hook, status, group_id)
VALUES ('sitegraph_job', ?, (SELECT group_id FROM scheduler_groups WHERE slug = ?))`, status, group)
	return s
}

// DropSchedulerTables removes the bookkeeping tables.
func (s *Site) DropSchedulerTables() *Site {
	s.t.Helper()
	s.exec("DROP TABLE IF EXISTS scheduler_actions")
	s.exec("DROP TABLE IF EXISTS scheduler_groups")
	return s
}

// Count returns the row count of a table.
func (s *Site) Count(table string) int {
	s.t.Helper()
	var n int
	if err := s.Store.DB().QueryRowContext(s.t.Context(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		s.t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
