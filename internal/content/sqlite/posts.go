package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

const postColumns = `p.id, p.post_title, p.post_content, p.post_excerpt, p.post_type, p.post_status,
	p.post_password, p.post_parent, p.post_author, p.post_date_gmt, p.post_modified_gmt,
	sp.priority, sp.frequency, sp.robots_noindex, sp.robots_default`

// robotsPredicate is the SQL form of content.Robots.Indexable.
func robotsPredicate(typeNoindexed bool) string {
	if !typeNoindexed {
		return "(sp.robots_noindex IS NULL OR sp.robots_default = 1 OR sp.robots_noindex = 0)"
	}
	return "(sp.robots_default = 0 AND sp.robots_noindex = 0)"
}

// buildPostsQuery renders q as SQL. Exclusion lists are validated literals and are
// embedded directly; everything else is bound.
func buildPostsQuery(q content.PostQuery) (string, []any, error) {
	if !q.ExcludedIDs.Valid() || !q.ExcludedTermIDs.Valid() {
		return "", nil, errors.ValidationError("malformed exclusion list").
			WithContext("excluded_posts", string(q.ExcludedIDs)).
			WithContext("excluded_terms", string(q.ExcludedTermIDs)).
			Build()
	}

	var b strings.Builder
	args := make([]any, 0, len(q.Clauses)*2+3)

	b.WriteString("SELECT ")
	if q.IDsOnly {
		b.WriteString("p.id")
	} else {
		b.WriteString(postColumns)
	}
	b.WriteString("\nFROM posts p LEFT JOIN seo_posts sp ON sp.post_id = p.id\nWHERE (")
	for i, c := range q.Clauses {
		if i > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString("(p.post_type = ? AND p.post_status = ? AND ")
		b.WriteString(robotsPredicate(c.NoindexDefault))
		b.WriteString(")")
		args = append(args, c.Type, c.Status)
	}
	b.WriteString(")")

	if !q.ExcludedIDs.Empty() {
		b.WriteString("\nAND p.id NOT IN (" + string(q.ExcludedIDs) + ")")
	}
	if !q.ExcludedTermIDs.Empty() {
		b.WriteString("\nAND p.id NOT IN (SELECT tr.object_id FROM term_relationships tr WHERE tr.term_taxonomy_id IN (" +
			string(q.ExcludedTermIDs) + "))")
	}
	if !q.ModifiedAfter.IsZero() {
		b.WriteString("\nAND p.post_modified_gmt >= ?")
		args = append(args, q.ModifiedAfter.UTC().Format(TimeLayout))
	}
	b.WriteString("\nORDER BY p.id ASC")
	args = appendWindow(&b, args, q.Offset, q.Limit)
	return b.String(), args, nil
}

// appendWindow adds LIMIT/OFFSET. SQLite needs a LIMIT before OFFSET, -1 is unbounded.
func appendWindow(b *strings.Builder, args []any, offset, limit int) []any {
	if limit <= 0 && offset <= 0 {
		return args
	}
	if limit <= 0 {
		limit = -1
	}
	b.WriteString("\nLIMIT ? OFFSET ?")
	return append(args, limit, max(offset, 0))
}

// Posts returns the content rows matching q in ascending id order.
func (s *Store) Posts(ctx context.Context, q content.PostQuery) ([]content.ContentItem, error) {
	if len(q.Clauses) == 0 {
		return nil, nil
	}
	query, args, err := buildPostsQuery(q)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "query posts").Build()
	}
	defer func() { _ = rows.Close() }()

	var items []content.ContentItem
	for rows.Next() {
		var item content.ContentItem
		if q.IDsOnly {
			err = rows.Scan(&item.ID)
		} else {
			item, err = scanPost(rows)
		}
		if err != nil {
			return nil, storageError(err, "scan post").Build()
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "iterate posts").Build()
	}
	return items, nil
}

// Post returns one content row by id, whatever its status.
func (s *Store) Post(ctx context.Context, id int64) (content.ContentItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+postColumns+"\nFROM posts p LEFT JOIN seo_posts sp ON sp.post_id = p.id\nWHERE p.id = ?", id)
	item, err := scanPost(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return content.ContentItem{}, false, nil
	}
	if err != nil {
		return content.ContentItem{}, false, storageError(err, "query post").WithContext("id", id).Build()
	}
	return item, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (content.ContentItem, error) {
	var (
		item          content.ContentItem
		password      string
		published     string
		modified      string
		priority      sql.NullFloat64
		frequency     sql.NullString
		robotsNoindex sql.NullInt64
		robotsDefault sql.NullInt64
	)
	err := row.Scan(&item.ID, &item.Title, &item.Content, &item.Excerpt, &item.Type, &item.Status,
		&password, &item.ParentID, &item.AuthorID, &published, &modified,
		&priority, &frequency, &robotsNoindex, &robotsDefault)
	if err != nil {
		return item, err
	}
	item.Protected = password != ""
	item.PublishedAt = parseTime(published)
	item.ModifiedAt = parseTime(modified)
	if priority.Valid {
		p := priority.Float64
		item.Priority = &p
	}
	item.Frequency = frequency.String
	item.Robots = content.Robots{
		Set:        robotsNoindex.Valid,
		Noindex:    robotsNoindex.Valid && robotsNoindex.Int64 != 0,
		UseDefault: !robotsDefault.Valid || robotsDefault.Int64 != 0,
	}
	return item, nil
}

// parseTime reads a GMT column; unparsable or zero dates yield the zero time.
func parseTime(v string) time.Time {
	t, err := time.Parse(TimeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
