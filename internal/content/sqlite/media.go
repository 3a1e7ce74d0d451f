package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/util/sets"
)

const (
	featuredImageKey     = "_thumbnail_id"
	visibilityTaxonomy   = "product_visibility"
	hiddenFromCatalogTag = "exclude-from-catalog"
)

// Attachment returns the media metadata of an attachment. Unknown dimensions are zero.
func (s *Store) Attachment(ctx context.Context, id int64) (content.Attachment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := content.Attachment{ID: id}
	var width, height sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT am.url, am.width, am.height, am.caption
FROM attachment_meta am JOIN posts p ON p.id = am.post_id
WHERE am.post_id = ? AND p.post_type = 'attachment'`, id).Scan(&a.URL, &width, &height, &a.Caption)
	if stderrors.Is(err, sql.ErrNoRows) {
		return content.Attachment{}, false, nil
	}
	if err != nil {
		return content.Attachment{}, false, storageError(err, "query attachment").WithContext("id", id).Build()
	}
	a.Width = int(width.Int64)
	a.Height = int(height.Int64)
	return a, true, nil
}

// AttachmentIDByURL maps a media URL back to its attachment id.
func (s *Store) AttachmentIDByURL(ctx context.Context, url string) (int64, bool, error) {
	return s.queryID(ctx, "query attachment by url",
		"SELECT post_id FROM attachment_meta WHERE url = ? ORDER BY post_id LIMIT 1", url)
}

// FeaturedImageID returns the featured image attachment of a post.
func (s *Store) FeaturedImageID(ctx context.Context, postID int64) (int64, bool, error) {
	return s.queryID(ctx, "query featured image",
		"SELECT CAST(meta_value AS INTEGER) FROM post_meta WHERE post_id = ? AND meta_key = ?", postID, featuredImageKey)
}

func (s *Store) queryID(ctx context.Context, op, query string, args ...any) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storageError(err, op).Build()
	}
	return id, id > 0, nil
}

// Author returns a user profile.
func (s *Store) Author(ctx context.Context, id int64) (content.Author, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := content.Author{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT first_name, last_name, display_name, url, description,
	avatar_url, avatar_width, avatar_height, facebook_url, twitter_url
FROM users WHERE id = ?`, id).Scan(&a.FirstName, &a.LastName, &a.DisplayName, &a.URL, &a.Description,
		&a.AvatarURL, &a.AvatarWidth, &a.AvatarHeight, &a.FacebookURL, &a.TwitterURL)
	if stderrors.Is(err, sql.ErrNoRows) {
		return content.Author{}, false, nil
	}
	if err != nil {
		return content.Author{}, false, storageError(err, "query author").WithContext("id", id).Build()
	}
	return a, true, nil
}

// CatalogHidden returns the subset of ids tagged as hidden from the product catalog.
func (s *Store) CatalogHidden(ctx context.Context, ids []int64) (sets.Set[int64], error) {
	hidden := sets.New[int64]()
	if len(ids) == 0 {
		return hidden, nil
	}

	args := make([]any, 0, len(ids)+2)
	args = append(args, visibilityTaxonomy, hiddenFromCatalogTag)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tr.object_id
FROM term_relationships tr
JOIN term_taxonomy tt ON tt.term_taxonomy_id = tr.term_taxonomy_id
JOIN terms t ON t.term_id = tt.term_id
WHERE tt.taxonomy = ? AND t.slug = ? AND tr.object_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, storageError(err, "query catalog visibility").Build()
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storageError(err, "scan catalog visibility").Build()
		}
		hidden.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "iterate catalog visibility").Build()
	}
	return hidden, nil
}
