package sqlite

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

func buildTermsQuery(q content.TermQuery) (string, []any, error) {
	if !q.ExcludedTermIDs.Valid() {
		return "", nil, errors.ValidationError("malformed exclusion list").
			WithContext("excluded_terms", string(q.ExcludedTermIDs)).
			Build()
	}
	var b strings.Builder
	args := []any{q.Taxonomy}
	b.WriteString(`SELECT t.term_id, t.name, t.slug
FROM terms t
WHERE t.term_id IN (SELECT tt.term_id FROM term_taxonomy tt WHERE tt.taxonomy = ? AND tt.count > 0)`)
	if !q.ExcludedTermIDs.Empty() {
		// Excluded ids are term-taxonomy ids and only drop terms that have relationships.
		b.WriteString("\nAND t.term_id NOT IN (SELECT tr.term_taxonomy_id FROM term_relationships tr WHERE tr.term_taxonomy_id IN (" +
			string(q.ExcludedTermIDs) + "))")
	}
	b.WriteString("\nORDER BY t.term_id ASC")
	args = appendWindow(&b, args, q.Offset, q.Limit)
	return b.String(), args, nil
}

// Terms returns the terms of a taxonomy with content assigned, in ascending id order.
func (s *Store) Terms(ctx context.Context, q content.TermQuery) ([]content.TermItem, error) {
	if q.Taxonomy == "" {
		return nil, nil
	}
	query, args, err := buildTermsQuery(q)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "query terms").WithContext("taxonomy", q.Taxonomy).Build()
	}
	defer func() { _ = rows.Close() }()

	var terms []content.TermItem
	for rows.Next() {
		term := content.TermItem{Taxonomy: q.Taxonomy}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug); err != nil {
			return nil, storageError(err, "scan term").Build()
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "iterate terms").Build()
	}
	return terms, nil
}
