package content

import (
	"context"
	"regexp"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

var idListPattern = regexp.MustCompile(`^\d+(\s*,\s*\d+)*$`)

// IDList is an opaque comma-joined id literal ("3, 7,12") produced by the exclusion
// computation. It is validated before use and embedded as-is; it is never split.
type IDList string

// ParseIDList validates raw and returns it as an IDList. Blank input yields the empty list.
func ParseIDList(raw string) (IDList, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !idListPattern.MatchString(raw) {
		return "", errors.ValidationError("malformed id list").WithContext("value", raw).Build()
	}
	return IDList(raw), nil
}

// Empty reports whether the list carries no ids.
func (l IDList) Empty() bool { return strings.TrimSpace(string(l)) == "" }

// Valid reports whether the list is empty or a well-formed literal.
func (l IDList) Valid() bool { return l.Empty() || idListPattern.MatchString(string(l)) }

// TypeClause selects one content type with its status and type-level robots default.
// Clauses of a PostQuery are combined with OR.
type TypeClause struct {
	Type           string
	Status         string
	NoindexDefault bool
}

// ClauseFor returns the clause of a content type with the status items of that type are
// published under.
func ClauseFor(contentType string, noindexDefault bool) TypeClause {
	status := StatusPublish
	if contentType == TypeAttachment {
		status = StatusInherit
	}
	return TypeClause{Type: contentType, Status: status, NoindexDefault: noindexDefault}
}

// PostQuery is the conjunctive filter the selector issues against storage.
type PostQuery struct {
	Clauses         []TypeClause
	ExcludedIDs     IDList
	ExcludedTermIDs IDList
	// ModifiedAfter is a lower bound on the modification time when non-zero.
	ModifiedAfter time.Time
	// IDsOnly asks for bare ids; the other ContentItem fields are left zero.
	IDsOnly bool
	Offset  int
	// Limit <= 0 means unbounded.
	Limit int
}

// TermQuery selects terms of one taxonomy with a nonzero content count.
type TermQuery struct {
	Taxonomy        string
	ExcludedTermIDs IDList
	Offset          int
	Limit           int
}

// Store is the read-only storage contract. Implementations order results by ascending id.
type Store interface {
	Posts(ctx context.Context, q PostQuery) ([]ContentItem, error)
	Terms(ctx context.Context, q TermQuery) ([]TermItem, error)
	// Post returns a single item regardless of status; ok is false when absent.
	Post(ctx context.Context, id int64) (ContentItem, bool, error)
}

// MediaStore resolves attachment metadata.
type MediaStore interface {
	Attachment(ctx context.Context, id int64) (Attachment, bool, error)
	AttachmentIDByURL(ctx context.Context, url string) (int64, bool, error)
	FeaturedImageID(ctx context.Context, postID int64) (int64, bool, error)
}

// AuthorStore resolves author profiles.
type AuthorStore interface {
	Author(ctx context.Context, id int64) (Author, bool, error)
}
