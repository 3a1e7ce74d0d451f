package sitemap

import (
	"time"

	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

// ParseMaxAge reads a modification cutoff given either as a duration back from now
// ("72h") or as an RFC 3339 timestamp.
func ParseMaxAge(v string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, errors.ValidationError("max_age must be a positive duration or an RFC 3339 timestamp").
		WithContext("max_age", v).
		Build()
}
