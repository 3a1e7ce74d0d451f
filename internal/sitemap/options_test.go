package sitemap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

func TestParseMaxAge(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseMaxAge("48h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-48*time.Hour), got)

	got, err = ParseMaxAge("2024-05-01T08:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), got)

	for _, v := range []string{"yesterday", "-1h", "0s", ""} {
		_, err := ParseMaxAge(v, now)
		require.Error(t, err, v)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation), v)
	}
}
