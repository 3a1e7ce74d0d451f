package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitegraph.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "sitegraph.yaml", file)
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())
	})

	t.Run("Storage errors are retryable and keep the cause", func(t *testing.T) {
		cause := stderrors.New("database is locked")
		err := StorageError("query posts failed").WithCause(cause).Build()

		assert.True(t, err.CanRetry())
		assert.False(t, err.IsFatal())
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "database is locked")
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := ValidationError("bad id list").Build()
		wrapped := fmt.Errorf("select content: %w", inner)

		assert.True(t, IsClassified(wrapped))
		assert.True(t, HasCategory(wrapped, CategoryValidation))
		assert.Equal(t, CategoryValidation, GetCategory(wrapped))
		assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})

	t.Run("Sentinel comparison", func(t *testing.T) {
		sentinel := StorageError("query posts failed").Build()
		err := StorageError("query posts failed").WithContext("offset", 10).Build()
		assert.ErrorIs(t, err, sentinel)
		assert.NotErrorIs(t, err, StorageError("query terms failed").Build())
	})

	t.Run("WithContext does not mutate the receiver", func(t *testing.T) {
		base := SchemaError("image missing").Build()
		derived := base.WithContext("image_id", 7)

		_, inBase := base.Context().Get("image_id")
		_, inDerived := derived.Context().Get("image_id")
		assert.False(t, inBase)
		assert.True(t, inDerived)
	})
}

func TestHTTPErrorAdapter(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ValidationError("bad").Build(), http.StatusBadRequest},
		{"not found", NotFoundError("post missing").Build(), http.StatusNotFound},
		{"storage", StorageError("down").Build(), http.StatusServiceUnavailable},
		{"schema", SchemaError("broken").Build(), http.StatusUnprocessableEntity},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.StatusCodeFor(tt.err))
		})
	}

	t.Run("writes JSON payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sitemap/posts", nil)
		adapter.WriteErrorResponse(rec, req, StorageError("down").WithContext("content_types", "post").Build())

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, `{"error":"down","code":"storage","details":{"content_types":"post"},"retryable":true}`, rec.Body.String())
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, 0, adapter.ExitCodeFor(nil))
	assert.Equal(t, 7, adapter.ExitCodeFor(ConfigError("missing site url").Build()))
	assert.Equal(t, 8, adapter.ExitCodeFor(StorageError("down").Build()))
	assert.Equal(t, 1, adapter.ExitCodeFor(stderrors.New("plain")))

	assert.Equal(t, "Error: missing site url", adapter.FormatError(ConfigError("missing site url").Build()))
	assert.Equal(t, "Error: down (transient, retry may succeed)", adapter.FormatError(StorageError("down").Build()))
}
