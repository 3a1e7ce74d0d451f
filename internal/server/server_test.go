package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
	"git.home.luguber.info/inful/sitegraph/internal/schema"
	"git.home.luguber.info/inful/sitegraph/internal/sitemap"
	"git.home.luguber.info/inful/sitegraph/internal/testutil/sitefixture"
)

const siteURL = "https://example.com"

type testEnv struct {
	fx  *sitefixture.Site
	srv *Server
}

func newTestEnv(t *testing.T, opts ...Option) testEnv {
	t.Helper()
	fx := sitefixture.New(t).
		AddPages(1, 2, 3).
		AddPost(sitefixture.Post{ID: 10, Title: "Hello", AuthorID: 7}).
		AddPost(sitefixture.Post{ID: 11, Title: "Draft", Status: content.StatusDraft}).
		AddAuthor(content.Author{ID: 7, FirstName: "Jane", LastName: "Doe", URL: siteURL + "/author/jane/"}).
		AddTerm(20, "category", "News", 1).
		Assign(10, 20)

	logger := slog.New(slog.DiscardHandler)
	selector := sitemap.New(fx.Store, sitemap.Settings{
		Indexes:       true,
		LinksPerIndex: 2,
		ContentTypes:  map[string]bool{content.TypePost: false, content.TypePage: false},
		Taxonomies:    []string{"category"},
	}, sitemap.WithLogger(logger))
	generator := schema.NewGenerator(schema.Site{
		URL:          siteURL,
		Name:         "Example",
		Represents:   config.RepresentsOrganization,
		ArticleTypes: map[string]config.ArticleType{content.TypePost: config.ArticleTypeArticle},
	}, fx.Store, fx.Store, schema.WithLogger(logger))

	opts = append([]Option{WithLogger(logger)}, opts...)
	srv := New(Config{Addr: ":0"}, Services{
		Selector: selector,
		Graph:    generator,
		Posts:    fx.Store,
		Authors:  fx.Store,
		Health:   fx.Store,
		SiteURL:  siteURL,
	}, opts...)
	return testEnv{fx: fx, srv: srv}
}

func (e testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []json.RawMessage `json:"data"`
	Error   string            `json:"error"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func ids(t *testing.T, resp listResponse) []int64 {
	t.Helper()
	out := make([]int64, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var row struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(raw, &row))
		out = append(out, row.ID)
	}
	return out
}

func TestPing(t *testing.T) {
	w := newTestEnv(t).get(t, "/api/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	require.NoError(t, env.fx.Store.Close())
	w = env.get(t, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSitemapPosts(t *testing.T) {
	env := newTestEnv(t)

	resp := decodeList(t, env.get(t, "/api/sitemap/posts?types=page,post"))
	assert.True(t, resp.Success)
	assert.Equal(t, []int64{1, 2}, ids(t, resp))
	assert.Equal(t, 2, resp.Count)

	resp = decodeList(t, env.get(t, "/api/sitemap/posts?types=page,post&offset=2"))
	assert.Equal(t, []int64{3, 10}, ids(t, resp))

	resp = decodeList(t, env.get(t, "/api/sitemap/posts?types=page,post&root=true"))
	assert.Equal(t, []int64{1, 2, 3, 10}, ids(t, resp))

	resp = decodeList(t, env.get(t, "/api/sitemap/posts?types=unknown"))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)

	w := env.get(t, "/api/sitemap/posts")
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeList(t, w)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestSitemapPostsRootRowsCarryOnlyIDs(t *testing.T) {
	env := newTestEnv(t)
	resp := decodeList(t, env.get(t, "/api/sitemap/posts?types=page&root=true"))
	require.NotEmpty(t, resp.Data)
	for _, raw := range resp.Data {
		var row map[string]any
		require.NoError(t, json.Unmarshal(raw, &row))
		assert.Equal(t, []string{"id"}, slices.Collect(maps.Keys(row)))
	}
}

func TestSitemapPostsRejectsBadParameters(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{
		"/api/sitemap/posts?types=page&offset=-1",
		"/api/sitemap/posts?types=page&offset=abc",
		"/api/sitemap/posts?types=page&root=maybe",
		"/api/sitemap/posts?types=page&max_age=yesterday",
	} {
		t.Run(target, func(t *testing.T) {
			w := env.get(t, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestSitemapPostsMaxAge(t *testing.T) {
	env := newTestEnv(t)
	resp := decodeList(t, env.get(t, "/api/sitemap/posts?types=page&max_age=2000-01-01T00:00:00Z"))
	assert.Equal(t, []int64{1, 2}, ids(t, resp))

	resp = decodeList(t, env.get(t, "/api/sitemap/posts?types=page&max_age=1h"))
	assert.Empty(t, resp.Data)
}

func TestSitemapTerms(t *testing.T) {
	env := newTestEnv(t)
	resp := decodeList(t, env.get(t, "/api/sitemap/terms/category"))
	assert.Equal(t, []int64{20}, ids(t, resp))

	resp = decodeList(t, env.get(t, "/api/sitemap/terms/post_tag"))
	assert.Empty(t, resp.Data)
}

type graphResponse struct {
	Context string           `json:"@context"`
	Graph   []map[string]any `json:"@graph"`
}

func graphTypes(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/ld+json")
	var g graphResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Equal(t, "https://schema.org", g.Context)
	out := make([]string, 0, len(g.Graph))
	for _, n := range g.Graph {
		typ, _ := n["@type"].(string)
		out = append(out, typ)
	}
	return out
}

func TestSchemaEndpoints(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, []string{"WebSite", "Organization", "WebPage"}, graphTypes(t, env.get(t, "/api/schema/home")))
	assert.Equal(t, []string{"WebSite", "Organization", "WebPage", "Article", "Person"},
		graphTypes(t, env.get(t, "/api/schema/posts/10?url=https://example.com/hello/")))
	assert.Equal(t, []string{"WebSite", "Organization", "ProfilePage", "Person"},
		graphTypes(t, env.get(t, "/api/schema/authors/7")))
	assert.Equal(t, []string{"WebSite", "Organization", "SearchResultsPage"},
		graphTypes(t, env.get(t, "/api/schema/search?q=shoes")))
}

func TestSchemaPostErrors(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.get(t, "/api/schema/posts/404").Code)
	assert.Equal(t, http.StatusBadRequest, env.get(t, "/api/schema/posts/abc").Code)
	assert.Equal(t, http.StatusNotFound, env.get(t, "/api/schema/authors/404").Code)
}

func TestSchemaPostDefaultURL(t *testing.T) {
	w := newTestEnv(t).get(t, "/api/schema/posts/10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"https://example.com/?p=10#webpage"`)
}

type panickingGraph struct{}

func (panickingGraph) BuildGraph(context.Context, *schema.PageContext) ([]*schema.Node, error) {
	panic("boom")
}

func TestPanicRecovery(t *testing.T) {
	srv := New(Config{Addr: ":0"}, Services{Graph: panickingGraph{}, SiteURL: siteURL},
		WithLogger(slog.New(slog.DiscardHandler)))
	req := httptest.NewRequest(http.MethodGet, "/api/schema/home", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRequestIDHeader(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = env.get(t, "/api/ping")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := metrics.NewPrometheusRecorder(nil)
	fx := sitefixture.New(t)
	srv := New(Config{Addr: ":0", MetricsPath: "/metrics", Metrics: metrics.HTTPHandler(rec.Registry())},
		Services{Health: fx.Store, SiteURL: siteURL},
		WithRecorder(rec), WithLogger(slog.New(slog.DiscardHandler)))

	for _, target := range []string{"/api/ping", "/metrics"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, w.Code)
		if target == "/metrics" {
			body := w.Body.String()
			assert.True(t, strings.Contains(body, "sitegraph_http_request_duration_seconds"), body)
			assert.Contains(t, body, `route="/api/ping"`)
		}
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv := New(Config{Addr: "127.0.0.1:0"}, Services{SiteURL: siteURL}, WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	require.NotEmpty(t, srv.ListenAddr())

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://"+srv.ListenAddr()+"/api/ping", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(t.Context()))
}
