package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegraph/internal/config"
)

func writeConfig(t *testing.T, path, dsn, name string) {
	t.Helper()
	doc := fmt.Sprintf(`site:
  url: https://example.com
  name: %s
storage:
  dsn: %s
http:
  addr: 127.0.0.1:0
scheduler:
  interval: 1h
`, name, dsn)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
}

func setup(t *testing.T) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegraph.yaml")
	writeConfig(t, path, filepath.Join(dir, "site.db"), "Example")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return path, cfg
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func siteName(t *testing.T, d *Daemon) string {
	t.Helper()
	code, body := getBody(t, "http://"+d.HTTPAddr()+"/api/schema/home")
	require.Equal(t, http.StatusOK, code, body)
	var graph struct {
		Nodes []map[string]any `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &graph))
	require.NotEmpty(t, graph.Nodes)
	name, _ := graph.Nodes[0]["name"].(string)
	return name
}

func TestDaemonLifecycle(t *testing.T) {
	_, cfg := setup(t)
	d := New("", cfg, WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, d.Start(t.Context()))
	t.Cleanup(func() { _ = d.Stop(context.Background()) })

	addr := d.HTTPAddr()
	require.NotEmpty(t, addr)
	code, body := getBody(t, "http://"+addr+"/api/ping")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true}`, body)

	code, body = getBody(t, "http://"+addr+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "sitegraph_http_request_duration_seconds")

	status := d.Status()
	require.Len(t, status, 3)
	for _, info := range status {
		assert.Equal(t, "healthy", info.Health.Status, info.Name)
	}

	require.NoError(t, d.Stop(t.Context()))
	assert.Empty(t, d.HTTPAddr())
	assert.Nil(t, d.Status())
}

func TestDaemonReloadSwapsServices(t *testing.T) {
	_, cfg := setup(t)
	d := New("", cfg, WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, d.Start(t.Context()))
	t.Cleanup(func() { _ = d.Stop(context.Background()) })
	assert.Equal(t, "Example", siteName(t, d))

	next := *cfg
	next.Site.Name = "Renamed"
	require.NoError(t, d.ReloadConfig(t.Context(), &next))
	assert.Equal(t, "Renamed", d.Config().Site.Name)
	assert.Equal(t, "Renamed", siteName(t, d))
}

func TestDaemonReloadFailureRestoresPrevious(t *testing.T) {
	_, cfg := setup(t)
	d := New("", cfg, WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, d.Start(t.Context()))
	t.Cleanup(func() { _ = d.Stop(context.Background()) })

	broken := *cfg
	broken.Storage.DSN = filepath.Join(t.TempDir(), "missing", "dir", "site.db")
	require.Error(t, d.ReloadConfig(t.Context(), &broken))

	assert.Equal(t, cfg, d.Config())
	assert.Equal(t, "Example", siteName(t, d))
}

func TestDaemonReloadsOnConfigChange(t *testing.T) {
	path, cfg := setup(t)
	d := New(path, cfg, WithLogger(slog.New(slog.DiscardHandler)), WithReloadDebounce(50*time.Millisecond))
	require.NoError(t, d.Start(t.Context()))
	t.Cleanup(func() { _ = d.Stop(context.Background()) })

	writeConfig(t, path, cfg.Storage.DSN, "Edited")
	require.Eventually(t, func() bool {
		return d.Config().Site.Name == "Edited" && d.HTTPAddr() != ""
	}, 10*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Edited", siteName(t, d))
}

func TestReloadRequiresRunningDaemon(t *testing.T) {
	_, cfg := setup(t)
	d := New("", cfg, WithLogger(slog.New(slog.DiscardHandler)))
	require.Error(t, d.ReloadConfig(t.Context(), cfg))
}

type fixedReloader struct{ cfg *config.Config }

func (f fixedReloader) ReloadConfig(context.Context, *config.Config) error { return nil }
func (f fixedReloader) Config() *config.Config                             { return f.cfg }

func TestConfigWatcherRejectsVersionChange(t *testing.T) {
	path, cfg := setup(t)
	w, err := NewConfigWatcher(path, fixedReloader{cfg: cfg}, slog.New(slog.DiscardHandler), time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	next := *cfg
	next.Version = "2"
	require.Error(t, w.validateConfigChange(&next))
	require.NoError(t, w.validateConfigChange(cfg))
}
