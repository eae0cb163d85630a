package preview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
)

func newTestServer(t *testing.T, cfg *config.SiteConfig, metrics http.Handler) *httptest.Server {
	t.Helper()
	fs := contentFs(t)
	site := NewSite("docsite.yaml", sequenceLoader(cfg), build.NewService(fs))
	require.NoError(t, site.Reload(context.Background()))
	srv := httptest.NewServer(NewServer(site, fs, metrics).Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestServerRendersPages(t *testing.T) {
	cfg := config.New(
		config.WithLogo("/logo.svg"),
		config.WithIcon("icon", "/favicon.ico"),
		config.WithNav(config.NavItem{Text: "Guide", Link: "/guide/"}),
		config.WithFooter("Released under MIT", ""),
		config.WithLastUpdated(config.LastUpdated{Enabled: true}),
	)
	srv := newTestServer(t, cfg, nil)

	status, body, header := get(t, srv.URL+"/guide/intro")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, header.Get("Content-Type"), "text/html")
	require.Contains(t, body, "<!DOCTYPE html>")
	require.Contains(t, body, `<html lang="en-US">`)
	require.Contains(t, body, "<title>Intro | Documentation</title>")
	require.Contains(t, body, `<meta name="description" content="Getting started"/>`)
	require.Contains(t, body, `<link rel="icon" href="/favicon.ico"/>`)
	require.Contains(t, body, `<a href="/guide/">Guide</a>`)
	require.Contains(t, body, `<main class="vp-doc">`)
	require.Contains(t, body, ">Setup</h2>")
	require.Contains(t, body, "Released under MIT")

	status, body, _ = get(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Welcome.")
}

func TestServerBasePath(t *testing.T) {
	srv := newTestServer(t, config.New(config.WithBase("/docs/"), config.WithLogo("/logo.svg")), nil)

	status, body, _ := get(t, srv.URL+"/docs/guide/intro")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `src="/docs/logo.svg"`)

	status, _, _ = get(t, srv.URL+"/docs")
	require.Equal(t, http.StatusOK, status)

	status, _, _ = get(t, srv.URL+"/guide/intro")
	require.Equal(t, http.StatusNotFound, status)

	status, body, _ = get(t, srv.URL+"/docs/logo.svg")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "<svg/>", body)
}

func TestServerStaticAndNotFound(t *testing.T) {
	srv := newTestServer(t, config.New(), nil)

	status, body, _ := get(t, srv.URL+"/logo.svg")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "<svg/>", body)

	status, body, header := get(t, srv.URL+"/nope")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "application/json", header.Get("Content-Type"))
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Equal(t, "not_found", payload["code"])
}

func TestServerJSONEndpoints(t *testing.T) {
	srv := newTestServer(t, config.New(config.WithTitle("Handbook")), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	}))

	status, body, _ := get(t, srv.URL+"/_config.json")
	require.Equal(t, http.StatusOK, status)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &cfg))
	require.Equal(t, "Handbook", cfg["title"])
	require.Contains(t, cfg, "themeConfig")

	status, body, _ = get(t, srv.URL+"/_manifest.json")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"guide/intro.md"`)

	status, body, _ = get(t, srv.URL+"/_status")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"ready": true`)

	status, body, _ = get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "metrics", body)

	status, body, _ = get(t, srv.URL+"/healthz")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body)
}

func TestServerBeforeFirstBuild(t *testing.T) {
	site := NewSite("docsite.yaml", sequenceLoader(config.New()), build.NewService(contentFs(t)))
	srv := httptest.NewServer(NewServer(site, contentFs(t), nil).Router())
	defer srv.Close()

	status, _, _ := get(t, srv.URL+"/")
	require.Equal(t, http.StatusServiceUnavailable, status)
}

func TestServerListenAndServeStopsOnCancel(t *testing.T) {
	site := NewSite("docsite.yaml", sequenceLoader(config.New()), build.NewService(contentFs(t)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(site, contentFs(t), nil).ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSiteURL(t *testing.T) {
	require.Equal(t, "/docs/logo.svg", SiteURL("/docs/", "/logo.svg"))
	require.Equal(t, "/logo.svg", SiteURL("/", "logo.svg"))
	require.Equal(t, "https://cdn.example.com/a.png", SiteURL("/docs/", "https://cdn.example.com/a.png"))
	require.Empty(t, SiteURL("/", ""))
}
