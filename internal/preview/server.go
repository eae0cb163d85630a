package preview

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/emit/vitepress"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// Server exposes the current site view over HTTP.
type Server struct {
	site    *Site
	fs      afero.Fs
	adapter *errors.HTTPErrorAdapter
	router  chi.Router
}

// NewServer creates the preview server. metricsHandler is mounted at
// /metrics when non-nil.
func NewServer(site *Site, fsys afero.Fs, metricsHandler http.Handler) *Server {
	logger := slog.Default()
	s := &Server{
		site:    site,
		fs:      fsys,
		adapter: errors.NewHTTPErrorAdapter(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger, s.adapter))

	r.Get("/healthz", s.handleHealth)
	r.Get("/_status", s.handleStatus)
	r.Get("/_config.json", s.handleConfig)
	r.Get("/_manifest.json", s.handleManifest)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}
	r.Get("/*", s.handleSite)

	s.router = r
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", logfields.Addr(addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").
			WithContext("addr", addr).
			Build()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "preview server shutdown").Build()
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Ready   bool   `json:"ready"`
	BuildID string `json:"buildId,omitempty"`
	Pages   int    `json:"pages"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	view, ok := s.site.View()
	resp := statusResponse{Ready: ok, BuildID: view.BuildID, Pages: len(view.Pages)}
	if err := s.site.LastError(); err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, resp)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	view, ok := s.requireView(w, r)
	if !ok {
		return
	}
	writeJSON(w, vitepress.Build(view.Config))
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	view, ok := s.requireView(w, r)
	if !ok {
		return
	}
	data, err := view.Manifest.ToJSON()
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "encode manifest").Build())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	view, ok := s.requireView(w, r)
	if !ok {
		return
	}

	link, inBase := stripBase(view.Config.Site.Base, r.URL.Path)
	if !inBase {
		s.notFound(w, r)
		return
	}

	if page, found := view.Index.Resolve(link); found {
		body, err := view.Renderer.Render(page.Body)
		if err != nil {
			s.adapter.WriteErrorResponse(w, r, errors.RenderError("render page").WithCause(err).
				WithContext("page", page.Path).
				Build())
			return
		}
		var buf bytes.Buffer
		if err := RenderDocument(&buf, view.Config, page, body, manifestEntry(view.Manifest, page.Path)); err != nil {
			s.adapter.WriteErrorResponse(w, r, errors.RenderError("render document").WithCause(err).
				WithContext("page", page.Path).
				Build())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
		return
	}

	publicDir := view.Config.Content.PublicDir
	asset := path.Clean(link)
	if publicDir != "" && asset != "/" {
		if info, err := s.fs.Stat(path.Join(publicDir, asset)); err == nil && !info.IsDir() {
			req := r.Clone(r.Context())
			req.URL.Path = asset
			http.FileServer(afero.NewHttpFs(s.fs).Dir(publicDir)).ServeHTTP(w, req)
			return
		}
	}
	s.notFound(w, r)
}

func (s *Server) requireView(w http.ResponseWriter, r *http.Request) (View, bool) {
	view, ok := s.site.View()
	if !ok {
		err := errors.NewError(errors.CategoryRuntime, "site not built yet").Retryable()
		if last := s.site.LastError(); last != nil {
			err = err.WithCause(last)
		}
		s.adapter.WriteErrorResponse(w, r, err.Build())
	}
	return view, ok
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.adapter.WriteErrorResponse(w, r, errors.NotFoundError("page not found").
		WithContext("path", r.URL.Path).
		Build())
}

// stripBase maps a request path to a site link. "/docs" and "/docs/" both
// map to "/" under base "/docs/".
func stripBase(base, reqPath string) (string, bool) {
	if base == "" {
		base = "/"
	}
	if reqPath+"/" == base {
		return "/", true
	}
	if !strings.HasPrefix(reqPath, base) {
		return "", false
	}
	return "/" + strings.TrimPrefix(reqPath, base), true
}

func manifestEntry(m *manifest.Manifest, pagePath string) *manifest.PageEntry {
	if m == nil {
		return nil
	}
	for i := range m.Pages {
		if m.Pages[i].Path == pagePath {
			return &m.Pages[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
