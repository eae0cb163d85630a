// Package preview serves a live rendering of the documentation site while
// the configuration and content are edited.
package preview

import (
	"context"
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// Loader reads and validates the configuration at path.
type Loader func(path string) (*config.SiteConfig, error)

// View is an immutable snapshot of the site served to requests.
type View struct {
	Config   *config.SiteConfig // effective configuration, sidebar included
	Manifest *manifest.Manifest
	Pages    []docs.Page
	Index    *docs.Index
	Renderer *markdown.Renderer
	BuildID  string
}

// Site holds the current view. Reload and Refresh swap it atomically; a
// failed reload keeps the previous view.
type Site struct {
	configPath string
	load       Loader
	runner     build.Runner

	mu      sync.RWMutex
	source  *config.SiteConfig
	view    *View
	lastErr error
}

// NewSite creates a site that loads configPath with load and builds with runner.
func NewSite(configPath string, load Loader, runner build.Runner) *Site {
	return &Site{configPath: configPath, load: load, runner: runner}
}

// View returns the current view. ok is false until the first successful build.
func (s *Site) View() (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.view == nil {
		return View{}, false
	}
	return *s.view, true
}

// LastError returns the error of the most recent reload or refresh.
func (s *Site) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reload reads the configuration file again and rebuilds.
func (s *Site) Reload(ctx context.Context) error {
	cfg, err := s.load(s.configPath)
	if err != nil {
		s.setError(err)
		slog.Warn("Configuration rejected, keeping previous version", logfields.Path(s.configPath), logfields.Error(err))
		return err
	}
	return s.apply(ctx, cfg)
}

// Refresh rebuilds from the current configuration, picking up content and
// history changes.
func (s *Site) Refresh(ctx context.Context) error {
	s.mu.RLock()
	cfg := s.source
	s.mu.RUnlock()
	if cfg == nil {
		return s.Reload(ctx)
	}
	return s.apply(ctx, cfg)
}

func (s *Site) apply(ctx context.Context, cfg *config.SiteConfig) error {
	result, err := s.runner.Run(ctx, build.Request{Config: cfg, Force: true})
	if err != nil {
		s.setError(err)
		return err
	}
	view := &View{
		Config:   result.Config,
		Manifest: result.Manifest,
		Pages:    result.Pages,
		Index:    docs.NewIndex(result.Pages),
		Renderer: markdown.NewRenderer(result.Config.Markdown),
		BuildID:  result.BuildID,
	}

	s.mu.Lock()
	s.source = cfg
	s.view = view
	s.lastErr = nil
	s.mu.Unlock()

	slog.Info("Site updated", logfields.BuildID(result.BuildID), logfields.Count(len(result.Pages)))
	return nil
}

func (s *Site) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
