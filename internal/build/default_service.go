package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/emit"
	_ "git.home.luguber.info/inful/docsite/internal/emit/hugo"
	_ "git.home.luguber.info/inful/docsite/internal/emit/vitepress"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/observability"
	"git.home.luguber.info/inful/docsite/internal/state"
)

// LastUpdatedFactory creates the last-updated lookup for a content directory.
// A nil lookup disables last-updated data.
type LastUpdatedFactory func(contentDir string) (manifest.LastUpdatedFunc, error)

// Service is the standard Runner. All paths are resolved on its filesystem.
type Service struct {
	fs          afero.Fs
	store       state.Store
	recorder    metrics.Recorder
	lastUpdated LastUpdatedFactory
}

// NewService creates a service working on fsys with no history and no metrics.
func NewService(fsys afero.Fs) *Service {
	return &Service{fs: fsys, recorder: metrics.NoopRecorder{}}
}

// WithStore enables build history and unchanged-snapshot skipping.
func (s *Service) WithStore(store state.Store) *Service {
	s.store = store
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithLastUpdated sets the factory used for manifest last-updated data.
func (s *Service) WithLastUpdated(f LastUpdatedFactory) *Service {
	s.lastUpdated = f
	return s
}

// Run executes the build pipeline.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{BuildID: uuid.NewString(), StartTime: start}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	finish := func(status state.Status, err error) (*Result, error) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		s.recorder.ObserveBuildDuration(result.Duration)
		s.recorder.IncBuildOutcome(metrics.BuildOutcome(status))
		s.record(ctx, result, err)
		if err != nil {
			observability.ErrorContext(ctx, "Build failed", logfields.Error(err))
		}
		return result, err
	}

	if req.Config == nil {
		return finish(state.StatusFailed, errors.ConfigError("config required").Build())
	}
	cfg := *req.Config
	if len(req.Targets) > 0 {
		cfg.Output.Targets = req.Targets
	}
	if req.OutputDir != "" {
		cfg.Output.Directory = req.OutputDir
	}
	result.Config = &cfg
	result.OutputPath = cfg.Output.Directory

	// Stage 1: validate
	stageStart := time.Now()
	vctx := observability.WithStage(ctx, "validate")
	report := config.Validate(&cfg)
	s.recorder.SetConfigIssues("error", len(report.Errors))
	s.recorder.SetConfigIssues("warning", len(report.Warnings))
	switch {
	case !report.Valid():
		s.recorder.IncValidation(metrics.ValidationInvalid)
	case len(report.Warnings) > 0:
		s.recorder.IncValidation(metrics.ValidationWarnings)
	default:
		s.recorder.IncValidation(metrics.ValidationValid)
	}
	for _, w := range report.Warnings {
		observability.WarnContext(vctx, w.Message, logfields.Field(w.Field))
	}
	s.recorder.ObserveStageDuration("validate", time.Since(stageStart))
	if err := report.Err(); err != nil {
		return finish(state.StatusFailed, err)
	}

	// Stage 2: discover
	stageStart = time.Now()
	dctx := observability.WithStage(ctx, "discover")
	pages, err := docs.DiscoverContent(s.fs, cfg.Content)
	switch {
	case stderrors.Is(err, derrors.ErrContentDirNotFound):
		observability.WarnContext(dctx, "Content directory not found, emitting without pages", logfields.Path(cfg.Content.Dir))
	case err != nil:
		return finish(state.StatusFailed, errors.WrapError(fmt.Errorf("%w: %w", ErrDiscovery, err), errors.CategoryFileSystem, "discover content").
			WithContext("path", cfg.Content.Dir).
			Build())
	}
	result.Pages = pages
	if cfg.Content.AutoSidebar && len(cfg.Theme.Sidebar) == 0 {
		cfg.Theme.Sidebar = docs.BuildSidebar(pages)
		observability.InfoContext(dctx, "Generated sidebar", logfields.Count(len(cfg.Theme.Sidebar)))
	}
	s.recorder.ObserveStageDuration("discover", time.Since(stageStart))
	result.Snapshot = cfg.Snapshot()

	// Stage 3: manifest
	stageStart = time.Now()
	m := manifest.Build(&cfg, pages, s.lookup(ctx, &cfg))
	contentHash, err := m.Hash()
	if err != nil {
		return finish(state.StatusFailed, fmt.Errorf("%w: %w", ErrManifest, err))
	}
	result.Manifest = m
	result.ContentHash = contentHash
	s.recorder.ObserveStageDuration("manifest", time.Since(stageStart))

	// Stage 4: skip evaluation
	if !req.Force {
		if reason, ok := s.canSkip(ctx, &cfg, result); ok {
			result.Skipped = true
			result.SkipReason = reason
			observability.InfoContext(ctx, "Build skipped", logfields.Snapshot(result.Snapshot), slog.String("reason", reason))
			return finish(state.StatusSkipped, nil)
		}
	}

	// Stage 5: emit
	stageStart = time.Now()
	ectx := observability.WithStage(ctx, "emit")
	files, err := emit.WriteAll(s.fs, result.OutputPath, &cfg)
	if err != nil {
		return finish(state.StatusFailed, fmt.Errorf("%w: %w", ErrEmit, err))
	}
	for _, target := range cfg.Output.Targets {
		s.recorder.IncEmittedFile(string(target))
		observability.DebugContext(observability.WithTarget(ectx, string(target)), "Target emitted")
	}
	result.Files = files
	s.recorder.ObserveStageDuration("emit", time.Since(stageStart))
	observability.InfoContext(ectx, "Emitted engine configuration", logfields.Count(len(files)))

	manifestPath := filepath.Join(result.OutputPath, manifest.FileName)
	if err := m.Write(s.fs, manifestPath); err != nil {
		return finish(state.StatusFailed, fmt.Errorf("%w: %w", ErrManifest, err))
	}
	result.Files = append(result.Files, manifestPath)

	return finish(state.StatusSuccess, nil)
}

// canSkip reports whether every target was last built successfully from the
// same configuration snapshot and page content, and its files are still present.
func (s *Service) canSkip(ctx context.Context, cfg *config.SiteConfig, result *Result) (string, bool) {
	if s.store == nil || len(cfg.Output.Targets) == 0 {
		return "", false
	}
	for _, target := range cfg.Output.Targets {
		latest, err := s.store.Latest(ctx, target)
		if err != nil {
			if !stderrors.Is(err, state.ErrNotFound) {
				observability.WarnContext(ctx, "History lookup failed", logfields.Target(string(target)), logfields.Error(err))
			}
			return "", false
		}
		if latest.Snapshot != result.Snapshot || latest.ContentHash != result.ContentHash {
			return "", false
		}
		for _, f := range latest.Files {
			if ok, _ := afero.Exists(s.fs, f); !ok {
				return "", false
			}
		}
		if result.Files == nil {
			result.Files = latest.Files
		}
	}
	return "unchanged_snapshot", true
}

func (s *Service) lookup(ctx context.Context, cfg *config.SiteConfig) manifest.LastUpdatedFunc {
	if s.lastUpdated == nil || !cfg.Theme.LastUpdated.Enabled {
		return nil
	}
	fn, err := s.lastUpdated(cfg.Content.Dir)
	if err != nil {
		observability.WarnContext(ctx, "Last updated data unavailable", logfields.Error(err))
		return nil
	}
	return fn
}

func (s *Service) record(ctx context.Context, result *Result, buildErr error) {
	if s.store == nil {
		return
	}
	rec := state.BuildRecord{
		ID:          result.BuildID,
		Snapshot:    result.Snapshot,
		ContentHash: result.ContentHash,
		Status:      result.Status,
		Files:       result.Files,
		PageCount:   len(result.Pages),
		StartedAt:   result.StartTime.UTC(),
		FinishedAt:  result.EndTime.UTC(),
	}
	if result.Config != nil {
		rec.Targets = result.Config.Output.Targets
	}
	if buildErr != nil {
		rec.Error = buildErr.Error()
	}
	if err := s.store.Record(ctx, rec); err != nil {
		observability.WarnContext(ctx, "Failed to record build", logfields.Error(err))
	}
}
