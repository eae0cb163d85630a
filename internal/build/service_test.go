package build

import (
	"context"
	"errors"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/state"
)

func siteFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range map[string]string{
		"docs/index.md":       "# Home\n",
		"docs/guide/index.md": "# Guide\n\n## Setup\n",
		"docs/guide/intro.md": "---\norder: 1\n---\n# Intro\n",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func newStore(t *testing.T) *state.SQLiteStore {
	t.Helper()
	store, err := state.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunEmitsTargetsAndManifest(t *testing.T) {
	fs := siteFs(t)
	cfg := config.New(config.WithTargets(config.TargetVitePress, config.TargetHugo))

	result, err := NewService(fs).Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)

	require.Equal(t, state.StatusSuccess, result.Status)
	require.Equal(t, "build", result.OutputPath)
	require.Equal(t, []string{"build/config.json", "build/hugo.yaml", "build/manifest.json"}, result.Files)
	require.Len(t, result.Pages, 3)
	require.Equal(t, cfg.Snapshot(), result.Snapshot)
	for _, f := range result.Files {
		ok, err := afero.Exists(fs, f)
		require.NoError(t, err)
		require.True(t, ok, f)
	}
	require.Len(t, result.Manifest.Pages, 3)
}

func TestRunRequestOverrides(t *testing.T) {
	fs := siteFs(t)
	result, err := NewService(fs).Run(context.Background(), Request{
		Config:    config.New(),
		OutputDir: "out",
		Targets:   []config.Target{config.TargetHugo},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"out/hugo.yaml", "out/manifest.json"}, result.Files)
}

func TestRunAutoSidebar(t *testing.T) {
	fs := siteFs(t)
	cfg := config.New(config.WithAutoSidebar(true))

	result, err := NewService(fs).Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)

	require.Empty(t, cfg.Theme.Sidebar, "request config must not be mutated")
	require.NotEmpty(t, result.Config.Theme.Sidebar)
	require.NotEqual(t, cfg.Snapshot(), result.Snapshot)

	data, err := afero.ReadFile(fs, "build/config.json")
	require.NoError(t, err)
	require.Contains(t, string(data), `"/guide/intro"`)
}

func TestRunInvalidConfig(t *testing.T) {
	store := newStore(t)
	cfg := config.New()
	cfg.Site.Base = "docs"

	result, err := NewService(siteFs(t)).WithStore(store).Run(context.Background(), Request{Config: cfg})
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	require.Equal(t, state.StatusFailed, result.Status)

	records, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, state.StatusFailed, records[0].Status)
	require.NotEmpty(t, records[0].Error)
}

func TestRunNilConfig(t *testing.T) {
	result, err := NewService(afero.NewMemMapFs()).Run(context.Background(), Request{})
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.Equal(t, state.StatusFailed, result.Status)
}

func TestRunMissingContentStillEmits(t *testing.T) {
	fs := afero.NewMemMapFs()
	result, err := NewService(fs).Run(context.Background(), Request{Config: config.New()})
	require.NoError(t, err)
	require.Empty(t, result.Pages)
	require.Contains(t, result.Files, "build/config.json")
}

func TestRunSkipsUnchangedSnapshot(t *testing.T) {
	fs := siteFs(t)
	store := newStore(t)
	svc := NewService(fs).WithStore(store)
	cfg := config.New()

	first, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.True(t, second.Skipped)
	require.Equal(t, state.StatusSkipped, second.Status)
	require.Equal(t, "unchanged_snapshot", second.SkipReason)

	forced, err := svc.Run(context.Background(), Request{Config: cfg, Force: true})
	require.NoError(t, err)
	require.False(t, forced.Skipped)

	changed, err := svc.Run(context.Background(), Request{Config: config.New(config.WithTitle("Other"))})
	require.NoError(t, err)
	require.False(t, changed.Skipped)
}

func TestRunRebuildsIntoNewOutputDir(t *testing.T) {
	fs := siteFs(t)
	svc := NewService(fs).WithStore(newStore(t))
	cfg := config.New()

	_, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)

	moved, err := svc.Run(context.Background(), Request{Config: cfg, OutputDir: "dist"})
	require.NoError(t, err)
	require.False(t, moved.Skipped)
	require.Equal(t, "dist", moved.Config.Output.Directory)
	require.Equal(t, []string{"dist/config.json", "dist/manifest.json"}, moved.Files)
	ok, err := afero.Exists(fs, "dist/config.json")
	require.NoError(t, err)
	require.True(t, ok)

	again, err := svc.Run(context.Background(), Request{Config: cfg, OutputDir: "dist"})
	require.NoError(t, err)
	require.True(t, again.Skipped)
}

func TestRunRebuildsWhenContentChanges(t *testing.T) {
	fs := siteFs(t)
	svc := NewService(fs).WithStore(newStore(t))
	cfg := config.New()

	first, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.NotEmpty(t, first.ContentHash)

	require.NoError(t, afero.WriteFile(fs, "docs/guide/intro.md", []byte("---\norder: 1\n---\n# Renamed Intro\n"), 0o644))

	second, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.False(t, second.Skipped)
	require.Equal(t, first.Snapshot, second.Snapshot)
	require.NotEqual(t, first.ContentHash, second.ContentHash)

	data, err := afero.ReadFile(fs, "build/manifest.json")
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)
	var titles []string
	for _, p := range m.Pages {
		titles = append(titles, p.Title)
	}
	require.Contains(t, titles, "Renamed Intro")
	require.NotContains(t, titles, "Intro")
}

func TestRunRebuildsWhenOutputRemoved(t *testing.T) {
	fs := siteFs(t)
	svc := NewService(fs).WithStore(newStore(t))
	cfg := config.New()

	_, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.NoError(t, fs.Remove("build/config.json"))

	again, err := svc.Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.False(t, again.Skipped)
}

func TestRunLastUpdated(t *testing.T) {
	fs := siteFs(t)
	updated := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	var gotDir string
	factory := func(contentDir string) (manifest.LastUpdatedFunc, error) {
		gotDir = contentDir
		return func(string) (time.Time, error) { return updated, nil }, nil
	}
	cfg := config.New(config.WithLastUpdated(config.LastUpdated{Enabled: true}))

	result, err := NewService(fs).WithLastUpdated(factory).Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.Equal(t, "docs", gotDir)
	for _, p := range result.Manifest.Pages {
		require.NotNil(t, p.LastUpdated)
		require.NotEmpty(t, p.LastUpdatedText)
	}
}

func TestRunLastUpdatedFactoryError(t *testing.T) {
	factory := func(string) (manifest.LastUpdatedFunc, error) { return nil, errors.New("not a repository") }
	cfg := config.New(config.WithLastUpdated(config.LastUpdated{Enabled: true}))

	result, err := NewService(siteFs(t)).WithLastUpdated(factory).Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.Nil(t, result.Manifest.Pages[0].LastUpdated)
}

func TestRunRecordsMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	svc := NewService(siteFs(t)).WithRecorder(rec)

	_, err := svc.Run(context.Background(), Request{Config: config.New(config.WithTargets(config.TargetVitePress, config.TargetHugo))})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "docsite_build_outcomes_total", "docsite_emitted_files_total", "docsite_validations_total")
	require.NoError(t, err)
	require.Equal(t, 4, count)
}
