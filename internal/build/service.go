package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/state"
)

// Request contains the inputs of one build.
type Request struct {
	// Config is the loaded configuration.
	Config *config.SiteConfig

	// OutputDir overrides output.directory when set.
	OutputDir string

	// Targets overrides output.targets when set.
	Targets []config.Target

	// Force emits even when the configuration snapshot and the content are unchanged.
	Force bool
}

// Result contains the outcome of a build.
type Result struct {
	BuildID  string
	Status   state.Status
	Snapshot string
	// ContentHash is the manifest hash over the discovered pages.
	ContentHash string
	OutputPath  string
	Files       []string
	Pages       []docs.Page
	Manifest    *manifest.Manifest

	// Config is the configuration that was emitted, including a generated sidebar.
	Config *config.SiteConfig

	Skipped    bool
	SkipReason string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Runner executes builds.
type Runner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}
