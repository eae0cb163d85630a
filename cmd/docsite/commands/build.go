package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output    string   `short:"o" help:"Output directory, relative to the configuration file (overrides output.directory)"`
	Target    []string `short:"t" help:"Engine to emit for, repeatable: vitepress or hugo (overrides output.targets)"`
	Force     bool     `short:"f" help:"Emit even when configuration and content are unchanged since the last build"`
	StateDB   string   `name:"state-db" help:"Build history database (default .docsite/state.db next to the configuration)"`
	NoHistory bool     `name:"no-history" help:"Do not read or record build history"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	targets := make([]config.Target, 0, len(b.Target))
	for _, raw := range b.Target {
		t, err := config.ParseTarget(raw)
		if err != nil {
			return err
		}
		targets = append(targets, t)
	}

	svc := build.NewService(root.siteFs()).WithLastUpdated(build.GitLastUpdated(root.siteRoot()))
	if !b.NoHistory {
		store, err := root.openStore(b.StateDB)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				slog.Warn("Failed to close build history", logfields.Error(cerr))
			}
		}()
		svc = svc.WithStore(store)
	}

	result, err := svc.Run(ctx, build.Request{
		Config:    cfg,
		OutputDir: b.Output,
		Targets:   targets,
		Force:     b.Force,
	})
	if err != nil {
		return err
	}

	if result.Skipped {
		_, _ = fmt.Fprintf(g.Stdout, "Configuration and content unchanged, nothing to emit (use --force to rebuild)\n")
		return nil
	}
	for _, f := range result.Files {
		_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", f)
	}
	_, _ = fmt.Fprintf(g.Stdout, "Build %s completed: %d pages in %s\n", result.BuildID, len(result.Pages), result.Duration.Round(time.Millisecond))
	return nil
}
