package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/preview"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr     string        `short:"a" default:"127.0.0.1:5173" help:"Listen address"`
	Refresh  time.Duration `default:"1m" help:"Interval for rebuilding from content and git history (0 disables)"`
	Debounce time.Duration `default:"300ms" help:"Quiet period after a configuration change before reloading"`
	NoWatch  bool          `name:"no-watch" help:"Do not reload when the configuration file changes"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	fsys := root.siteFs()
	svc := build.NewService(fsys).
		WithRecorder(metrics.NewPrometheusRecorder(reg)).
		WithLastUpdated(build.GitLastUpdated(root.siteRoot()))

	load := func(path string) (*config.SiteConfig, error) {
		cfg, err := config.Load(path)
		if err == nil {
			root.applyLogging(cfg)
		}
		return cfg, err
	}
	site := preview.NewSite(root.Config, load, svc)
	if err := site.Reload(ctx); err != nil {
		slog.Warn("Initial build failed, serving errors until the configuration is fixed", logfields.Error(err))
	}

	if !s.NoWatch {
		watcher, err := preview.NewConfigWatcher(root.Config, s.Debounce, site.Reload)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = watcher.Stop() }()
	}

	if s.Refresh > 0 {
		scheduler, err := preview.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := scheduler.ScheduleRefresh(ctx, "preview-refresh", s.Refresh, site.Refresh); err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	_, _ = fmt.Fprintf(g.Stdout, "Serving preview on http://%s\n", s.Addr)
	server := preview.NewServer(site, fsys, metrics.HTTPHandler(reg))
	return server.ListenAndServe(ctx, s.Addr)
}
