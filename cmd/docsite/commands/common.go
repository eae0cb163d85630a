// Package commands implements the docsite subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/state"
)

// Global carries state shared by all subcommands.
type Global struct {
	Stdout io.Writer
}

// NewGlobal returns a Global writing to the process stdout.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout}
}

// CLI is the command tree and the global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Validate ValidateCmd `cmd:"" help:"Validate the configuration file"`
	Build    BuildCmd    `cmd:"" help:"Emit engine configuration and the page manifest"`
	Lint     LintCmd     `cmd:"" help:"Check links, assets and pages against the content directory"`
	Sidebar  SidebarCmd  `cmd:"" help:"Print the sidebar generated from the content directory"`
	Serve    ServeCmd    `cmd:"" help:"Serve a live preview that reloads on configuration changes"`
	History  HistoryCmd  `cmd:"" help:"List recorded builds"`
}

// AfterApply installs the default logger. Commands that load a configuration
// replace it with the handler the configuration asks for.
func (c *CLI) AfterApply() error {
	lc := config.LoggingConfig{Level: config.LogLevel(os.Getenv(config.EnvLogLevel))}
	slog.SetDefault(slog.New(lc.Handler(os.Stderr, c.Verbose)))
	return nil
}

// siteRoot is the directory relative paths in the configuration resolve against.
func (c *CLI) siteRoot() string {
	abs, err := filepath.Abs(c.Config)
	if err != nil {
		return filepath.Dir(c.Config)
	}
	return filepath.Dir(abs)
}

// siteFs is the OS filesystem rooted at the configuration directory.
func (c *CLI) siteFs() afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), c.siteRoot())
}

// loadConfig loads and validates the configuration and applies its logging settings.
func (c *CLI) loadConfig() (*config.SiteConfig, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.applyLogging(cfg)
	return cfg, nil
}

func (c *CLI) applyLogging(cfg *config.SiteConfig) {
	slog.SetDefault(slog.New(cfg.Logging.Handler(os.Stderr, c.Verbose)))
}

// openStore opens the build history. An empty path uses the default location
// next to the configuration file.
func (c *CLI) openStore(path string) (*state.SQLiteStore, error) {
	if path == "" {
		path = filepath.Join(c.siteRoot(), state.DefaultPath)
	}
	store, err := state.NewSQLiteStore(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "open build history").
			WithContext("path", path).
			Build()
	}
	return store, nil
}

// isColorSupported reports whether stdout is a color capable terminal.
func isColorSupported() bool {
	if fileInfo, _ := os.Stdout.Stat(); fileInfo == nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}
