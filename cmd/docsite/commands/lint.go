package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
}

func (l *LintCmd) Run(g *Global, root *CLI) error {
	// Read skips validation so that configuration errors are reported as lint issues.
	cfg, err := config.Read(root.Config)
	if err != nil {
		return err
	}
	root.applyLogging(cfg)

	linter := lint.NewLinter(&lint.Config{Quiet: l.Quiet, Format: l.Format})
	result, err := linter.Lint(cfg, root.siteFs())
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	formatter := lint.NewFormatter(l.Format, l.Format == "text" && isColorSupported())
	if err := formatter.Format(g.Stdout, result, root.Config); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if code := lintExitCode(result, l.Quiet); code != 0 {
		os.Exit(code)
	}
	return nil
}

// lintExitCode is 2 when errors were found and 1 for warnings outside quiet mode.
func lintExitCode(result *lint.Result, quiet bool) int {
	switch {
	case result.HasErrors():
		return 2
	case result.HasWarnings() && !quiet:
		return 1
	default:
		return 0
	}
}
