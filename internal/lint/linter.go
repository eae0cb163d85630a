package lint

import (
	stderrors "errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Linter checks a configuration against the content tree it describes.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a linter with the default rule set.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&ConfigValidRule{},
			&LinkTargetRule{},
			&AssetExistsRule{},
			&OrphanPageRule{},
		},
	}
}

// Rules returns the rules the linter runs, in order.
func (l *Linter) Rules() []Rule { return slices.Clone(l.rules) }

// Lint runs every rule against cfg and the content directory on fsys.
// A missing content directory is reported as an issue, other discovery
// failures are returned as errors.
func (l *Linter) Lint(cfg *config.SiteConfig, fsys afero.Fs) (*Result, error) {
	ctx, err := NewContext(cfg, fsys)
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}, PagesTotal: len(ctx.Pages)}
	if ctx.ContentMissing {
		result.Issues = append(result.Issues, Issue{
			Rule:     RuleContentDir,
			Severity: SeverityError,
			Field:    "content.dir",
			Path:     cfg.Content.Dir,
			Message:  "content directory does not exist",
			Fix:      "create the directory or point content.dir at the markdown sources",
		})
	}
	for _, rule := range l.rules {
		issues := rule.Check(ctx)
		if len(issues) > 0 {
			slog.Debug("Lint rule reported issues", logfields.Rule(rule.Name()), logfields.Count(len(issues)))
		}
		result.Issues = append(result.Issues, issues...)
	}

	if l.cfg.Quiet {
		result.Issues = slices.DeleteFunc(result.Issues, func(i Issue) bool { return i.Severity != SeverityError })
	}
	sortIssues(result.Issues)
	return result, nil
}

// NewContext discovers pages and prepares the shared rule input.
func NewContext(cfg *config.SiteConfig, fsys afero.Fs) (*Context, error) {
	ctx := &Context{Config: cfg, Fs: fsys}
	pages, err := docs.DiscoverContent(fsys, cfg.Content)
	switch {
	case stderrors.Is(err, derrors.ErrContentDirNotFound):
		ctx.ContentMissing = true
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "discover content").
			WithContext("path", cfg.Content.Dir).
			Build()
	}
	ctx.Pages = pages
	ctx.Index = docs.NewIndex(pages)
	ctx.Sidebar = cfg.Theme.Sidebar
	if cfg.Content.AutoSidebar && len(ctx.Sidebar) == 0 {
		ctx.Sidebar = docs.BuildSidebar(pages)
	}
	return ctx, nil
}

func sortIssues(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		if a.Severity != b.Severity {
			return int(b.Severity) - int(a.Severity)
		}
		if c := strings.Compare(a.Rule, b.Rule); c != 0 {
			return c
		}
		if c := strings.Compare(a.Field, b.Field); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}
