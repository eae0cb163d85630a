package lint

import (
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo marks observations that need no action.
	SeverityInfo Severity = iota
	// SeverityWarning marks issues the engine tolerates but that likely break the site.
	SeverityWarning
	// SeverityError marks issues that make the emitted configuration wrong.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule names.
const (
	RuleConfigValid = "config-valid"
	RuleLinkTarget  = "link-target"
	RuleAssetExists = "asset-exists"
	RuleOrphanPage  = "orphan-page"
	RuleContentDir  = "content-dir"
)

// Issue is a single linting problem.
type Issue struct {
	Rule     string   // Rule identifier, e.g. "link-target"
	Severity Severity // Issue severity level
	Field    string   // Configuration field, empty for page-level issues
	Path     string   // Page or asset path, relative to the content directory
	Message  string
	Fix      string // Suggested fix
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue
	PagesTotal int
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool { return r.count(SeverityError) > 0 }

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool { return r.count(SeverityWarning) > 0 }

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

// InfoCount returns the number of info-level issues.
func (r *Result) InfoCount() int { return r.count(SeverityInfo) }

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Context is the input every rule checks.
type Context struct {
	Config  *config.SiteConfig
	Fs      afero.Fs
	Pages   []docs.Page
	Index   *docs.Index
	Sidebar []config.SidebarItem // configured sidebar, or the generated one with autoSidebar

	// ContentMissing is set when the content directory does not exist.
	// Page based rules skip themselves in that case.
	ContentMissing bool
}

// Rule defines a linting rule.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects the context and returns any issues found.
	Check(ctx *Context) []Issue
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings and info, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string
}
