package lint

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// ConfigValidRule surfaces validation errors and warnings as issues.
type ConfigValidRule struct{}

func (r *ConfigValidRule) Name() string { return RuleConfigValid }

func (r *ConfigValidRule) Check(ctx *Context) []Issue {
	report := config.Validate(ctx.Config)
	issues := make([]Issue, 0, len(report.Errors)+len(report.Warnings))
	for _, fe := range report.Errors {
		issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityError, Field: fe.Field, Message: fe.Message})
	}
	for _, fe := range report.Warnings {
		issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityWarning, Field: fe.Field, Message: fe.Message})
	}
	return issues
}

// LinkTargetRule checks that internal nav and sidebar links resolve to a page.
// Root-relative links inside page bodies are checked too, as warnings.
type LinkTargetRule struct{}

func (r *LinkTargetRule) Name() string { return RuleLinkTarget }

func (r *LinkTargetRule) Check(ctx *Context) []Issue {
	if ctx.ContentMissing {
		return nil
	}
	var issues []Issue
	check := func(field, link string) {
		if link == "" || config.IsExternalURL(link) {
			return
		}
		if _, ok := ctx.Index.Resolve(link); ok {
			return
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: SeverityError,
			Field:    field,
			Message:  fmt.Sprintf("link %q does not resolve to a page", link),
			Fix:      fmt.Sprintf("create one of %s", strings.Join(docs.Candidates(linkPath(link)), ", ")),
		})
	}

	for i, item := range ctx.Config.Theme.Nav {
		check(fmt.Sprintf("theme.nav[%d].link", i), item.Link)
	}
	checkSidebar("theme.sidebar", ctx.Config.Theme.Sidebar, check)

	for _, p := range ctx.Pages {
		for _, l := range markdown.ExtractLinks(p.Body) {
			if l.Kind == markdown.LinkKindImage || !strings.HasPrefix(l.Destination, "/") || strings.HasPrefix(l.Destination, "//") {
				continue
			}
			if _, ok := ctx.Index.Resolve(l.Destination); ok {
				continue
			}
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Path:     p.Path,
				Message:  fmt.Sprintf("link %q does not resolve to a page", l.Destination),
			})
		}
	}
	return issues
}

func checkSidebar(prefix string, items []config.SidebarItem, check func(field, link string)) {
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		check(field+".link", item.Link)
		if item.IsGroup() {
			checkSidebar(field+".items", item.Items, check)
		}
	}
}

func linkPath(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	return strings.TrimPrefix(link, "/")
}

// AssetExistsRule checks that icon and logo files exist in the public directory.
type AssetExistsRule struct{}

func (r *AssetExistsRule) Name() string { return RuleAssetExists }

func (r *AssetExistsRule) Check(ctx *Context) []Issue {
	publicDir := ctx.Config.Content.PublicDir
	var issues []Issue
	for _, asset := range ctx.Config.Assets() {
		if asset.External() || strings.HasPrefix(asset.Href, "data:") {
			continue
		}
		rel := strings.TrimPrefix(linkPath(asset.Href), "./")
		full := filepath.Join(publicDir, filepath.FromSlash(rel))
		exists, err := afero.Exists(ctx.Fs, full)
		if err == nil && exists {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: SeverityWarning,
			Field:    asset.Field,
			Path:     filepath.ToSlash(full),
			Message:  fmt.Sprintf("%s %q not found in %s", asset.Kind, asset.Href, publicDir),
			Fix:      fmt.Sprintf("add %s to the public directory", rel),
		})
	}
	return issues
}

// OrphanPageRule reports pages that neither the nav, the sidebar nor another
// page links to. The root index page is always reachable.
type OrphanPageRule struct{}

func (r *OrphanPageRule) Name() string { return RuleOrphanPage }

func (r *OrphanPageRule) Check(ctx *Context) []Issue {
	if ctx.ContentMissing {
		return nil
	}
	reached := map[string]bool{}
	mark := func(link string) {
		if p, ok := ctx.Index.Resolve(link); ok {
			reached[p.Path] = true
		}
	}
	for _, item := range ctx.Config.Theme.Nav {
		mark(item.Link)
	}
	config.Walk(ctx.Sidebar, func(item config.SidebarItem, _ []config.SidebarItem) {
		mark(item.Link)
	})
	for _, p := range ctx.Pages {
		for _, l := range markdown.ExtractLinks(p.Body) {
			if l.Kind == markdown.LinkKindImage {
				continue
			}
			if target, ok := pageLink(p, l.Destination); ok {
				mark(target)
			}
		}
	}

	var issues []Issue
	for _, p := range ctx.Pages {
		if reached[p.Path] || (p.IsIndex() && p.Section == "") {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: SeverityInfo,
			Path:     p.Path,
			Message:  "page is not linked from nav, sidebar or any other page",
		})
	}
	return issues
}

// pageLink turns a link found in page p into a root-relative link.
// Relative links resolve against the directory of p.
func pageLink(p docs.Page, dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") || config.IsExternalURL(dest) || strings.Contains(dest, ":") {
		return "", false
	}
	if strings.HasPrefix(dest, "/") {
		return dest, true
	}
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	joined := path.Join("/", p.Section, dest)
	if strings.HasSuffix(dest, "/") && joined != "/" {
		joined += "/"
	}
	return joined, true
}
