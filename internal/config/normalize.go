package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// NormalizationResult captures adjustments made by Normalize.
type NormalizationResult struct {
	Warnings []string
}

// Normalize trims free-text fields and case-folds enumerations in place.
// It never rewrites paths: a base without slashes is left for validation to reject.
// Normalize is idempotent.
func Normalize(c *SiteConfig) *NormalizationResult {
	res := &NormalizationResult{}
	if c == nil {
		return res
	}
	normalizeSite(&c.Site)
	normalizeTheme(&c.Theme, res)
	normalizeContent(&c.Content)
	normalizeOutput(&c.Output, res)
	normalizeLogging(&c.Logging, res)
	return res
}

func normalizeSite(s *SiteMeta) {
	s.Base = strings.TrimSpace(s.Base)
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Lang = strings.TrimSpace(s.Lang)
	for i := range s.Icons {
		s.Icons[i].Rel = strings.ToLower(strings.TrimSpace(s.Icons[i].Rel))
		s.Icons[i].Href = strings.TrimSpace(s.Icons[i].Href)
	}
}

func normalizeTheme(t *ThemeConfig, res *NormalizationResult) {
	t.Logo = strings.TrimSpace(t.Logo)
	t.SiteTitle = strings.TrimSpace(t.SiteTitle)
	for i := range t.Nav {
		t.Nav[i].Text = strings.TrimSpace(t.Nav[i].Text)
		t.Nav[i].Link = strings.TrimSpace(t.Nav[i].Link)
		t.Nav[i].ActiveMatch = strings.TrimSpace(t.Nav[i].ActiveMatch)
	}
	normalizeSidebar(t.Sidebar)
	for i := range t.SocialLinks {
		sl := &t.SocialLinks[i]
		sl.Link = strings.TrimSpace(sl.Link)
		sl.Icon = normalizeEnum(fmt.Sprintf("theme.socialLinks[%d].icon", i), sl.Icon, socialIconNormalizer.NormalizeField, res)
	}
	t.LastUpdated.Text = strings.TrimSpace(t.LastUpdated.Text)
	t.LastUpdated.DateStyle = normalizeEnum("theme.lastUpdated.dateStyle", t.LastUpdated.DateStyle, formatStyleNormalizer.NormalizeField, res)
	t.LastUpdated.TimeStyle = normalizeEnum("theme.lastUpdated.timeStyle", t.LastUpdated.TimeStyle, formatStyleNormalizer.NormalizeField, res)
}

func normalizeSidebar(items []SidebarItem) {
	for i := range items {
		items[i].Text = strings.TrimSpace(items[i].Text)
		items[i].Link = strings.TrimSpace(items[i].Link)
		if items[i].IsGroup() {
			normalizeSidebar(items[i].Items)
		}
	}
}

func normalizeContent(c *ContentConfig) {
	c.Dir = strings.TrimSpace(c.Dir)
	c.PublicDir = strings.TrimSpace(c.PublicDir)
	for i := range c.Exclude {
		c.Exclude[i] = strings.TrimSpace(c.Exclude[i])
	}
}

func normalizeOutput(o *OutputConfig, res *NormalizationResult) {
	o.Directory = strings.TrimSpace(o.Directory)
	if len(o.Targets) == 0 {
		return
	}
	seen := make(map[Target]bool, len(o.Targets))
	targets := make([]Target, 0, len(o.Targets))
	for i, t := range o.Targets {
		t = normalizeEnum(fmt.Sprintf("output.targets[%d]", i), t, targetNormalizer.NormalizeField, res)
		if seen[t] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("dropped duplicate output target '%s'", t))
			continue
		}
		seen[t] = true
		targets = append(targets, t)
	}
	o.Targets = targets
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	l.Level = normalizeEnum("logging.level", l.Level, logLevelNormalizer.NormalizeField, res)
	l.Format = normalizeEnum("logging.format", l.Format, logFormatNormalizer.NormalizeField, res)
}

// normalizeEnum rewrites known values to their canonical form and leaves unknown values untouched.
func normalizeEnum[T ~string](field string, v T, fn func(field, raw string) normalization.Result[T], res *NormalizationResult) T {
	out := fn(field, string(v))
	if !out.Known {
		return v
	}
	if out.Value != v {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s from '%s' to '%s'", field, v, out.Value))
	}
	return out.Value
}
