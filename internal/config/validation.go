package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/docsite/internal/foundation"
	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// Validation error codes.
const (
	MissingRequiredField = "missing_required_field"
	InvalidPathFormat    = "invalid_path_format"
	EmptySidebarGroup    = "empty_sidebar_group"
	InvalidValue         = "invalid_value"
	DuplicateIcon        = "duplicate_icon"
)

// Report is the outcome of Validate. Warnings never make a configuration invalid.
type Report struct {
	Errors   foundation.FieldErrors `json:"errors,omitempty"`
	Warnings foundation.FieldErrors `json:"warnings,omitempty"`
}

// Valid reports whether no errors were found.
func (r *Report) Valid() bool { return r == nil || len(r.Errors) == 0 }

// Err returns nil for a valid report, otherwise a validation ClassifiedError
// whose cause is the foundation.FieldErrors list.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return foundation.ValidationResult{Valid: false, Errors: r.Errors}.ToError()
}

// Validate checks cfg and returns every violation found. It does not mutate cfg.
func Validate(cfg *SiteConfig) *Report {
	if cfg == nil {
		return &Report{Errors: foundation.FieldErrors{foundation.NewValidationError("", MissingRequiredField, "configuration is nil")}}
	}
	v := &configurationValidator{config: cfg}
	v.validateSite()
	v.validateIcons()
	v.validateTheme()
	v.validateNav()
	v.validateSidebar("theme.sidebar", cfg.Theme.Sidebar)
	v.validateSocialLinks()
	v.validateLabels()
	v.validateContent()
	v.validateOutput()
	v.validateLogging()
	return &Report{Errors: v.errors, Warnings: v.warnings}
}

// configurationValidator collects violations across configuration domains.
type configurationValidator struct {
	config   *SiteConfig
	errors   foundation.FieldErrors
	warnings foundation.FieldErrors
}

func (cv *configurationValidator) fail(field, code string, value any, format string, args ...any) {
	fe := foundation.NewValidationError(field, code, fmt.Sprintf(format, args...))
	if value != nil {
		fe = fe.WithValue(value)
	}
	cv.errors = append(cv.errors, fe)
}

func (cv *configurationValidator) warn(field, code string, value any, format string, args ...any) {
	fe := foundation.NewValidationError(field, code, fmt.Sprintf(format, args...))
	if value != nil {
		fe = fe.WithValue(value)
	}
	cv.warnings = append(cv.warnings, fe)
}

func (cv *configurationValidator) merge(r foundation.ValidationResult) {
	cv.errors = append(cv.errors, r.Errors...)
	cv.warnings = append(cv.warnings, r.Warnings...)
}

func (cv *configurationValidator) validateSite() {
	s := cv.config.Site
	switch {
	case s.Base == "":
		cv.fail("site.base", MissingRequiredField, nil, "base is required")
	case !strings.HasPrefix(s.Base, "/"):
		cv.fail("site.base", InvalidPathFormat, s.Base, "base must start with '/'")
	case !strings.HasSuffix(s.Base, "/"):
		cv.fail("site.base", InvalidPathFormat, s.Base, "base must end with '/'")
	case strings.Contains(s.Base, "//") || strings.ContainsAny(s.Base, "?# \t"):
		cv.fail("site.base", InvalidPathFormat, s.Base, "base must be a plain URL path")
	}
	if s.Title == "" {
		cv.fail("site.title", MissingRequiredField, nil, "title is required")
	}
}

func (cv *configurationValidator) validateIcons() {
	seen := make(map[IconRef]int)
	for i, icon := range cv.config.Site.Icons {
		field := fmt.Sprintf("site.icons[%d]", i)
		if icon.Rel == "" {
			cv.fail(field+".rel", MissingRequiredField, nil, "icon rel is required")
		}
		if icon.Href == "" {
			cv.fail(field+".href", MissingRequiredField, nil, "icon href is required")
			continue
		}
		if !isAssetRef(icon.Href) {
			cv.fail(field+".href", InvalidPathFormat, icon.Href, "icon href must be a relative path, a root-relative path or an http(s) URL")
		}
		if first, dup := seen[icon]; dup {
			cv.warn(field, DuplicateIcon, icon.Href, "duplicate of site.icons[%d] (rel=%s)", first, icon.Rel)
			continue
		}
		seen[icon] = i
	}
}

func (cv *configurationValidator) validateTheme() {
	t := cv.config.Theme
	if t.Logo != "" && !isAssetRef(t.Logo) {
		cv.fail("theme.logo", InvalidPathFormat, t.Logo, "logo must be a relative path, a root-relative path or an http(s) URL")
	}
	if o := t.Outline; o.Min != 0 || o.Max != 0 {
		if o.Min < MinOutlineLevel || o.Max > MaxOutlineLevel || o.Min > o.Max {
			cv.fail("theme.outline.level", InvalidValue, o.Level(),
				"outline level must satisfy %d <= min <= max <= %d", MinOutlineLevel, MaxOutlineLevel)
		}
	}
	lu := t.LastUpdated
	if lu.DateStyle != "" && !formatStyleNormalizer.Known(string(lu.DateStyle)) {
		cv.fail("theme.lastUpdated.dateStyle", InvalidValue, string(lu.DateStyle), "must be one of: full, long, medium, short")
	}
	if lu.TimeStyle != "" && !formatStyleNormalizer.Known(string(lu.TimeStyle)) {
		cv.fail("theme.lastUpdated.timeStyle", InvalidValue, string(lu.TimeStyle), "must be one of: full, long, medium, short")
	}
}

func (cv *configurationValidator) validateNav() {
	for i, item := range cv.config.Theme.Nav {
		field := fmt.Sprintf("theme.nav[%d]", i)
		if item.Text == "" {
			cv.fail(field+".text", MissingRequiredField, nil, "text is required")
		}
		cv.validateLink(field+".link", item.Link, true)
	}
}

func (cv *configurationValidator) validateSidebar(prefix string, items []SidebarItem) {
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		if item.Text == "" {
			cv.fail(field+".text", MissingRequiredField, nil, "text is required")
		}
		if !item.IsGroup() {
			cv.validateLink(field+".link", item.Link, true)
			continue
		}
		if item.Link == "" && len(item.Items) == 0 {
			cv.fail(field, EmptySidebarGroup, item.Text, "sidebar group needs a link or at least one item")
		}
		if item.Link != "" {
			cv.validateLink(field+".link", item.Link, false)
		}
		cv.validateSidebar(field+".items", item.Items)
	}
}

// validateLink checks a navigation target. Empty links are reported only when required.
func (cv *configurationValidator) validateLink(field, link string, required bool) {
	if link == "" {
		if required {
			cv.fail(field, MissingRequiredField, nil, "link is required")
		}
		return
	}
	if !IsNavLink(link) {
		cv.fail(field, InvalidPathFormat, link, "link must start with '/' or be an http(s) URL")
	}
}

func (cv *configurationValidator) validateSocialLinks() {
	for i, sl := range cv.config.Theme.SocialLinks {
		field := fmt.Sprintf("theme.socialLinks[%d]", i)
		switch {
		case sl.Icon == "":
			cv.fail(field+".icon", MissingRequiredField, nil, "icon is required")
		case !socialIconNormalizer.Known(string(sl.Icon)):
			cv.fail(field+".icon", InvalidValue, string(sl.Icon), "unknown icon, valid options: %s", strings.Join(SocialIcons(), ", "))
		}
		switch {
		case sl.Link == "":
			cv.fail(field+".link", MissingRequiredField, nil, "link is required")
		case !IsExternalURL(sl.Link):
			cv.fail(field+".link", InvalidValue, sl.Link, "link must be an http(s) URL")
		}
	}
}

func (cv *configurationValidator) validateLabels() {
	labels := cv.config.Theme.Labels
	for _, key := range labels.Keys() {
		field := "theme.labels." + key
		if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") || strings.Contains(key, "..") {
			cv.fail(field, InvalidValue, key, "label key must be a dotted path without empty segments")
		}
	}
	for _, key := range labels.conflicts() {
		cv.fail("theme.labels."+key, InvalidValue, key, "label key is also used as a prefix of a nested label")
	}
}

func (cv *configurationValidator) validateContent() {
	for i, pattern := range cv.config.Content.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			cv.fail(fmt.Sprintf("content.exclude[%d]", i), InvalidValue, pattern, "invalid glob pattern")
		}
	}
}

func (cv *configurationValidator) validateOutput() {
	for i, t := range cv.config.Output.Targets {
		cv.merge(enumValidator(fmt.Sprintf("output.targets[%d]", i), targetNormalizer)(string(t)))
	}
}

var loggingValidator = foundation.NewValidatorChain(
	func(l LoggingConfig) foundation.ValidationResult {
		return enumValidator("logging.level", logLevelNormalizer)(string(l.Level))
	},
	func(l LoggingConfig) foundation.ValidationResult {
		return enumValidator("logging.format", logFormatNormalizer)(string(l.Format))
	},
)

func (cv *configurationValidator) validateLogging() {
	cv.merge(loggingValidator.Validate(cv.config.Logging))
}

// enumValidator rejects non-empty values n does not know.
func enumValidator[T comparable](field string, n *normalization.Normalizer[T]) foundation.Validator[string] {
	return func(raw string) foundation.ValidationResult {
		if raw == "" || n.Known(raw) {
			return foundation.Valid()
		}
		return foundation.Invalid(foundation.NewValidationError(field, InvalidValue,
			"must be one of: "+strings.Join(n.Keys(), ", ")).WithValue(raw))
	}
}

// IsNavLink reports whether link is root-relative or an absolute http(s) URL.
func IsNavLink(link string) bool {
	if strings.HasPrefix(link, "/") {
		return !strings.HasPrefix(link, "//")
	}
	return IsExternalURL(link)
}

// IsExternalURL reports whether s is an absolute http or https URL with a host.
func IsExternalURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isAssetRef accepts relative paths (favicon.ico) in addition to navigation links.
func isAssetRef(href string) bool {
	if IsNavLink(href) {
		return true
	}
	u, err := url.Parse(href)
	return err == nil && u.Scheme == "" && u.Host == "" && !strings.HasPrefix(href, "//")
}
