package config

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestNewDefaultsAreValid(t *testing.T) {
	cfg := New()

	require.Equal(t, "/", cfg.Site.Base)
	require.Equal(t, DefaultTitle, cfg.Site.Title)
	require.Equal(t, DefaultLang, cfg.Site.Lang)
	require.Equal(t, Outline{Min: 2, Max: 3}, cfg.Theme.Outline)
	require.Equal(t, []Target{TargetVitePress}, cfg.Output.Targets)
	require.Equal(t, "docs/public", cfg.Content.PublicDir)
	require.True(t, Validate(cfg).Valid())
	require.NoError(t, Validate(cfg).Err())
}

func TestNewScenario(t *testing.T) {
	cfg := New(
		WithBase("/docs/"),
		WithNav(NavItem{Text: "Start", Link: "/guide"}),
		WithSidebar(SidebarGroup("v1", SidebarLink("Intro", "/guide/intro"))),
	)

	require.Equal(t, "/docs/", cfg.Site.Base)
	require.Len(t, cfg.Theme.Nav, 1)
	require.Equal(t, "/guide/intro", cfg.Theme.Sidebar[0].Items[0].Link)
	require.True(t, cfg.Theme.Sidebar[0].IsGroup())
	require.False(t, cfg.Theme.Sidebar[0].Items[0].IsGroup())
	require.True(t, Validate(cfg).Valid())
}

func TestEmptyNavAndSidebarAreValid(t *testing.T) {
	cfg := New(WithBase("/docs/"))
	require.Empty(t, cfg.Theme.Nav)
	require.Empty(t, cfg.Theme.Sidebar)
	require.True(t, Validate(cfg).Valid())
}

func TestExampleIsValid(t *testing.T) {
	cfg := Example()
	report := Validate(cfg)
	require.Empty(t, report.Errors)
	require.Empty(t, report.Warnings)
	require.True(t, cfg.Markdown.LineNumbers)
	require.True(t, cfg.Markdown.ImageLazyLoading)
	require.Equal(t, "favicon.ico", cfg.Site.Icons[0].Href)
	require.Equal(t, "/logo.svg", cfg.Theme.Logo)
	require.Equal(t, DefaultLang, cfg.Site.Lang)
}

func codes(errs foundation.FieldErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestValidateBase(t *testing.T) {
	tests := []struct {
		base string
		code string
	}{
		{"docs/", InvalidPathFormat},
		{"/docs", InvalidPathFormat},
		{"docs", InvalidPathFormat},
		{"/a//b/", InvalidPathFormat},
		{"/docs?x=1/", InvalidPathFormat},
		{"", MissingRequiredField},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			cfg := New()
			cfg.Site.Base = tt.base
			report := Validate(cfg)
			require.False(t, report.Valid())
			require.Equal(t, []string{tt.code}, codes(report.Errors))
			require.Equal(t, "site.base", report.Errors[0].Field)
		})
	}

	for _, ok := range []string{"/", "/docs/", "/a/b/"} {
		cfg := New(WithBase(ok))
		require.True(t, Validate(cfg).Valid(), ok)
	}
}

func TestValidateSidebar(t *testing.T) {
	t.Run("empty group", func(t *testing.T) {
		cfg := New(WithSidebar(SidebarGroup("Empty")))
		report := Validate(cfg)
		require.Equal(t, []string{EmptySidebarGroup}, codes(report.Errors))
		require.Equal(t, "theme.sidebar[0]", report.Errors[0].Field)
	})

	t.Run("group with link only", func(t *testing.T) {
		cfg := New(WithSidebar(SidebarGroup("API").WithLink("/api/")))
		require.True(t, Validate(cfg).Valid())
	})

	t.Run("nested empty group", func(t *testing.T) {
		cfg := New(WithSidebar(SidebarGroup("Outer", SidebarLink("A", "/a"), SidebarGroup("Inner"))))
		report := Validate(cfg)
		require.Equal(t, []string{EmptySidebarGroup}, codes(report.Errors))
		require.Equal(t, "theme.sidebar[0].items[1]", report.Errors[0].Field)
	})

	t.Run("leaf with empty link", func(t *testing.T) {
		cfg := New(WithSidebar(SidebarGroup("G", SidebarLink("A", ""))))
		report := Validate(cfg)
		require.Equal(t, []string{MissingRequiredField}, codes(report.Errors))
		require.Equal(t, "theme.sidebar[0].items[0].link", report.Errors[0].Field)
	})

	t.Run("relative leaf link", func(t *testing.T) {
		cfg := New(WithSidebar(SidebarLink("A", "guide/intro")))
		require.Equal(t, []string{InvalidPathFormat}, codes(Validate(cfg).Errors))
	})
}

func TestValidateNavLinks(t *testing.T) {
	cfg := New(WithNav(
		NavItem{Text: "Start", Link: ""},
		NavItem{Text: "Rel", Link: "guide"},
		NavItem{Text: "Proto", Link: "//cdn.example.com"},
		NavItem{Text: "Mail", Link: "mailto:a@b.c"},
		NavItem{Text: "", Link: "/ok"},
		NavItem{Text: "Ext", Link: "https://example.com/docs"},
	))
	report := Validate(cfg)
	require.Equal(t, []string{
		MissingRequiredField,
		InvalidPathFormat,
		InvalidPathFormat,
		InvalidPathFormat,
		MissingRequiredField,
	}, codes(report.Errors))
	require.Equal(t, "theme.nav[4].text", report.Errors[4].Field)
}

func TestValidateIcons(t *testing.T) {
	cfg := New(
		WithIcon("icon", "favicon.ico"),
		WithIcon("icon", "favicon.ico"),
		WithIcon("", "/x.png"),
	)
	report := Validate(cfg)
	require.Equal(t, []string{MissingRequiredField}, codes(report.Errors))
	require.Equal(t, []string{DuplicateIcon}, codes(report.Warnings))
	require.Equal(t, "site.icons[1]", report.Warnings[0].Field)

	dupOnly := New(WithIcon("icon", "/a.ico"), WithIcon("ICON ", "/a.ico"))
	r := Validate(dupOnly)
	require.True(t, r.Valid())
	require.Len(t, r.Warnings, 1)
	require.NoError(t, r.Err())
}

func TestValidateSocialLinks(t *testing.T) {
	cfg := New(
		WithSocialLink("GitHub", "https://github.com/x"),
		WithSocialLink("myspace", "https://myspace.com/x"),
		WithSocialLink(IconDiscord, "discord.gg/x"),
	)
	require.Equal(t, IconGitHub, cfg.Theme.SocialLinks[0].Icon)

	report := Validate(cfg)
	require.Equal(t, []string{InvalidValue, InvalidValue}, codes(report.Errors))
	require.Equal(t, "theme.socialLinks[1].icon", report.Errors[0].Field)
	require.Equal(t, "theme.socialLinks[2].link", report.Errors[1].Field)
}

func TestValidateOutlineAndLastUpdated(t *testing.T) {
	for _, o := range [][2]int{{1, 3}, {2, 7}, {4, 3}} {
		cfg := New(WithOutline(o[0], o[1]))
		report := Validate(cfg)
		require.Equal(t, []string{InvalidValue}, codes(report.Errors), o)
	}
	require.True(t, Validate(New(WithOutline(6, 6))).Valid())

	cfg := New(WithLastUpdated(LastUpdated{Enabled: true, DateStyle: "tiny"}))
	report := Validate(cfg)
	require.Equal(t, []string{InvalidValue}, codes(report.Errors))
	require.Equal(t, "theme.lastUpdated.dateStyle", report.Errors[0].Field)
}

func TestValidateLabelsAndOutput(t *testing.T) {
	cfg := New(
		WithLabel("docFooter", "Footer"),
		WithLabel("docFooter.prev", "Prev"),
		WithLabel("bad..key", "x"),
		WithTargets("vitepress", "jekyll"),
	)
	cfg.Content.Exclude = []string{"drafts/[a-"}
	report := Validate(cfg)
	require.ElementsMatch(t, []string{
		"theme.labels.bad..key",
		"theme.labels.docFooter",
		"output.targets[1]",
		"content.exclude[0]",
	}, fieldsOf(report.Errors))
}

func fieldsOf(errs foundation.FieldErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestReportErrIsClassified(t *testing.T) {
	cfg := New(WithBase("docs"), WithSidebar(SidebarGroup("Empty")))
	err := Validate(cfg).Err()
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))

	var fes foundation.FieldErrors
	require.True(t, stderrors.As(err, &fes))
	require.True(t, fes.HasCode(InvalidPathFormat))
	require.True(t, fes.HasCode(EmptySidebarGroup))
}

func TestValidateNil(t *testing.T) {
	require.False(t, Validate(nil).Valid())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	cfg := &SiteConfig{
		Site: SiteMeta{Base: " /docs/ ", Title: "  Docs "},
		Theme: ThemeConfig{
			SocialLinks: []SocialLink{{Icon: " GitHub", Link: " https://github.com/x "}},
			Sidebar:     []SidebarItem{SidebarGroup(" G ", SidebarLink(" A ", " /a "))},
			LastUpdated: LastUpdated{DateStyle: "LONG"},
		},
		Output:  OutputConfig{Targets: []Target{"Hugo", "hugo", "vitepress"}},
		Logging: LoggingConfig{Level: "WARNING", Format: "JSON"},
	}
	res := Normalize(cfg)
	require.NotEmpty(t, res.Warnings)

	require.Equal(t, "/docs/", cfg.Site.Base)
	require.Equal(t, "Docs", cfg.Site.Title)
	require.Equal(t, IconGitHub, cfg.Theme.SocialLinks[0].Icon)
	require.Equal(t, "/a", cfg.Theme.Sidebar[0].Items[0].Link)
	require.Equal(t, StyleLong, cfg.Theme.LastUpdated.DateStyle)
	require.Equal(t, []Target{TargetHugo, TargetVitePress}, cfg.Output.Targets)
	require.Equal(t, LogLevelWarn, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)

	before := *cfg
	again := Normalize(cfg)
	require.Empty(t, again.Warnings)
	require.Equal(t, before, *cfg)
}

func TestNormalizeKeepsInvalidBase(t *testing.T) {
	cfg := &SiteConfig{Site: SiteMeta{Base: "docs", Title: "x"}}
	Normalize(cfg)
	ApplyDefaults(cfg)
	require.Equal(t, "docs", cfg.Site.Base)
}

func TestSnapshot(t *testing.T) {
	a := New(WithSocialLink("GitHub", "https://github.com/x"))
	b := New(WithSocialLink("github", "https://github.com/x"))
	require.NotEmpty(t, a.Snapshot())
	require.Equal(t, a.Snapshot(), b.Snapshot())

	b.Logging.Level = LogLevelDebug
	require.Equal(t, a.Snapshot(), b.Snapshot())

	c := New(WithSocialLink("github", "https://github.com/y"))
	require.NotEqual(t, a.Snapshot(), c.Snapshot())

	var nilCfg *SiteConfig
	require.Empty(t, nilCfg.Snapshot())
}

func TestAssets(t *testing.T) {
	cfg := Example()
	assets := cfg.Assets()
	require.Equal(t, []Asset{
		{Kind: AssetIcon, Field: "site.icons[0].href", Href: "favicon.ico"},
		{Kind: AssetLogo, Field: "theme.logo", Href: "/logo.svg"},
	}, assets)
	require.False(t, assets[0].External())
	require.True(t, Asset{Href: "https://cdn.example.com/logo.svg"}.External())
}

func TestLabelSetExpand(t *testing.T) {
	labels := LabelSet{
		"docFooter.prev":      "Previous section",
		"docFooter.next":      "Next section",
		"darkModeSwitchLabel": "Theme",
		"a":                   "leaf",
		"a.b":                 "nested",
	}
	require.Equal(t, map[string]any{
		"docFooter":           map[string]any{"prev": "Previous section", "next": "Next section"},
		"darkModeSwitchLabel": "Theme",
		"a":                   map[string]any{"b": "nested"},
	}, labels.Expand())
}

func TestWalkSidebar(t *testing.T) {
	tree := []SidebarItem{
		SidebarGroup("G", SidebarLink("A", "/a"), SidebarGroup("H", SidebarLink("B", "/b"))),
		SidebarLink("C", "/c"),
	}
	var seen []string
	var depth []int
	Walk(tree, func(item SidebarItem, parents []SidebarItem) {
		seen = append(seen, item.Text)
		depth = append(depth, len(parents))
	})
	require.Equal(t, []string{"G", "A", "H", "B", "C"}, seen)
	require.Equal(t, []int{0, 1, 1, 2, 0}, depth)
}

func TestLoggingHandler(t *testing.T) {
	require.Equal(t, "DEBUG", LoggingConfig{Level: LogLevelDebug}.SlogLevel().String())
	require.Equal(t, "INFO", LoggingConfig{Level: "bogus"}.SlogLevel().String())
	require.Equal(t, "ERROR", LoggingConfig{Level: LogLevelError}.SlogLevel().String())
}
