package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			cfg := Example()
			cfg.Theme.Sidebar = append(cfg.Theme.Sidebar,
				SidebarGroup("Collapsed", SidebarLink("X", "https://example.com/x")).WithCollapsed(true))
			cfg.Theme.Outline = Outline{Min: 2, Max: 6, Label: "On this page"}

			data, err := Marshal(cfg, format)
			require.NoError(t, err)

			parsed, err := Parse(data, format)
			require.NoError(t, err)
			require.Equal(t, cfg, parsed)
			require.Equal(t, cfg.Snapshot(), parsed.Snapshot())
		})
	}
}

func TestSidebarDiscriminatedByItemsKey(t *testing.T) {
	data := []byte(`
site:
  base: /docs/
  title: Docs
theme:
  nav:
    - text: Start
      link: /guide
  sidebar:
    - text: v1
      items:
        - text: Intro
          link: /guide/intro
    - text: Overview
      link: /overview
    - text: API
      link: /api/
      collapsed: true
      items: []
`)
	cfg, err := Parse(data, FormatYAML)
	require.NoError(t, err)

	require.Equal(t, "/docs/", cfg.Site.Base)
	require.Len(t, cfg.Theme.Nav, 1)
	require.Equal(t, "/guide/intro", cfg.Theme.Sidebar[0].Items[0].Link)

	require.Equal(t, SidebarKindGroup, cfg.Theme.Sidebar[0].Kind)
	require.Equal(t, SidebarKindLink, cfg.Theme.Sidebar[1].Kind)
	require.Equal(t, SidebarKindGroup, cfg.Theme.Sidebar[2].Kind)
	require.NotNil(t, cfg.Theme.Sidebar[2].Collapsed)
	require.True(t, *cfg.Theme.Sidebar[2].Collapsed)

	out, err := Marshal(cfg, FormatYAML)
	require.NoError(t, err)
	require.Contains(t, string(out), "items: []")
}

func TestParseEmptyGroupFails(t *testing.T) {
	data := []byte(`{"site":{"base":"/","title":"x"},"theme":{"sidebar":[{"text":"Empty","items":[]}]}}`)
	_, err := Parse(data, FormatJSON)
	require.Error(t, err)

	var fes foundation.FieldErrors
	require.True(t, stderrors.As(err, &fes))
	require.True(t, fes.HasCode(EmptySidebarGroup))
}

func TestParseNullItemsIsEmptyGroup(t *testing.T) {
	cases := map[Format]string{
		FormatYAML: "site:\n  base: /\n  title: x\ntheme:\n  sidebar:\n    - text: Empty\n      items: null\n",
		FormatJSON: `{"site":{"base":"/","title":"x"},"theme":{"sidebar":[{"text":"Empty","items":null}]}}`,
	}
	for format, data := range cases {
		t.Run(string(format), func(t *testing.T) {
			cfg, err := decode([]byte(data), format)
			require.NoError(t, err)
			prepare(cfg)
			require.Equal(t, SidebarKindGroup, cfg.Theme.Sidebar[0].Kind)
			require.NotNil(t, cfg.Theme.Sidebar[0].Items)

			report := Validate(cfg)
			require.True(t, report.Errors.HasCode(EmptySidebarGroup))
			require.False(t, report.Errors.HasCode(MissingRequiredField))
		})
	}
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
  // comments and trailing commas are accepted
  "site": {"base": "/docs/", "title": "Docs",},
  "theme": {
    "outline": "deep",
    "socialLinks": [{"icon": "GitHub", "link": "https://github.com/x"}],
    /* block comment */
    "labels": {"docFooter.prev": "Back"},
  },
}`)
	cfg, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	require.True(t, cfg.Theme.Outline.Deep())
	require.Equal(t, IconGitHub, cfg.Theme.SocialLinks[0].Icon)
	require.Equal(t, "Back", cfg.Theme.Labels["docFooter.prev"])
}

func TestOutlineForms(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Outline
	}{
		{"int", "outline: 3", Outline{Min: 3, Max: 3}},
		{"pair", "outline: [2, 4]", Outline{Min: 2, Max: 4}},
		{"deep", "outline: deep", Outline{Min: 2, Max: 6}},
		{"mapping", "outline:\n    level: [3, 5]\n    label: Contents", Outline{Min: 3, Max: 5, Label: "Contents"}},
		{"label only", "outline:\n    label: Contents", Outline{Min: 2, Max: 3, Label: "Contents"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("site:\n  title: x\ntheme:\n  " + tt.yaml + "\n")
			cfg, err := Parse(data, FormatYAML)
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.Theme.Outline)
		})
	}

	_, err := Parse([]byte("site:\n  title: x\ntheme:\n  outline: shallow\n"), FormatYAML)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Parse([]byte("site:\n  title: x\ntheme:\n  outline: 9\n"), FormatYAML)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("site:\n  title: x\n  tittle: y\n"), FormatYAML)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Parse([]byte(`{"site":{"title":"x"},"extra":1}`), FormatJSON)
	require.Error(t, err)
}

func TestLoadExpandsEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCSITE_TEST_TITLE=From Dotenv\n"), 0o600))
	t.Setenv("DOCSITE_TEST_BASE", "/handbook/")
	t.Cleanup(func() { _ = os.Unsetenv("DOCSITE_TEST_TITLE") })

	path := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  base: ${DOCSITE_TEST_BASE}\n  title: ${DOCSITE_TEST_TITLE}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/handbook/", cfg.Site.Base)
	require.Equal(t, "From Dotenv", cfg.Site.Title)
}

func TestLoadLogLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: x\nlogging:\n  level: info\n"), 0o600))
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Load(filepath.Join(dir, "docsite.toml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("site:\n  base: docs\n  title: x\n"), 0o600))
	_, err = Load(invalid)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))

	cfg, err := Read(invalid)
	require.NoError(t, err)
	require.False(t, Validate(cfg).Valid())
}

func TestInitAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")

	require.NoError(t, Init(path, false))
	err := Init(path, false)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Example(), cfg)

	jsonPath := filepath.Join(t.TempDir(), "docsite.json")
	require.NoError(t, Save(jsonPath, cfg))
	again, err := Load(jsonPath)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml":  FormatYAML,
		"a.YML":   FormatYAML,
		"a.json":  FormatJSON,
		"a.jsonc": FormatJSON,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
