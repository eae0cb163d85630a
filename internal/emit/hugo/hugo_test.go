package hugo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/config"
)

func decode(t *testing.T, cfg *config.SiteConfig) map[string]any {
	t.Helper()
	f, err := Emitter{}.Emit(cfg)
	require.NoError(t, err)
	require.Equal(t, FileName, f.Name)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(f.Data, &out))
	return out
}

func TestEmitExample(t *testing.T) {
	out := decode(t, config.Example())

	require.Equal(t, "/", out["baseURL"])
	require.Equal(t, "Example Docs", out["title"])
	require.Equal(t, "en-US", out["languageCode"])
	require.Equal(t, true, out["enableGitInfo"])

	markup := out["markup"].(map[string]any)
	require.Equal(t, map[string]any{"lineNos": true}, markup["highlight"])
	require.Equal(t, map[string]any{"startLevel": 2, "endLevel": 3}, markup["tableOfContents"])

	params := out["params"].(map[string]any)
	require.Equal(t, "Documentation for the example project", params["description"])
	require.Equal(t, "/logo.svg", params["logo"])
	require.Equal(t, true, params["imageLazyLoading"])
	require.Equal(t, map[string]any{
		"docFooter":           map[string]any{"prev": "Previous page", "next": "Next page"},
		"darkModeSwitchLabel": "Appearance",
	}, params["labels"])

	main := out["menu"].(map[string]any)["main"].([]any)
	require.Equal(t, map[string]any{
		"name":   "Guide",
		"url":    "/guide/",
		"weight": 10,
		"params": map[string]any{"activeMatch": "/guide/"},
	}, main[0])
}

func TestSidebarMenuFlattensTree(t *testing.T) {
	cfg := config.New(config.WithSidebar(
		config.SidebarGroup("Guide",
			config.SidebarLink("Intro", "/guide/intro"),
			config.SidebarGroup("Deep", config.SidebarLink("Leaf", "/guide/deep/leaf")),
		).WithCollapsed(false),
		config.SidebarLink("About", "/about"),
	))

	menu := sidebarMenu(cfg.Theme.Sidebar)
	require.Equal(t, []map[string]any{
		{"identifier": "sidebar-0", "name": "Guide", "weight": 10, "params": map[string]any{"collapsed": false}},
		{"identifier": "sidebar-0-0", "name": "Intro", "weight": 10, "url": "/guide/intro", "parent": "sidebar-0"},
		{"identifier": "sidebar-0-1", "name": "Deep", "weight": 20, "parent": "sidebar-0"},
		{"identifier": "sidebar-0-1-0", "name": "Leaf", "weight": 10, "url": "/guide/deep/leaf", "parent": "sidebar-0-1"},
		{"identifier": "sidebar-1", "name": "About", "weight": 20, "url": "/about"},
	}, menu)
}

func TestEmitMinimal(t *testing.T) {
	out := decode(t, config.New())

	require.NotContains(t, out, "menu")
	require.NotContains(t, out, "enableGitInfo")
	params := out["params"].(map[string]any)
	require.NotContains(t, params, "footer")
	require.Equal(t, map[string]any{}, params["labels"])
}
