// Package hugo emits the Hugo site configuration as hugo.yaml.
package hugo

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
)

// FileName is the name of the emitted file.
const FileName = "hugo.yaml"

const menuWeightStep = 10

func init() { emit.Register(Emitter{}) }

// Emitter implements emit.Emitter for Hugo.
type Emitter struct{}

func (Emitter) Target() config.Target { return config.TargetHugo }

func (Emitter) Emit(cfg *config.SiteConfig) (*emit.File, error) {
	data, err := yaml.Marshal(Build(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal hugo config: %w", err)
	}
	return &emit.File{Target: config.TargetHugo, Name: FileName, Data: data}, nil
}

// Build assembles the Hugo root configuration map.
func Build(cfg *config.SiteConfig) map[string]any {
	// Phase 1: core fields
	root := map[string]any{
		"baseURL": cfg.Site.Base,
		"title":   cfg.Site.Title,
	}
	if cfg.Site.Lang != "" {
		root["languageCode"] = cfg.Site.Lang
	}
	if cfg.Theme.LastUpdated.Enabled {
		root["enableGitInfo"] = true
	}

	// Phase 2: markup
	markup := map[string]any{
		"goldmark": map[string]any{
			"renderer": map[string]any{"unsafe": true},
		},
		"highlight": map[string]any{"lineNos": cfg.Markdown.LineNumbers},
	}
	if o := cfg.Theme.Outline; !o.IsZero() {
		markup["tableOfContents"] = map[string]any{"startLevel": o.Min, "endLevel": o.Max}
	}
	root["markup"] = markup

	// Phase 3: params, labels merged in last so nested keys combine
	params := buildParams(cfg)
	emit.MergeMaps(params, map[string]any{"labels": cfg.Theme.Labels.Expand()})
	root["params"] = params

	// Phase 4: menus
	menu := map[string]any{}
	if main := mainMenu(cfg.Theme.Nav); len(main) > 0 {
		menu["main"] = main
	}
	if side := sidebarMenu(cfg.Theme.Sidebar); len(side) > 0 {
		menu["sidebar"] = side
	}
	if len(menu) > 0 {
		root["menu"] = menu
	}
	return root
}

func buildParams(cfg *config.SiteConfig) map[string]any {
	t := cfg.Theme
	params := map[string]any{
		"imageLazyLoading": cfg.Markdown.ImageLazyLoading,
	}
	if cfg.Site.Description != "" {
		params["description"] = cfg.Site.Description
	}
	if t.Logo != "" {
		params["logo"] = t.Logo
	}
	if t.SiteTitle != "" {
		params["siteTitle"] = t.SiteTitle
	}
	if len(cfg.Site.Icons) > 0 {
		icons := make([]map[string]any, 0, len(cfg.Site.Icons))
		for _, icon := range cfg.Site.Icons {
			icons = append(icons, map[string]any{"rel": icon.Rel, "href": icon.Href})
		}
		params["icons"] = icons
	}
	if len(t.SocialLinks) > 0 {
		links := make([]map[string]any, 0, len(t.SocialLinks))
		for _, s := range t.SocialLinks {
			links = append(links, map[string]any{"icon": string(s.Icon), "link": s.Link})
		}
		params["socialLinks"] = links
	}
	if !t.Outline.IsZero() {
		outline := map[string]any{"startLevel": t.Outline.Min, "endLevel": t.Outline.Max}
		if t.Outline.Label != "" {
			outline["label"] = t.Outline.Label
		}
		params["outline"] = outline
	}
	if lu := t.LastUpdated; lu.Enabled {
		params["lastUpdated"] = map[string]any{
			"text":      lu.Text,
			"dateStyle": string(lu.DateStyle),
			"timeStyle": string(lu.TimeStyle),
		}
	}
	if t.Footer != (config.Footer{}) {
		footer := map[string]any{}
		if t.Footer.Message != "" {
			footer["message"] = t.Footer.Message
		}
		if t.Footer.Copyright != "" {
			footer["copyright"] = t.Footer.Copyright
		}
		params["footer"] = footer
	}
	return params
}

func mainMenu(nav []config.NavItem) []map[string]any {
	out := make([]map[string]any, 0, len(nav))
	for i, item := range nav {
		entry := map[string]any{
			"name":   item.Text,
			"url":    item.Link,
			"weight": (i + 1) * menuWeightStep,
		}
		if item.ActiveMatch != "" {
			entry["params"] = map[string]any{"activeMatch": item.ActiveMatch}
		}
		out = append(out, entry)
	}
	return out
}

// sidebarMenu flattens the sidebar tree into Hugo menu entries linked by
// identifier and parent. Identifiers encode the position path ("sidebar-0-2").
func sidebarMenu(items []config.SidebarItem) []map[string]any {
	var out []map[string]any
	var walk func(items []config.SidebarItem, parent string)
	walk = func(items []config.SidebarItem, parent string) {
		for i, item := range items {
			id := "sidebar-" + strconv.Itoa(i)
			if parent != "" {
				id = parent + "-" + strconv.Itoa(i)
			}
			entry := map[string]any{
				"identifier": id,
				"name":       item.Text,
				"weight":     (i + 1) * menuWeightStep,
			}
			if item.Link != "" {
				entry["url"] = item.Link
			}
			if parent != "" {
				entry["parent"] = parent
			}
			if item.Collapsed != nil {
				entry["params"] = map[string]any{"collapsed": *item.Collapsed}
			}
			out = append(out, entry)
			if item.IsGroup() {
				walk(item.Items, id)
			}
		}
	}
	walk(items, "")
	return out
}
