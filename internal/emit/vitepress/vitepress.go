// Package vitepress emits the VitePress site configuration as config.json.
package vitepress

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
)

// FileName is the name of the emitted file.
const FileName = "config.json"

func init() { emit.Register(Emitter{}) }

// Emitter implements emit.Emitter for VitePress.
type Emitter struct{}

func (Emitter) Target() config.Target { return config.TargetVitePress }

// Emit renders the configuration object in the shape defineConfig accepts.
func (Emitter) Emit(cfg *config.SiteConfig) (*emit.File, error) {
	data, err := json.MarshalIndent(Build(cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal vitepress config: %w", err)
	}
	return &emit.File{Target: config.TargetVitePress, Name: FileName, Data: append(data, '\n')}, nil
}

// Build returns the VitePress configuration as a generic map.
func Build(cfg *config.SiteConfig) map[string]any {
	root := map[string]any{
		"base":  cfg.Site.Base,
		"title": cfg.Site.Title,
	}
	if cfg.Site.Description != "" {
		root["description"] = cfg.Site.Description
	}
	if cfg.Site.Lang != "" {
		root["lang"] = cfg.Site.Lang
	}
	if len(cfg.Site.Icons) > 0 {
		head := make([]any, 0, len(cfg.Site.Icons))
		for _, icon := range cfg.Site.Icons {
			head = append(head, []any{"link", map[string]any{"rel": icon.Rel, "href": icon.Href}})
		}
		root["head"] = head
	}
	if cfg.Theme.LastUpdated.Enabled {
		root["lastUpdated"] = true
	}
	root["themeConfig"] = themeConfig(cfg.Theme)
	root["markdown"] = map[string]any{
		"lineNumbers": cfg.Markdown.LineNumbers,
		"image":       map[string]any{"lazyLoading": cfg.Markdown.ImageLazyLoading},
	}
	return root
}

func themeConfig(t config.ThemeConfig) map[string]any {
	tc := map[string]any{}
	// Labels first so that structural keys below always win.
	emit.MergeMaps(tc, t.Labels.Expand())

	if t.Logo != "" {
		tc["logo"] = t.Logo
	}
	if t.SiteTitle != "" {
		tc["siteTitle"] = t.SiteTitle
	}
	if len(t.Nav) > 0 {
		tc["nav"] = t.Nav
	}
	if len(t.Sidebar) > 0 {
		tc["sidebar"] = t.Sidebar
	}
	if len(t.SocialLinks) > 0 {
		tc["socialLinks"] = t.SocialLinks
	}
	if !t.Outline.IsZero() {
		outline := map[string]any{"level": t.Outline.Level()}
		if t.Outline.Label != "" {
			outline["label"] = t.Outline.Label
		}
		tc["outline"] = outline
	}
	if lu := t.LastUpdated; lu.Enabled {
		tc["lastUpdated"] = map[string]any{
			"text": lu.Text,
			"formatOptions": map[string]any{
				"dateStyle": string(lu.DateStyle),
				"timeStyle": string(lu.TimeStyle),
			},
		}
	}
	if t.Footer != (config.Footer{}) {
		tc["footer"] = t.Footer
	}
	return tc
}
