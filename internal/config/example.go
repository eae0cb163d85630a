package config

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Example returns the documented example site.
func Example() *SiteConfig {
	return New(
		WithBase("/"),
		WithTitle("Example Docs"),
		WithDescription("Documentation for the example project"),
		WithLang(DefaultLang),
		WithIcon("icon", "favicon.ico"),
		WithLogo("/logo.svg"),
		WithNav(
			NavItem{Text: "Guide", Link: "/guide/", ActiveMatch: "/guide/"},
			NavItem{Text: "Reference", Link: "/reference/"},
		),
		WithSidebar(
			SidebarGroup("Guide",
				SidebarLink("Introduction", "/guide/"),
				SidebarLink("Getting started", "/guide/getting-started"),
			),
			SidebarGroup("Reference").WithLink("/reference/"),
		),
		WithSocialLink(IconGitHub, "https://github.com/example/project"),
		WithLabel("docFooter.prev", "Previous page"),
		WithLabel("docFooter.next", "Next page"),
		WithLabel("darkModeSwitchLabel", "Appearance"),
		WithLastUpdated(LastUpdated{Enabled: true}),
		WithFooter("Released under the MIT License.", "Copyright © Example contributors"),
		WithMarkdown(MarkdownOptions{LineNumbers: true, ImageLazyLoading: true}),
	)
}

// Init writes Example to path. An existing file is only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	}
	return Save(path, Example())
}

func fieldIndex(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
