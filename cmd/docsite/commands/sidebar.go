package commands

import (
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct{}

func (s *SidebarCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	pages, err := docs.DiscoverContent(root.siteFs(), cfg.Content)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "discover content").
			WithContext("path", cfg.Content.Dir).
			Build()
	}

	enc := yaml.NewEncoder(g.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"sidebar": docs.BuildSidebar(pages)}); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode sidebar").Build()
	}
	return enc.Close()
}
