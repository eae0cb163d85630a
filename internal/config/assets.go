package config

// AssetKind tells where an asset reference came from.
type AssetKind string

const (
	AssetIcon AssetKind = "icon"
	AssetLogo AssetKind = "logo"
)

// Asset is a file reference the engine resolves against the public directory.
type Asset struct {
	Kind  AssetKind
	Field string
	Href  string
}

// External reports whether the asset points at another host.
func (a Asset) External() bool { return IsExternalURL(a.Href) }

// Assets lists head icons followed by the theme logo. Icons and the logo stay
// separate fields in the configuration; this view exists for checks that treat
// them alike.
func (c *SiteConfig) Assets() []Asset {
	var out []Asset
	for i, icon := range c.Site.Icons {
		if icon.Href == "" {
			continue
		}
		out = append(out, Asset{Kind: AssetIcon, Field: fieldIndex("site.icons", i) + ".href", Href: icon.Href})
	}
	if c.Theme.Logo != "" {
		out = append(out, Asset{Kind: AssetLogo, Field: "theme.logo", Href: c.Theme.Logo})
	}
	return out
}
