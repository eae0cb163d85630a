package config

// DefaultTitle is the title New uses when none is given.
const DefaultTitle = "Documentation"

// Option customizes a configuration built by New.
type Option func(*SiteConfig)

// New builds a configuration from options. Normalization and defaults are applied
// so that New() alone yields a valid configuration.
func New(opts ...Option) *SiteConfig {
	cfg := &SiteConfig{Site: SiteMeta{Title: DefaultTitle}}
	for _, opt := range opts {
		opt(cfg)
	}
	_ = Normalize(cfg)
	ApplyDefaults(cfg)
	return cfg
}

func WithBase(base string) Option {
	return func(c *SiteConfig) { c.Site.Base = base }
}

func WithTitle(title string) Option {
	return func(c *SiteConfig) { c.Site.Title = title }
}

func WithDescription(description string) Option {
	return func(c *SiteConfig) { c.Site.Description = description }
}

func WithLang(lang string) Option {
	return func(c *SiteConfig) { c.Site.Lang = lang }
}

// WithIcon appends a head link such as a favicon.
func WithIcon(rel, href string) Option {
	return func(c *SiteConfig) { c.Site.Icons = append(c.Site.Icons, IconRef{Rel: rel, Href: href}) }
}

func WithLogo(logo string) Option {
	return func(c *SiteConfig) { c.Theme.Logo = logo }
}

// WithNav appends navigation entries.
func WithNav(items ...NavItem) Option {
	return func(c *SiteConfig) { c.Theme.Nav = append(c.Theme.Nav, items...) }
}

// WithSidebar appends sidebar entries.
func WithSidebar(items ...SidebarItem) Option {
	return func(c *SiteConfig) { c.Theme.Sidebar = append(c.Theme.Sidebar, items...) }
}

func WithSocialLink(icon SocialIcon, link string) Option {
	return func(c *SiteConfig) {
		c.Theme.SocialLinks = append(c.Theme.SocialLinks, SocialLink{Icon: icon, Link: link})
	}
}

// WithLabel sets one UI label.
func WithLabel(key, value string) Option {
	return func(c *SiteConfig) {
		if c.Theme.Labels == nil {
			c.Theme.Labels = LabelSet{}
		}
		c.Theme.Labels[key] = value
	}
}

func WithOutline(minLevel, maxLevel int) Option {
	return func(c *SiteConfig) { c.Theme.Outline.Min, c.Theme.Outline.Max = minLevel, maxLevel }
}

func WithLastUpdated(lu LastUpdated) Option {
	return func(c *SiteConfig) { c.Theme.LastUpdated = lu }
}

func WithFooter(message, copyright string) Option {
	return func(c *SiteConfig) { c.Theme.Footer = Footer{Message: message, Copyright: copyright} }
}

func WithMarkdown(md MarkdownOptions) Option {
	return func(c *SiteConfig) { c.Markdown = md }
}

func WithContentDir(dir string) Option {
	return func(c *SiteConfig) { c.Content.Dir = dir }
}

func WithAutoSidebar(enabled bool) Option {
	return func(c *SiteConfig) { c.Content.AutoSidebar = enabled }
}

func WithTargets(targets ...Target) Option {
	return func(c *SiteConfig) { c.Output.Targets = targets }
}
