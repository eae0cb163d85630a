// Package config declares the documentation site configuration and its
// load, normalization, defaulting and validation pipeline.
package config

// SiteConfig is the root configuration handed to a site generation engine.
// Values are built by New, Parse or Load and are not mutated afterwards.
type SiteConfig struct {
	Site     SiteMeta        `yaml:"site" json:"site"`
	Theme    ThemeConfig     `yaml:"theme" json:"theme"`
	Markdown MarkdownOptions `yaml:"markdown" json:"markdown"`
	Content  ContentConfig   `yaml:"content" json:"content"`
	Output   OutputConfig    `yaml:"output" json:"output"`
	Logging  LoggingConfig   `yaml:"logging" json:"logging"`
}

// SiteMeta holds site wide metadata.
type SiteMeta struct {
	Base        string    `yaml:"base" json:"base"` // URL path prefix, starts and ends with "/"
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Lang        string    `yaml:"lang,omitempty" json:"lang,omitempty"`
	Icons       []IconRef `yaml:"icons,omitempty" json:"icons,omitempty"`
}

// IconRef is a <link> entry in the page head, such as a favicon.
type IconRef struct {
	Rel  string `yaml:"rel" json:"rel"`
	Href string `yaml:"href" json:"href"`
}

// NavItem is a flat entry of the top navigation bar.
type NavItem struct {
	Text        string `yaml:"text" json:"text"`
	Link        string `yaml:"link" json:"link"`
	ActiveMatch string `yaml:"activeMatch,omitempty" json:"activeMatch,omitempty"`
}

// SocialLink points at the project on an external platform.
type SocialLink struct {
	Icon SocialIcon `yaml:"icon" json:"icon"`
	Link string     `yaml:"link" json:"link"`
}

// MarkdownOptions toggles markdown rendering features.
type MarkdownOptions struct {
	LineNumbers      bool `yaml:"lineNumbers" json:"lineNumbers"`
	ImageLazyLoading bool `yaml:"imageLazyLoading" json:"imageLazyLoading"`
}

// ThemeConfig holds the options consumed by the default theme of the engine.
type ThemeConfig struct {
	Logo        string        `yaml:"logo,omitempty" json:"logo,omitempty"`
	SiteTitle   string        `yaml:"siteTitle,omitempty" json:"siteTitle,omitempty"`
	Nav         []NavItem     `yaml:"nav,omitempty" json:"nav,omitempty"`
	Sidebar     []SidebarItem `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
	SocialLinks []SocialLink  `yaml:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Labels      LabelSet      `yaml:"labels,omitempty" json:"labels,omitempty"`
	Outline     Outline       `yaml:"outline,omitempty" json:"outline,omitzero"`
	LastUpdated LastUpdated   `yaml:"lastUpdated,omitempty" json:"lastUpdated,omitzero"`
	Footer      Footer        `yaml:"footer,omitempty" json:"footer,omitzero"`
}

// LastUpdated controls the "last updated" line under each page.
type LastUpdated struct {
	Enabled   bool        `yaml:"enabled" json:"enabled"`
	Text      string      `yaml:"text,omitempty" json:"text,omitempty"`
	DateStyle FormatStyle `yaml:"dateStyle,omitempty" json:"dateStyle,omitempty"`
	TimeStyle FormatStyle `yaml:"timeStyle,omitempty" json:"timeStyle,omitempty"`
}

// Footer is rendered at the bottom of every page.
type Footer struct {
	Message   string `yaml:"message,omitempty" json:"message,omitempty"`
	Copyright string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// ContentConfig locates the markdown sources.
type ContentConfig struct {
	Dir         string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	PublicDir   string   `yaml:"publicDir,omitempty" json:"publicDir,omitempty"` // static assets served from the site root
	Exclude     []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`     // doublestar globs relative to Dir
	AutoSidebar bool     `yaml:"autoSidebar,omitempty" json:"autoSidebar,omitempty"`
}

// OutputConfig selects where and for which engines configuration files are written.
type OutputConfig struct {
	Directory string   `yaml:"directory,omitempty" json:"directory,omitempty"`
	Targets   []Target `yaml:"targets,omitempty" json:"targets,omitempty"`
}

// LoggingConfig configures the slog handler of the CLI.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty" json:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty" json:"format,omitempty"`
}
