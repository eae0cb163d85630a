package config

// DefaultApplier fills unset fields of one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *SiteConfig)
	Domain() string
}

// Default values used when a field is left empty.
const (
	DefaultBase            = "/"
	DefaultLang            = "en-US"
	DefaultContentDir      = "docs"
	DefaultPublicDirName   = "public"
	DefaultOutputDirectory = "build"
	DefaultLastUpdatedText = "Last updated"
)

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *SiteConfig) {
	if cfg.Site.Base == "" {
		cfg.Site.Base = DefaultBase
	}
	if cfg.Site.Lang == "" {
		cfg.Site.Lang = DefaultLang
	}
}

type themeDefaults struct{}

func (themeDefaults) Domain() string { return "theme" }

func (themeDefaults) ApplyDefaults(cfg *SiteConfig) {
	o := &cfg.Theme.Outline
	if o.Min == 0 && o.Max == 0 {
		o.Min, o.Max = MinOutlineLevel, 3
	}
	lu := &cfg.Theme.LastUpdated
	if lu.Text == "" {
		lu.Text = DefaultLastUpdatedText
	}
	if lu.DateStyle == "" {
		lu.DateStyle = StyleMedium
	}
	if lu.TimeStyle == "" {
		lu.TimeStyle = StyleShort
	}
}

type contentDefaults struct{}

func (contentDefaults) Domain() string { return "content" }

func (contentDefaults) ApplyDefaults(cfg *SiteConfig) {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = DefaultContentDir
	}
	if cfg.Content.PublicDir == "" {
		cfg.Content.PublicDir = cfg.Content.Dir + "/" + DefaultPublicDirName
	}
}

type outputDefaults struct{}

func (outputDefaults) Domain() string { return "output" }

func (outputDefaults) ApplyDefaults(cfg *SiteConfig) {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDirectory
	}
	if len(cfg.Output.Targets) == 0 {
		cfg.Output.Targets = []Target{TargetVitePress}
	}
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *SiteConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

// DefaultAppliers returns the appliers in the order ApplyDefaults runs them.
func DefaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		siteDefaults{},
		themeDefaults{},
		contentDefaults{},
		outputDefaults{},
		loggingDefaults{},
	}
}

// ApplyDefaults fills unset fields in place. It runs after Normalize so that
// canonical values drive the defaults.
func ApplyDefaults(cfg *SiteConfig) {
	if cfg == nil {
		return
	}
	for _, a := range DefaultAppliers() {
		a.ApplyDefaults(cfg)
	}
}
