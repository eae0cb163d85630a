package config

import "git.home.luguber.info/inful/docsite/internal/foundation/normalization"

// SocialIcon identifies a platform with a built-in icon.
type SocialIcon string

const (
	IconGitHub    SocialIcon = "github"
	IconGitLab    SocialIcon = "gitlab"
	IconBitbucket SocialIcon = "bitbucket"
	IconDiscord   SocialIcon = "discord"
	IconSlack     SocialIcon = "slack"
	IconX         SocialIcon = "x"
	IconTwitter   SocialIcon = "twitter"
	IconMastodon  SocialIcon = "mastodon"
	IconBluesky   SocialIcon = "bluesky"
	IconLinkedIn  SocialIcon = "linkedin"
	IconYouTube   SocialIcon = "youtube"
	IconFacebook  SocialIcon = "facebook"
	IconInstagram SocialIcon = "instagram"
	IconNPM       SocialIcon = "npm"
)

var socialIconNormalizer = normalization.New("social icon", map[string]SocialIcon{
	"github":    IconGitHub,
	"gitlab":    IconGitLab,
	"bitbucket": IconBitbucket,
	"discord":   IconDiscord,
	"slack":     IconSlack,
	"x":         IconX,
	"twitter":   IconTwitter,
	"mastodon":  IconMastodon,
	"bluesky":   IconBluesky,
	"linkedin":  IconLinkedIn,
	"youtube":   IconYouTube,
	"facebook":  IconFacebook,
	"instagram": IconInstagram,
	"npm":       IconNPM,
}, "")

// SocialIcons lists the accepted icon identifiers.
func SocialIcons() []string { return socialIconNormalizer.Keys() }

// Target is an engine docsite can write configuration for.
type Target string

const (
	TargetVitePress Target = "vitepress"
	TargetHugo      Target = "hugo"
)

var targetNormalizer = normalization.New("output target", map[string]Target{
	"vitepress": TargetVitePress,
	"hugo":      TargetHugo,
}, "")

// ParseTarget resolves a target name case-insensitively.
func ParseTarget(raw string) (Target, error) { return targetNormalizer.Parse(raw) }

// FormatStyle mirrors the Intl.DateTimeFormat dateStyle/timeStyle values.
type FormatStyle string

const (
	StyleFull   FormatStyle = "full"
	StyleLong   FormatStyle = "long"
	StyleMedium FormatStyle = "medium"
	StyleShort  FormatStyle = "short"
)

var formatStyleNormalizer = normalization.New("format style", map[string]FormatStyle{
	"full":   StyleFull,
	"long":   StyleLong,
	"medium": StyleMedium,
	"short":  StyleShort,
}, "")

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.New("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, "")

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

var logFormatNormalizer = normalization.New("log format", map[string]LogFormat{
	"text": LogFormatText,
	"json": LogFormatJSON,
}, "")
