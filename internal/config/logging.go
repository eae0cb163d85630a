package config

import (
	"io"
	"log/slog"
)

// SlogLevel maps the configured level onto slog. Unknown values map to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch logLevelNormalizer.Normalize(string(l.Level)) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler builds the slog handler described by the configuration.
// verbose forces debug level.
func (l LoggingConfig) Handler(w io.Writer, verbose bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if logFormatNormalizer.Normalize(string(l.Format)) == LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
