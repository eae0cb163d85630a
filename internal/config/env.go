package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvLogLevel overrides logging.level when set.
const EnvLogLevel = "DOCSITE_LOG_LEVEL"

// envFiles are tried in order. Earlier files win because godotenv never
// overrides variables that are already set.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads .env files found in dir into the process environment.
// Missing files are skipped. Existing process variables are not overwritten.
func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Debug("Loaded environment file", slog.String("path", path))
	}
	return nil
}

// applyEnvOverrides applies DOCSITE_* variables on top of decoded values.
func applyEnvOverrides(cfg *SiteConfig) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Logging.Level = LogLevel(lvl)
	}
}
