package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultFile is the configuration path used when none is given.
const DefaultFile = "docsite.yaml"

// Format is a serialization format for configuration files.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json" // also accepts JSONC on input
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", errors.ConfigError("unsupported configuration file extension").
			WithContext("path", path).
			Build()
	}
}

// Load reads, normalizes, defaults and validates the configuration at path.
// Validation warnings are logged; validation errors are returned.
func Load(path string) (*SiteConfig, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	report := Validate(cfg)
	logWarnings(report)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without the validation step. Callers that need the full
// validation report, such as the linter, start here.
func Read(path string) (*SiteConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if envErr := loadEnvFiles(filepath.Dir(path)); envErr != nil {
		slog.Warn("Could not load environment file", slog.String("error", envErr.Error()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryConfig, "configuration file not found").
				Fatal().
				UserAction().
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration file").
			WithContext("path", path).
			Build()
	}

	cfg, err := decode([]byte(os.ExpandEnv(string(data))), format)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse configuration file").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}
	applyEnvOverrides(cfg)
	prepare(cfg)
	return cfg, nil
}

// Parse decodes data, then normalizes, defaults and validates it. No
// environment expansion takes place.
func Parse(data []byte, format Format) (*SiteConfig, error) {
	cfg, err := decode(data, format)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse configuration").Fatal().UserAction().Build()
	}
	prepare(cfg)
	report := Validate(cfg)
	logWarnings(report)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func prepare(cfg *SiteConfig) {
	for _, w := range Normalize(cfg).Warnings {
		slog.Warn("Config normalization", slog.String("detail", w))
	}
	ApplyDefaults(cfg)
}

func logWarnings(r *Report) {
	for _, w := range r.Warnings {
		slog.Warn("Config validation warning",
			slog.String("field", w.Field),
			slog.String("code", w.Code),
			slog.String("message", w.Message))
	}
}

func decode(data []byte, format Format) (*SiteConfig, error) {
	var cfg SiteConfig
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			if stderrors.Is(err, io.EOF) {
				return &cfg, nil
			}
			return nil, fmt.Errorf("yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return &cfg, nil
}

// Marshal serializes cfg in the given format.
func Marshal(cfg *SiteConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Save writes cfg to path in the format implied by its extension.
func Save(path string, cfg *SiteConfig) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(cfg, format)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "serialize configuration").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
