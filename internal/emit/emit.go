// Package emit translates a SiteConfig into the configuration files of
// supported site generation engines. Engines self-register from their own
// packages (emit/vitepress, emit/hugo) through init.
package emit

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// File is an emitted engine configuration file.
type File struct {
	Target config.Target
	Name   string // file name relative to the output directory
	Data   []byte
}

// Emitter produces the configuration file of one engine. Emit must be pure
// and deterministic: the same configuration yields the same bytes.
type Emitter interface {
	Target() config.Target
	Emit(cfg *config.SiteConfig) (*File, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[config.Target]Emitter{}
)

// Register adds an emitter. Duplicate targets are ignored.
func Register(e Emitter) {
	if e == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[e.Target()]; exists {
		return
	}
	registry[e.Target()] = e
}

// Get returns the emitter registered for target.
func Get(target config.Target) (Emitter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[target]
	return e, ok
}

// Targets lists the registered targets in sorted order.
func Targets() []config.Target {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]config.Target, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// EmitAll runs the emitters of every configured target without touching disk.
func EmitAll(cfg *config.SiteConfig) ([]*File, error) {
	files := make([]*File, 0, len(cfg.Output.Targets))
	for _, target := range cfg.Output.Targets {
		e, ok := Get(target)
		if !ok {
			return nil, errors.EmitError("no emitter registered for target").
				WithContext("target", string(target)).
				Build()
		}
		f, err := e.Emit(cfg)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryEmit, "emit configuration").
				WithContext("target", string(target)).
				Build()
		}
		files = append(files, f)
	}
	return files, nil
}

// WriteAll emits every configured target into dir and returns the written paths.
// Each file is written to a temporary name first and renamed into place.
func WriteAll(fsys afero.Fs, dir string, cfg *config.SiteConfig) ([]string, error) {
	files, err := EmitAll(cfg)
	if err != nil {
		return nil, err
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", dir).
			Build()
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f.Name)
		if err := WriteFile(fsys, p, f.Data); err != nil {
			return nil, err
		}
		slog.Info("Wrote engine configuration", logfields.Target(string(f.Target)), logfields.Path(p))
		paths = append(paths, p)
	}
	return paths, nil
}

// WriteFile writes data to path through a temporary file and a rename.
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	tmp := path + ".tmp"
	if err := afero.WriteFile(fsys, tmp, data, 0o644); err != nil {
		return errors.FileSystemError("write file").WithCause(err).
			WithContext("path", tmp).
			Build()
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return errors.WrapError(err, errors.CategoryFileSystem, fmt.Sprintf("rename %s", filepath.Base(tmp))).
			WithContext("path", path).
			Build()
	}
	return nil
}

// MergeMaps deep-merges src into dst. Nested maps merge recursively;
// slices and scalars are replaced.
func MergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if mv, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				MergeMaps(existing, mv)
				continue
			}
			cp := map[string]any{}
			MergeMaps(cp, mv)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}
