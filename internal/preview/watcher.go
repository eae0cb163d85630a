package preview

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc is called once per burst of configuration file changes.
type ReloadFunc func(ctx context.Context) error

// ConfigWatcher calls a ReloadFunc when the configuration file changes.
type ConfigWatcher struct {
	configPath string
	reload     ReloadFunc
	debounce   time.Duration

	watcher    *fsnotify.Watcher
	reloadChan chan struct{}
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewConfigWatcher creates a watcher for configPath. A non-positive debounce
// uses DefaultDebounce.
func NewConfigWatcher(configPath string, debounce time.Duration, reload ReloadFunc) (*ConfigWatcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve config path").
			WithContext("path", configPath).
			Build()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "create file watcher").Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ConfigWatcher{
		configPath: absPath,
		reload:     reload,
		debounce:   debounce,
		watcher:    w,
		reloadChan: make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
	}, nil
}

// Start watches the directory holding the configuration file. Editors often
// replace the file on save, so the directory is more reliable than the file.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(cw.configPath)
	if err := cw.watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "watch config directory").
			WithContext("path", dir).
			Build()
	}
	slog.Info("Watching configuration", logfields.Path(cw.configPath))

	cw.wg.Add(2)
	go cw.watchLoop(ctx)
	go cw.reloadLoop(ctx)
	return nil
}

// Stop ends both loops and closes the underlying watcher. It is safe to call
// more than once.
func (cw *ConfigWatcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		close(cw.stopChan)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}

func (cw *ConfigWatcher) watchLoop(ctx context.Context) {
	defer cw.wg.Done()
	name := filepath.Base(cw.configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Configuration changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
				cw.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("Configuration file removed", logfields.File(event.Name))
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Configuration watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop debounces triggers and runs each reload itself, so Stop waits
// for a reload in flight.
func (cw *ConfigWatcher) reloadLoop(ctx context.Context) {
	defer cw.wg.Done()
	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case <-cw.reloadChan:
			timer.Reset(cw.debounce)
		case <-timer.C:
			slog.Info("Reloading configuration", logfields.Path(cw.configPath))
			if err := cw.reload(ctx); err != nil {
				slog.Error("Configuration reload failed", logfields.Error(err))
			}
		}
	}
}

func (cw *ConfigWatcher) trigger() {
	select {
	case cw.reloadChan <- struct{}{}:
	default:
	}
}
