// pkg/config/watcher.go

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Feralthedogg/novum-contract/pkg/state"
)

// DefaultDebounce is the quiet period before a changed file is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes and applies the
// checking mode to a switch. A reload that fails keeps the previous mode.
type Watcher struct {
	path     string
	sw       *state.Switch
	logger   *zap.Logger
	debounce time.Duration

	// OnReload, if set, receives every successfully loaded configuration.
	OnReload func(*Config)

	mu      sync.Mutex
	running bool
	held    *bool
}

// NewWatcher watches path and drives sw.
func NewWatcher(path string, sw *state.Switch, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     path,
		sw:       sw,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides DefaultDebounce. Call before Watch.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Hold pins the checking mode. Reloads still validate the file and call
// OnReload but no longer change the checking mode.
func (w *Watcher) Hold(enabled bool) {
	w.mu.Lock()
	w.held = &enabled
	w.mu.Unlock()
	w.sw.Set(enabled)
}

// Reload loads the file once and applies it.
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	held := w.held
	w.mu.Unlock()
	if held != nil {
		w.sw.Set(*held)
	} else {
		cfg.Apply(w.sw)
	}
	w.logger.Info("Contract configuration applied",
		zap.String("path", w.path),
		zap.Stringer("checks", w.sw),
	)
	if w.OnReload != nil {
		w.OnReload(cfg)
	}
	return nil
}

// Watch blocks until ctx is cancelled. The parent directory is watched so
// editors that replace the file atomically are still observed.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	target := filepath.Clean(w.path)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", target, err)
	}

	w.logger.Info("Contract configuration watcher started",
		zap.String("path", target),
		zap.Duration("debounce", w.debounce),
	)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Contract configuration watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Configuration file event",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()),
			)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.Reload(); err != nil {
				w.logger.Error("Contract configuration reload failed",
					zap.String("path", w.path),
					zap.Error(err),
				)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Warn("Contract configuration watcher error", zap.Error(err))
		}
	}
}
