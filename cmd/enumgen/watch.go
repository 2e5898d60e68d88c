package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pablor21/enumclass/config"
	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/logger"
)

// watcher regenerates when Go sources under the scanned directory change.
type watcher struct {
	fs       *fsnotify.Watcher
	cfg      config.WatcherConfig
	suffix   string
	debounce time.Duration
	log      logger.Logger
}

func newWatcher(cfg *config.Config, log logger.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	w := &watcher{
		fs:       fw,
		cfg:      cfg.Watcher,
		suffix:   cfg.Output.FileSuffix,
		debounce: time.Duration(cfg.Watcher.DebounceMs) * time.Millisecond,
		log:      log,
	}

	root := cfg.Scanning.Dir
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			fw.Close()
			return nil, err
		}
	}
	for _, dir := range append([]string{root}, cfg.Watcher.AdditionalPaths...) {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// addTree watches dir and its subdirectories, skipping ignored ones.
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

// ignored reports whether any element of path matches an ignore pattern.
func (w *watcher) ignored(path string) bool {
	for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
		for _, pattern := range w.cfg.IgnorePatterns {
			if ok, _ := filepath.Match(pattern, elem); ok {
				return true
			}
		}
	}
	return false
}

// relevant reports whether ev changes a scanned Go source. Generated units are skipped
// so a pass does not trigger the next one.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if !strings.HasSuffix(ev.Name, ".go") || strings.HasSuffix(ev.Name, w.suffix) {
		return false
	}
	return !w.ignored(ev.Name)
}

// Run calls regenerate once per burst of relevant events until ctx is done.
func (w *watcher) Run(ctx context.Context, regenerate func(context.Context)) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	w.log.Info("watching for changes", "debounce", w.debounce)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !w.ignored(ev.Name) {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn("failed to watch new directory", "dir", ev.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		case <-timer.C:
			w.log.Info("regenerating")
			regenerate(ctx)
		}
	}
}
