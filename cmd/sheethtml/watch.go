package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// fileWatcher calls onChange after path is written or re-created. The
// parent directory is watched so that editors replacing the file by rename
// are noticed. Bursts of events within debounce collapse into one call.
type fileWatcher struct {
	path     string
	debounce time.Duration
	log      logrus.FieldLogger
	onChange func() error
	ready    func()
}

// Run blocks until ctx is done. Errors from onChange are logged and do not
// stop the watch.
func (w *fileWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.WithField("path", target).Info("Watching for changes.")
	if w.ready != nil {
		w.ready()
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != target || !evt.Has(fsnotify.Create|fsnotify.Write) {
				continue
			}
			w.log.WithField("event", evt.String()).Debug("Registered file event.")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("File watcher error.")
		case <-fire:
			fire = nil
			if err := w.onChange(); err != nil {
				w.log.WithError(err).Error("Re-render failed.")
			}
		}
	}
}
