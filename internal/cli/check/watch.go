package check

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch runs the check once, then again each time the folder settles after
// a change, until ctx is cancelled. Writes of the tool's own report files do
// not trigger a run.
func (c *checker) watch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating folder watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.folder); err != nil {
		return fmt.Errorf("watching %s: %w", c.folder, err)
	}

	c.watching = true
	debounce := time.Duration(c.cfg.WatchDebounceMs) * time.Millisecond
	c.runWatched()

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
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if c.ignored(ev) {
				continue
			}
			c.log.Debug("folder changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Stop()
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			c.runWatched()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("watch error", zap.Error(err))
		}
	}
}

// runWatched runs one check and keeps watching whatever the outcome.
func (c *checker) runWatched() {
	if _, err := c.run(); err != nil {
		c.log.Debug("check finished", zap.Error(err))
	}
	fmt.Fprintf(c.cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", c.folder)
}

// ignored reports whether ev should not trigger a run.
func (c *checker) ignored(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	switch filepath.Base(ev.Name) {
	case c.cfg.SuccessReport, c.cfg.ErrorReport:
		return true
	}
	return false
}
