// Package watch regenerates code when Go sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"regex-with/internal/ctxlog"
)

// Options configures Run.
type Options struct {
	// Dirs are watched recursively.
	Dirs []string
	// Output is the generated file name; changes to it are ignored.
	Output string
	// Debounce is the quiet period after the last change before regenerating.
	Debounce time.Duration
	// MinInterval is the minimum time between two regenerations.
	MinInterval time.Duration
	// Regenerate runs once at start and after every batch of changes.
	// Its errors are logged and do not stop the watch.
	Regenerate func(ctx context.Context) error
}

// Run watches opts.Dirs until ctx is done.
func Run(ctx context.Context, opts Options) error {
	log := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range opts.Dirs {
		if err := addWatchRecursive(watcher, dir); err != nil {
			return err
		}
	}

	limiter := rate.NewLimiter(rate.Every(opts.MinInterval), 1)

	regenerate := func() {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		start := time.Now()
		if err := opts.Regenerate(ctx); err != nil {
			log.Error("regeneration failed", slog.Any("error", err))
			return
		}

		log.Debug("regenerated", slog.Duration("took", time.Since(start)))
	}

	log.Info("watching for changes",
		slog.Any("dirs", opts.Dirs),
		slog.Duration("debounce", opts.Debounce))

	regenerate()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(opts.Debounce)
			timerC = timer.C

			return
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		timer.Reset(opts.Debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil

		case <-timerC:
			timerC = nil
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warn("watcher error", slog.Any("error", err))

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if evt.Op&fsnotify.Create != 0 {
				if fi, statErr := os.Stat(evt.Name); statErr == nil && fi.IsDir() {
					if addErr := addWatchRecursive(watcher, evt.Name); addErr != nil {
						log.Warn("add watch failed", slog.String("path", evt.Name), slog.Any("error", addErr))
					}
				}
			}

			if ShouldTrigger(evt, opts.Output) {
				log.Debug("change", slog.String("path", evt.Name), slog.String("op", evt.Op.String()))
				resetTimer()
			}
		}
	}
}

// ShouldTrigger reports whether evt is a change to a non-test Go source
// other than the generated output.
func ShouldTrigger(evt fsnotify.Event, output string) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}

	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(evt.Name)

	switch {
	case strings.HasPrefix(base, "."):
		return false
	case filepath.Ext(base) != ".go":
		return false
	case strings.HasSuffix(base, "_test.go"):
		return false
	case base == output || strings.HasSuffix(base, ".unformatted.go"):
		return false
	}

	return true
}

// addWatchRecursive watches root and its subdirectories, skipping hidden,
// vendor and testdata directories.
func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}

			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata"
}
