package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the file at path whenever it changes and hands the result to
// onChange, until ctx is done.  The parent directory is watched rather than
// the file itself, so saves that replace the file (write to a temp file, then
// rename over it) keep being seen.  A version that does not parse is logged
// and skipped.
func Watch(ctx context.Context, path string, onChange func(*FileConfig)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer w.Close()

	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config watch %s: %w", dir, err)
	}
	slog.Info("config: watching", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			fc, err := LoadFile(path)
			if err != nil {
				slog.Warn("config: reload skipped", "path", path, "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", path)
			onChange(fc)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
