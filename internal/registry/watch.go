package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mj1618/winswitch/internal/logging"
)

// Event reports that a registry file was written.
type Event struct {
	Path string
}

// Watch streams an Event whenever one of paths is created or written, until
// ctx is cancelled. The parent directories are watched rather than the files
// themselves because saves replace the file by rename. The channel is closed
// when the watcher stops.
func Watch(ctx context.Context, paths ...string) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("registry: create watcher: %w", err)
	}

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(p)
		wanted[p] = true
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("registry: ensure %s: %w", dir, err)
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("registry: watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	out := make(chan Event, 8)
	go func() {
		defer close(out)
		defer watcher.Close()
		log := logging.ForComponent(logging.CompRegistry)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !wanted[filepath.Clean(ev.Name)] {
					continue
				}
				select {
				case out <- Event{Path: filepath.Clean(ev.Name)}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("registry watcher error", "error", err)
			}
		}
	}()
	return out, nil
}
