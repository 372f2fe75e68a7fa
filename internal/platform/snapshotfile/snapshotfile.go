// Package snapshotfile serves window snapshots from a YAML or JSON file. It
// stands in for a live window system in scripts and tests: activating a
// window or moving it rewrites the file.
package snapshotfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/platform"
	"gopkg.in/yaml.v3"
)

// Source reads snapshots from Path.
type Source struct {
	Path string
}

// New returns a Source for path.
func New(path string) *Source {
	return &Source{Path: path}
}

// Provider wraps the source as a platform provider.
func (s *Source) Provider() *platform.Provider {
	return &platform.Provider{Source: s, WindowManager: s}
}

func (s *Source) isJSON() bool {
	return strings.EqualFold(filepath.Ext(s.Path), ".json")
}

// Snapshot reads and decodes the file.
func (s *Source) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap model.Snapshot
	if s.isJSON() {
		err = json.Unmarshal(data, &snap)
	} else {
		err = yaml.Unmarshal(data, &snap)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", s.Path, err)
	}
	return snap, nil
}

// Activate marks the window as active and switches to its workspace.
func (s *Source) Activate(ctx context.Context, id model.WindowID) error {
	return s.update(ctx, id, func(snap *model.Snapshot, i int) {
		snap.ActiveID = id
		if d := snap.Windows[i].Desktop; d != model.StickyDesktop {
			snap.CurrentDesktop = d
		}
	})
}

// MoveToDesktop changes the window's workspace.
func (s *Source) MoveToDesktop(ctx context.Context, id model.WindowID, desktop int) error {
	return s.update(ctx, id, func(snap *model.Snapshot, i int) {
		snap.Windows[i].Desktop = desktop
	})
}

func (s *Source) update(ctx context.Context, id model.WindowID, fn func(*model.Snapshot, int)) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, w := range snap.Windows {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("window %d not found in %s", id, s.Path)
	}
	fn(&snap, idx)
	return s.write(snap)
}

func (s *Source) write(snap model.Snapshot) error {
	var (
		data []byte
		err  error
	)
	if s.isJSON() {
		data, err = json.MarshalIndent(snap, "", "  ")
	} else {
		data, err = yaml.Marshal(snap)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return os.WriteFile(s.Path, data, 0o644)
}
