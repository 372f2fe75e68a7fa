package registry

import (
	"fmt"

	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/match"
	"github.com/mj1618/winswitch/internal/model"
)

// NamedWindow is a user-chosen label for a window. Identity.Title holds the
// original title as a wildcard pattern (see match.TitlePattern). Entries whose
// window vanished without a replacement stay in the list unassigned so they
// can be matched again later.
type NamedWindow struct {
	CustomName string
	Assigned   bool
	Identity
}

// Names holds the named windows and persists them to names.json.
type Names struct {
	entries  []NamedWindow
	path     string
	capacity int
}

// NewNames returns an empty registry persisted at path. An empty path keeps
// the entries in memory only.
func NewNames(path string) *Names {
	return &Names{path: path, capacity: model.MaxWindows}
}

// Path returns the file the registry persists to, empty when in memory.
func (n *Names) Path() string { return n.path }

// Load replaces the entries with the contents of the names file.
func (n *Names) Load() error {
	if n.path == "" {
		return nil
	}
	recs, err := loadNameRecords(n.path)
	if err != nil {
		return err
	}
	n.entries = n.entries[:0]
	for _, r := range recs {
		if len(n.entries) >= n.capacity {
			logging.ForComponent(logging.CompRegistry).Warn("names file holds more entries than supported", "capacity", n.capacity)
			break
		}
		n.entries = append(n.entries, NamedWindow{
			CustomName: r.CustomName,
			Assigned:   bool(r.Assigned),
			Identity:   recordIdentity(r.WindowID, r.OriginalTitle, r.ClassName, r.Instance, r.Type),
		})
	}
	return nil
}

// Save writes every entry, orphaned ones included, to the names file.
func (n *Names) Save() error {
	if n.path == "" {
		return nil
	}
	recs := make([]nameRecord, 0, len(n.entries))
	for _, e := range n.entries {
		recs = append(recs, nameRecord{
			WindowID:      uint64(e.WindowID),
			CustomName:    e.CustomName,
			OriginalTitle: e.Title,
			ClassName:     e.ClassName,
			Instance:      e.Instance,
			Type:          e.Type.String(),
			Assigned:      flag(e.Assigned),
		})
	}
	return saveNameRecords(n.path, recs)
}

func (n *Names) persist() {
	if err := n.Save(); err != nil {
		logging.ForComponent(logging.CompRegistry).Error("failed to save named windows", "path", n.path, "error", err)
	}
}

func (n *Names) indexOf(id model.WindowID) int {
	for i, e := range n.entries {
		if e.Assigned && e.WindowID == id {
			return i
		}
	}
	return -1
}

// Assign labels w with name. An empty name removes the label. The stored
// title pattern is refreshed from the window's current title.
func (n *Names) Assign(w model.Window, name string) error {
	if name == "" {
		n.Unassign(w.ID)
		return nil
	}
	id := identityOf(w)
	id.Title = match.TitlePattern(w.Title)

	if i := n.indexOf(w.ID); i >= 0 {
		n.entries[i].CustomName = name
		n.entries[i].Identity = id
		n.persist()
		return nil
	}
	if len(n.entries) >= n.capacity {
		return fmt.Errorf("%w: %d named windows", ErrCapacityExceeded, n.capacity)
	}
	n.entries = append(n.entries, NamedWindow{CustomName: name, Assigned: true, Identity: id})
	n.persist()
	return nil
}

// Unassign removes the label of the window with the given id. It reports
// whether a label was removed.
func (n *Names) Unassign(id model.WindowID) bool {
	i := n.indexOf(id)
	if i < 0 {
		return false
	}
	n.entries = append(n.entries[:i], n.entries[i+1:]...)
	n.persist()
	return true
}

// CustomNameOf returns the label of the window with the given id.
func (n *Names) CustomNameOf(id model.WindowID) (string, bool) {
	if i := n.indexOf(id); i >= 0 {
		return n.entries[i].CustomName, true
	}
	return "", false
}

// Entries returns a copy of all entries, including orphaned ones.
func (n *Names) Entries() []NamedWindow {
	out := make([]NamedWindow, len(n.entries))
	copy(out, n.entries)
	return out
}

// Reconcile re-binds entries whose window is gone, and orphaned entries, to a
// live window: an exact match first, otherwise a window with the same class,
// instance and type whose title matches the stored pattern. Assigned entries
// without a replacement become orphaned. Changes are saved.
func (n *Names) Reconcile(live []model.Window) bool {
	entries := make([]binding, 0, len(n.entries))
	for i := range n.entries {
		entries = append(entries, binding{id: &n.entries[i].Identity, assigned: &n.entries[i].Assigned})
	}
	rebound, orphaned := reconcile(entries, live, policy{
		fallback: func(stored Identity, w model.Window) bool {
			return stored.ClassName == w.ClassName &&
				stored.Instance == w.Instance &&
				stored.Type == w.Type &&
				match.WildcardMatch(stored.Title, w.Title)
		},
		orphanOnMiss: true,
		retryOrphans: true,
	})
	if rebound == 0 && orphaned == 0 {
		return false
	}
	logging.ForComponent(logging.CompRegistry).Info("named windows reconciled", "rebound", rebound, "orphaned", orphaned)
	n.persist()
	return true
}
