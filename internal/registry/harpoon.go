package registry

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/match"
	"github.com/mj1618/winswitch/internal/model"
)

// SlotKeys lists the harpoon keys in slot order.
const SlotKeys = "0123456789abcdefghijklmnopqrstuvwxyz"

// SlotCount is the number of harpoon slots.
const SlotCount = len(SlotKeys)

// SlotIndex returns the slot index of a key. Upper-case letters are accepted.
func SlotIndex(key rune) (int, error) {
	i := strings.IndexRune(SlotKeys, unicode.ToLower(key))
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	return i, nil
}

// ParseSlotKey converts a one-character flag or argument to a slot key.
func ParseSlotKey(s string) (rune, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlotKey, s)
	}
	if _, err := SlotIndex(r[0]); err != nil {
		return 0, err
	}
	return unicode.ToLower(r[0]), nil
}

// Slot is one harpoon bookmark.
type Slot struct {
	Key      rune
	Assigned bool
	Identity
}

// Harpoon holds the 36 harpoon slots and persists them to harpoon.json.
type Harpoon struct {
	slots [SlotCount]Slot
	path  string
}

// NewHarpoon returns empty slots persisted at path. An empty path keeps the
// slots in memory only.
func NewHarpoon(path string) *Harpoon {
	h := &Harpoon{path: path}
	h.reset()
	return h
}

// Path returns the file the slots persist to, empty when in memory.
func (h *Harpoon) Path() string { return h.path }

func (h *Harpoon) reset() {
	for i, k := range SlotKeys {
		h.slots[i] = Slot{Key: k}
	}
}

// Load replaces the slots with the contents of the harpoon file. A missing
// file leaves every slot empty.
func (h *Harpoon) Load() error {
	if h.path == "" {
		return nil
	}
	recs, err := loadHarpoonRecords(h.path)
	if err != nil {
		return err
	}
	h.reset()
	for _, r := range recs {
		h.slots[r.Slot].Assigned = true
		h.slots[r.Slot].Identity = recordIdentity(r.WindowID, r.Title, r.ClassName, r.Instance, r.Type)
	}
	return nil
}

// Save writes the assigned slots to the harpoon file.
func (h *Harpoon) Save() error {
	if h.path == "" {
		return nil
	}
	var recs []harpoonRecord
	for i, s := range h.slots {
		if !s.Assigned {
			continue
		}
		recs = append(recs, harpoonRecord{
			Slot:      i,
			WindowID:  uint64(s.WindowID),
			Title:     s.Title,
			ClassName: s.ClassName,
			Instance:  s.Instance,
			Type:      s.Type.String(),
		})
	}
	return saveHarpoonRecords(h.path, recs)
}

// persist saves and logs failures; the in-memory slots stay authoritative.
func (h *Harpoon) persist() {
	if err := h.Save(); err != nil {
		logging.ForComponent(logging.CompRegistry).Error("failed to save harpoon slots", "path", h.path, "error", err)
	}
}

// Assign binds w to the slot for key. A window occupies at most one slot, so
// any other slot holding w is cleared.
func (h *Harpoon) Assign(key rune, w model.Window) error {
	idx, err := SlotIndex(key)
	if err != nil {
		return err
	}
	for i := range h.slots {
		if i != idx && h.slots[i].Assigned && h.slots[i].WindowID == w.ID {
			h.slots[i] = Slot{Key: h.slots[i].Key}
		}
	}
	h.slots[idx].Assigned = true
	h.slots[idx].Identity = identityOf(w)
	h.persist()
	return nil
}

// Unassign clears the slot for key.
func (h *Harpoon) Unassign(key rune) error {
	idx, err := SlotIndex(key)
	if err != nil {
		return err
	}
	if !h.slots[idx].Assigned {
		return nil
	}
	h.slots[idx] = Slot{Key: h.slots[idx].Key}
	h.persist()
	return nil
}

// SlotOf returns the key of the slot bound to id.
func (h *Harpoon) SlotOf(id model.WindowID) (rune, bool) {
	if id == 0 {
		return 0, false
	}
	for _, s := range h.slots {
		if s.Assigned && s.WindowID == id {
			return s.Key, true
		}
	}
	return 0, false
}

// IDOf returns the window id bound to key.
func (h *Harpoon) IDOf(key rune) (model.WindowID, bool) {
	s, ok := h.Slot(key)
	if !ok {
		return 0, false
	}
	return s.WindowID, true
}

// Slot returns the slot for key if it is assigned.
func (h *Harpoon) Slot(key rune) (Slot, bool) {
	idx, err := SlotIndex(key)
	if err != nil || !h.slots[idx].Assigned {
		return Slot{}, false
	}
	return h.slots[idx], true
}

// Slots returns the assigned slots in key order.
func (h *Harpoon) Slots() []Slot {
	var out []Slot
	for _, s := range h.slots {
		if s.Assigned {
			out = append(out, s)
		}
	}
	return out
}

// Reconcile re-binds slots whose window is gone to a live window with the
// same class, instance and type: an identical title first, otherwise a
// related title which then replaces the stored one. Slots without a
// replacement keep their stale id. It reports whether anything changed; changes
// are saved.
func (h *Harpoon) Reconcile(live []model.Window) bool {
	entries := make([]binding, 0, SlotCount)
	for i := range h.slots {
		entries = append(entries, binding{id: &h.slots[i].Identity, assigned: &h.slots[i].Assigned})
	}
	rebound, _ := reconcile(entries, live, policy{
		fallback: func(stored Identity, w model.Window) bool {
			return match.FuzzyTitleMatch(stored.Window(), w)
		},
		adoptTitle: true,
	})
	if rebound == 0 {
		return false
	}
	logging.ForComponent(logging.CompRegistry).Info("harpoon slots rebound", "count", rebound)
	h.persist()
	return true
}
