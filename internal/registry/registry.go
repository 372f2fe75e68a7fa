// Package registry binds user bookmarks (harpoon slots) and custom window
// names to windows, and re-binds them when a window reappears under a new id,
// for example after its application restarted.
package registry

import (
	"errors"

	"github.com/mj1618/winswitch/internal/match"
	"github.com/mj1618/winswitch/internal/model"
)

var (
	// ErrInvalidSlotKey is returned for harpoon keys outside 0-9 and a-z.
	ErrInvalidSlotKey = errors.New("invalid harpoon slot key")

	// ErrCapacityExceeded is returned when a registry is full.
	ErrCapacityExceeded = errors.New("registry capacity exceeded")
)

// Identity is the stored description of a bound window.
type Identity struct {
	WindowID  model.WindowID
	Title     string
	ClassName string
	Instance  string
	Type      model.WindowType
}

func identityOf(w model.Window) Identity {
	return Identity{
		WindowID:  w.ID,
		Title:     w.Title,
		ClassName: w.ClassName,
		Instance:  w.Instance,
		Type:      w.Type,
	}
}

// Window returns the identity as a window descriptor for the matchers.
func (id Identity) Window() model.Window {
	return model.Window{
		ID:        id.WindowID,
		Title:     id.Title,
		ClassName: id.ClassName,
		Instance:  id.Instance,
		Type:      id.Type,
	}
}

// policy captures how the two registries differ during reconcile.
type policy struct {
	// fallback is tried when no live window matches exactly.
	fallback func(stored Identity, w model.Window) bool
	// adoptTitle replaces the stored title after a fallback rebind.
	adoptTitle bool
	// orphanOnMiss unassigns entries that found no replacement.
	orphanOnMiss bool
	// retryOrphans also tries to rebind entries that are not assigned.
	retryOrphans bool
}

// binding points at the mutable parts of one registry entry.
type binding struct {
	id       *Identity
	assigned *bool
}

// reconcile re-binds entries whose window disappeared from live. A window
// held by another assigned entry is never taken. It returns how many entries
// were rebound and how many became orphaned.
func reconcile(entries []binding, live []model.Window, p policy) (rebound, orphaned int) {
	liveIDs := make(map[model.WindowID]bool, len(live))
	for _, w := range live {
		liveIDs[w.ID] = true
	}
	claimed := make(map[model.WindowID]bool, len(entries))
	for _, e := range entries {
		if *e.assigned && liveIDs[e.id.WindowID] {
			claimed[e.id.WindowID] = true
		}
	}

	for _, e := range entries {
		if *e.assigned {
			if liveIDs[e.id.WindowID] {
				continue
			}
		} else if !p.retryOrphans {
			continue
		}

		w, exact, ok := findReplacement(*e.id, live, claimed, p.fallback)
		if !ok {
			if *e.assigned && p.orphanOnMiss {
				*e.assigned = false
				orphaned++
			}
			continue
		}

		claimed[w.ID] = true
		e.id.WindowID = w.ID
		if !exact && p.adoptTitle {
			e.id.Title = w.Title
		}
		*e.assigned = true
		rebound++
	}
	return rebound, orphaned
}

// findReplacement prefers an exact match; the fallback only runs when no
// unclaimed window matches exactly.
func findReplacement(stored Identity, live []model.Window, claimed map[model.WindowID]bool, fallback func(Identity, model.Window) bool) (model.Window, bool, bool) {
	want := stored.Window()
	for _, w := range live {
		if !claimed[w.ID] && match.ExactMatch(want, w) {
			return w, true, true
		}
	}
	if fallback == nil {
		return model.Window{}, false, false
	}
	for _, w := range live {
		if !claimed[w.ID] && fallback(stored, w) {
			return w, false, true
		}
	}
	return model.Window{}, false, false
}
