// Package history keeps the most-recently-used ordering of windows across
// refresh cycles. Index 0 is the active window and index 1 the previously
// active one; alt-tab switching relies on both staying put.
package history

import (
	"errors"
	"fmt"

	"github.com/mj1618/winswitch/internal/model"
)

// ErrCapacityExceeded is returned when a snapshot holds more windows than the
// tracker can keep. The tracker still holds the first Capacity windows.
var ErrCapacityExceeded = errors.New("history capacity exceeded")

// Sync keeps every entry of hist that is still present in snapshot, in its
// existing relative order and refreshed from the snapshot, then appends new
// snapshot windows in snapshot order.
func Sync(hist, snapshot []model.Window) []model.Window {
	live := make(map[model.WindowID]model.Window, len(snapshot))
	for _, w := range snapshot {
		live[w.ID] = w
	}

	out := make([]model.Window, 0, len(snapshot))
	seen := make(map[model.WindowID]bool, len(snapshot))
	for _, h := range hist {
		w, ok := live[h.ID]
		if !ok || seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, w)
	}
	for _, w := range snapshot {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}

// Promote moves the newly active window to the front when activation
// changed. The application's own window, as reported by isOwn, is never
// promoted. The slice is modified in place and returned.
func Promote(hist []model.Window, prevActive, currActive model.WindowID, isOwn func(model.Window) bool) []model.Window {
	if currActive == prevActive || currActive == 0 {
		return hist
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].ID != currActive {
			continue
		}
		if isOwn != nil && isOwn(hist[i]) {
			return hist
		}
		w := hist[i]
		copy(hist[1:i+1], hist[:i])
		hist[0] = w
		return hist
	}
	return hist
}

// Partition regroups everything after the first two entries into current
// desktop normal windows, other desktop normal windows, current desktop
// special windows, other desktop special windows and finally sticky windows.
// Relative order inside each group is preserved.
func Partition(hist []model.Window, currentDesktop int) []model.Window {
	if len(hist) <= 2 {
		return hist
	}

	var buckets [5][]model.Window
	for _, w := range hist[2:] {
		b := bucketOf(w, currentDesktop)
		buckets[b] = append(buckets[b], w)
	}

	n := 2
	for _, b := range buckets {
		n += copy(hist[n:], b)
	}
	return hist
}

func bucketOf(w model.Window, currentDesktop int) int {
	switch {
	case w.Sticky():
		return 4
	case w.Type == model.Normal && w.Desktop == currentDesktop:
		return 0
	case w.Type == model.Normal:
		return 1
	case w.Desktop == currentDesktop:
		return 2
	default:
		return 3
	}
}

// Tracker owns the ordered window history of one switcher instance.
type Tracker struct {
	windows  []model.Window
	capacity int
}

// NewTracker returns an empty tracker. A capacity <= 0 uses model.MaxWindows.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = model.MaxWindows
	}
	return &Tracker{capacity: capacity}
}

// Update syncs the history with a new snapshot and promotes the active window.
// When the snapshot overflows the tracker, the surplus windows are dropped and
// an error wrapping ErrCapacityExceeded is returned alongside the usable
// result.
func (t *Tracker) Update(snapshot []model.Window, prevActive, currActive model.WindowID, isOwn func(model.Window) bool) error {
	synced := Sync(t.windows, snapshot)
	var err error
	if len(synced) > t.capacity {
		err = fmt.Errorf("%w: %d windows, keeping %d", ErrCapacityExceeded, len(synced), t.capacity)
		synced = synced[:t.capacity]
	}
	t.windows = Promote(synced, prevActive, currActive, isOwn)
	return err
}

// Partition regroups the history for the given desktop.
func (t *Tracker) Partition(currentDesktop int) {
	t.windows = Partition(t.windows, currentDesktop)
}

// Windows returns a copy of the current history.
func (t *Tracker) Windows() []model.Window {
	out := make([]model.Window, len(t.windows))
	copy(out, t.windows)
	return out
}

// Len returns the number of tracked windows.
func (t *Tracker) Len() int {
	return len(t.windows)
}
