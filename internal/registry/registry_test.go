package registry

import (
	"testing"

	"github.com/mj1618/winswitch/internal/model"
)

func fooWindow(id model.WindowID, title string) model.Window {
	return model.Window{ID: id, Title: title, ClassName: "Foo", Instance: "foo", Type: model.Normal}
}

func TestHarpoon_ReconcileExactScenario(t *testing.T) {
	h := NewHarpoon("")
	if err := h.Assign('a', fooWindow(100, "Bar")); err != nil {
		t.Fatal(err)
	}

	changed := h.Reconcile([]model.Window{fooWindow(200, "Bar")})
	if !changed {
		t.Fatal("expected reconcile to report a change")
	}
	id, ok := h.IDOf('a')
	if !ok || id != 200 {
		t.Errorf("IDOf('a') = %d, %v; want 200, true", id, ok)
	}
	if key, ok := h.SlotOf(200); !ok || key != 'a' {
		t.Errorf("SlotOf(200) = %q, %v", key, ok)
	}
}

func TestHarpoon_ReconcilePrefersExactMatch(t *testing.T) {
	h := NewHarpoon("")
	_ = h.Assign('1', fooWindow(100, "Bar"))

	live := []model.Window{
		fooWindow(300, "Bar - unsaved"), // fuzzy candidate comes first
		fooWindow(400, "Bar"),
	}
	h.Reconcile(live)
	s, _ := h.Slot('1')
	if s.WindowID != 400 {
		t.Errorf("rebound to %d, want exact match 400", s.WindowID)
	}
	if s.Title != "Bar" {
		t.Errorf("title changed to %q", s.Title)
	}
}

func TestHarpoon_ReconcileFuzzyAdoptsTitle(t *testing.T) {
	h := NewHarpoon("")
	_ = h.Assign('b', fooWindow(100, "Editor - notes.txt"))

	h.Reconcile([]model.Window{fooWindow(500, "Editor - todo.txt")})
	s, _ := h.Slot('b')
	if s.WindowID != 500 {
		t.Fatalf("rebound to %d, want 500", s.WindowID)
	}
	if s.Title != "Editor - todo.txt" {
		t.Errorf("title = %q, want live title", s.Title)
	}
}

func TestHarpoon_ReconcileMissKeepsStaleID(t *testing.T) {
	h := NewHarpoon("")
	_ = h.Assign('c', fooWindow(100, "Bar"))

	other := model.Window{ID: 600, Title: "Bar", ClassName: "Other", Instance: "other"}
	if h.Reconcile([]model.Window{other}) {
		t.Error("no slot should have changed")
	}
	s, ok := h.Slot('c')
	if !ok || s.WindowID != 100 {
		t.Errorf("slot = %+v, %v; want stale id 100 still assigned", s, ok)
	}
}

func TestHarpoon_ReconcileNeverSteals(t *testing.T) {
	h := NewHarpoon("")
	_ = h.Assign('1', fooWindow(10, "Bar"))
	_ = h.Assign('2', fooWindow(20, "Bar"))
	_ = h.Assign('3', fooWindow(30, "Bar"))

	// 10 is still alive and keeps its slot; one new window for two dead slots.
	live := []model.Window{fooWindow(10, "Bar"), fooWindow(40, "Bar")}
	h.Reconcile(live)

	got := map[rune]model.WindowID{}
	for _, s := range h.Slots() {
		got[s.Key] = s.WindowID
	}
	if got['1'] != 10 {
		t.Errorf("slot 1 = %d, want 10", got['1'])
	}
	if got['2'] != 40 {
		t.Errorf("slot 2 = %d, want 40", got['2'])
	}
	if got['3'] != 30 {
		t.Errorf("slot 3 = %d, want stale 30", got['3'])
	}
}

func TestHarpoon_AssignMovesWindow(t *testing.T) {
	h := NewHarpoon("")
	w := fooWindow(7, "Bar")
	_ = h.Assign('a', w)
	_ = h.Assign('b', w)

	if _, ok := h.Slot('a'); ok {
		t.Error("slot a should be cleared after moving the window")
	}
	if key, ok := h.SlotOf(7); !ok || key != 'b' {
		t.Errorf("SlotOf(7) = %q, %v; want b", key, ok)
	}
}

func TestHarpoon_Keys(t *testing.T) {
	h := NewHarpoon("")
	if err := h.Assign('!', fooWindow(1, "x")); err == nil {
		t.Error("expected ErrInvalidSlotKey")
	}
	if err := h.Assign('Z', fooWindow(1, "x")); err != nil {
		t.Errorf("upper-case keys should map to lower-case slots: %v", err)
	}
	if id, ok := h.IDOf('z'); !ok || id != 1 {
		t.Errorf("IDOf('z') = %d, %v", id, ok)
	}
	if err := h.Unassign('z'); err != nil {
		t.Fatal(err)
	}
	if _, ok := h.IDOf('z'); ok {
		t.Error("slot z should be empty")
	}
	if _, ok := h.SlotOf(0); ok {
		t.Error("id 0 never has a slot")
	}
	if SlotCount != 36 {
		t.Errorf("SlotCount = %d", SlotCount)
	}
}

func TestNames_ReconcileWildcard(t *testing.T) {
	n := NewNames("")
	if err := n.Assign(fooWindow(100, "Build *nightly*"), "ci"); err != nil {
		t.Fatal(err)
	}
	if got := n.Entries()[0].Title; got != "Build .nightly." {
		t.Errorf("stored pattern = %q", got)
	}

	// Patterns can be widened by hand in names.json.
	n.entries[0].Title = "Build *"
	n.Reconcile([]model.Window{fooWindow(200, "Build 42 passed")})
	name, ok := n.CustomNameOf(200)
	if !ok || name != "ci" {
		t.Errorf("CustomNameOf(200) = %q, %v", name, ok)
	}
}

func TestNames_OrphanAndRematch(t *testing.T) {
	n := NewNames("")
	_ = n.Assign(fooWindow(100, "Mail"), "inbox")

	if !n.Reconcile(nil) {
		t.Fatal("orphaning should count as a change")
	}
	e := n.Entries()[0]
	if e.Assigned {
		t.Error("entry should be orphaned")
	}
	if _, ok := n.CustomNameOf(100); ok {
		t.Error("orphaned entries have no window")
	}
	if n.Reconcile(nil) {
		t.Error("already orphaned entries do not change again")
	}

	n.Reconcile([]model.Window{fooWindow(300, "Mail")})
	if name, ok := n.CustomNameOf(300); !ok || name != "inbox" {
		t.Errorf("CustomNameOf(300) = %q, %v", name, ok)
	}
}

func TestNames_ClassMustMatchForWildcard(t *testing.T) {
	n := NewNames("")
	_ = n.Assign(fooWindow(100, "Mail"), "inbox")
	other := model.Window{ID: 200, Title: "Mail", ClassName: "Bar", Instance: "bar"}
	n.Reconcile([]model.Window{other})
	if _, ok := n.CustomNameOf(200); ok {
		t.Error("class mismatch must not rebind")
	}
}

func TestNames_AssignUpdateAndRemove(t *testing.T) {
	n := NewNames("")
	w := fooWindow(5, "Term")
	_ = n.Assign(w, "one")
	_ = n.Assign(w, "two")
	if len(n.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(n.Entries()))
	}
	if name, _ := n.CustomNameOf(5); name != "two" {
		t.Errorf("name = %q", name)
	}
	_ = n.Assign(w, "")
	if len(n.Entries()) != 0 {
		t.Error("empty name should remove the entry")
	}
	if n.Unassign(5) {
		t.Error("nothing left to unassign")
	}
}

func TestNames_Capacity(t *testing.T) {
	n := NewNames("")
	n.capacity = 2
	_ = n.Assign(fooWindow(1, "a"), "a")
	_ = n.Assign(fooWindow(2, "b"), "b")
	if err := n.Assign(fooWindow(3, "c"), "c"); err == nil {
		t.Error("expected ErrCapacityExceeded")
	}
}
