// Package pipeline turns window snapshots and a query into the ranked,
// selectable list a switcher displays.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/winswitch/internal/history"
	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/match"
	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/registry"
)

// ErrNoTarget is returned when an action has nothing to act on: the list is
// empty, a harpoon slot is unassigned or its window is gone.
var ErrNoTarget = errors.New("no target")

// Tab selects what the switcher lists.
type Tab int

const (
	TabWindows Tab = iota
	TabWorkspaces
	tabCount
)

func (t Tab) String() string {
	if t == TabWorkspaces {
		return "workspaces"
	}
	return "windows"
}

// ParseTab converts a flag value to a Tab.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "windows", "w":
		return TabWindows, nil
	case "workspaces", "ws", "desktops":
		return TabWorkspaces, nil
	default:
		return TabWindows, fmt.Errorf("unknown tab: %q (expected windows or workspaces)", s)
	}
}

// Item is one ranked window.
type Item struct {
	Window     model.Window
	HarpoonKey rune // 0 when the window has no harpoon slot
	CustomName string
	Score      match.Score
}

// Workspace is one ranked entry of the workspaces tab.
type Workspace struct {
	Desktop int
	Name    string
	Windows int
	Current bool
	Score   match.Score
}

// Result is the output of one filter pass. Selected is -1 when the list is
// empty.
type Result struct {
	Tab        Tab
	Query      string
	Items      []Item
	Workspaces []Workspace
	Selected   int
}

// Len returns the number of entries on the result's tab.
func (r Result) Len() int {
	if r.Tab == TabWorkspaces {
		return len(r.Workspaces)
	}
	return len(r.Items)
}

// selection survives re-filtering by remembering what was selected, not
// where.
type selection struct {
	index   int
	id      model.WindowID
	desktop int
}

// Options configures a Pipeline.
type Options struct {
	// OwnClass is the WM_CLASS of the switcher's own window; it is never
	// promoted in the history.
	OwnClass string
	// OwnPID is the switcher's process id, 0 to disable.
	OwnPID int
	// HistoryCapacity bounds the window history, 0 for model.MaxWindows.
	HistoryCapacity int
}

// Pipeline owns the history and the switcher state of one session. It is not
// safe for concurrent use.
type Pipeline struct {
	opts    Options
	history *history.Tracker
	harpoon *registry.Harpoon
	names   *registry.Names

	snapshot    model.Snapshot
	prevActive  model.WindowID
	tab         Tab
	commandMode bool
	selections  [tabCount]selection
	last        Result
}

// New returns a pipeline over the given registries. Nil registries are
// replaced by in-memory ones.
func New(harpoon *registry.Harpoon, names *registry.Names, opts Options) *Pipeline {
	if harpoon == nil {
		harpoon = registry.NewHarpoon("")
	}
	if names == nil {
		names = registry.NewNames("")
	}
	return &Pipeline{
		opts:    opts,
		history: history.NewTracker(opts.HistoryCapacity),
		harpoon: harpoon,
		names:   names,
		last:    Result{Selected: -1},
	}
}

// Harpoon returns the harpoon registry.
func (p *Pipeline) Harpoon() *registry.Harpoon { return p.harpoon }

// Names returns the named windows registry.
func (p *Pipeline) Names() *registry.Names { return p.names }

// Snapshot returns the most recent snapshot.
func (p *Pipeline) Snapshot() model.Snapshot { return p.snapshot }

// Tab returns the active tab.
func (p *Pipeline) Tab() Tab { return p.tab }

// SetTab switches the active tab.
func (p *Pipeline) SetTab(t Tab) {
	if t >= 0 && t < tabCount {
		p.tab = t
	}
}

// SetCommandMode records whether the user is typing a command, which
// suppresses the alt-tab preselection.
func (p *Pipeline) SetCommandMode(on bool) { p.commandMode = on }

// Refresh records a new snapshot and re-binds the registries to it.
func (p *Pipeline) Refresh(snap model.Snapshot) {
	p.snapshot = snap
	p.harpoon.Reconcile(snap.Windows)
	p.names.Reconcile(snap.Windows)
}

func (p *Pipeline) isOwn(w model.Window) bool {
	if p.opts.OwnClass != "" && w.ClassName == p.opts.OwnClass {
		return true
	}
	return p.opts.OwnPID != 0 && w.PID == p.opts.OwnPID
}

// Filter ranks the current snapshot against query on the active tab.
func (p *Pipeline) Filter(query string) Result {
	if p.tab == TabWorkspaces {
		p.last = p.filterWorkspaces(query)
	} else {
		p.last = p.filterWindows(query)
	}
	return p.last
}

type ranked struct {
	item  Item
	order int
}

func (p *Pipeline) filterWindows(query string) Result {
	log := logging.ForComponent(logging.CompPipeline)
	sel := &p.selections[TabWindows]
	keepID := sel.id

	snap := p.snapshot
	if err := p.history.Update(snap.Windows, p.prevActive, snap.ActiveID, p.isOwn); err != nil {
		log.Warn("window history truncated", "error", err)
	}
	p.prevActive = snap.ActiveID
	p.history.Partition(snap.CurrentDesktop)

	var candidates []ranked
	for i, w := range p.history.Windows() {
		scored := w
		name, named := p.names.CustomNameOf(w.ID)
		if named {
			scored.Title = name + " - " + w.Title
		}
		s, ok := match.Window(query, scored, snap.CurrentDesktop)
		if !ok {
			continue
		}
		item := Item{Window: w, Score: s}
		if named {
			item.CustomName = name
		}
		if key, ok := p.harpoon.SlotOf(w.ID); ok {
			item.HarpoonKey = key
		}
		candidates = append(candidates, ranked{item: item, order: i})
	}

	// Equal scores keep history order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].item.Score.Value > candidates[j].item.Score.Value
	})

	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		if c.item.Window.Type == model.Normal {
			items = append(items, c.item)
		}
	}
	for _, c := range candidates {
		if c.item.Window.Type != model.Normal {
			items = append(items, c.item)
		}
	}

	idx := 0
	for i, it := range items {
		if it.Window.ID == keepID {
			idx = i
			break
		}
	}
	if query == "" && len(items) >= 2 && !p.commandMode {
		idx = 1
	}
	idx = clamp(idx, len(items))

	sel.index = idx
	sel.id = 0
	if idx >= 0 {
		sel.id = items[idx].Window.ID
	}
	log.Debug("filtered windows", "query", query, "matches", len(items), "selected", idx)
	return Result{Tab: TabWindows, Query: query, Items: items, Selected: idx}
}

func (p *Pipeline) filterWorkspaces(query string) Result {
	sel := &p.selections[TabWorkspaces]
	snap := p.snapshot

	count := snap.DesktopCount
	perDesktop := map[int]int{}
	for _, w := range snap.Windows {
		perDesktop[w.Desktop]++
		if w.Desktop >= count {
			count = w.Desktop + 1
		}
	}

	var list []Workspace
	for d := 0; d < count; d++ {
		name := snap.DesktopName(d)
		s, ok := match.Text(query, fmt.Sprintf("%s %d", name, d+1))
		if !ok {
			continue
		}
		list = append(list, Workspace{
			Desktop: d,
			Name:    name,
			Windows: perDesktop[d],
			Current: d == snap.CurrentDesktop,
			Score:   s,
		})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score.Value > list[j].Score.Value
	})

	idx := 0
	for i, ws := range list {
		if ws.Desktop == sel.desktop {
			idx = i
			break
		}
	}
	idx = clamp(idx, len(list))
	sel.index = idx
	if idx >= 0 {
		sel.desktop = list[idx].Desktop
	}
	return Result{Tab: TabWorkspaces, Query: query, Workspaces: list, Selected: idx}
}

func clamp(idx, n int) int {
	if n == 0 {
		return -1
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// MoveSelection moves the selection of the last result by delta, wrapping
// around both ends.
func (p *Pipeline) MoveSelection(delta int) Result {
	n := p.last.Len()
	if n == 0 {
		return p.last
	}
	idx := ((p.last.Selected+delta)%n + n) % n
	p.last.Selected = idx

	sel := &p.selections[p.last.Tab]
	sel.index = idx
	if p.last.Tab == TabWorkspaces {
		sel.desktop = p.last.Workspaces[idx].Desktop
	} else {
		sel.id = p.last.Items[idx].Window.ID
	}
	return p.last
}

// Selected returns the selected window of the last windows-tab result.
func (p *Pipeline) Selected() (Item, error) {
	r := p.last
	if r.Tab != TabWindows || r.Selected < 0 || r.Selected >= len(r.Items) {
		return Item{}, ErrNoTarget
	}
	return r.Items[r.Selected], nil
}

// SelectedWorkspace returns the selected entry of the last workspaces-tab
// result.
func (p *Pipeline) SelectedWorkspace() (Workspace, error) {
	r := p.last
	if r.Tab != TabWorkspaces || r.Selected < 0 || r.Selected >= len(r.Workspaces) {
		return Workspace{}, ErrNoTarget
	}
	return r.Workspaces[r.Selected], nil
}

// HarpoonTarget resolves a harpoon key to a live window.
func (p *Pipeline) HarpoonTarget(key rune) (model.Window, error) {
	id, ok := p.harpoon.IDOf(key)
	if !ok {
		return model.Window{}, fmt.Errorf("%w: harpoon slot %q is empty", ErrNoTarget, key)
	}
	w, ok := p.snapshot.Find(id)
	if !ok {
		return model.Window{}, fmt.Errorf("%w: window of harpoon slot %q is gone", ErrNoTarget, key)
	}
	return w, nil
}
