package output

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/pipeline"
	"github.com/mj1618/winswitch/internal/registry"
)

var (
	headerColor   = color.New(color.Bold, color.Underline)
	selectedColor = color.New(color.FgHiGreen, color.Bold)
	faintColor    = color.New(color.Faint)
)

// WindowRow is the printed form of one ranked window.
type WindowRow struct {
	ID         model.WindowID `yaml:"id"                    json:"id"`
	Title      string         `yaml:"title"                 json:"title"`
	CustomName string         `yaml:"custom_name,omitempty" json:"custom_name,omitempty"`
	ClassName  string         `yaml:"class_name"            json:"class_name"`
	Instance   string         `yaml:"instance,omitempty"    json:"instance,omitempty"`
	Type       string         `yaml:"type"                  json:"type"`
	Desktop    string         `yaml:"desktop"               json:"desktop"`
	Harpoon    string         `yaml:"harpoon,omitempty"     json:"harpoon,omitempty"`
	Score      int            `yaml:"score,omitempty"       json:"score,omitempty"`
	Tier       string         `yaml:"tier,omitempty"        json:"tier,omitempty"`
}

// WorkspaceRow is the printed form of one workspace entry.
type WorkspaceRow struct {
	Desktop int    `yaml:"desktop" json:"desktop"`
	Name    string `yaml:"name"    json:"name"`
	Windows int    `yaml:"windows" json:"windows"`
	Current bool   `yaml:"current" json:"current"`
	Score   int    `yaml:"score"   json:"score"`
}

// FilterResult is the output of the `filter` command and the MCP filter tool.
type FilterResult struct {
	Tab        string         `yaml:"tab"                  json:"tab"`
	Query      string         `yaml:"query"                json:"query"`
	Selected   int            `yaml:"selected"             json:"selected"`
	Windows    []WindowRow    `yaml:"windows,omitempty"    json:"windows,omitempty"`
	Workspaces []WorkspaceRow `yaml:"workspaces,omitempty" json:"workspaces,omitempty"`
}

// NewWindowRow converts a ranked pipeline item.
func NewWindowRow(it pipeline.Item) WindowRow {
	row := WindowRow{
		ID:         it.Window.ID,
		Title:      it.Window.Title,
		CustomName: it.CustomName,
		ClassName:  it.Window.ClassName,
		Instance:   it.Window.Instance,
		Type:       it.Window.Type.String(),
		Desktop:    desktopLabel(it.Window.Desktop),
		Score:      it.Score.Value,
		Tier:       it.Score.Tier.String(),
	}
	if it.HarpoonKey != 0 {
		row.Harpoon = string(it.HarpoonKey)
	}
	return row
}

// NewFilterResult converts a pipeline result. Workspace desktops are printed
// 1-based, like the window desktops.
func NewFilterResult(r pipeline.Result) FilterResult {
	out := FilterResult{Tab: r.Tab.String(), Query: r.Query, Selected: r.Selected}
	for _, it := range r.Items {
		out.Windows = append(out.Windows, NewWindowRow(it))
	}
	for _, ws := range r.Workspaces {
		out.Workspaces = append(out.Workspaces, WorkspaceRow{
			Desktop: ws.Desktop + 1,
			Name:    ws.Name,
			Windows: ws.Windows,
			Current: ws.Current,
			Score:   ws.Score.Value,
		})
	}
	return out
}

func desktopLabel(d int) string {
	if d == model.StickyDesktop {
		return "sticky"
	}
	return strconv.Itoa(d + 1)
}

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	return tbl
}

func headerRow(tbl *uitable.Table, cols ...string) {
	row := make([]interface{}, len(cols))
	for i, c := range cols {
		row[i] = headerColor.Sprint(c)
	}
	tbl.AddRow(row...)
}

// Table renders the result with the selected row highlighted.
func (r FilterResult) Table() *uitable.Table {
	tbl := newTable()
	if r.Tab == pipeline.TabWorkspaces.String() {
		headerRow(tbl, "", "#", "NAME", "WINDOWS")
		for i, ws := range r.Workspaces {
			marker := " "
			if ws.Current {
				marker = "*"
			}
			cells := []string{marker, strconv.Itoa(ws.Desktop), ws.Name, strconv.Itoa(ws.Windows)}
			tbl.AddRow(paint(cells, i == r.Selected)...)
		}
		return tbl
	}

	headerRow(tbl, "", "ID", "DESKTOP", "CLASS", "TITLE")
	for i, w := range r.Windows {
		title := w.Title
		if w.CustomName != "" {
			title = w.CustomName + " - " + w.Title
		}
		cells := []string{w.Harpoon, fmt.Sprintf("0x%08x", uint64(w.ID)), w.Desktop, w.ClassName, title}
		tbl.AddRow(paint(cells, i == r.Selected)...)
	}
	return tbl
}

func paint(cells []string, selected bool) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		if selected {
			row[i] = selectedColor.Sprint(c)
		} else {
			row[i] = c
		}
	}
	return row
}

// SlotRow is the printed form of one harpoon slot.
type SlotRow struct {
	Key       string         `yaml:"key"                json:"key"`
	WindowID  model.WindowID `yaml:"window_id"          json:"window_id"`
	Title     string         `yaml:"title"              json:"title"`
	ClassName string         `yaml:"class_name"         json:"class_name"`
	Instance  string         `yaml:"instance,omitempty" json:"instance,omitempty"`
	Type      string         `yaml:"type"               json:"type"`
	Live      bool           `yaml:"live"               json:"live"`
}

// HarpoonList is the output of `harpoon list`.
type HarpoonList struct {
	Slots []SlotRow `yaml:"slots" json:"slots"`
}

// NewHarpoonList converts the assigned slots. Live reports whether the bound
// window exists in snap.
func NewHarpoonList(slots []registry.Slot, snap model.Snapshot) HarpoonList {
	out := HarpoonList{Slots: []SlotRow{}}
	for _, s := range slots {
		_, live := snap.Find(s.WindowID)
		out.Slots = append(out.Slots, SlotRow{
			Key:       string(s.Key),
			WindowID:  s.WindowID,
			Title:     s.Title,
			ClassName: s.ClassName,
			Instance:  s.Instance,
			Type:      s.Type.String(),
			Live:      live,
		})
	}
	return out
}

// Table renders the slots; slots whose window is gone are dimmed.
func (h HarpoonList) Table() *uitable.Table {
	tbl := newTable()
	headerRow(tbl, "KEY", "ID", "CLASS", "TITLE")
	for _, s := range h.Slots {
		cells := []interface{}{s.Key, fmt.Sprintf("0x%08x", uint64(s.WindowID)), s.ClassName, s.Title}
		if !s.Live {
			for i, c := range cells {
				cells[i] = faintColor.Sprint(c)
			}
		}
		tbl.AddRow(cells...)
	}
	return tbl
}

// NameRow is the printed form of one named window.
type NameRow struct {
	CustomName   string         `yaml:"custom_name"        json:"custom_name"`
	Assigned     bool           `yaml:"assigned"           json:"assigned"`
	WindowID     model.WindowID `yaml:"window_id"          json:"window_id"`
	TitlePattern string         `yaml:"title_pattern"      json:"title_pattern"`
	ClassName    string         `yaml:"class_name"         json:"class_name"`
	Instance     string         `yaml:"instance,omitempty" json:"instance,omitempty"`
	Type         string         `yaml:"type"               json:"type"`
}

// NameList is the output of `name list`.
type NameList struct {
	Names []NameRow `yaml:"names" json:"names"`
}

// NewNameList converts the named windows registry entries.
func NewNameList(entries []registry.NamedWindow) NameList {
	out := NameList{Names: []NameRow{}}
	for _, e := range entries {
		out.Names = append(out.Names, NameRow{
			CustomName:   e.CustomName,
			Assigned:     e.Assigned,
			WindowID:     e.WindowID,
			TitlePattern: e.Title,
			ClassName:    e.ClassName,
			Instance:     e.Instance,
			Type:         e.Type.String(),
		})
	}
	return out
}

// Table renders the names; orphaned entries are dimmed.
func (n NameList) Table() *uitable.Table {
	tbl := newTable()
	headerRow(tbl, "NAME", "ID", "CLASS", "PATTERN")
	for _, e := range n.Names {
		cells := []interface{}{e.CustomName, fmt.Sprintf("0x%08x", uint64(e.WindowID)), e.ClassName, e.TitlePattern}
		if !e.Assigned {
			for i, c := range cells {
				cells[i] = faintColor.Sprint(c)
			}
		}
		tbl.AddRow(cells...)
	}
	return tbl
}

// ActionResult reports the outcome of a command that changes state.
type ActionResult struct {
	OK      bool       `yaml:"ok"                json:"ok"`
	Action  string     `yaml:"action"            json:"action"`
	Window  *WindowRow `yaml:"window,omitempty"  json:"window,omitempty"`
	Key     string     `yaml:"key,omitempty"     json:"key,omitempty"`
	Name    string     `yaml:"name,omitempty"    json:"name,omitempty"`
	Message string     `yaml:"message,omitempty" json:"message,omitempty"`
}

// WindowOf converts a bare window, without ranking information.
func WindowOf(w model.Window) *WindowRow {
	return &WindowRow{
		ID:        w.ID,
		Title:     w.Title,
		ClassName: w.ClassName,
		Instance:  w.Instance,
		Type:      w.Type.String(),
		Desktop:   desktopLabel(w.Desktop),
	}
}
