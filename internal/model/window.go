package model

import "strings"

// MaxWindows bounds the number of windows handled per refresh cycle.
const MaxWindows = 256

// WindowID is the window system's handle for a window. It is stable for the
// lifetime of the window but changes when the owning application restarts.
// Zero means "no window".
type WindowID uint64

// WindowType separates regular application windows from dialogs, docks,
// utility windows and the like.
type WindowType int

const (
	Normal WindowType = iota
	Special
)

// String returns the persisted spelling of the type.
func (t WindowType) String() string {
	if t == Special {
		return "Special"
	}
	return "Normal"
}

// ParseWindowType converts a persisted type name. Unknown names are Normal.
func ParseWindowType(s string) WindowType {
	if strings.EqualFold(strings.TrimSpace(s), "Special") {
		return Special
	}
	return Normal
}

func (t WindowType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *WindowType) UnmarshalText(b []byte) error {
	*t = ParseWindowType(string(b))
	return nil
}

// StickyDesktop is the desktop index of windows shown on every workspace.
const StickyDesktop = -1

// Window describes a top-level window as reported by the window system.
type Window struct {
	ID        WindowID   `yaml:"id"              json:"id"`
	Title     string     `yaml:"title"           json:"title"`
	ClassName string     `yaml:"class_name"      json:"class_name"`
	Instance  string     `yaml:"instance"        json:"instance"`
	Type      WindowType `yaml:"type"            json:"type"`
	Desktop   int        `yaml:"desktop"         json:"desktop"`
	PID       int        `yaml:"pid,omitempty"   json:"pid,omitempty"`
}

// Sticky reports whether the window is visible on all workspaces.
func (w Window) Sticky() bool {
	return w.Desktop == StickyDesktop
}
