package model

import "fmt"

// Snapshot is one refresh worth of window system state.
type Snapshot struct {
	Windows        []Window `yaml:"windows"                 json:"windows"`
	ActiveID       WindowID `yaml:"active_id"               json:"active_id"`
	CurrentDesktop int      `yaml:"current_desktop"         json:"current_desktop"`
	DesktopCount   int      `yaml:"desktop_count"           json:"desktop_count"`
	DesktopNames   []string `yaml:"desktop_names,omitempty" json:"desktop_names,omitempty"`
}

// Find returns the window with the given id.
func (s Snapshot) Find(id WindowID) (Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

// DesktopName returns the display name of a workspace, falling back to
// "Workspace N" (1-based) when the window manager publishes no names.
func (s Snapshot) DesktopName(desktop int) string {
	if desktop >= 0 && desktop < len(s.DesktopNames) && s.DesktopNames[desktop] != "" {
		return s.DesktopNames[desktop]
	}
	return fmt.Sprintf("Workspace %d", desktop+1)
}
