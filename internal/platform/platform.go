package platform

import (
	"context"

	"github.com/mj1618/winswitch/internal/model"
)

// WindowSource reports the current window system state.
type WindowSource interface {
	// Snapshot returns the windows, the active window and the workspace
	// layout at the time of the call.
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// WindowManager acts on windows.
type WindowManager interface {
	// Activate raises and focuses a window, switching workspace if needed.
	Activate(ctx context.Context, id model.WindowID) error

	// MoveToDesktop moves a window to a workspace. model.StickyDesktop makes
	// it visible on all workspaces.
	MoveToDesktop(ctx context.Context, id model.WindowID, desktop int) error
}
