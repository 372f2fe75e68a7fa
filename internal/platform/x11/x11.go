// Package x11 reads windows from an EWMH compliant X11 window manager and
// activates or moves them through client messages to the root window.
package x11

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/model"
)

// allDesktops is the _NET_WM_DESKTOP value of sticky windows.
const allDesktops = 0xFFFFFFFF

// Backend talks to the X server.
type Backend struct {
	xu *xgbutil.XUtil
}

// Connect opens a connection to the display named by $DISPLAY.
func Connect() (*Backend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	return &Backend{xu: xu}, nil
}

// Close releases the X connection.
func (b *Backend) Close() {
	b.xu.Conn().Close()
}

// Snapshot lists the managed client windows, topmost first. Stacking order
// seeds a fresh history with a usable recency order; window managers without
// _NET_CLIENT_LIST_STACKING fall back to _NET_CLIENT_LIST (mapping order).
func (b *Backend) Snapshot(ctx context.Context) (model.Snapshot, error) {
	clients, err := b.clients()
	if err != nil {
		return model.Snapshot{}, err
	}

	var snap model.Snapshot
	if active, err := ewmh.ActiveWindowGet(b.xu); err == nil {
		snap.ActiveID = model.WindowID(active)
	}
	if cur, err := ewmh.CurrentDesktopGet(b.xu); err == nil {
		snap.CurrentDesktop = int(cur)
	}
	if n, err := ewmh.NumberOfDesktopsGet(b.xu); err == nil {
		snap.DesktopCount = int(n)
	}
	if names, err := ewmh.DesktopNamesGet(b.xu); err == nil {
		snap.DesktopNames = names
	}

	if len(clients) > model.MaxWindows {
		logging.ForComponent(logging.CompPlatform).Warn("too many client windows, truncating",
			"count", len(clients), "max", model.MaxWindows)
		clients = clients[:model.MaxWindows]
	}

	snap.Windows = make([]model.Window, 0, len(clients))
	for _, win := range clients {
		if err := ctx.Err(); err != nil {
			return model.Snapshot{}, err
		}
		snap.Windows = append(snap.Windows, b.describe(win))
	}
	return snap, nil
}

func (b *Backend) clients() ([]xproto.Window, error) {
	stacking, err := ewmh.ClientListStackingGet(b.xu)
	if err == nil && len(stacking) > 0 {
		return topmostFirst(stacking), nil
	}
	clients, err := ewmh.ClientListGet(b.xu)
	if err != nil {
		return nil, fmt.Errorf("read _NET_CLIENT_LIST: %w", err)
	}
	return clients, nil
}

// topmostFirst reverses _NET_CLIENT_LIST_STACKING, which lists bottom to top.
func topmostFirst(stacking []xproto.Window) []xproto.Window {
	out := make([]xproto.Window, len(stacking))
	for i, w := range stacking {
		out[len(stacking)-1-i] = w
	}
	return out
}

func (b *Backend) describe(win xproto.Window) model.Window {
	w := model.Window{
		ID:    model.WindowID(win),
		Title: b.title(win),
		Type:  b.windowType(win),
	}
	if class, err := icccm.WmClassGet(b.xu, win); err == nil && class != nil {
		w.ClassName = class.Class
		w.Instance = class.Instance
	}
	if desk, err := ewmh.WmDesktopGet(b.xu, win); err == nil {
		w.Desktop = desktopOf(desk)
	}
	if pid, err := ewmh.WmPidGet(b.xu, win); err == nil {
		w.PID = int(pid)
	}
	return w
}

func (b *Backend) title(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(b.xu, win); err == nil && title != "" {
		return title
	}
	if title, err := icccm.WmNameGet(b.xu, win); err == nil {
		return title
	}
	return ""
}

func (b *Backend) windowType(win xproto.Window) model.WindowType {
	states, _ := ewmh.WmStateGet(b.xu, win)
	types, _ := ewmh.WmWindowTypeGet(b.xu, win)
	return classify(states, types)
}

// classify reports a window as Normal when it declares no type or the normal
// type and is not hidden from the taskbar.
func classify(states, types []string) model.WindowType {
	for _, s := range states {
		if s == "_NET_WM_STATE_SKIP_TASKBAR" {
			return model.Special
		}
	}
	if len(types) == 0 || types[0] == "_NET_WM_WINDOW_TYPE_NORMAL" {
		return model.Normal
	}
	return model.Special
}

func desktopOf(desk uint) int {
	if desk == allDesktops {
		return model.StickyDesktop
	}
	return int(desk)
}

// Activate asks the window manager to focus the window.
func (b *Backend) Activate(ctx context.Context, id model.WindowID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ewmh.ActiveWindowReq(b.xu, xproto.Window(id)); err != nil {
		return fmt.Errorf("activate window %d: %w", id, err)
	}
	return nil
}

// MoveToDesktop asks the window manager to move the window.
func (b *Backend) MoveToDesktop(ctx context.Context, id model.WindowID, desktop int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	desk := uint(allDesktops)
	if desktop != model.StickyDesktop {
		desk = uint(desktop)
	}
	if err := ewmh.WmDesktopReq(b.xu, xproto.Window(id), desk); err != nil {
		return fmt.Errorf("move window %d to desktop %d: %w", id, desktop, err)
	}
	return nil
}
