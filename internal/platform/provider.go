package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the window system backends for the current session.
type Provider struct {
	Source        WindowSource
	WindowManager WindowManager
}

// ErrUnsupported is returned when no window system backend is available.
var ErrUnsupported = fmt.Errorf("winswitch has no window system backend on %s/%s; supported: X11 with EWMH", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init().
// See internal/platform/x11/init.go for the X11 registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current session.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
