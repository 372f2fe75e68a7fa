package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/winswitch/internal/model"
)

// ParseWindowID converts a flag value to a WindowID. Decimal and 0x-prefixed
// hexadecimal (as printed by xprop and wmctrl) are accepted.
func ParseWindowID(s string) (model.WindowID, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid window id %q: must be non-zero", s)
	}
	return model.WindowID(v), nil
}

// ParseDesktop converts a 1-based workspace number, or "sticky", to a
// desktop index.
func ParseDesktop(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "sticky") || strings.EqualFold(s, "all") {
		return model.StickyDesktop, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid workspace %q: expected a number from 1 or \"sticky\"", s)
	}
	return n - 1, nil
}
