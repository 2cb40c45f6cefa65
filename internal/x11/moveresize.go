package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// ErrNotSupported is returned when the window manager does not advertise a
// required EWMH hint.
var ErrNotSupported = errors.New("not supported by window manager")

// Supports reports whether the window manager lists hint in _NET_SUPPORTED.
func (c *Connection) Supports(hint string) (bool, error) {
	supported, err := ewmh.SupportedGet(c.XUtil)
	if err != nil {
		return false, fmt.Errorf("read _NET_SUPPORTED: %w", err)
	}
	for _, s := range supported {
		if s == hint {
			return true, nil
		}
	}
	return false, nil
}

// MoveResizeWindow asks the window manager to move and resize a window via
// _NET_MOVERESIZE_WINDOW. Maximized windows are unmaximized first, since
// most window managers ignore geometry requests for them.
func (c *Connection) MoveResizeWindow(win xproto.Window, x, y, width, height int) error {
	ok, err := c.Supports("_NET_MOVERESIZE_WINDOW")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("_NET_MOVERESIZE_WINDOW: %w", ErrNotSupported)
	}

	// Best effort; some windows do not expose _NET_WM_STATE.
	_ = c.unmaximizeWindow(win)

	if err := ewmh.MoveresizeWindow(c.XUtil, win, x, y, width, height); err != nil {
		return fmt.Errorf("send _NET_MOVERESIZE_WINDOW: %w", err)
	}
	return nil
}

// _NET_WM_STATE action.
const stateRemove = 0

func (c *Connection) unmaximizeWindow(win xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			if err := ewmh.WmStateReq(c.XUtil, win, stateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}
