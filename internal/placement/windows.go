package placement

import (
	"fmt"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/platform"
	"github.com/1broseidon/winshift/internal/selector"
)

const propClientList = "_NET_CLIENT_LIST"

// WindowInfo describes one managed window.
type WindowInfo struct {
	ID    platform.WindowID
	Title string
	// Display is the name of the display holding most of the window, "" when
	// it is off every display or its geometry could not be read.
	Display string
	// Rect is the decorated window, empty when unknown.
	Rect   geom.ScreenRect
	Active bool
}

// Windows lists the windows the window manager manages, in
// _NET_CLIENT_LIST order. Windows whose geometry cannot be read are still
// listed, without a display.
func (p *Planner) Windows() ([]WindowInfo, error) {
	// WINDOW[] decodes the same as CARDINAL[].
	ids, err := p.Properties.CardinalList(p.Root, propClientList)
	if err != nil {
		return nil, platform.Fetch("read client list", err)
	}

	displays, err := p.Displays()
	if err != nil {
		return nil, err
	}
	active, _ := p.ActiveWindow()

	out := make([]WindowInfo, 0, len(ids))
	for _, raw := range ids {
		win := platform.WindowID(raw)
		info := WindowInfo{ID: win, Active: win == active}
		if p.Titles != nil {
			info.Title = p.Titles.WindowTitle(win)
		}

		frame, err := p.Window(win)
		if err != nil {
			logging.Debug().Err(err).Str("window", fmt.Sprintf("0x%x", uint32(win))).Msg("window geometry unavailable")
			out = append(out, info)
			continue
		}
		info.Rect = frame.Decorated()
		if d, err := selector.Containing(info.Rect, displays); err == nil {
			info.Display = d.Name
		}
		out = append(out, info)
	}
	return out, nil
}
