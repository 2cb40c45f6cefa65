package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Rect is an absolute window rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// CardinalList reads a CARDINAL[] property.
func (c *Connection) CardinalList(win xproto.Window, name string) ([]uint, error) {
	return xprop.PropValNums(xprop.GetProperty(c.XUtil, win, name))
}

// WindowRef reads a WINDOW property.
func (c *Connection) WindowRef(win xproto.Window, name string) (xproto.Window, error) {
	return xprop.PropValWindow(xprop.GetProperty(c.XUtil, win, name))
}

// Children lists the direct children of win in stacking order.
func (c *Connection) Children(win xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree of 0x%x: %w", win, err)
	}
	return tree.Children, nil
}

// AbsoluteGeometry returns the content box of win in root coordinates.
func (c *Connection) AbsoluteGeometry(win xproto.Window) (Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("geometry of 0x%x: %w", win, err)
	}
	if win == c.Root {
		return Rect{Width: int(geom.Width), Height: int(geom.Height)}, nil
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("translate 0x%x: %w", win, err)
	}
	return Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// WindowTitle returns a human-readable name for win, or "".
func (c *Connection) WindowTitle(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if class, err := icccm.WmClassGet(c.XUtil, win); err == nil {
		return strings.TrimSpace(class.Class)
	}
	return ""
}
