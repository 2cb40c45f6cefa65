//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/x11"
)

// X11Backend implements the window collaborators on top of an X11
// connection. Outputs come from RandR.
type X11Backend struct {
	conn *x11.Connection

	res   *x11.Resources
	crtcs map[OutputID]randr.Crtc
}

var (
	_ OutputProvider = (*X11Backend)(nil)
	_ PropertyStore  = (*X11Backend)(nil)
	_ PlacementSink  = (*X11Backend)(nil)
	_ Backend        = (*X11Backend)(nil)
)

// NewX11Backend wraps an existing X11 connection.
func NewX11Backend(conn *x11.Connection) *X11Backend {
	return &X11Backend{conn: conn, crtcs: make(map[OutputID]randr.Crtc)}
}

// NewX11BackendFromDisplay opens a fresh X11 connection to display.
func NewX11BackendFromDisplay(display string) (*X11Backend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}
	return NewX11Backend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *X11Backend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Root returns the root window of the default screen.
func (b *X11Backend) Root() WindowID {
	return WindowID(b.conn.Root)
}

// WindowTitle returns a display name for win, or "".
func (b *X11Backend) WindowTitle(win WindowID) string {
	return b.conn.WindowTitle(xproto.Window(win))
}

// Outputs returns b when RandR works and a Xinerama provider otherwise.
func (b *X11Backend) Outputs() OutputProvider {
	if _, err := b.resources(true); err != nil {
		logging.Info().Err(err).Msg("randr unavailable, falling back to xinerama")
		return &XineramaProvider{conn: b.conn}
	}
	return b
}

func (b *X11Backend) resources(refresh bool) (*x11.Resources, error) {
	if b.res != nil && !refresh {
		return b.res, nil
	}
	res, err := b.conn.ScreenResources()
	if err != nil {
		return nil, err
	}
	b.res = res
	return res, nil
}

// ListOutputs takes a new resource snapshot, so a long-lived backend sees
// hotplugged outputs.
func (b *X11Backend) ListOutputs() ([]OutputID, error) {
	res, err := b.resources(true)
	if err != nil {
		return nil, err
	}
	ids := make([]OutputID, len(res.Outputs))
	for i, out := range res.Outputs {
		ids[i] = OutputID(out)
	}
	return ids, nil
}

func (b *X11Backend) OutputInfo(out OutputID) (OutputInfo, error) {
	res, err := b.resources(false)
	if err != nil {
		return OutputInfo{}, err
	}
	o, err := b.conn.OutputInfo(randr.Output(out), res.Timestamp)
	if err != nil {
		return OutputInfo{}, err
	}
	b.crtcs[out] = o.Crtc

	state := StateDisconnected
	switch {
	case o.Connected:
		state = StateConnected
	case o.Unknown:
		state = StateUnknown
	}
	return OutputInfo{Name: o.Name, State: state, CRTC: uint32(o.Crtc)}, nil
}

func (b *X11Backend) OutputFrame(out OutputID) (geom.ScreenRect, error) {
	crtc, ok := b.crtcs[out]
	if !ok {
		if _, err := b.OutputInfo(out); err != nil {
			return geom.ScreenRect{}, err
		}
		crtc = b.crtcs[out]
	}
	if crtc == 0 {
		return geom.ScreenRect{}, fmt.Errorf("output %d has no crtc", out)
	}

	res, err := b.resources(false)
	if err != nil {
		return geom.ScreenRect{}, err
	}
	r, err := b.conn.CrtcInfo(crtc, res.Timestamp)
	if err != nil {
		return geom.ScreenRect{}, err
	}
	return geom.Rect(r.X, r.Y, r.Width, r.Height), nil
}

func (b *X11Backend) CardinalList(win WindowID, name string) ([]uint, error) {
	return b.conn.CardinalList(xproto.Window(win), name)
}

func (b *X11Backend) WindowRef(win WindowID, name string) (WindowID, error) {
	ref, err := b.conn.WindowRef(xproto.Window(win), name)
	return WindowID(ref), err
}

// Insets reads a left, right, top, bottom cardinal quadruple such as
// _NET_FRAME_EXTENTS. A missing property reads as no insets.
func (b *X11Backend) Insets(win WindowID, name string) (geom.ScreenInsets, error) {
	vals, err := b.conn.CardinalList(xproto.Window(win), name)
	if err != nil {
		logging.Debug().Uint32("window", uint32(win)).Str("property", name).Err(err).Msg("no insets")
		return geom.ScreenInsets{}, nil
	}
	if len(vals) < 4 {
		return geom.ScreenInsets{}, fmt.Errorf("%s on window %d: want 4 values, got %d", name, win, len(vals))
	}
	return geom.ScreenInsets{
		Left:   int(vals[0]),
		Right:  int(vals[1]),
		Top:    int(vals[2]),
		Bottom: int(vals[3]),
	}, nil
}

func (b *X11Backend) Children(win WindowID) ([]WindowID, error) {
	kids, err := b.conn.Children(xproto.Window(win))
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, len(kids))
	for i, k := range kids {
		out[i] = WindowID(k)
	}
	return out, nil
}

func (b *X11Backend) Geometry(win WindowID) (geom.ScreenRect, error) {
	r, err := b.conn.AbsoluteGeometry(xproto.Window(win))
	if err != nil {
		return geom.ScreenRect{}, err
	}
	return geom.Rect(r.X, r.Y, r.Width, r.Height), nil
}

// MoveResize moves and resizes a window to rect.
func (b *X11Backend) MoveResize(win WindowID, rect geom.ScreenRect) error {
	err := b.conn.MoveResizeWindow(xproto.Window(win),
		rect.Origin.X, rect.Origin.Y, rect.Size.Width, rect.Size.Height)
	if errors.Is(err, x11.ErrNotSupported) {
		return fmt.Errorf("%w: %v", ErrUnsupportedBySink, err)
	}
	return err
}

// XineramaProvider reports Xinerama screens as outputs. Screens carry no
// connector names, so they are named by index.
type XineramaProvider struct {
	conn    *x11.Connection
	screens []x11.Rect
}

var _ OutputProvider = (*XineramaProvider)(nil)

func (p *XineramaProvider) ListOutputs() ([]OutputID, error) {
	screens, err := p.conn.XineramaScreens()
	if err != nil {
		return nil, err
	}
	p.screens = screens

	ids := make([]OutputID, len(screens))
	for i := range screens {
		ids[i] = OutputID(i + 1)
	}
	return ids, nil
}

func (p *XineramaProvider) screen(out OutputID) (x11.Rect, error) {
	i := int(out) - 1
	if i < 0 || i >= len(p.screens) {
		return x11.Rect{}, fmt.Errorf("xinerama screen %d not found", out)
	}
	return p.screens[i], nil
}

func (p *XineramaProvider) OutputInfo(out OutputID) (OutputInfo, error) {
	if _, err := p.screen(out); err != nil {
		return OutputInfo{}, err
	}
	return OutputInfo{
		Name:  fmt.Sprintf("xinerama-%d", out-1),
		State: StateConnected,
		CRTC:  uint32(out),
	}, nil
}

func (p *XineramaProvider) OutputFrame(out OutputID) (geom.ScreenRect, error) {
	r, err := p.screen(out)
	if err != nil {
		return geom.ScreenRect{}, err
	}
	return geom.Rect(r.X, r.Y, r.Width, r.Height), nil
}
