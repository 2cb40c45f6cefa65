package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
)

// Output is the RandR view of one output.
type Output struct {
	ID        randr.Output
	Name      string
	Connected bool
	// Unknown is set when the server cannot tell whether something is
	// plugged in.
	Unknown bool
	Crtc    randr.Crtc
}

// Resources is a snapshot of the screen's RandR outputs. All further
// queries are made against its config timestamp.
type Resources struct {
	Outputs   []randr.Output
	Timestamp xproto.Timestamp
}

// ScreenResources initializes RandR and lists the root window's outputs
// without forcing RandR to poll the hardware again.
func (c *Connection) ScreenResources() (*Resources, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	reply, err := randr.GetScreenResourcesCurrent(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}
	return &Resources{Outputs: reply.Outputs, Timestamp: reply.ConfigTimestamp}, nil
}

// OutputInfo queries one output.
func (c *Connection) OutputInfo(out randr.Output, ts xproto.Timestamp) (Output, error) {
	reply, err := randr.GetOutputInfo(c.XUtil.Conn(), out, ts).Reply()
	if err != nil {
		return Output{}, fmt.Errorf("failed to get output info: %w", err)
	}
	return Output{
		ID:        out,
		Name:      string(reply.Name),
		Connected: reply.Connection == randr.ConnectionConnected,
		Unknown:   reply.Connection == randr.ConnectionUnknown,
		Crtc:      reply.Crtc,
	}, nil
}

// CrtcInfo queries the geometry of one CRTC.
func (c *Connection) CrtcInfo(crtc randr.Crtc, ts xproto.Timestamp) (Rect, error) {
	reply, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, ts).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("failed to get crtc info: %w", err)
	}
	return Rect{
		X:      int(reply.X),
		Y:      int(reply.Y),
		Width:  int(reply.Width),
		Height: int(reply.Height),
	}, nil
}

// XineramaScreens lists the screens reported by Xinerama. It is used when
// RandR is missing, e.g. under some nested X servers.
func (c *Connection) XineramaScreens() ([]Rect, error) {
	if err := xinerama.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("xinerama init failed: %w", err)
	}

	active, err := xinerama.IsActive(c.XUtil.Conn()).Reply()
	if err != nil {
		return nil, fmt.Errorf("xinerama state: %w", err)
	}
	if active.State == 0 {
		return nil, fmt.Errorf("xinerama is not active")
	}

	reply, err := xinerama.QueryScreens(c.XUtil.Conn()).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query xinerama screens: %w", err)
	}

	screens := make([]Rect, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		screens = append(screens, Rect{
			X:      int(s.XOrg),
			Y:      int(s.YOrg),
			Width:  int(s.Width),
			Height: int(s.Height),
		})
	}
	return screens, nil
}
