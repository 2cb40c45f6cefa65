package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winshift/internal/geom"
)

// OutputID is a platform-neutral output (physical display) identifier.
type OutputID uint32

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// ConnectionState reports whether an output has a display attached.
type ConnectionState int

const (
	StateUnknown ConnectionState = iota
	StateConnected
	StateDisconnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// OutputInfo is the identity metadata of one output.
type OutputInfo struct {
	Name  string
	State ConnectionState
	// CRTC is the hardware path currently driving the output, 0 if none.
	CRTC uint32
}

// OutputProvider enumerates outputs and fetches their state and geometry.
// Every call may fail independently.
type OutputProvider interface {
	ListOutputs() ([]OutputID, error)
	OutputInfo(out OutputID) (OutputInfo, error)
	// OutputFrame returns the absolute pixel rectangle of the output's
	// active CRTC.
	OutputFrame(out OutputID) (geom.ScreenRect, error)
}

// PropertyStore reads typed window properties and walks the window tree.
type PropertyStore interface {
	CardinalList(win WindowID, name string) ([]uint, error)
	WindowRef(win WindowID, name string) (WindowID, error)
	// Insets reads a four-cardinal left/right/top/bottom property. An absent
	// property yields zero insets and no error.
	Insets(win WindowID, name string) (geom.ScreenInsets, error)
	Children(win WindowID) ([]WindowID, error)
	// Geometry returns the window's content box in root coordinates.
	Geometry(win WindowID) (geom.ScreenRect, error)
}

// PlacementSink asks the window manager to move and resize a window.
type PlacementSink interface {
	MoveResize(win WindowID, rect geom.ScreenRect) error
}

// TitleSource names windows for people.
type TitleSource interface {
	// WindowTitle returns a display name for win, or "".
	WindowTitle(win WindowID) string
}

// Backend bundles the collaborators of one window system connection.
type Backend interface {
	PropertyStore
	PlacementSink
	TitleSource
	// Outputs returns the best available output source.
	Outputs() OutputProvider
	Root() WindowID
	Disconnect()
}

// ErrUnsupportedBySink is returned when the window manager cannot perform a
// move-resize request.
var ErrUnsupportedBySink = errors.New("move-resize not supported by window manager")

// FetchError wraps a failed collaborator query.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetch wraps err as a FetchError for op. A nil err stays nil.
func Fetch(op string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Op: op, Err: err}
}
