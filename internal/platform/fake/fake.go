// Package fake provides in-memory implementations of the platform
// collaborators for tests.
package fake

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/platform"
)

// ErrNotFound is returned for unknown outputs, windows and properties.
var ErrNotFound = errors.New("not found")

// Output is one simulated output.
type Output struct {
	Info  platform.OutputInfo
	Frame geom.ScreenRect
	// InfoErr and FrameErr, when set, are returned instead of the values.
	InfoErr  error
	FrameErr error
}

// Outputs is a scripted OutputProvider. Calls are counted per output so
// tests can assert on caching.
type Outputs struct {
	Order   []platform.OutputID
	ByID    map[platform.OutputID]*Output
	ListErr error

	InfoCalls  map[platform.OutputID]int
	FrameCalls map[platform.OutputID]int
}

var _ platform.OutputProvider = (*Outputs)(nil)

// NewOutputs returns an empty provider.
func NewOutputs() *Outputs {
	return &Outputs{
		ByID:       make(map[platform.OutputID]*Output),
		InfoCalls:  make(map[platform.OutputID]int),
		FrameCalls: make(map[platform.OutputID]int),
	}
}

// AddConnected registers a connected output driven by a CRTC covering frame.
func (o *Outputs) AddConnected(id platform.OutputID, name string, frame geom.ScreenRect) *Output {
	out := &Output{
		Info:  platform.OutputInfo{Name: name, State: platform.StateConnected, CRTC: uint32(id) + 100},
		Frame: frame,
	}
	o.Order = append(o.Order, id)
	o.ByID[id] = out
	return out
}

// AddDisconnected registers an output with nothing plugged in.
func (o *Outputs) AddDisconnected(id platform.OutputID, name string) *Output {
	out := &Output{
		Info: platform.OutputInfo{Name: name, State: platform.StateDisconnected},
	}
	o.Order = append(o.Order, id)
	o.ByID[id] = out
	return out
}

func (o *Outputs) ListOutputs() ([]platform.OutputID, error) {
	if o.ListErr != nil {
		return nil, o.ListErr
	}
	return append([]platform.OutputID(nil), o.Order...), nil
}

func (o *Outputs) OutputInfo(id platform.OutputID) (platform.OutputInfo, error) {
	o.InfoCalls[id]++
	out, ok := o.ByID[id]
	if !ok {
		return platform.OutputInfo{}, fmt.Errorf("output %d: %w", id, ErrNotFound)
	}
	if out.InfoErr != nil {
		return platform.OutputInfo{}, out.InfoErr
	}
	return out.Info, nil
}

func (o *Outputs) OutputFrame(id platform.OutputID) (geom.ScreenRect, error) {
	o.FrameCalls[id]++
	out, ok := o.ByID[id]
	if !ok {
		return geom.ScreenRect{}, fmt.Errorf("output %d: %w", id, ErrNotFound)
	}
	if out.FrameErr != nil {
		return geom.ScreenRect{}, out.FrameErr
	}
	return out.Frame, nil
}

// Window is one simulated window.
type Window struct {
	Geometry   geom.ScreenRect
	Children   []platform.WindowID
	Cardinals  map[string][]uint
	Refs       map[string]platform.WindowID
	Insets     map[string]geom.ScreenInsets
	ReadErrors map[string]error
}

// Windows is an in-memory PropertyStore.
type Windows struct {
	ByID map[platform.WindowID]*Window
}

var _ platform.PropertyStore = (*Windows)(nil)

// NewWindows returns a store containing only an empty root window.
func NewWindows(root platform.WindowID, rootSize geom.ScreenSize) *Windows {
	w := &Windows{ByID: make(map[platform.WindowID]*Window)}
	w.Add(root, geom.ScreenRect{Size: rootSize})
	return w
}

// Add registers a window with the given content geometry.
func (w *Windows) Add(id platform.WindowID, geometry geom.ScreenRect) *Window {
	win := &Window{
		Geometry:   geometry,
		Cardinals:  make(map[string][]uint),
		Refs:       make(map[string]platform.WindowID),
		Insets:     make(map[string]geom.ScreenInsets),
		ReadErrors: make(map[string]error),
	}
	w.ByID[id] = win
	return win
}

// AddChild registers a window and links it below parent.
func (w *Windows) AddChild(parent, id platform.WindowID, geometry geom.ScreenRect) *Window {
	win := w.Add(id, geometry)
	if p, ok := w.ByID[parent]; ok {
		p.Children = append(p.Children, id)
	}
	return win
}

func (w *Windows) lookup(id platform.WindowID, name string) (*Window, error) {
	win, ok := w.ByID[id]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, ErrNotFound)
	}
	if err := win.ReadErrors[name]; err != nil {
		return nil, err
	}
	return win, nil
}

func (w *Windows) CardinalList(id platform.WindowID, name string) ([]uint, error) {
	win, err := w.lookup(id, name)
	if err != nil {
		return nil, err
	}
	vals, ok := win.Cardinals[name]
	if !ok {
		return nil, fmt.Errorf("property %s on window %d: %w", name, id, ErrNotFound)
	}
	return append([]uint(nil), vals...), nil
}

func (w *Windows) WindowRef(id platform.WindowID, name string) (platform.WindowID, error) {
	win, err := w.lookup(id, name)
	if err != nil {
		return 0, err
	}
	ref, ok := win.Refs[name]
	if !ok {
		return 0, fmt.Errorf("property %s on window %d: %w", name, id, ErrNotFound)
	}
	return ref, nil
}

func (w *Windows) Insets(id platform.WindowID, name string) (geom.ScreenInsets, error) {
	win, err := w.lookup(id, name)
	if err != nil {
		return geom.ScreenInsets{}, err
	}
	return win.Insets[name], nil
}

func (w *Windows) Children(id platform.WindowID) ([]platform.WindowID, error) {
	win, err := w.lookup(id, "")
	if err != nil {
		return nil, err
	}
	kids := append([]platform.WindowID(nil), win.Children...)
	sort.Slice(kids, func(i, j int) bool { return kids[i] < kids[j] })
	return kids, nil
}

func (w *Windows) Geometry(id platform.WindowID) (geom.ScreenRect, error) {
	win, err := w.lookup(id, "")
	if err != nil {
		return geom.ScreenRect{}, err
	}
	return win.Geometry, nil
}

// Request is one recorded move-resize call.
type Request struct {
	Window platform.WindowID
	Rect   geom.ScreenRect
}

// Sink records move-resize requests.
type Sink struct {
	Requests []Request
	// Err, when set, is returned instead of recording the request.
	Err error
}

var _ platform.PlacementSink = (*Sink)(nil)

func (s *Sink) MoveResize(win platform.WindowID, rect geom.ScreenRect) error {
	if s.Err != nil {
		return s.Err
	}
	s.Requests = append(s.Requests, Request{Window: win, Rect: rect})
	return nil
}

// Backend combines the fakes into a platform.Backend.
type Backend struct {
	*Windows
	*Sink
	Out    *Outputs
	RootID platform.WindowID
	Titles map[platform.WindowID]string
	Closed bool
}

var _ platform.Backend = (*Backend)(nil)

// NewBackend returns a backend with no outputs and an empty root window.
func NewBackend(root platform.WindowID, rootSize geom.ScreenSize) *Backend {
	return &Backend{
		Windows: NewWindows(root, rootSize),
		Sink:    &Sink{},
		Out:     NewOutputs(),
		RootID:  root,
		Titles:  make(map[platform.WindowID]string),
	}
}

func (b *Backend) Outputs() platform.OutputProvider { return b.Out }

func (b *Backend) Root() platform.WindowID { return b.RootID }

func (b *Backend) WindowTitle(win platform.WindowID) string { return b.Titles[win] }

func (b *Backend) Disconnect() { b.Closed = true }
