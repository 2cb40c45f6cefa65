// Package placement plans where a window should go and hands the result to
// the window manager.
package placement

import (
	"fmt"

	"github.com/1broseidon/winshift/internal/display"
	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/platform"
	"github.com/1broseidon/winshift/internal/selector"
	"github.com/1broseidon/winshift/internal/strut"
)

const (
	propActiveWindow = "_NET_ACTIVE_WINDOW"
	propFrameExtents = "_NET_FRAME_EXTENTS"
)

// WindowFrame is a window's content box plus the decorations the window
// manager draws around it.
type WindowFrame struct {
	Content     geom.ScreenRect
	Decorations geom.ScreenInsets
}

// Decorated returns the rectangle the window occupies on screen.
func (w WindowFrame) Decorated() geom.ScreenRect {
	return w.Content.Outset(w.Decorations)
}

// Plan is the outcome of one planning run.
type Plan struct {
	Window platform.WindowID
	// Source is the display the window is on; zero for absolute placements
	// that did not need it.
	Source display.Frame
	Target display.Frame
	// Percent is the decorated window in Target-relative space.
	Percent geom.PercentRect
	// Rect is the bare content rectangle to request.
	Rect geom.ScreenRect
}

// Planner resolves displays and windows through the platform collaborators.
type Planner struct {
	Outputs    platform.OutputProvider
	Properties platform.PropertyStore
	Sink       platform.PlacementSink
	Root       platform.WindowID
	// Titles, when set, names windows in listings.
	Titles platform.TitleSource
	// IgnoreStruts plans against full display frames.
	IgnoreStruts bool
}

// PlanAbsolute maps pct onto dest and strips the window's decorations. No
// source display is consulted.
func PlanAbsolute(win WindowFrame, pct geom.PercentRect, dest display.Frame) geom.ScreenRect {
	return pct.ToAbsolute(dest.Rect).Inset(win.Decorations)
}

// PlanRelocation maps the decorated window from current onto neighbor,
// keeping its relative position and size, and strips the decorations again.
func PlanRelocation(win WindowFrame, current, neighbor display.Frame) (geom.PercentRect, geom.ScreenRect) {
	pct := geom.ToPercent(win.Decorated(), current.Rect)
	return pct, pct.ToAbsolute(neighbor.Rect).Inset(win.Decorations)
}

// ActiveWindow returns the window the window manager reports as focused.
func (p *Planner) ActiveWindow() (platform.WindowID, error) {
	win, err := p.Properties.WindowRef(p.Root, propActiveWindow)
	if err != nil {
		return 0, platform.Fetch("read active window", err)
	}
	if win == 0 {
		return 0, platform.Fetch("read active window", fmt.Errorf("no active window"))
	}
	return win, nil
}

// Window reads the content box and decorations of win.
func (p *Planner) Window(win platform.WindowID) (WindowFrame, error) {
	content, err := p.Properties.Geometry(win)
	if err != nil {
		return WindowFrame{}, platform.Fetch(fmt.Sprintf("window %d geometry", win), err)
	}
	decor, err := p.Properties.Insets(win, propFrameExtents)
	if err != nil {
		return WindowFrame{}, platform.Fetch(fmt.Sprintf("window %d frame extents", win), err)
	}
	return WindowFrame{Content: content, Decorations: decor.Normalize()}, nil
}

// Displays returns the usable frame of every connected display. Each call
// starts from a fresh registry.
func (p *Planner) Displays() ([]display.Frame, error) {
	return p.usableFrames(display.NewRegistry(p.Outputs))
}

func (p *Planner) usableFrames(reg *display.Registry) ([]display.Frame, error) {
	frames, err := reg.ConnectedFrames()
	if err != nil {
		return nil, err
	}
	if p.IgnoreStruts {
		return frames, nil
	}

	rootRect, err := p.Properties.Geometry(p.Root)
	if err != nil {
		return nil, platform.Fetch("root geometry", err)
	}
	struts, err := strut.Discover(p.Properties, p.Root, rootRect.Size)
	if err != nil {
		// Placement still works on full frames.
		logging.Warn().Err(err).Msg("strut discovery failed")
		return frames, nil
	}

	usable := make([]display.Frame, len(frames))
	for i, f := range frames {
		usable[i] = strut.Apply(f, rootRect.Size, struts)
		logging.Debug().Str("display", f.Name).
			Stringer("frame", f.Rect).Stringer("usable", usable[i].Rect).
			Msg("resolved display")
	}
	return usable, nil
}

// PlanPlace plans moving win to pct of the usable area of the display it is
// currently on.
func (p *Planner) PlanPlace(win platform.WindowID, pct geom.PercentRect) (Plan, error) {
	frame, err := p.Window(win)
	if err != nil {
		return Plan{}, err
	}
	displays, err := p.Displays()
	if err != nil {
		return Plan{}, err
	}
	current, err := selector.Containing(frame.Decorated(), displays)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Window:  win,
		Source:  current,
		Target:  current,
		Percent: pct,
		Rect:    PlanAbsolute(frame, pct, current),
	}, nil
}

// PlanMove plans moving win to the next display in dir, keeping its
// relative placement.
func (p *Planner) PlanMove(win platform.WindowID, dir geom.Direction) (Plan, error) {
	frame, err := p.Window(win)
	if err != nil {
		return Plan{}, err
	}
	displays, err := p.Displays()
	if err != nil {
		return Plan{}, err
	}
	current, err := selector.Containing(frame.Decorated(), displays)
	if err != nil {
		return Plan{}, err
	}
	neighbor, err := selector.Neighbor(current, displays, dir)
	if err != nil {
		return Plan{}, err
	}

	pct, rect := PlanRelocation(frame, current, neighbor)
	return Plan{
		Window:  win,
		Source:  current,
		Target:  neighbor,
		Percent: pct,
		Rect:    rect,
	}, nil
}

// Apply hands a finished plan to the sink.
func (p *Planner) Apply(plan Plan) error {
	logging.Info().Uint32("window", uint32(plan.Window)).
		Str("target", plan.Target.Name).Stringer("rect", plan.Rect).
		Msg("requesting move-resize")
	if err := p.Sink.MoveResize(plan.Window, plan.Rect); err != nil {
		return fmt.Errorf("move window %d to %s: %w", plan.Window, plan.Rect, err)
	}
	return nil
}

// Place plans and applies a percentage placement on the window's display.
func (p *Planner) Place(win platform.WindowID, pct geom.PercentRect) (Plan, error) {
	plan, err := p.PlanPlace(win, pct)
	if err != nil {
		return Plan{}, err
	}
	return plan, p.Apply(plan)
}

// Move plans and applies a move to the neighbouring display in dir.
func (p *Planner) Move(win platform.WindowID, dir geom.Direction) (Plan, error) {
	plan, err := p.PlanMove(win, dir)
	if err != nil {
		return Plan{}, err
	}
	return plan, p.Apply(plan)
}

// ForBackend builds a Planner over every collaborator of b.
func ForBackend(b platform.Backend, ignoreStruts bool) *Planner {
	return &Planner{
		Outputs:      b.Outputs(),
		Properties:   b,
		Sink:         b,
		Root:         b.Root(),
		Titles:       b,
		IgnoreStruts: ignoreStruts,
	}
}
