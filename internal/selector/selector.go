// Package selector picks displays relative to a window or to another
// display.
//
// Both selections walk the candidate slice in order and keep the first of
// several equally good candidates. Output order comes from the display
// server, which does not promise a stable order, so ties are deterministic
// only for a fixed input slice.
package selector

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winshift/internal/display"
	"github.com/1broseidon/winshift/internal/geom"
)

var (
	ErrNoContainingDisplay  = errors.New("no display contains the window")
	ErrNoDisplayInDirection = errors.New("no display in requested direction")
)

// SelectionError describes a selection query that found no display.
type SelectionError struct {
	Query string
	Err   error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Query)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// Containing returns the display with the largest overlap with window.
func Containing(window geom.ScreenRect, displays []display.Frame) (display.Frame, error) {
	var best display.Frame
	bestArea := 0

	for _, d := range displays {
		overlap, ok := d.Rect.Intersection(window)
		if !ok {
			continue
		}
		if area := overlap.Area(); area > bestArea {
			best, bestArea = d, area
		}
	}

	if bestArea == 0 {
		return display.Frame{}, &SelectionError{
			Query: fmt.Sprintf("window %s", window),
			Err:   ErrNoContainingDisplay,
		}
	}
	return best, nil
}

// Neighbor returns the nearest display lying in dir from current. A
// candidate qualifies when the projection of the centre-to-centre vector on
// dir is strictly positive; the smallest such projection wins.
func Neighbor(current display.Frame, displays []display.Frame, dir geom.Direction) (display.Frame, error) {
	unit := dir.Vector()
	from := current.Rect.Center()

	var best display.Frame
	bestProj := 0
	found := false

	for _, d := range displays {
		if d.Rect == current.Rect {
			continue
		}
		proj := d.Rect.Center().Sub(from).Dot(unit)
		if proj <= 0 {
			continue
		}
		if !found || proj < bestProj {
			best, bestProj, found = d, proj, true
		}
	}

	if !found {
		return display.Frame{}, &SelectionError{
			Query: fmt.Sprintf("%s of %s", dir, current),
			Err:   ErrNoDisplayInDirection,
		}
	}
	return best, nil
}
