// Package strut subtracts panel and dock reservations from display frames.
package strut

import (
	"github.com/1broseidon/winshift/internal/display"
	"github.com/1broseidon/winshift/internal/geom"
)

// Spec is one window's edge reservation, laid out like
// _NET_WM_STRUT_PARTIAL. Thicknesses are measured from the matching edge of
// the root window; the start/end pairs are inclusive ranges on the other
// axis.
type Spec struct {
	Left   int
	Right  int
	Top    int
	Bottom int

	LeftStartY   int
	LeftEndY     int
	RightStartY  int
	RightEndY    int
	TopStartX    int
	TopEndX      int
	BottomStartX int
	BottomEndX   int
}

// FullWidth builds a Spec from plain _NET_WM_STRUT thicknesses, which
// reserve along the whole root edge.
func FullWidth(left, right, top, bottom int, root geom.ScreenSize) Spec {
	return Spec{
		Left:         left,
		Right:        right,
		Top:          top,
		Bottom:       bottom,
		LeftStartY:   0,
		LeftEndY:     root.Height - 1,
		RightStartY:  0,
		RightEndY:    root.Height - 1,
		TopStartX:    0,
		TopEndX:      root.Width - 1,
		BottomStartX: 0,
		BottomEndX:   root.Width - 1,
	}
}

// IsZero reports whether s reserves nothing.
func (s Spec) IsZero() bool {
	return s.Left == 0 && s.Right == 0 && s.Top == 0 && s.Bottom == 0
}

// Apply shrinks frame by every strut in order. An edge reservation counts
// only when its inner boundary falls strictly inside the frame and its
// declared span covers the frame's whole side; a panel that spans part of
// a side belongs to another display. Later struts see the already shrunk
// frame.
func Apply(frame display.Frame, root geom.ScreenSize, struts []Spec) display.Frame {
	x1, y1 := frame.Rect.MinX(), frame.Rect.MinY()
	x2, y2 := frame.Rect.MaxX(), frame.Rect.MaxY()

	for _, s := range struts {
		if s.Top > 0 {
			edge := s.Top
			if y1 < edge && edge < y2 && covers(s.TopStartX, s.TopEndX, x1, x2) {
				y1 = edge
			}
		}
		if s.Bottom > 0 {
			edge := root.Height - s.Bottom
			if y1 < edge && edge < y2 && covers(s.BottomStartX, s.BottomEndX, x1, x2) {
				y2 = edge
			}
		}
		if s.Left > 0 {
			edge := s.Left
			if x1 < edge && edge < x2 && covers(s.LeftStartY, s.LeftEndY, y1, y2) {
				x1 = edge
			}
		}
		if s.Right > 0 {
			edge := root.Width - s.Right
			if x1 < edge && edge < x2 && covers(s.RightStartY, s.RightEndY, y1, y2) {
				x2 = edge
			}
		}
	}

	return display.Frame{
		Name:  frame.Name,
		Rect:  geom.Rect(x1, y1, x2-x1, y2-y1),
		Inset: true,
	}
}

// covers reports whether the inclusive range [start,end] spans the
// half-open range [lo,hi).
func covers(start, end, lo, hi int) bool {
	return start <= lo && end+1 >= hi
}
