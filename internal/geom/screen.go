// Package geom models the two coordinate spaces windows are placed in:
// absolute screen pixels and percentages of one display.
//
// Values of the two spaces are distinct types. The only way across is
// ToPercent and PercentRect.ToAbsolute.
package geom

import "fmt"

// ScreenPoint is a pixel position in absolute desktop coordinates, with the
// origin at the top-left of the root window.
type ScreenPoint struct {
	X int
	Y int
}

// ScreenVector is a pixel displacement between two ScreenPoints.
type ScreenVector struct {
	DX int
	DY int
}

// ScreenSize is a pixel extent.
type ScreenSize struct {
	Width  int
	Height int
}

// ScreenRect is an axis-aligned rectangle in absolute desktop coordinates.
// Its maximum edges are exclusive.
type ScreenRect struct {
	Origin ScreenPoint
	Size   ScreenSize
}

// ScreenInsets are per-edge pixel thicknesses, e.g. window decorations.
type ScreenInsets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Rect is shorthand for building a ScreenRect from its pieces.
func Rect(x, y, width, height int) ScreenRect {
	return ScreenRect{
		Origin: ScreenPoint{X: x, Y: y},
		Size:   ScreenSize{Width: width, Height: height},
	}
}

// Sub returns the vector from q to p.
func (p ScreenPoint) Sub(q ScreenPoint) ScreenVector {
	return ScreenVector{DX: p.X - q.X, DY: p.Y - q.Y}
}

// Add translates p by v.
func (p ScreenPoint) Add(v ScreenVector) ScreenPoint {
	return ScreenPoint{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Dot is the scalar product of two vectors.
func (v ScreenVector) Dot(w ScreenVector) int {
	return v.DX*w.DX + v.DY*w.DY
}

func (s ScreenSize) Area() int {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return s.Width * s.Height
}

func (r ScreenRect) MinX() int { return r.Origin.X }
func (r ScreenRect) MinY() int { return r.Origin.Y }
func (r ScreenRect) MaxX() int { return r.Origin.X + r.Size.Width }
func (r ScreenRect) MaxY() int { return r.Origin.Y + r.Size.Height }

// Area returns the number of pixels covered by r.
func (r ScreenRect) Area() int {
	return r.Size.Area()
}

// IsEmpty reports whether r covers no pixels.
func (r ScreenRect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Center returns the centre pixel of r, rounding toward the origin.
func (r ScreenRect) Center() ScreenPoint {
	return ScreenPoint{
		X: r.Origin.X + r.Size.Width/2,
		Y: r.Origin.Y + r.Size.Height/2,
	}
}

// Contains reports whether p lies inside r.
func (r ScreenRect) Contains(p ScreenPoint) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Translate moves r by v without changing its size.
func (r ScreenRect) Translate(v ScreenVector) ScreenRect {
	return ScreenRect{Origin: r.Origin.Add(v), Size: r.Size}
}

// Intersection returns the overlap of r and o. The boolean is false when the
// rectangles do not overlap on at least one axis; callers must not treat that
// case as a zero-area rectangle.
func (r ScreenRect) Intersection(o ScreenRect) (ScreenRect, bool) {
	x1 := max(r.MinX(), o.MinX())
	y1 := max(r.MinY(), o.MinY())
	x2 := min(r.MaxX(), o.MaxX())
	y2 := min(r.MaxY(), o.MaxY())

	if x2 <= x1 || y2 <= y1 {
		return ScreenRect{}, false
	}
	return Rect(x1, y1, x2-x1, y2-y1), true
}

// Inset shrinks r by the given insets. Sizes never go below zero.
func (r ScreenRect) Inset(in ScreenInsets) ScreenRect {
	return ScreenRect{
		Origin: ScreenPoint{X: r.Origin.X + in.Left, Y: r.Origin.Y + in.Top},
		Size: ScreenSize{
			Width:  max(0, r.Size.Width-in.Left-in.Right),
			Height: max(0, r.Size.Height-in.Top-in.Bottom),
		},
	}
}

// Outset grows r by the given insets.
func (r ScreenRect) Outset(in ScreenInsets) ScreenRect {
	return ScreenRect{
		Origin: ScreenPoint{X: r.Origin.X - in.Left, Y: r.Origin.Y - in.Top},
		Size: ScreenSize{
			Width:  r.Size.Width + in.Left + in.Right,
			Height: r.Size.Height + in.Top + in.Bottom,
		},
	}
}

// InsetsTo returns the insets that shrink r to inner. Edges where inner
// pokes outside r come back as zero.
func (r ScreenRect) InsetsTo(inner ScreenRect) ScreenInsets {
	return ScreenInsets{
		Top:    inner.MinY() - r.MinY(),
		Right:  r.MaxX() - inner.MaxX(),
		Bottom: r.MaxY() - inner.MaxY(),
		Left:   inner.MinX() - r.MinX(),
	}.Normalize()
}

func (r ScreenRect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Size.Width, r.Size.Height, r.Origin.X, r.Origin.Y)
}

// Normalize clamps negative edges to zero.
func (in ScreenInsets) Normalize() ScreenInsets {
	return ScreenInsets{
		Top:    max(0, in.Top),
		Right:  max(0, in.Right),
		Bottom: max(0, in.Bottom),
		Left:   max(0, in.Left),
	}
}

// IsZero reports whether every edge is zero.
func (in ScreenInsets) IsZero() bool {
	return in == ScreenInsets{}
}
