package geom

import (
	"fmt"
	"math"
)

// PercentPoint is a position relative to a display, where (0,0) is the
// display's origin and (1,1) its far corner.
type PercentPoint struct {
	X float64
	Y float64
}

// PercentSize is an extent expressed as a fraction of a display's size.
type PercentSize struct {
	Width  float64
	Height float64
}

// PercentRect is a rectangle in display-relative space. Components are not
// clamped to [0,1]; a window hanging off its display keeps the overflow so
// the mapping back to pixels stays exact.
type PercentRect struct {
	Origin PercentPoint
	Size   PercentSize
}

// Percent is shorthand for building a PercentRect from its pieces.
func Percent(x, y, width, height float64) PercentRect {
	return PercentRect{
		Origin: PercentPoint{X: x, Y: y},
		Size:   PercentSize{Width: width, Height: height},
	}
}

// ToPercent expresses r relative to display.
//
// A display with a zero dimension maps that axis to zero.
func ToPercent(r ScreenRect, display ScreenRect) PercentRect {
	offset := r.Origin.Sub(display.Origin)
	return PercentRect{
		Origin: PercentPoint{
			X: ratio(offset.DX, display.Size.Width),
			Y: ratio(offset.DY, display.Size.Height),
		},
		Size: PercentSize{
			Width:  ratio(r.Size.Width, display.Size.Width),
			Height: ratio(r.Size.Height, display.Size.Height),
		},
	}
}

// ToAbsolute maps p onto display. Every component is rounded half away from
// zero, so mapping a result back and forth again is stable.
func (p PercentRect) ToAbsolute(display ScreenRect) ScreenRect {
	w := float64(display.Size.Width)
	h := float64(display.Size.Height)
	return ScreenRect{
		Origin: ScreenPoint{
			X: display.Origin.X + roundPixel(p.Origin.X*w),
			Y: display.Origin.Y + roundPixel(p.Origin.Y*h),
		},
		Size: ScreenSize{
			Width:  roundPixel(p.Size.Width * w),
			Height: roundPixel(p.Size.Height * h),
		},
	}
}

func (p PercentRect) String() string {
	return fmt.Sprintf("%.4g,%.4g %.4gx%.4g", p.Origin.X, p.Origin.Y, p.Size.Width, p.Size.Height)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func roundPixel(v float64) int {
	return int(math.Round(v))
}
