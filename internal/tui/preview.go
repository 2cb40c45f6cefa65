package tui

import (
	"math"
	"strings"

	"github.com/1broseidon/winshift/internal/display"
	"github.com/1broseidon/winshift/internal/geom"
)

type boxRunes struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var (
	thinBox  = boxRunes{'┌', '┐', '└', '┘', '─', '│'}
	thickBox = boxRunes{'╔', '╗', '╚', '╝', '═', '║'}
)

const fillRune = '░'

type canvas struct {
	cells         [][]rune
	width, height int
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", width))
	}
	return &canvas{cells: cells, width: width, height: height}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y][x] = r
	}
}

func (c *canvas) box(x1, y1, x2, y2 int, b boxRunes) {
	for x := x1; x <= x2; x++ {
		c.set(x, y1, b.horizontal)
		c.set(x, y2, b.horizontal)
	}
	for y := y1; y <= y2; y++ {
		c.set(x1, y, b.vertical)
		c.set(x2, y, b.vertical)
	}
	c.set(x1, y1, b.topLeft)
	c.set(x2, y1, b.topRight)
	c.set(x1, y2, b.bottomLeft)
	c.set(x2, y2, b.bottomRight)
}

func (c *canvas) fill(x1, y1, x2, y2 int, r rune) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, r)
		}
	}
}

// label centres s on the middle row strictly inside the box, truncating to
// fit.
func (c *canvas) label(x1, y1, x2, y2 int, s string) {
	inner := x2 - x1 - 1
	if inner <= 0 || y2-y1 < 2 {
		return
	}
	runes := []rune(s)
	if len(runes) > inner {
		runes = runes[:inner]
	}
	y := (y1 + y2) / 2
	start := x1 + 1 + (inner-len(runes))/2
	for i, r := range runes {
		c.set(start+i, y, r)
	}
}

func (c *canvas) lines() []string {
	out := make([]string, c.height)
	for i, row := range c.cells {
		out[i] = string(row)
	}
	return out
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	lines := make([]string, max(height, 0))
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	return lines
}

// scale maps a fraction of [0,1] onto cell indexes 0..n-1.
func scale(f float64, n int) int {
	return int(math.Round(f * float64(n-1)))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// renderPlacement draws pct as a shaded box inside the outline of a display.
func renderPlacement(pct geom.PercentRect, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}
	c := newCanvas(width, height)
	c.box(0, 0, width-1, height-1, thickBox)

	x1 := clamp(scale(pct.Origin.X, width), 1, width-2)
	x2 := clamp(scale(pct.Origin.X+pct.Size.Width, width), 1, width-2)
	y1 := clamp(scale(pct.Origin.Y, height), 1, height-2)
	y2 := clamp(scale(pct.Origin.Y+pct.Size.Height, height), 1, height-2)
	if x2 <= x1 || y2 <= y1 {
		return c.lines()
	}
	c.fill(x1+1, y1+1, x2-1, y2-1, fillRune)
	c.box(x1, y1, x2, y2, thinBox)
	return c.lines()
}

// renderDisplays draws every display at its relative position. The display
// named from is marked with "*", the one named to with ">".
func renderDisplays(displays []display.Frame, from, to string, width, height int) []string {
	if len(displays) == 0 || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	bounds := displays[0].Rect
	for _, d := range displays[1:] {
		minX := min(bounds.MinX(), d.Rect.MinX())
		minY := min(bounds.MinY(), d.Rect.MinY())
		maxX := max(bounds.MaxX(), d.Rect.MaxX())
		maxY := max(bounds.MaxY(), d.Rect.MaxY())
		bounds = geom.Rect(minX, minY, maxX-minX, maxY-minY)
	}

	c := newCanvas(width, height)
	for _, d := range displays {
		pct := geom.ToPercent(d.Rect, bounds)
		x1 := scale(pct.Origin.X, width)
		x2 := scale(pct.Origin.X+pct.Size.Width, width)
		y1 := scale(pct.Origin.Y, height)
		y2 := scale(pct.Origin.Y+pct.Size.Height, height)
		// Adjacent displays share an edge column; pull the far edge in.
		if x2 < width-1 {
			x2--
		}
		if y2 < height-1 {
			y2--
		}
		if x2 <= x1 || y2 <= y1 {
			continue
		}

		style := thinBox
		name := d.Name
		switch d.Name {
		case from:
			style = thickBox
			name = "*" + name
		case to:
			name = ">" + name
		}
		c.box(x1, y1, x2, y2, style)
		c.label(x1, y1, x2, y2, name)
	}
	return c.lines()
}
