package placement

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/winshift/internal/geom"
)

const third = 1.0 / 3

// Builtin holds the named placements available without configuration.
var Builtin = buildNamed()

func buildNamed() map[string]geom.PercentRect {
	named := map[string]geom.PercentRect{
		"half-top":    geom.Percent(0, 0, 1, 0.5),
		"half-bottom": geom.Percent(0, 0.5, 1, 0.5),
		"half-left":   geom.Percent(0, 0, 0.5, 1),
		"half-right":  geom.Percent(0.5, 0, 0.5, 1),

		"quarter-centre": geom.Percent(0.25, 0.25, 0.5, 0.5),

		"ninth-centre":        geom.Percent(third, third, third, third),
		"ninth-column-left":   geom.Percent(0, 0, third, 1),
		"ninth-column-centre": geom.Percent(third, 0, third, 1),
		"ninth-column-right":  geom.Percent(2*third, 0, third, 1),
		"ninth-row-top":       geom.Percent(0, 0, 1, third),
		"ninth-row-centre":    geom.Percent(0, third, 1, third),
		"ninth-row-bottom":    geom.Percent(0, 2*third, 1, third),
	}

	// Corners and edges follow the same pattern for both grids: the cell
	// size is the grid step and the far offset is one cell short of 1.
	grids := []struct {
		prefix string
		cell   float64
	}{
		{"quarter", 0.5},
		{"ninth", third},
	}
	for _, g := range grids {
		far := 1 - g.cell
		mid := (1 - g.cell) / 2

		named[g.prefix+"-corner-top-left"] = geom.Percent(0, 0, g.cell, g.cell)
		named[g.prefix+"-corner-top-right"] = geom.Percent(far, 0, g.cell, g.cell)
		named[g.prefix+"-corner-bottom-left"] = geom.Percent(0, far, g.cell, g.cell)
		named[g.prefix+"-corner-bottom-right"] = geom.Percent(far, far, g.cell, g.cell)

		named[g.prefix+"-edge-top"] = geom.Percent(mid, 0, g.cell, g.cell)
		named[g.prefix+"-edge-bottom"] = geom.Percent(mid, far, g.cell, g.cell)
		named[g.prefix+"-edge-left"] = geom.Percent(0, mid, g.cell, g.cell)
		named[g.prefix+"-edge-right"] = geom.Percent(far, mid, g.cell, g.cell)
	}
	return named
}

// Names returns the builtin names plus any custom ones, sorted.
func Names(custom map[string]geom.PercentRect) []string {
	names := make([]string, 0, len(Builtin)+len(custom))
	for name := range Builtin {
		names = append(names, name)
	}
	for name := range custom {
		if _, ok := Builtin[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ParsePlacement resolves a placement argument. Custom names shadow
// builtins. Anything else must be four comma-separated fractions "x,y,w,h".
func ParsePlacement(arg string, custom map[string]geom.PercentRect) (geom.PercentRect, error) {
	name := strings.ToLower(strings.TrimSpace(arg))
	if pct, ok := custom[name]; ok {
		return pct, nil
	}
	if pct, ok := Builtin[name]; ok {
		return pct, nil
	}

	parts := strings.Split(name, ",")
	if len(parts) != 4 {
		return geom.PercentRect{}, fmt.Errorf("unknown placement %q", arg)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.PercentRect{}, fmt.Errorf("placement %q: component %d: %w", arg, i+1, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return geom.PercentRect{}, fmt.Errorf("placement %q: width and height must be positive", arg)
	}
	return geom.Percent(vals[0], vals[1], vals[2], vals[3]), nil
}
