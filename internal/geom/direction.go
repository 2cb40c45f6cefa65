package geom

import (
	"fmt"
	"strings"
)

// Direction is one of the four compass directions on the desktop.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Vector returns the unit vector for d. Screen y grows downward, so North
// points at negative y.
func (d Direction) Vector() ScreenVector {
	switch d {
	case North:
		return ScreenVector{DX: 0, DY: -1}
	case South:
		return ScreenVector{DX: 0, DY: 1}
	case East:
		return ScreenVector{DX: 1, DY: 0}
	case West:
		return ScreenVector{DX: -1, DY: 0}
	}
	return ScreenVector{}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts compass names, their initials, and arrow-style
// aliases (up, right, down, left).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q (want north, east, south or west)", s)
}
