package placement

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/platform"
)

// ActionKind distinguishes percentage placements from display moves.
type ActionKind int

const (
	ActionPlace ActionKind = iota
	ActionMove
)

// Action is one thing a user can ask for from a menu or the command line.
type Action struct {
	Kind ActionKind
	// Name is the placement name or literal, for ActionPlace.
	Name      string
	Percent   geom.PercentRect
	Direction geom.Direction
}

// String renders a as "place:<name>" or "move:<direction>". ParseAction
// accepts the result.
func (a Action) String() string {
	if a.Kind == ActionMove {
		return "move:" + a.Direction.String()
	}
	return "place:" + a.Name
}

var directions = []geom.Direction{geom.North, geom.East, geom.South, geom.West}

// Actions lists every move followed by every named placement.
func Actions(custom map[string]geom.PercentRect) []Action {
	names := Names(custom)
	out := make([]Action, 0, len(directions)+len(names))
	for _, d := range directions {
		out = append(out, Action{Kind: ActionMove, Direction: d})
	}
	for _, name := range names {
		pct, ok := custom[name]
		if !ok {
			pct = Builtin[name]
		}
		out = append(out, Action{Kind: ActionPlace, Name: name, Percent: pct})
	}
	return out
}

// ParseAction parses the String form of an Action.
func ParseAction(s string, custom map[string]geom.PercentRect) (Action, error) {
	kind, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Action{}, fmt.Errorf("action %q: want place:<placement> or move:<direction>", s)
	}
	switch strings.ToLower(kind) {
	case "place":
		return PlaceAction(arg, custom)
	case "move":
		dir, err := geom.ParseDirection(arg)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionMove, Direction: dir}, nil
	}
	return Action{}, fmt.Errorf("action %q: unknown kind %q", s, kind)
}

// PlaceAction resolves a placement argument into an Action whose Name is
// the normalized argument.
func PlaceAction(arg string, custom map[string]geom.PercentRect) (Action, error) {
	pct, err := ParsePlacement(arg, custom)
	if err != nil {
		return Action{}, err
	}
	return Action{Kind: ActionPlace, Name: strings.ToLower(strings.TrimSpace(arg)), Percent: pct}, nil
}

// PlanAction plans a for win without applying it.
func (p *Planner) PlanAction(win platform.WindowID, a Action) (Plan, error) {
	if a.Kind == ActionMove {
		return p.PlanMove(win, a.Direction)
	}
	return p.PlanPlace(win, a.Percent)
}

// Do plans and applies a for win.
func (p *Planner) Do(win platform.WindowID, a Action) (Plan, error) {
	plan, err := p.PlanAction(win, a)
	if err != nil {
		return Plan{}, err
	}
	return plan, p.Apply(plan)
}
