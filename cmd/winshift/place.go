package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/placement"
	"github.com/1broseidon/winshift/internal/platform"
)

type rectJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func toRectJSON(r geom.ScreenRect) rectJSON {
	return rectJSON{X: r.Origin.X, Y: r.Origin.Y, Width: r.Size.Width, Height: r.Size.Height}
}

type placementResult struct {
	Action  string   `json:"action"`
	Window  uint32   `json:"window"`
	Title   string   `json:"title,omitempty"`
	Source  string   `json:"source"`
	Target  string   `json:"target"`
	Rect    rectJSON `json:"rect"`
	Applied bool     `json:"applied"`
}

func (a *app) placeCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "place <placement>",
		Short: "Resize a window to a placement on its current display",
		Long: `Resize a window to a fraction of the usable area of the display it is on.

The placement is a builtin name (see 'winshift placements'), a name from the
config file, or four comma-separated fractions x,y,w,h (e.g. 0,0,0.7,1).`,
		Example: "  winshift place half-left\n  winshift place quarter-corner-top-right --window 0x3a00007\n  winshift place 0.1,0.1,0.8,0.8",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := placement.PlaceAction(args[0], a.cfg().CustomPlacements())
			if err != nil {
				return err
			}
			return a.runAction(cmd.OutOrStdout(), action, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the target rectangle without moving the window")
	return cmd
}

func (a *app) moveCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "move <north|east|south|west>",
		Short: "Move a window to the neighbouring display",
		Long: `Move a window to the nearest display in a direction, keeping its position
and size relative to the display. up, right, down and left are accepted too.`,
		Example:   "  winshift move east\n  winshift move left --dry-run",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"north", "east", "south", "west", "up", "right", "down", "left"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := geom.ParseDirection(args[0])
			if err != nil {
				return err
			}
			return a.runAction(cmd.OutOrStdout(), placement.Action{Kind: placement.ActionMove, Direction: dir}, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the target rectangle without moving the window")
	return cmd
}

func (a *app) runAction(w io.Writer, action placement.Action, dryRun bool) error {
	return a.withPlanner(func(b platform.Backend, p *placement.Planner, win platform.WindowID) error {
		var plan placement.Plan
		var err error
		if dryRun {
			plan, err = p.PlanAction(win, action)
		} else {
			plan, err = p.Do(win, action)
		}
		if err != nil {
			return err
		}

		res := placementResult{
			Action:  action.String(),
			Window:  uint32(plan.Window),
			Title:   b.WindowTitle(plan.Window),
			Source:  plan.Source.Name,
			Target:  plan.Target.Name,
			Rect:    toRectJSON(plan.Rect),
			Applied: !dryRun,
		}
		if a.jsonOutput {
			return printJSON(w, res)
		}
		printPlacementResult(w, res)
		return nil
	})
}

func printPlacementResult(w io.Writer, res placementResult) {
	verb := "Moved"
	if !res.Applied {
		verb = "Would move"
	}
	successColor.Fprintf(w, "✓ %s window 0x%x", verb, res.Window)
	if res.Title != "" {
		fmt.Fprintf(w, " (%s)", res.Title)
	}
	fmt.Fprintln(w)

	keyColor.Fprint(w, "  Display: ")
	if res.Source != "" && res.Source != res.Target {
		fmt.Fprintf(w, "%s → %s\n", res.Source, res.Target)
	} else {
		fmt.Fprintln(w, res.Target)
	}
	keyColor.Fprint(w, "  Rect:    ")
	fmt.Fprintf(w, "%d,%d %dx%d\n", res.Rect.X, res.Rect.Y, res.Rect.Width, res.Rect.Height)
}
