package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winshift/internal/placement"
	"github.com/1broseidon/winshift/internal/platform"
	"github.com/1broseidon/winshift/internal/selector"
	"github.com/1broseidon/winshift/internal/tui"
)

func (a *app) pickCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose an action in an interactive terminal picker",
		Long: `Open a terminal list of display moves and placements with a preview of
where the window will end up. Pass --window to act on a window other than the
terminal running the picker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var action placement.Action
			err := a.withPlanner(func(b platform.Backend, p *placement.Planner, win platform.WindowID) error {
				ctx := tui.Context{Title: b.WindowTitle(win)}
				displays, err := p.Displays()
				if err != nil {
					return err
				}
				ctx.Displays = displays
				if frame, err := p.Window(win); err == nil {
					if current, err := selector.Containing(frame.Decorated(), displays); err == nil {
						ctx.Current = current
					}
				}

				action, err = tui.Run(placement.Actions(a.cfg().CustomPlacements()), ctx)
				return err
			})
			if errors.Is(err, tui.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			// The picker held the terminal; act on a fresh connection so the
			// window geometry is read after it closed.
			return a.runAction(cmd.OutOrStdout(), action, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the target rectangle without moving the window")
	return cmd
}
