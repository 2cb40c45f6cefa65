package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winshift/internal/palette"
	"github.com/1broseidon/winshift/internal/placement"
)

// newPaletteBackend is swapped in tests.
var newPaletteBackend = palette.NewBackend

func (a *app) paletteCmd() *cobra.Command {
	var dryRun bool
	var backendName string
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Choose an action from a rofi, fuzzel, wofi or dmenu menu",
		Long: `Show every display move and named placement in a launcher menu and apply
the chosen one to the window. Bind this to a hotkey in your window manager.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			if backendName == "" {
				backendName = cfg.PaletteBackend
			}
			backend, err := newPaletteBackend(backendName)
			if err != nil {
				return err
			}
			if f, ok := backend.(interface{ SetFuzzyMatching(bool) }); ok {
				f.SetFuzzyMatching(cfg.PaletteFuzzyMatching)
			}

			custom := cfg.CustomPlacements()
			menu := palette.NewMenu(backend, "winshift", palette.ActionMenu(placement.Actions(custom)))
			menu.SetMessage("Place or move the active window")
			choice, err := menu.Show()
			if errors.Is(err, palette.ErrCancelled) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("palette: %w", err)
			}

			action, err := placement.ParseAction(choice, custom)
			if err != nil {
				return err
			}
			return a.runAction(cmd.OutOrStdout(), action, dryRun)
		},
	}
	cmd.Flags().StringVar(&backendName, "backend", "", "Launcher to use (default: palette_backend from the config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the target rectangle without moving the window")
	return cmd
}
