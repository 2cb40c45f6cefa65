package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/placement"
	"github.com/1broseidon/winshift/internal/platform"
)

// isTerminal reports whether w is an interactive terminal. Anything else
// gets plain tab-separated rows.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func formatRect(r geom.ScreenRect) string {
	if r.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%d,%d %dx%d", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// writeRows renders a table on terminals and tab-separated lines elsewhere.
func writeRows(w io.Writer, header []string, rows [][]string) error {
	if !isTerminal(w) {
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header(cells(header)...)
	for _, row := range rows {
		if err := table.Append(cells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

type displayJSON struct {
	Name   string    `json:"name"`
	State  string    `json:"state"`
	Frame  *rectJSON `json:"frame,omitempty"`
	Usable *rectJSON `json:"usable,omitempty"`
	Error  string    `json:"error,omitempty"`
}

func (a *app) outputsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "outputs",
		Aliases: []string{"displays"},
		Short:   "List displays with their full and usable areas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			b, err := a.connect(cfg)
			if err != nil {
				return err
			}
			defer b.Disconnect()

			reports, err := placement.ForBackend(b, !cfg.RespectStruts).Report(all)
			if err != nil {
				return err
			}
			return a.printReports(cmd.OutOrStdout(), reports)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include disconnected outputs")
	return cmd
}

func (a *app) printReports(w io.Writer, reports []placement.DisplayReport) error {
	if a.jsonOutput {
		out := make([]displayJSON, 0, len(reports))
		for _, r := range reports {
			d := displayJSON{Name: r.Name, State: r.State.String()}
			if r.Err != nil {
				d.Error = r.Err.Error()
			}
			if !r.Frame.IsEmpty() {
				frame := toRectJSON(r.Frame)
				d.Frame = &frame
			}
			if !r.Usable.IsEmpty() {
				usable := toRectJSON(r.Usable)
				d.Usable = &usable
			}
			out = append(out, d)
		}
		return printJSON(w, out)
	}

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		state := r.State.String()
		if r.Err != nil {
			state = "error: " + r.Err.Error()
		} else if r.State == platform.StateConnected && r.Usable.IsEmpty() {
			state = "inactive"
		}
		rows = append(rows, []string{r.Name, state, formatRect(r.Frame), formatRect(r.Usable)})
	}
	return writeRows(w, []string{"Name", "State", "Frame", "Usable"}, rows)
}

type placementJSON struct {
	Name   string  `json:"name"`
	Source string  `json:"source"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (a *app) placementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "placements",
		Short: "List named placements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			custom := a.cfg().CustomPlacements()
			names := placement.Names(custom)
			sort.Strings(names)

			list := make([]placementJSON, 0, len(names))
			for _, name := range names {
				pct, source := placement.Builtin[name], "builtin"
				if c, ok := custom[name]; ok {
					pct, source = c, "config"
				}
				list = append(list, placementJSON{
					Name:   name,
					Source: source,
					X:      pct.Origin.X,
					Y:      pct.Origin.Y,
					Width:  pct.Size.Width,
					Height: pct.Size.Height,
				})
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(w, list)
			}
			rows := make([][]string, 0, len(list))
			for _, p := range list {
				rows = append(rows, []string{
					p.Name, p.Source,
					fmt.Sprintf("%.4g", p.X), fmt.Sprintf("%.4g", p.Y),
					fmt.Sprintf("%.4g", p.Width), fmt.Sprintf("%.4g", p.Height),
				})
			}
			return writeRows(w, []string{"Name", "Source", "X", "Y", "Width", "Height"}, rows)
		},
	}
}

type windowJSON struct {
	Window  uint32    `json:"window"`
	Title   string    `json:"title,omitempty"`
	Display string    `json:"display,omitempty"`
	Rect    *rectJSON `json:"rect,omitempty"`
	Active  bool      `json:"active,omitempty"`
}

func (a *app) windowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List managed windows with their ids and displays",
		Long: `List the windows the window manager manages, in its client list order.
The id column is what --window accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			b, err := a.connect(cfg)
			if err != nil {
				return err
			}
			defer b.Disconnect()

			wins, err := placement.ForBackend(b, !cfg.RespectStruts).Windows()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				out := make([]windowJSON, 0, len(wins))
				for _, win := range wins {
					j := windowJSON{Window: uint32(win.ID), Title: win.Title, Display: win.Display, Active: win.Active}
					if !win.Rect.IsEmpty() {
						r := toRectJSON(win.Rect)
						j.Rect = &r
					}
					out = append(out, j)
				}
				return printJSON(w, out)
			}

			rows := make([][]string, 0, len(wins))
			for _, win := range wins {
				id := fmt.Sprintf("0x%x", uint32(win.ID))
				if win.Active {
					id += "*"
				}
				disp := win.Display
				if disp == "" {
					disp = "-"
				}
				rows = append(rows, []string{id, disp, formatRect(win.Rect), win.Title})
			}
			return writeRows(w, []string{"ID", "Display", "Rect", "Title"}, rows)
		},
	}
}
