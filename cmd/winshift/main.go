package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/winshift/internal/config"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/notify"
	"github.com/1broseidon/winshift/internal/placement"
	"github.com/1broseidon/winshift/internal/platform"
	"github.com/1broseidon/winshift/internal/xsession"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	keyColor     = color.New(color.FgYellow)
)

// app carries global flags and the state shared by subcommands.
type app struct {
	configPath string
	window     uint32
	jsonOutput bool
	noColor    bool
	debugMode  bool

	loaded   *config.LoadResult
	notifier notify.Notifier

	// connect opens the window system for cfg.
	connect func(cfg *config.Config) (platform.Backend, error)
}

func newApp() *app {
	return &app{connect: connectX11, notifier: notify.Silent{}}
}

func connectX11(cfg *config.Config) (platform.Backend, error) {
	env, err := xsession.Resolve(cfg.Display, cfg.XAuthority)
	if err != nil {
		return nil, err
	}
	if err := env.Export(); err != nil {
		return nil, err
	}
	logging.Debug().Str("display", env.Display).Msg("connecting to X server")
	return platform.NewX11BackendFromDisplay(env.Display)
}

func (a *app) cfg() *config.Config {
	return a.loaded.Config
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "winshift",
		Short: "Move and resize X11 windows across monitors",
		Long: `winshift places windows on multi-monitor X11 desktops.

It resizes a window to a fraction of the display it is on, or moves it to the
neighbouring display while keeping its relative position and size. Panels and
docks are left uncovered.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file path (default: ~/.config/winshift/config.yaml)")
	flags.Uint32Var(&a.window, "window", 0, "Window id to act on (default: the active window)")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&a.debugMode, "debug", false, "Enable debug logging")

	root.AddCommand(
		a.placeCmd(),
		a.moveCmd(),
		a.outputsCmd(),
		a.windowsCmd(),
		a.placementsCmd(),
		a.paletteCmd(),
		a.pickCmd(),
		a.configCmd(),
		a.mcpCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}

	var err error
	if a.configPath == "" {
		a.loaded, err = config.Load()
	} else {
		a.loaded, err = config.LoadFromPath(a.configPath)
	}
	if err != nil {
		return err
	}
	cfg := a.cfg()

	level := cfg.LogLevel
	if a.debugMode {
		level = "debug"
	}
	if err := logging.Init(logging.Options{
		Level:   level,
		File:    cfg.LogFile,
		Console: cmd.ErrOrStderr(),
		NoColor: color.NoColor,
	}); err != nil {
		return err
	}

	a.notifier = notify.New(cfg.NotifyOnError)
	return nil
}

// withPlanner connects, resolves the target window and hands both to fn.
func (a *app) withPlanner(fn func(b platform.Backend, p *placement.Planner, win platform.WindowID) error) error {
	cfg := a.cfg()
	b, err := a.connect(cfg)
	if err != nil {
		return err
	}
	defer b.Disconnect()

	p := placement.ForBackend(b, !cfg.RespectStruts)
	win := platform.WindowID(a.window)
	if win == 0 {
		if win, err = p.ActiveWindow(); err != nil {
			return err
		}
	}
	return fn(b, p, win)
}

func (a *app) reportError(err error) {
	printError(os.Stderr, err.Error())
	logging.Error().Err(err).Msg("command failed")
	if a.notifier != nil {
		if nerr := a.notifier.Notify("winshift", err.Error()); nerr != nil {
			logging.Debug().Err(nerr).Msg("notification failed")
		}
	}
}

func main() {
	a := newApp()
	err := a.rootCmd().Execute()
	if err != nil {
		a.reportError(err)
	}
	if closer, ok := a.notifier.(io.Closer); ok {
		closer.Close()
	}
	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(w io.Writer, msg string) {
	if color.NoColor {
		fmt.Fprintln(w, "Error:", msg)
		return
	}
	errorColor.Fprint(w, "✗ Error: ")
	fmt.Fprintln(w, msg)
}
