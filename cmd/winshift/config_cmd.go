package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winshift/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(a.configPrintCmd(), a.configValidateCmd(), a.configPathCmd())
	return cmd
}

func (a *app) configPrintCmd() *cobra.Command {
	var showSources bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(w, a.cfg())
			}
			data, err := yaml.Marshal(a.cfg())
			if err != nil {
				return err
			}
			fmt.Fprint(w, string(data))

			if showSources {
				fmt.Fprintln(w)
				for _, key := range []string{"display", "xauthority", "log_level", "log_file", "respect_struts", "notify_on_error", "palette_backend", "palette_fuzzy_matching"} {
					src := a.loaded.SourceOf(key)
					if src.Kind == config.SourceFile {
						fmt.Fprintf(w, "# %s: %s:%d\n", key, src.File, src.Line)
					} else {
						fmt.Fprintf(w, "# %s: default\n", key)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSources, "sources", false, "Show where each top-level key was set")
	return cmd
}

func (a *app) configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		Long:  "Load and validate the configuration, including included files. Errors point at the file and line that set the bad value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loading already validated; reaching here means the config is good.
			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(w, map[string]any{"valid": true, "files": a.loaded.Files})
			}
			successColor.Fprintln(w, "✓ Configuration is valid")
			for _, f := range a.loaded.Files {
				keyColor.Fprint(w, "  File: ")
				fmt.Fprintln(w, f)
			}
			if len(a.loaded.Files) == 0 {
				fmt.Fprintln(w, "  No config file found; using defaults")
			}
			return nil
		},
	}
}

func (a *app) configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
