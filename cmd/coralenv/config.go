// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coral/coralenv/internal/config"
	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/pkg/types"
)

// newConfigCommand creates the `coralenv config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage coralenv configuration",
		Long: `Manage coralenv configuration.

Configuration is read from the first of:
  - the file given with --config
  - coralenv.cue in the current directory
  - the user config file:
      Linux: ~/.config/coralenv/config.cue
      macOS: ~/Library/Application Support/coralenv/config.cue
      Windows: %APPDATA%\coralenv\config.cue

CORALENV_* environment variables override individual settings, for example
CORALENV_POINTER_SIZE=4 or CORALENV_COMPILER_COMMAND="clang++".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, opts)
			if err != nil {
				return err
			}
			showConfig(app, s.cfg)
			return nil
		},
	})

	var (
		force bool
		local bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initPath(app, opts, local)
			if err != nil {
				return app.fail(cmd, session{verbose: opts.verbose}, err, types.ExitConfigError)
			}
			if err := config.CreateDefaultConfig(path, force); err != nil {
				ctx := issue.NewErrorContext().
					WithOperation("create configuration").
					WithResource(path)
				if errors.Is(err, config.ErrConfigExists) {
					ctx = ctx.WithSuggestion("Pass --force to overwrite it")
				}
				return app.fail(cmd, session{verbose: opts.verbose}, ctx.Wrap(err).BuildError(), types.ExitConfigError)
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	initCmd.Flags().BoolVar(&local, "local", false, "create "+config.LocalFileName+" in the current directory")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config) {
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	ptr := "detect"
	if cfg.PointerSize != 0 {
		ptr = cfg.PointerSize.String()
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("pointer_size"), valueStyle.Render(ptr))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("no_export"), valueStyle.Render(strconv.FormatBool(cfg.NoExport)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("building_core"), valueStyle.Render(strconv.FormatBool(cfg.BuildingCore)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("compiler"))
	fmt.Fprintf(w, "  command: %s\n", valueStyle.Render(cfg.Compiler.Command))
	if cfg.Compiler.Image != "" {
		fmt.Fprintf(w, "  image: %s\n", valueStyle.Render(cfg.Compiler.Image))
		fmt.Fprintf(w, "  engine: %s\n", valueStyle.Render(cfg.Compiler.Engine.String()))
		if cfg.Compiler.Platform != "" {
			fmt.Fprintf(w, "  platform: %s\n", valueStyle.Render(cfg.Compiler.Platform))
		}
	}
	if cfg.Compiler.SymbolsFile != "" {
		fmt.Fprintf(w, "  symbols_file: %s\n", valueStyle.Render(cfg.Compiler.SymbolsFile))
	}
	if len(cfg.Compiler.Symbols) == 0 {
		fmt.Fprintf(w, "  symbols: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Fprintf(w, "  symbols: %s\n", valueStyle.Render(strconv.Itoa(len(cfg.Compiler.Symbols))+" defined"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("msvc.versions"))
	for _, b := range cfg.MSVC.Versions {
		fmt.Fprintf(w, "  - %s from _MSC_VER %d\n", valueStyle.Render(b.Version), b.Min)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  header: %s\n", valueOrStdout(cfg.Output.Header))
	fmt.Fprintf(w, "  manifest: %s\n", valueOrStdout(cfg.Output.Manifest))
	fmt.Fprintf(w, "  manifest_format: %s\n", valueStyle.Render(string(cfg.Output.ManifestFormat)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))
}

func valueOrStdout(path string) string {
	if path == "" {
		return SubtitleStyle.Render("(stdout)")
	}
	return SuccessStyle.Render(path)
}

// initPath picks the file `config init` writes: --config, the local file
// with --local, or the user config file.
func initPath(app *App, opts *rootOptions, local bool) (string, error) {
	switch {
	case opts.configPath != "":
		return opts.configPath, nil
	case local:
		dir := app.workDir
		if dir == "" {
			dir = "."
		}
		return filepath.Join(dir, config.LocalFileName), nil
	default:
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt), nil
	}
}

func showConfigPath(cmd *cobra.Command, app *App, opts *rootOptions) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(cmd, session{verbose: opts.verbose}, err, types.ExitConfigError)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "User config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Fprintf(app.stdout, "Local config file: %s\n", config.LocalFileName)

	active, err := config.ResolvePath(app.loadOptions(opts.configPath))
	if err != nil {
		return app.fail(cmd, session{verbose: opts.verbose}, err, types.ExitConfigError)
	}
	if active == "" {
		active = "(none, using defaults)"
	}
	fmt.Fprintf(app.stdout, "Active config file: %s\n", active)
	return nil
}
