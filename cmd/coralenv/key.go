// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coral/coralenv/pkg/platform"
)

func newKeyCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Print the build key",
		Long: `Print the build key of the target toolchain, e.g. "Linux x86_64 gcc-4.8".

Binaries built under different keys must not be mixed. The command fails
with exit status 1 when any detection axis is unsupported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.resolve(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, r.env.Key.String())
			return nil
		},
	}
}

func newCheckCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report the detected build environment",
		Long: `Detect every axis of the build environment and report it.

Unsupported environments are reported axis by axis with suggestions; pass
--verbose for the full issue description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.resolve(cmd, opts)
			if err != nil {
				return err
			}
			printCheck(app, r)
			return nil
		},
	}
}

func printCheck(app *App, r resolution) {
	env := r.env
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	rows := []struct{ key, value string }{
		{"os", env.Key.OS.Name()},
		{"architecture", env.Key.Arch.Name()},
		{"compiler", env.Key.Compiler.Name() + " (" + env.Family().String() + ")"},
		{"version", env.Key.Version},
		{"pointer size", env.PointerSize.String()},
		{"mode", env.Mode.String()},
		{"unix", strconv.FormatBool(env.Unix)},
		{"export", env.Attributes.Export.String()},
		{"symbols", r.source},
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Build Environment"))
	fmt.Fprintln(app.stdout)
	for _, row := range rows {
		fmt.Fprintf(app.stdout, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-13s", row.key+":")), valueStyle.Render(row.value))
	}
	if r.verbose {
		fmt.Fprintln(app.stdout)
		fmt.Fprintln(app.stdout, VerboseStyle.Render(fmt.Sprintf("  force inline: %s", env.Attributes.ForceInline)))
		fmt.Fprintln(app.stdout, VerboseStyle.Render(fmt.Sprintf("  no inline:    %s", env.Attributes.NoInline)))
		fmt.Fprintln(app.stdout, VerboseStyle.Render("  host:         "+hostNote(env.Key.OS)))
		if r.cfg.Source != "" {
			fmt.Fprintln(app.stdout, VerboseStyle.Render("  config:       "+r.cfg.Source))
		}
	}
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("✓"), env.Key.String())
}

// hostNote names the OS coralenv runs on and flags a cross build.
func hostNote(target platform.OS) string {
	if target != platform.Current {
		return platform.Current.Name() + " (cross build)"
	}
	return platform.Current.Name()
}
