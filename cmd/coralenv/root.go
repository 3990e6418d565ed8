// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/coral/coralenv/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath   string
	verbose      bool
	pointerSize  int
	symbolsFile  string
	compiler     string
	image        string
	noExport     bool
	buildingCore bool
}

func newRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "coralenv",
		Short: "Validate the Coral build environment",
		Long: TitleStyle.Render("coralenv") + SubtitleStyle.Render(" - Validate the Coral build environment") + `

coralenv asks the target C++ toolchain for its predefined symbols, decides
the operating system, compiler and architecture of the build and reduces
them to a build key such as "Linux x86_64 gcc-4.8". Unsupported toolchains
fail the build with a report naming every failing axis.

` + SubtitleStyle.Render("Examples:") + `
  coralenv check                         Report the detected environment
  coralenv key --compiler "g++ -m32"     Print the build key of a 32-bit build
  coralenv key --image gcc:13            Probe a toolchain shipped as an image
  coralenv header -o include/co/config.h Write the C++ configuration header
  coralenv manifest --format msgpack     Write a binary build manifest
  coralenv config show                   Show current configuration`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default is ./coralenv.cue, then the user config directory)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.IntVar(&opts.pointerSize, "pointer-size", 0, "target pointer size in bytes, 4 or 8 (detected when unset)")
	pf.StringVar(&opts.symbolsFile, "symbols-file", "", "read toolchain symbols from a macro dump instead of probing")
	pf.StringVar(&opts.compiler, "compiler", "", "compiler command to probe (default from config)")
	pf.StringVar(&opts.image, "image", "", "probe the compiler inside this container image")
	pf.BoolVar(&opts.noExport, "no-export", false, "expand every export attribute to nothing")
	pf.BoolVar(&opts.buildingCore, "building-core", false, "export core symbols instead of importing them on Windows")

	rootCmd.AddCommand(
		newKeyCommand(app, opts),
		newCheckCommand(app, opts),
		newHeaderCommand(app, opts),
		newManifestCommand(app, opts),
		newSymbolsCommand(app, opts),
		newLimitsCommand(app, opts),
		newConfigCommand(app, opts),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// generator names this program in header banners and manifests.
func generator() string {
	return "coralenv " + Version
}

// Execute runs the CLI and exits with its status. It is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the CLI against the process environment and returns the exit code.
func Main() int {
	return run(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

func run(ctx context.Context, app *App, args []string) int {
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return int(types.ExitUnsupported)
	}
	return int(types.ExitSuccess)
}

// handleError skips errors whose diagnostics a command already printed.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
