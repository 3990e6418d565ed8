// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/pkg/header"
	"github.com/coral/coralenv/pkg/types"
)

// stdoutPath selects standard output as the destination of a generated file.
const stdoutPath = "-"

// writeOutput renders into memory and then writes the result to path, or to
// stdout when path is empty or "-". A failed render leaves path untouched.
func (a *App) writeOutput(path string, render func(io.Writer) error) error {
	if path == "" || path == stdoutPath {
		return render(a.stdout)
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// wrote reports a generated file on stdout unless it went to stdout itself.
func (a *App) wrote(what, path string) {
	if path == "" || path == stdoutPath {
		return
	}
	fmt.Fprintf(a.stdout, "%s Wrote %s to %s\n", SuccessStyle.Render("✓"), what, CmdStyle.Render(path))
}

// checkOutputPath rejects file names Windows reserves for devices, so a
// generated tree stays portable across the supported systems.
func (a *App) checkOutputPath(cmd *cobra.Command, s session, path string) error {
	if path == "" || path == stdoutPath {
		return nil
	}
	if err := header.ValidateFileName(path); err != nil {
		return a.fail(cmd, s, issue.NewErrorContext().
			WithOperation("write output").
			WithResource(path).
			WithSuggestion("Choose a file name that is not a Windows device name such as CON, NUL or COM1").
			WithIssue(issue.ReservedFileNameId).
			Wrap(err).
			BuildError(), types.ExitConfigError)
	}
	return nil
}

func newHeaderCommand(app *App, opts *rootOptions) *cobra.Command {
	var (
		output string
		guard  string
	)

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Generate the C++ configuration header",
		Long: `Generate the C++ configuration header for the target toolchain.

The header defines the CORAL_OS_*, CORAL_CC_* and CORAL_ARCH_* markers, the
build key, the inline and export attribute macros and the co:: portable
integer types. It is written to stdout unless -o or output.header is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.resolve(cmd, opts)
			if err != nil {
				return err
			}

			path := output
			if !cmd.Flags().Changed("output") {
				path = r.cfg.Output.Header
			}
			if err := app.checkOutputPath(cmd, r.session, path); err != nil {
				return err
			}

			err = app.writeOutput(path, func(w io.Writer) error {
				return header.Generate(w, r.env, header.Options{Guard: guard, Generator: generator()})
			})
			if err != nil {
				return app.fail(cmd, r.session, err, types.ExitConfigError)
			}
			app.wrote("header", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&guard, "guard", header.DefaultGuard, "include guard macro")

	return cmd
}
