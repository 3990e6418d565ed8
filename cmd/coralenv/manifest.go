// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/pkg/buildkey"
	"github.com/coral/coralenv/pkg/types"
)

func newManifestCommand(app *App, opts *rootOptions) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Generate the build manifest",
		Long: `Generate the build manifest: the build key, pointer size, build mode and
export mode of the target toolchain, encoded as TOML or msgpack.

The format defaults to output.manifest_format and the destination to
output.manifest, or stdout when neither -o nor output.manifest is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.resolve(cmd, opts)
			if err != nil {
				return err
			}

			f := r.cfg.Output.ManifestFormat
			if cmd.Flags().Changed("format") {
				if f, err = buildkey.ParseFormat(format); err != nil {
					return app.fail(cmd, r.session, err, types.ExitConfigError)
				}
			}
			path := output
			if !cmd.Flags().Changed("output") {
				path = r.cfg.Output.Manifest
			}
			if err := app.checkOutputPath(cmd, r.session, path); err != nil {
				return err
			}

			m := r.env.Manifest(generator())
			err = app.writeOutput(path, func(w io.Writer) error {
				return buildkey.EncodeManifest(w, m, f)
			})
			if err != nil {
				return app.fail(cmd, r.session, err, types.ExitConfigError)
			}
			app.wrote(string(f)+" manifest", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&format, "format", string(buildkey.FormatTOML), "manifest format (toml, msgpack)")

	cmd.AddCommand(newManifestVerifyCommand(app, opts))

	return cmd
}

func newManifestVerifyCommand(app *App, opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check a manifest against the current toolchain",
		Long: `Decode and validate a build manifest, then check that its build key is
compatible with the key of the current toolchain.

The format is taken from --format, or from the file extension (.toml,
.msgpack) when the flag is not set. Exit status 1 means the binaries the
manifest describes must not be mixed with this build.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			r, err := app.resolve(cmd, opts)
			if err != nil {
				return err
			}

			f, err := manifestFormat(format, cmd.Flags().Changed("format"), path)
			if err != nil {
				return app.fail(cmd, r.session, err, types.ExitConfigError)
			}

			m, err := readManifest(path, f)
			if err != nil {
				return app.fail(cmd, r.session, issue.NewErrorContext().
					WithOperation("read manifest").
					WithResource(path).
					WithSuggestion("Regenerate the manifest with 'coralenv manifest'").
					Wrap(err).
					BuildError(), types.ExitConfigError)
			}

			key, err := m.ParsedKey()
			if err != nil {
				return app.fail(cmd, r.session, err, types.ExitConfigError)
			}
			if !key.Compatible(r.env.Key) {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				fmt.Fprintf(app.stderr, "%s %s was built for %s, not %s\n",
					ErrorStyle.Render("✗"), path, CmdStyle.Render(key.String()), CmdStyle.Render(r.env.Key.String()))
				return &ExitError{Code: types.ExitUnsupported}
			}

			fmt.Fprintf(app.stdout, "%s %s matches %s\n", SuccessStyle.Render("✓"), path, r.env.Key.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "manifest format (toml, msgpack); from the file extension when unset")

	return cmd
}

// manifestFormat returns the explicit format or infers it from path.
func manifestFormat(format string, explicit bool, path string) (buildkey.Format, error) {
	if explicit {
		return buildkey.ParseFormat(format)
	}
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "":
		return buildkey.FormatTOML, nil
	case "mp":
		return buildkey.FormatMsgpack, nil
	default:
		return buildkey.ParseFormat(ext)
	}
}

func readManifest(path string, f buildkey.Format) (buildkey.Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return buildkey.Manifest{}, err
	}
	defer file.Close()

	return buildkey.DecodeManifest(file, f)
}
