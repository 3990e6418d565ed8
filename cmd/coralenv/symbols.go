// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/pkg/portable"
	"github.com/coral/coralenv/pkg/types"
)

func newSymbolsCommand(app *App, opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Print the toolchain symbols detection reads",
		Long: `Print the predefined symbols of the target toolchain as #define lines.

The output can be saved and passed back with --symbols-file to resolve the
environment without running the compiler again. Symbols are printed even
when the environment they describe is unsupported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, opts)
			if err != nil {
				return err
			}
			set, source, err := app.gatherSymbols(cmd.Context(), s.cfg, opts)
			if err != nil {
				return app.fail(cmd, s, err, types.ExitConfigError)
			}
			app.logger.Debug("gathered symbols", "count", set.Len(), "source", source)

			if err := app.checkOutputPath(cmd, s, output); err != nil {
				return err
			}
			err = app.writeOutput(output, func(w io.Writer) error {
				_, werr := set.WriteTo(w)
				return werr
			})
			if err != nil {
				return app.fail(cmd, s, err, types.ExitConfigError)
			}
			app.wrote("symbols", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)

	return cmd
}

func newLimitsCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show the portable integer types and their ranges",
		Long: `Show the co:: portable integer types with their widths and ranges.

The pointer-sized types follow --pointer-size or pointer_size, which must
be set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, opts)
			if err != nil {
				return err
			}

			bits, err := portable.PtrWidth(s.cfg.PointerSize)
			if err != nil {
				err = issue.NewErrorContext().
					WithOperation("size pointer types").
					WithSuggestion("Set --pointer-size or pointer_size to 4 or 8").
					WithIssue(issue.InvalidPointerSizeId).
					Wrap(err).
					BuildError()
				return app.fail(cmd, s, err, types.ExitUnsupported)
			}

			fmt.Fprintln(app.stdout, limitsTable(bits).Render())
			return nil
		},
	}
}

func limitsTable(ptrBits int) *table.Table {
	rows := make([][]string, 0, len(portable.Limits())+2)
	for _, l := range portable.Limits() {
		rows = append(rows, []string{
			l.Name,
			strconv.Itoa(l.Bits),
			strconv.FormatInt(l.Min, 10),
			strconv.FormatUint(l.Max, 10),
		})
	}

	// intptr spans the full signed range of its width; uintptr starts at zero.
	ptrMin := int64(math.MinInt32)
	ptrMax := uint64(math.MaxInt32)
	uptrMax := uint64(math.MaxUint32)
	if ptrBits == 64 {
		ptrMin, ptrMax, uptrMax = math.MinInt64, math.MaxInt64, math.MaxUint64
	}
	bits := strconv.Itoa(ptrBits)
	rows = append(rows,
		[]string{"intptr", bits, strconv.FormatInt(ptrMin, 10), strconv.FormatUint(ptrMax, 10)},
		[]string{"uintptr", bits, "0", strconv.FormatUint(uptrMax, 10)},
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("TYPE", "BITS", "MIN", "MAX").
		Rows(rows...)
}
