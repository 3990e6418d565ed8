// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/pkg/arch"
	"github.com/coral/coralenv/pkg/buildkey"
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/header"
	"github.com/coral/coralenv/pkg/platform"
	"github.com/coral/coralenv/pkg/types"
)

// axisSuggestions are the hints printed under a failing detection axis.
var axisSuggestions = map[issue.Id][]string{
	issue.UnsupportedOSId: {
		"Build on Linux, MacOSX or Windows",
	},
	issue.UnknownCompilerId: {
		"Use MSVC or a GNU-compatible compiler (GCC, MinGW, Clang)",
		"Check that the probed command is a C++ compiler driver",
		"Dump symbols in C++ mode: c++ -dM -E -x c++ - </dev/null",
	},
	issue.CompilerTooNewId: {
		"Add the release to msvc.versions once Coral has been validated with it",
	},
	issue.CompilerTooOldId: {
		"Upgrade to the oldest release listed in msvc.versions or newer",
	},
	issue.UnsupportedArchId: {
		"Target 32 or 64-bit x86",
	},
	issue.InvalidPointerSizeId: {
		"Set --pointer-size or pointer_size to 4 or 8",
	},
}

// issueFor maps a detection failure to its catalog entry, or 0.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, platform.ErrUnsupportedOS):
		return issue.UnsupportedOSId
	case errors.Is(err, compiler.ErrCompilerTooNew):
		return issue.CompilerTooNewId
	case errors.Is(err, compiler.ErrCompilerTooOld):
		return issue.CompilerTooOldId
	case errors.Is(err, compiler.ErrUnknownCompiler), errors.Is(err, compiler.ErrMissingVersion),
		errors.Is(err, compiler.ErrNotCPlusPlus):
		return issue.UnknownCompilerId
	case errors.Is(err, types.ErrInvalidPointerSize):
		return issue.InvalidPointerSizeId
	case errors.Is(err, arch.ErrUnsupportedArch):
		return issue.UnsupportedArchId
	case errors.Is(err, header.ErrReservedFileName):
		return issue.ReservedFileNameId
	default:
		return 0
	}
}

// fail reports err on stderr and returns the *ExitError carrying code. The
// command's own error printing is silenced so nothing is reported twice.
func (a *App) fail(cmd *cobra.Command, s session, err error, code types.ExitCode) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var verr *buildkey.ValidationError
	if errors.As(err, &verr) {
		a.reportUnsupported(s, verr)
		return &ExitError{Code: code}
	}

	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, s.verbose))
	if s.verbose {
		id := issueFor(err)
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.Issue != 0 {
			id = ae.Issue
		}
		a.renderIssue(s, id)
	}
	return &ExitError{Code: code}
}

// reportUnsupported prints one line per failing axis followed by its hints.
func (a *App) reportUnsupported(s session, verr *buildkey.ValidationError) {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("✗ unsupported build environment"))

	var ids []issue.Id
	for _, f := range verr.Failures {
		fmt.Fprintf(a.stderr, "  %s %s: %s\n", ErrorStyle.Render("✗"), f.Axis, f.Err)
		id := issueFor(f.Err)
		for _, hint := range axisSuggestions[id] {
			fmt.Fprintf(a.stderr, "      %s %s\n", WarningStyle.Render("•"), hint)
		}
		if id != 0 && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	if s.verbose {
		for _, id := range ids {
			a.renderIssue(s, id)
		}
	}
}

func (a *App) renderIssue(s session, id issue.Id) {
	is := issue.Get(id)
	if is == nil {
		return
	}
	scheme := "auto"
	if s.cfg != nil {
		scheme = s.cfg.UI.ColorScheme.String()
	}
	rendered, err := is.Render(scheme)
	if err != nil {
		a.logger.Debug("failed to render issue", "id", int(id), "error", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
