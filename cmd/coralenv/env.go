// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coral/coralenv/internal/config"
	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/internal/probe"
	"github.com/coral/coralenv/pkg/buildenv"
	"github.com/coral/coralenv/pkg/symbols"
	"github.com/coral/coralenv/pkg/types"
)

// sourceConfig names symbols taken from the compiler.symbols config table.
const sourceConfig = "config"

type (
	// session is the per-invocation state of a command that reads configuration.
	session struct {
		cfg     *config.Config
		verbose bool
	}

	// resolution is a resolved environment together with how it was obtained.
	resolution struct {
		session
		env     buildenv.Environment
		symbols symbols.Set
		source  string
	}
)

// loadSession loads configuration and applies the persistent flag overrides.
// Failures are reported to stderr and returned as an *ExitError.
func (a *App) loadSession(cmd *cobra.Command, opts *rootOptions) (session, error) {
	cfg, err := a.Config.Load(cmd.Context(), a.loadOptions(opts.configPath))
	if err != nil {
		return session{}, a.fail(cmd, session{verbose: opts.verbose, cfg: config.DefaultConfig()}, err, types.ExitConfigError)
	}

	flags := cmd.Flags()
	if flags.Changed("pointer-size") {
		cfg.PointerSize = types.PointerSize(opts.pointerSize)
	}
	if flags.Changed("no-export") {
		cfg.NoExport = opts.noExport
	}
	if flags.Changed("building-core") {
		cfg.BuildingCore = opts.buildingCore
	}
	if opts.symbolsFile != "" {
		cfg.Compiler.SymbolsFile = opts.symbolsFile
	}
	if opts.compiler != "" {
		cfg.Compiler.Command = opts.compiler
	}
	if opts.image != "" {
		cfg.Compiler.Image = opts.image
	}
	if (opts.compiler != "" || opts.image != "") && opts.symbolsFile == "" {
		cfg.Compiler.SymbolsFile = ""
	}

	s := session{cfg: cfg, verbose: opts.verbose || cfg.UI.Verbose}
	if s.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	return s, nil
}

// resolve loads configuration, gathers toolchain symbols and resolves the
// build environment. Every failure has already been reported when the
// returned error is non-nil.
func (a *App) resolve(cmd *cobra.Command, opts *rootOptions) (resolution, error) {
	s, err := a.loadSession(cmd, opts)
	if err != nil {
		return resolution{}, err
	}

	set, source, err := a.gatherSymbols(cmd.Context(), s.cfg, opts)
	if err != nil {
		return resolution{}, a.fail(cmd, s, err, types.ExitConfigError)
	}

	ptr := pointerSize(s.cfg, set)
	a.logger.Debug("resolving build environment", "symbols", set.Len(), "source", source, "pointer_size", int(ptr))

	env, err := buildenv.Resolve(buildenv.Inputs{
		Symbols:      set,
		PointerSize:  ptr,
		NoExport:     s.cfg.NoExport,
		BuildingCore: s.cfg.BuildingCore,
		MSVC:         s.cfg.Policy(),
	})
	if err != nil {
		return resolution{}, a.fail(cmd, s, err, types.ExitUnsupported)
	}

	return resolution{session: s, env: env, symbols: set, source: source}, nil
}

// gatherSymbols returns the toolchain symbols and a description of where they
// came from. A symbols file wins over literal config symbols, which win over
// probing unless --compiler asked for a probe explicitly. Literal config
// symbols are always layered on top.
func (a *App) gatherSymbols(ctx context.Context, cfg *config.Config, opts *rootOptions) (symbols.Set, string, error) {
	literal := symbols.New(cfg.Compiler.Symbols)

	var (
		set    symbols.Set
		source string
		err    error
	)
	switch {
	case cfg.Compiler.SymbolsFile != "":
		source = cfg.Compiler.SymbolsFile
		set, err = probe.LoadFile(source)
		if err != nil {
			return symbols.Set{}, "", symbolsFileError(source, err)
		}
	case literal.Len() > 0 && opts.compiler == "" && opts.image == "":
		return literal, sourceConfig, nil
	default:
		src := a.Symbols
		source = cfg.Compiler.Command
		if cfg.Compiler.Image != "" {
			source = cfg.Compiler.Image + ": " + source
			if src, err = a.Containers(ctx, cfg.Compiler); err != nil {
				return symbols.Set{}, "", containerError(cfg.Compiler, err)
			}
		}
		set, err = src.Probe(ctx, cfg.Compiler.Command)
		if err != nil {
			return symbols.Set{}, "", probeError(source, err)
		}
	}

	if literal.Len() > 0 {
		set = set.Merge(literal)
	}
	return set, source, nil
}

// pointerSize picks the configured pointer size, falling back to what the
// toolchain reports. It returns 0 when neither is known, which fails the
// pointer-size axis.
func pointerSize(cfg *config.Config, set symbols.Set) types.PointerSize {
	if cfg.PointerSize != 0 {
		return cfg.PointerSize
	}
	if n, err := set.Int("__SIZEOF_POINTER__"); err == nil {
		return types.PointerSize(n)
	}
	return 0
}

func symbolsFileError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("read toolchain symbols").
		WithResource(path)
	if errors.Is(err, symbols.ErrMalformedDefine) {
		return ctx.
			WithSuggestion("Regenerate the file with 'c++ -dM -E -x c++ - </dev/null' or 'coralenv symbols'").
			WithIssue(issue.MalformedSymbolsId).
			Wrap(err).
			BuildError()
	}
	return ctx.
		WithSuggestion("Verify the --symbols-file path or compiler.symbols_file setting").
		Wrap(err).
		BuildError()
}

func probeError(command string, err error) error {
	return issue.NewErrorContext().
		WithOperation("probe compiler").
		WithResource(command).
		WithSuggestion("Check that the compiler is installed and on PATH").
		WithSuggestion("Select another compiler with --compiler or compiler.command").
		WithSuggestion("Pass a saved macro dump with --symbols-file").
		WithIssue(issue.ProbeFailedId).
		Wrap(err).
		BuildError()
}

func containerError(cc config.CompilerConfig, err error) error {
	return issue.NewErrorContext().
		WithOperation("start container probe").
		WithResource(cc.Image).
		WithSuggestion("Install Podman or Docker and check that it answers 'version'").
		WithSuggestion("Select an engine with compiler.engine").
		WithIssue(issue.ProbeFailedId).
		Wrap(err).
		BuildError()
}
