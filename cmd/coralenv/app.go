// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/coral/coralenv/internal/config"
	"github.com/coral/coralenv/internal/container"
	"github.com/coral/coralenv/internal/probe"
	"github.com/coral/coralenv/pkg/symbols"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App and goes through its
	// ConfigProvider and SymbolSource instead of touching files or compilers directly.
	App struct {
		Config     ConfigProvider
		Symbols    SymbolSource
		Containers ContainerSource
		stdout     io.Writer
		stderr     io.Writer
		logger     *log.Logger
		getenv     func(string) string
		workDir    string
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Symbols    SymbolSource
		Containers ContainerSource
		Stdout     io.Writer
		Stderr     io.Writer
		// Getenv resolves CORALENV_* overrides and variables in the compiler command.
		Getenv func(string) string
		// WorkDir is searched for a project-local coralenv.cue.
		WorkDir string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// SymbolSource asks a compiler command for its predefined symbols.
	SymbolSource interface {
		Probe(ctx context.Context, command string) (symbols.Set, error)
	}

	// ContainerSource returns a SymbolSource that probes inside the image
	// named by the compiler configuration.
	ContainerSource func(ctx context.Context, cc config.CompilerConfig) (SymbolSource, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.InfoLevel,
	})
	if deps.Symbols == nil {
		deps.Symbols = probe.New(probe.WithLogger(logger), probe.WithEnv(deps.Getenv))
	}

	if deps.Containers == nil {
		deps.Containers = containerProber(logger, deps.Getenv)
	}

	return &App{
		Config:     deps.Config,
		Symbols:    deps.Symbols,
		Containers: deps.Containers,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		logger:     logger,
		getenv:     deps.Getenv,
		workDir:    deps.WorkDir,
	}
}

// containerProber runs probes through the first available container engine.
func containerProber(logger *log.Logger, getenv func(string) string) ContainerSource {
	return func(ctx context.Context, cc config.CompilerConfig) (SymbolSource, error) {
		engine, err := container.NewEngine(ctx, cc.Engine)
		if err != nil {
			return nil, err
		}
		logger.Debug("probing in container", "engine", engine.Name(), "image", cc.Image, "platform", cc.Platform)
		runner := container.NewRunner(engine, cc.Image, cc.Platform)
		return probe.New(probe.WithRunner(runner), probe.WithLogger(logger), probe.WithEnv(getenv)), nil
	}
}

// loadOptions returns the config loading inputs for an explicit --config value.
func (a *App) loadOptions(configPath string) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: configPath,
		WorkDir:        a.workDir,
		Getenv:         a.getenv,
	}
}
