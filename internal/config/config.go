// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/coral/coralenv/internal/issue"
	"github.com/coral/coralenv/pkg/cueutil"
	"github.com/coral/coralenv/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "coralenv"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalFileName is the project-local config file.
	LocalFileName = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "CORALENV"
)

// ErrConfigExists is returned by CreateDefaultConfig when the file is present.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema string

// envKeys are the settings that environment variables may override.
var envKeys = []string{
	"pointer_size",
	"no_export",
	"building_core",
	"compiler.command",
	"compiler.symbols_file",
	"compiler.image",
	"compiler.engine",
	"compiler.platform",
	"output.header",
	"output.manifest",
	"output.manifest_format",
	"ui.color_scheme",
	"ui.verbose",
}

// ConfigDir returns the coralenv user configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ResolvePath returns the config file Load would read, or "" when none
// exists and defaults apply.
func ResolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'coralenv config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	local := filepath.Join(workDir(opts), LocalFileName)
	if fileExists(local) {
		return local, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	user := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(user) {
		return user, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("pointer_size", int(defaults.PointerSize))
	v.SetDefault("no_export", defaults.NoExport)
	v.SetDefault("building_core", defaults.BuildingCore)
	v.SetDefault("compiler.command", defaults.Compiler.Command)
	v.SetDefault("compiler.symbols_file", defaults.Compiler.SymbolsFile)
	v.SetDefault("compiler.image", defaults.Compiler.Image)
	v.SetDefault("compiler.engine", string(defaults.Compiler.Engine))
	v.SetDefault("compiler.platform", defaults.Compiler.Platform)
	versions := make([]map[string]any, 0, len(defaults.MSVC.Versions))
	for _, b := range defaults.MSVC.Versions {
		versions = append(versions, map[string]any{"min": b.Min, "version": b.Version})
	}
	v.SetDefault("msvc.versions", versions)
	v.SetDefault("output.header", defaults.Output.Header)
	v.SetDefault("output.manifest", defaults.Output.Manifest)
	v.SetDefault("output.manifest_format", string(defaults.Output.ManifestFormat))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	path, err := ResolvePath(opts)
	if err != nil {
		return nil, err
	}

	symbols := map[string]string{}
	if path != "" {
		symbols, err = loadCUEIntoViper(v, path)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'coralenv config --help' for configuration options").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	applyEnv(v, opts.Getenv)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Compiler.Symbols = symbols
	cfg.Source = path

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check values overridden by " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper. compiler.symbols is returned separately because Viper lowercases map
// keys while symbol names are case-sensitive.
func loadCUEIntoViper(v *viper.Viper, path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}
	configMap := *res.Value

	symbols := map[string]string{}
	if cc, ok := configMap["compiler"].(map[string]any); ok {
		if raw, ok := cc["symbols"].(map[string]any); ok {
			for name, value := range raw {
				symbols[name] = fmt.Sprint(value)
			}
		}
		delete(cc, "symbols")
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}
	return symbols, nil
}

// applyEnv sets every key in envKeys whose CORALENV_ variable is non-empty.
func applyEnv(v *viper.Viper, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range envKeys {
		name := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if val := getenv(name); val != "" {
			v.Set(key, val)
		}
	}
}

func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

func workDir(opts LoadOptions) string {
	if opts.WorkDir != "" {
		return opts.WorkDir
	}
	return "."
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to path, creating
// parent directories. It fails with ErrConfigExists unless force is set.
func CreateDefaultConfig(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration that
// validates against #Config.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// coralenv configuration\n")
	sb.WriteString("// Unset fields take built-in defaults; CORALENV_* variables override them.\n\n")

	fmt.Fprintf(&sb, "pointer_size:  %d\n", int(cfg.PointerSize))
	fmt.Fprintf(&sb, "no_export:     %v\n", cfg.NoExport)
	fmt.Fprintf(&sb, "building_core: %v\n", cfg.BuildingCore)

	sb.WriteString("\ncompiler: {\n")
	fmt.Fprintf(&sb, "\tcommand: %q\n", cfg.Compiler.Command)
	if cfg.Compiler.SymbolsFile != "" {
		fmt.Fprintf(&sb, "\tsymbols_file: %q\n", cfg.Compiler.SymbolsFile)
	}
	if cfg.Compiler.Image != "" {
		fmt.Fprintf(&sb, "\timage: %q\n", cfg.Compiler.Image)
	}
	if cfg.Compiler.Engine != "" {
		fmt.Fprintf(&sb, "\tengine: %q\n", string(cfg.Compiler.Engine))
	}
	if cfg.Compiler.Platform != "" {
		fmt.Fprintf(&sb, "\tplatform: %q\n", cfg.Compiler.Platform)
	}
	if len(cfg.Compiler.Symbols) > 0 {
		sb.WriteString("\tsymbols: {\n")
		for _, name := range slices.Sorted(maps.Keys(cfg.Compiler.Symbols)) {
			fmt.Fprintf(&sb, "\t\t%q: %q\n", name, cfg.Compiler.Symbols[name])
		}
		sb.WriteString("\t}\n")
	}
	sb.WriteString("}\n")

	if len(cfg.MSVC.Versions) > 0 {
		sb.WriteString("\nmsvc: versions: [\n")
		for _, b := range cfg.MSVC.Versions {
			fmt.Fprintf(&sb, "\t{min: %d, version: %q},\n", b.Min, b.Version)
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\noutput: {\n")
	if cfg.Output.Header != "" {
		fmt.Fprintf(&sb, "\theader: %q\n", cfg.Output.Header)
	}
	if cfg.Output.Manifest != "" {
		fmt.Fprintf(&sb, "\tmanifest: %q\n", cfg.Output.Manifest)
	}
	fmt.Fprintf(&sb, "\tmanifest_format: %q\n", string(cfg.Output.ManifestFormat))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", string(cfg.UI.ColorScheme))
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

