// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coral/coralenv/internal/container"
	"github.com/coral/coralenv/pkg/buildkey"
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultCompilerCommand is probed when no compiler is configured.
	DefaultCompilerCommand = "c++"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the coralenv configuration.
	Config struct {
		// PointerSize is the target pointer size; 0 means detect.
		PointerSize types.PointerSize `json:"pointer_size" mapstructure:"pointer_size"`
		// NoExport expands every export attribute to nothing.
		NoExport bool `json:"no_export" mapstructure:"no_export"`
		// BuildingCore selects dllexport over dllimport on Windows.
		BuildingCore bool           `json:"building_core" mapstructure:"building_core"`
		Compiler     CompilerConfig `json:"compiler" mapstructure:"compiler"`
		MSVC         MSVCConfig     `json:"msvc" mapstructure:"msvc"`
		Output       OutputConfig   `json:"output" mapstructure:"output"`
		UI           UIConfig       `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from, if any.
		Source string `json:"-" mapstructure:"-"`
	}

	// CompilerConfig selects where toolchain symbols come from.
	CompilerConfig struct {
		Command     string            `json:"command" mapstructure:"command"`
		SymbolsFile string            `json:"symbols_file" mapstructure:"symbols_file"`
		Symbols     map[string]string `json:"symbols" mapstructure:"-"`
		// Image runs the probe in a container when set.
		Image    string               `json:"image" mapstructure:"image"`
		Engine   container.EngineType `json:"engine" mapstructure:"engine"`
		Platform string               `json:"platform" mapstructure:"platform"`
	}

	// MSVCConfig overrides the _MSC_VER version table.
	MSVCConfig struct {
		Versions []compiler.Bracket `json:"versions" mapstructure:"versions"`
	}

	// OutputConfig sets default output paths for the header and manifest commands.
	OutputConfig struct {
		Header         string          `json:"header" mapstructure:"header"`
		Manifest       string          `json:"manifest" mapstructure:"manifest"`
		ManifestFormat buildkey.Format `json:"manifest_format" mapstructure:"manifest_format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Policy returns the configured MSVC version table, or the default table
// when none is configured.
func (c *Config) Policy() compiler.Policy {
	if len(c.MSVC.Versions) == 0 {
		return compiler.DefaultPolicy()
	}
	return compiler.Policy{Brackets: c.MSVC.Versions}
}

// IsValid checks the constraints the CUE schema cannot express and re-checks
// values that may come from environment overrides.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if c.PointerSize != 0 {
		if valid, fieldErrs := c.PointerSize.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(c.MSVC.Versions) > 0 {
		if err := c.Policy().Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := buildkey.ParseFormat(string(c.Output.ManifestFormat)); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.Compiler.Engine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PointerSize: 0,
		Compiler: CompilerConfig{
			Command: DefaultCompilerCommand,
			Symbols: map[string]string{},
			Engine:  container.EngineTypeAuto,
		},
		MSVC: MSVCConfig{
			Versions: compiler.DefaultPolicy().Brackets,
		},
		Output: OutputConfig{
			ManifestFormat: buildkey.FormatTOML,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
