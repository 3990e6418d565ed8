// SPDX-License-Identifier: MPL-2.0

package buildkey

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/coral/coralenv/pkg/types"
)

const (
	// FormatTOML is the human-readable manifest encoding.
	FormatTOML Format = "toml"
	// FormatMsgpack is the compact binary manifest encoding.
	FormatMsgpack Format = "msgpack"

	// ManifestSchema is the current manifest schema version.
	ManifestSchema = 1
)

var (
	// ErrInvalidManifest is the sentinel error wrapped by manifest validation failures.
	ErrInvalidManifest = errors.New("invalid build manifest")
	// ErrUnknownFormat is returned for a manifest format other than toml or msgpack.
	ErrUnknownFormat = errors.New("unknown manifest format")
)

type (
	// Format selects a manifest encoding.
	Format string

	// Manifest records the build key and the configuration it was derived
	// from. The segment fields duplicate Key so consumers can read them
	// without parsing; Validate checks that they agree.
	Manifest struct {
		Schema          int    `toml:"schema" msgpack:"schema"`
		Key             string `toml:"key" msgpack:"key"`
		OS              string `toml:"os" msgpack:"os"`
		Arch            string `toml:"arch" msgpack:"arch"`
		Compiler        string `toml:"compiler" msgpack:"compiler"`
		CompilerVersion string `toml:"compiler_version" msgpack:"compiler_version"`
		PointerSize     int    `toml:"pointer_size" msgpack:"pointer_size"`
		Mode            string `toml:"mode" msgpack:"mode"`
		Export          string `toml:"export" msgpack:"export"`
		Generator       string `toml:"generator" msgpack:"generator"`
	}
)

// ParseFormat validates a manifest format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTOML, FormatMsgpack:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w %q (valid: toml, msgpack)", ErrUnknownFormat, s)
	}
}

// NewManifest builds a manifest for key.
func NewManifest(key Key, ptr types.PointerSize, mode Mode, export, generator string) Manifest {
	return Manifest{
		Schema:          ManifestSchema,
		Key:             key.String(),
		OS:              key.OS.Name(),
		Arch:            key.Arch.Name(),
		Compiler:        key.Compiler.Name(),
		CompilerVersion: key.Version,
		PointerSize:     int(ptr),
		Mode:            string(mode),
		Export:          export,
		Generator:       generator,
	}
}

// ParsedKey parses the manifest's key string.
func (m Manifest) ParsedKey() (Key, error) {
	return Parse(m.Key)
}

// Validate checks the schema, the key and that the duplicated fields agree with it.
func (m Manifest) Validate() error {
	if m.Schema != ManifestSchema {
		return fmt.Errorf("%w: unsupported schema %d (want %d)", ErrInvalidManifest, m.Schema, ManifestSchema)
	}
	key, err := m.ParsedKey()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if m.OS != key.OS.Name() || m.Arch != key.Arch.Name() ||
		m.Compiler != key.Compiler.Name() || m.CompilerVersion != key.Version {
		return fmt.Errorf("%w: fields disagree with key %q", ErrInvalidManifest, m.Key)
	}
	ptr := types.PointerSize(m.PointerSize)
	if err := ptr.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if ptr != key.Arch.PointerSize() {
		return fmt.Errorf("%w: pointer size %d does not match %s", ErrInvalidManifest, m.PointerSize, m.Arch)
	}
	if err := Mode(m.Mode).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return nil
}

// EncodeManifest writes m in the given format.
func EncodeManifest(w io.Writer, m Manifest, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(m)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(format))
	}
}

// DecodeManifest reads and validates a manifest. Unknown fields are rejected.
func DecodeManifest(r io.Reader, format Format) (Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return Manifest{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.DisallowUnknownFields(true)
		if err := dec.Decode(&m); err != nil {
			return Manifest{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
	default:
		return Manifest{}, fmt.Errorf("%w %q", ErrUnknownFormat, string(format))
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
