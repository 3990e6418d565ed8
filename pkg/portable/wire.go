// SPDX-License-Identifier: MPL-2.0

package portable

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"golang.org/x/exp/constraints"
)

// ErrNotPortable is returned when encoding a value that is not a portable integer.
var ErrNotPortable = errors.New("not a portable integer type")

// ErrWidthMismatch is returned when decoding a value written with another width.
var ErrWidthMismatch = errors.New("encoded width does not match")

// Encode writes each value with the fixed-width msgpack code of its type
// (int8 0xd0, uint8 0xcc, int16 0xd1, uint16 0xcd, int32 0xd2, uint32 0xce,
// int64 0xd3, uint64 0xcf). Compact encodings are never used, so a value's
// bytes depend only on its type.
func Encode(w io.Writer, values ...any) error {
	enc := msgpack.NewEncoder(w)
	for i, v := range values {
		var err error
		switch v := v.(type) {
		case int8:
			err = enc.EncodeInt8(v)
		case uint8:
			err = enc.EncodeUint8(v)
		case int16:
			err = enc.EncodeInt16(v)
		case uint16:
			err = enc.EncodeUint16(v)
		case int32:
			err = enc.EncodeInt32(v)
		case uint32:
			err = enc.EncodeUint32(v)
		case int64:
			err = enc.EncodeInt64(v)
		case uint64:
			err = enc.EncodeUint64(v)
		default:
			return fmt.Errorf("value %d (%T): %w", i, v, ErrNotPortable)
		}
		if err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return nil
}

// Decoder reads values written by Encode, checking that each one was
// written with the width being read.
type Decoder struct {
	dec *msgpack.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: msgpack.NewDecoder(r)}
}

// Int8 reads an Int8.
func (d *Decoder) Int8() (Int8, error) { return decodeSigned[Int8](d, msgpcode.Int8) }

// Uint8 reads a Uint8.
func (d *Decoder) Uint8() (Uint8, error) { return decodeUnsigned[Uint8](d, msgpcode.Uint8) }

// Int16 reads an Int16.
func (d *Decoder) Int16() (Int16, error) { return decodeSigned[Int16](d, msgpcode.Int16) }

// Uint16 reads a Uint16.
func (d *Decoder) Uint16() (Uint16, error) { return decodeUnsigned[Uint16](d, msgpcode.Uint16) }

// Int32 reads an Int32.
func (d *Decoder) Int32() (Int32, error) { return decodeSigned[Int32](d, msgpcode.Int32) }

// Uint32 reads a Uint32.
func (d *Decoder) Uint32() (Uint32, error) { return decodeUnsigned[Uint32](d, msgpcode.Uint32) }

// Int64 reads an int64.
func (d *Decoder) Int64() (int64, error) { return decodeSigned[int64](d, msgpcode.Int64) }

// Uint64 reads a uint64.
func (d *Decoder) Uint64() (uint64, error) { return decodeUnsigned[uint64](d, msgpcode.Uint64) }

func (d *Decoder) expect(want byte) error {
	got, err := d.dec.PeekCode()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: code 0x%02x, want 0x%02x", ErrWidthMismatch, got, want)
	}
	return nil
}

func decodeSigned[T constraints.Signed](d *Decoder, code byte) (T, error) {
	if err := d.expect(code); err != nil {
		return 0, err
	}
	n, err := d.dec.DecodeInt64()
	if err != nil {
		return 0, err
	}
	return Convert[T](n)
}

func decodeUnsigned[T constraints.Unsigned](d *Decoder, code byte) (T, error) {
	if err := d.expect(code); err != nil {
		return 0, err
	}
	n, err := d.dec.DecodeUint64()
	if err != nil {
		return 0, err
	}
	return Convert[T](n)
}

// Intptr reads an Intptr. The value must have been written by a writer with
// the same pointer width.
func (d *Decoder) Intptr() (Intptr, error) { return decodeSigned[Intptr](d, intptrCode) }

// Uintptr reads a Uintptr.
func (d *Decoder) Uintptr() (Uintptr, error) { return decodeUnsigned[Uintptr](d, uintptrCode) }
