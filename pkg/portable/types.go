// SPDX-License-Identifier: MPL-2.0

package portable

// Fixed-width integer types shared by every Coral interface.
type (
	Int8   = int8
	Uint8  = uint8
	Int16  = int16
	Uint16 = uint16
	Int32  = int32
	Uint32 = uint32
)

// Limits for the portable integer types. The minimums are spelled as
// -(max)-1, the form that stays valid for 32-bit literals in C.
const (
	MinInt8  Int8  = -127 - 1
	MaxInt8  Int8  = 127
	MaxUint8 Uint8 = 0xFF

	MinInt16  Int16  = -32767 - 1
	MaxInt16  Int16  = 32767
	MaxUint16 Uint16 = 0xFFFF

	MinInt32  Int32  = -2147483647 - 1
	MaxInt32  Int32  = 2147483647
	MaxUint32 Uint32 = 0xFFFFFFFF
)
