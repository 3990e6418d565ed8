// SPDX-License-Identifier: MPL-2.0

package portable

import (
	"strconv"

	"github.com/coral/coralenv/pkg/types"
)

// Limit describes the range of one portable integer type.
type Limit struct {
	Name   string
	Bits   int
	Signed bool
	Min    int64
	Max    uint64
}

// String returns "name [min, max]".
func (l Limit) String() string {
	return l.Name + " [" + strconv.FormatInt(l.Min, 10) + ", " + strconv.FormatUint(l.Max, 10) + "]"
}

// Limits returns the 8, 16 and 32-bit types in ascending width, signed first.
func Limits() []Limit {
	return []Limit{
		{Name: "int8", Bits: 8, Signed: true, Min: int64(MinInt8), Max: uint64(MaxInt8)},
		{Name: "uint8", Bits: 8, Min: 0, Max: uint64(MaxUint8)},
		{Name: "int16", Bits: 16, Signed: true, Min: int64(MinInt16), Max: uint64(MaxInt16)},
		{Name: "uint16", Bits: 16, Min: 0, Max: uint64(MaxUint16)},
		{Name: "int32", Bits: 32, Signed: true, Min: int64(MinInt32), Max: uint64(MaxInt32)},
		{Name: "uint32", Bits: 32, Min: 0, Max: uint64(MaxUint32)},
	}
}

// PtrWidth returns the bit width intptr takes for a configured pointer size:
// 32 for 4 and 64 for 8. Any other size is rejected.
func PtrWidth(ptr types.PointerSize) (int, error) {
	if err := ptr.Validate(); err != nil {
		return 0, err
	}
	return ptr.Bits(), nil
}
