// SPDX-License-Identifier: MPL-2.0

package portable

import (
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/coral/coralenv/pkg/types"
)

// Pointer-sized integers on 64-bit x86.
type (
	Intptr  = int64
	Uintptr = uint64
)

// PointerSize is the byte width of Intptr on this target.
const PointerSize = types.PointerSize64

var (
	intptrCode  = msgpcode.Int64
	uintptrCode = msgpcode.Uint64
)
