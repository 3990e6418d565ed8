// SPDX-License-Identifier: MPL-2.0

package portable

import (
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/coral/coralenv/pkg/types"
)

// Pointer-sized integers on 32-bit x86.
type (
	Intptr  = Int32
	Uintptr = Uint32
)

// PointerSize is the byte width of Intptr on this target.
const PointerSize = types.PointerSize32

var (
	intptrCode  = msgpcode.Int32
	uintptrCode = msgpcode.Uint32
)
