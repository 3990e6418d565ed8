// SPDX-License-Identifier: MPL-2.0

package portable

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/coral/coralenv/pkg/types"
)

func TestLimitsAreTwosComplement(t *testing.T) {
	t.Parallel()

	if MinInt8 != math.MinInt8 || MaxInt8 != math.MaxInt8 || MaxUint8 != math.MaxUint8 {
		t.Error("8-bit limits do not match two's complement bounds")
	}
	if MinInt16 != math.MinInt16 || MaxInt16 != math.MaxInt16 || MaxUint16 != math.MaxUint16 {
		t.Error("16-bit limits do not match two's complement bounds")
	}
	if MinInt32 != math.MinInt32 || MaxInt32 != math.MaxInt32 || MaxUint32 != math.MaxUint32 {
		t.Error("32-bit limits do not match two's complement bounds")
	}
}

func TestLimitsTable(t *testing.T) {
	t.Parallel()

	limits := Limits()
	if len(limits) != 6 {
		t.Fatalf("Limits() returned %d entries, want 6", len(limits))
	}
	for _, l := range limits {
		if l.Signed {
			wantMin := -(int64(1) << (l.Bits - 1))
			wantMax := uint64(1)<<(l.Bits-1) - 1
			if l.Min != wantMin || l.Max != wantMax {
				t.Errorf("%s = [%d, %d], want [%d, %d]", l.Name, l.Min, l.Max, wantMin, wantMax)
			}
			continue
		}
		if l.Min != 0 || l.Max != uint64(1)<<l.Bits-1 {
			t.Errorf("%s = [%d, %d]", l.Name, l.Min, l.Max)
		}
	}
	if got := limits[0].String(); got != "int8 [-128, 127]" {
		t.Errorf("String() = %q", got)
	}
}

func TestIntptrWidth(t *testing.T) {
	t.Parallel()

	if got := unsafe.Sizeof(Intptr(0)); got != uintptr(PointerSize) {
		t.Errorf("sizeof(Intptr) = %d, want %d", got, PointerSize)
	}
	if got := unsafe.Sizeof(Uintptr(0)); got != unsafe.Sizeof(uintptr(0)) {
		t.Errorf("sizeof(Uintptr) = %d, want native pointer width", got)
	}
}

func TestPtrWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ptr     types.PointerSize
		want    int
		wantErr bool
	}{
		{ptr: 4, want: 32},
		{ptr: 8, want: 64},
		{ptr: 2, wantErr: true},
		{ptr: 0, wantErr: true},
		{ptr: 16, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ptr.String(), func(t *testing.T) {
			t.Parallel()

			got, err := PtrWidth(tt.ptr)
			if tt.wantErr {
				if !errors.Is(err, types.ErrInvalidPointerSize) {
					t.Fatalf("PtrWidth(%d) error = %v, want ErrInvalidPointerSize", tt.ptr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("PtrWidth(%d) = %d, %v; want %d", tt.ptr, got, err, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	if got, err := Convert[Int8](127); err != nil || got != 127 {
		t.Errorf("Convert[Int8](127) = %d, %v", got, err)
	}
	if got, err := Convert[Uint16](uint64(MaxUint16)); err != nil || got != MaxUint16 {
		t.Errorf("Convert[Uint16](MaxUint16) = %d, %v", got, err)
	}

	_, err := Convert[Uint8](300)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Convert[Uint8](300) error = %v, want ErrOutOfRange", err)
	}
	var re *RangeError
	if !errors.As(err, &re) || re.Value != "300" || re.Target != "uint8" {
		t.Errorf("RangeError = %+v", re)
	}

	if _, err := Convert[Uint32](-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Convert[Uint32](-1) error = %v, want ErrOutOfRange", err)
	}
	if _, err := Convert[Int16](int32(MaxInt16) + 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Convert[Int16](MaxInt16+1) error = %v, want ErrOutOfRange", err)
	}
}

func TestMustConvertPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustConvert should panic on overflow")
		}
	}()
	_ = MustConvert[Int8](1000)
}
