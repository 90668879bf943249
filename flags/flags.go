package flags

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// MaxChannels is the number of output lines a device can drive.
const MaxChannels = 24

type Kind uint8

const (
	KindMask Kind = iota
	KindBits
	KindIndices
)

func (k Kind) String() string {
	switch k {
	case KindMask:
		return "mask"
	case KindBits:
		return "bits"
	case KindIndices:
		return "indices"
	}
	return "unknown"
}

// Flags is a channel set in one of its three accepted input shapes:
// an integer bitmask (bit i = channel i), a '0'/'1' string (character 0 =
// channel 0) or a list of active channel indices.
// The zero value is an empty mask.
type Flags struct {
	kind    Kind
	mask    uint32
	bits    string
	indices []int
}

func Mask(mask uint32) Flags {
	return Flags{
		kind: KindMask,
		mask: mask,
	}
}

func Bits(bits string) Flags {
	return Flags{
		kind: KindBits,
		bits: bits,
	}
}

func Indices(indices ...int) Flags {
	return Flags{
		kind:    KindIndices,
		indices: append([]int{}, indices...),
	}
}

func (f Flags) Kind() Kind {
	return f.kind
}

// Mask returns the integer payload, valid when Kind is KindMask.
func (f Flags) Mask() uint32 {
	return f.mask
}

// Bits returns the string payload, valid when Kind is KindBits.
func (f Flags) Bits() string {
	return f.bits
}

// Indices returns a copy of the list payload, valid when Kind is KindIndices.
func (f Flags) Indices() []int {
	return slices.Clone(f.indices)
}

// Bitmask normalizes any shape to an integer mask.
// A bit string sets bit i for a '1' at character i.
func (f Flags) Bitmask() uint32 {
	switch f.kind {
	case KindBits:
		var mask uint32
		for i := 0; i < len(f.bits) && i < 32; i++ {
			if f.bits[i] == '1' {
				mask |= 1 << i
			}
		}
		return mask
	case KindIndices:
		return EncodeBitmask(f.indices)
	}
	return f.mask
}

func (f Flags) Equal(g Flags) bool {
	return f.kind == g.kind &&
		f.mask == g.mask &&
		f.bits == g.bits &&
		slices.Equal(f.indices, g.indices)
}

func (f Flags) String() string {
	switch f.kind {
	case KindBits:
		return fmt.Sprintf("%q", f.bits)
	case KindIndices:
		return fmt.Sprint(f.indices)
	}
	return FormatHex(f.mask)
}

func (f Flags) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case KindBits:
		return json.Marshal(f.bits)
	case KindIndices:
		if f.indices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.indices)
	}
	return json.Marshal(f.mask)
}

func (f *Flags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty flags")
	}
	switch data[0] {
	case '"':
		var bits string
		if err := json.Unmarshal(data, &bits); err != nil {
			return err
		}
		*f = Bits(bits)
	case '[':
		indices := []int{}
		if err := json.Unmarshal(data, &indices); err != nil {
			return err
		}
		*f = Flags{
			kind:    KindIndices,
			indices: indices,
		}
	default:
		var mask uint32
		if err := json.Unmarshal(data, &mask); err != nil {
			return fmt.Errorf("flags: %w", err)
		}
		*f = Mask(mask)
	}
	return nil
}
