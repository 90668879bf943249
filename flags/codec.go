package flags

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Decode resolves f to one boolean per channel.
// Integer masks are read low bit first, bit strings left to right; the two are
// not equivalent encodings of the same channel set.
func Decode(f Flags, channelCount int) []bool {
	if channelCount < 0 {
		channelCount = 0
	}
	ret := make([]bool, channelCount)
	switch f.kind {

	case KindMask:
		for i := 0; i < channelCount && i < 32; i++ {
			ret[i] = f.mask&(1<<i) != 0
		}

	case KindBits:
		for i := 0; i < channelCount && i < len(f.bits); i++ {
			ret[i] = f.bits[i] == '1'
		}

	case KindIndices:
		for _, idx := range f.indices {
			if idx >= 0 && idx < channelCount {
				ret[idx] = true
			}
		}

	}
	return ret
}

// EncodeBitmask folds channel indices into a mask, dropping indices outside [0, MaxChannels).
func EncodeBitmask(indices []int) uint32 {
	var mask uint32
	for _, idx := range indices {
		if idx < 0 || idx >= MaxChannels {
			continue
		}
		mask |= 1 << idx
	}
	return mask
}

func ToggleBit(mask uint32, index int) uint32 {
	if index < 0 || index >= 32 {
		return mask
	}
	return mask ^ (1 << index)
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// ParseTypedList parses comma separated channel numbers as typed by a user.
// Unparseable and out of range entries are dropped. maxChannels is capped at
// MaxChannels.
func ParseTypedList(text string, maxChannels int) uint32 {
	maxChannels = min(maxChannels, MaxChannels)
	var indices []int
	for part := range strings.SplitSeq(text, ",") {
		match := leadingInt.FindString(strings.TrimSpace(part))
		if match == "" {
			continue
		}
		idx, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if idx < 0 || idx >= maxChannels {
			continue
		}
		indices = append(indices, idx)
	}
	return EncodeBitmask(indices)
}

// ActiveIndices lists set bits below channelCount in ascending order.
func ActiveIndices(mask uint32, channelCount int) []int {
	var ret []int
	for i := 0; i < channelCount && i < 32; i++ {
		if mask>>i&1 == 1 {
			ret = append(ret, i)
		}
	}
	return ret
}

func FormatHex(mask uint32) string {
	return fmt.Sprintf("0x%06X", mask)
}

func FormatBinary(mask uint32, width int) string {
	return fmt.Sprintf("0b%0*b", width, mask)
}
