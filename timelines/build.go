package timelines

import (
	"fmt"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/programs"
)

// Segment is one instruction placed on the absolute time axis.
type Segment struct {
	Index       int
	Start       float64 // ns
	Duration    float64 // ns
	Channels    []bool
	Opcode      programs.Opcode
	Instruction programs.Instruction
}

func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// Build lays instructions end to end in list order.
// Control-flow opcodes are not interpreted: the result is one linear pass.
func Build(instructions []programs.Instruction, channelCount int) ([]Segment, error) {
	if err := checkChannelCount(channelCount); err != nil {
		return nil, err
	}
	segments := make([]Segment, 0, len(instructions))
	var currentTime float64
	for i, inst := range instructions {
		duration, err := inst.Nanoseconds()
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		segments = append(segments, Segment{
			Index:       i,
			Start:       currentTime,
			Duration:    duration,
			Channels:    flags.Decode(inst.Flags, channelCount),
			Opcode:      inst.Op(),
			Instruction: inst.Clone(),
		})
		currentTime += duration
	}
	return segments, nil
}

func TotalDuration(instructions []programs.Instruction) (float64, error) {
	return programs.Program{
		Instructions: instructions,
	}.Total()
}

// StateAt returns the channel state at instant t (ns).
// ok is false when t lies outside every segment.
func StateAt(segments []Segment, t float64) (channels []bool, ok bool) {
	if i := SegmentAt(segments, t); i >= 0 {
		return append([]bool(nil), segments[i].Channels...), true
	}
	if len(segments) > 0 {
		return make([]bool, len(segments[0].Channels)), false
	}
	return nil, false
}

// SegmentAt returns the index of the segment covering t, or -1.
func SegmentAt(segments []Segment, t float64) int {
	for i, segment := range segments {
		if t >= segment.Start && t < segment.End() {
			return i
		}
	}
	return -1
}
