package timelines

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/reusee/pulser/programs"
	"github.com/reusee/pulser/units"
)

type Marker struct {
	Time     float64 // in settings time unit
	Position float64 // pixels
}

const (
	minTimelineWidth = 800
	markerSpacing    = 80
	minMarkers       = 5
	maxMarkers       = 20
)

// Markers lays out ruler ticks across a timeline of total ns.
func Markers(total float64, settings Settings) []Marker {
	multiplier := settings.TimeUnit.Multiplier()
	if total <= 0 || multiplier == 0 {
		return nil
	}
	scaledTotal := total / multiplier
	width := math.Max(minTimelineWidth, scaledTotal*settings.HorizontalScale)
	count := min(maxMarkers, max(minMarkers, int(math.Floor(width/markerSpacing))))
	interval := scaledTotal / float64(count)
	markers := make([]Marker, 0, count+1)
	for i := 0; i <= count; i++ {
		time := float64(i) * interval
		markers = append(markers, Marker{
			Time:     time,
			Position: time * settings.HorizontalScale,
		})
	}
	return markers
}

// Render writes segments as a text table, one row per segment and one column per channel.
func Render(w io.Writer, segments []Segment, settings Settings) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	var header []string
	header = append(header, "#")
	if settings.ShowTiming {
		header = append(header, "start", "duration")
	}
	if settings.ShowOpcodes {
		header = append(header, "opcode")
	}
	header = append(header, channelHeader(settings.ChannelCount))
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, segment := range segments {
		var row []string
		row = append(row, fmt.Sprint(segment.Index))
		if settings.ShowTiming {
			row = append(row,
				formatTime(segment.Start, settings.TimeUnit),
				formatTime(segment.Duration, settings.TimeUnit),
			)
		}
		if settings.ShowOpcodes {
			op := segment.Opcode.String()
			switch segment.Opcode {
			case programs.OpUnknown:
				op = segment.Instruction.Opcode
			case programs.OpLoop, programs.OpLongDelay, programs.OpBranch, programs.OpJSR:
				op += fmt.Sprintf(" %d", segment.Instruction.Data)
			}
			row = append(row, op)
		}
		var b strings.Builder
		for _, on := range segment.Channels {
			if on {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		row = append(row, b.String())
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func formatTime(ns float64, unit units.Unit) string {
	return units.FormatInScale(ns, unit) + " " + string(unit)
}

// channelHeader labels channel columns with the last digit of their index.
func channelHeader(n int) string {
	var b strings.Builder
	for i := range n {
		b.WriteByte(byte('0' + i%10))
	}
	return b.String()
}
