package timelines

import (
	"errors"
	"fmt"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/units"
)

var ErrChannelCount = errors.New("channel count out of range")

// Settings controls how a timeline is displayed. It never affects timeline math.
type Settings struct {
	ChannelCount    int        `json:"channelCount"`
	TimeUnit        units.Unit `json:"timeUnit"`
	HorizontalScale float64    `json:"horizontalScale"` // pixels per time unit
	ShowTiming      bool       `json:"showTiming"`
	ShowOpcodes     bool       `json:"showOpcodes"`
}

func DefaultSettings() Settings {
	return Settings{
		ChannelCount:    8,
		TimeUnit:        units.US,
		HorizontalScale: 200,
		ShowTiming:      true,
		ShowOpcodes:     true,
	}
}

func (s Settings) Validate() error {
	if err := checkChannelCount(s.ChannelCount); err != nil {
		return err
	}
	if _, err := units.ParseUnit(string(s.TimeUnit)); err != nil {
		return err
	}
	if s.HorizontalScale <= 0 {
		return fmt.Errorf("horizontal scale must be positive, got %v", s.HorizontalScale)
	}
	return nil
}

func checkChannelCount(n int) error {
	if n < 1 || n > flags.MaxChannels {
		return fmt.Errorf("%w: %d", ErrChannelCount, n)
	}
	return nil
}
