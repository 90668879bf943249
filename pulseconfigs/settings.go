package pulseconfigs

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/reusee/pulser/cmds"
	"github.com/reusee/pulser/configs"
	"github.com/reusee/pulser/exports"
	"github.com/reusee/pulser/timelines"
	"github.com/reusee/pulser/units"
	"github.com/reusee/pulser/vars"
)

var (
	channelsFlag    = cmds.Var[int]("-channels")
	unitFlag        = cmds.Var[unitChoice]("-unit")
	scaleFlag       = cmds.Var[float64]("-scale")
	noTimingFlag    = cmds.Switch("-no-timing")
	noOpcodesFlag   = cmds.Switch("-no-opcodes")
	jobsFlag        = cmds.Var[jobCount]("-jobs")
	exportFormatArg = cmds.Collect[exports.Format]("export")
)

func init() {
	cmds.GlobalExecutor.Describe("-channels", "number of channels to display")
	cmds.GlobalExecutor.Describe("-unit", "timeline time unit: ns, us, ms, s or auto")
	cmds.GlobalExecutor.Describe("-scale", "horizontal scale in pixels per time unit")
	cmds.GlobalExecutor.Describe("-no-timing", "hide start and duration columns")
	cmds.GlobalExecutor.Describe("-no-opcodes", "hide the opcode column")
	cmds.GlobalExecutor.Describe("-jobs", "concurrent exports")
	cmds.GlobalExecutor.Describe("export", "export in FORMAT: json, script, spinapi or asm")
	cmds.GlobalExecutor.Describe("-config", "load an extra config file")
}

var defaults = timelines.DefaultSettings()

type ChannelCount int

var _ configs.Configurable = ChannelCount(0)

func (ChannelCount) ConfigExpr() string {
	return "channel_count"
}

func (Module) ChannelCount(
	loader configs.Loader,
) ChannelCount {
	return vars.FirstNonZero(
		ChannelCount(*channelsFlag),
		configs.Get[ChannelCount](loader),
		ChannelCount(defaults.ChannelCount),
	)
}

type TimeUnit units.Unit

var _ configs.Configurable = TimeUnit("")

func (TimeUnit) ConfigExpr() string {
	return "time_unit"
}

const autoUnit = "auto"

func isAuto(symbol string) bool {
	return strings.EqualFold(strings.TrimSpace(symbol), autoUnit)
}

// unitChoice is a time unit, or auto for a per-program unit.
type unitChoice struct {
	unit units.Unit
	auto bool
}

func (c *unitChoice) UnmarshalText(text []byte) error {
	if isAuto(string(text)) {
		*c = unitChoice{auto: true}
		return nil
	}
	unit, err := units.ParseUnit(string(text))
	if err != nil {
		return err
	}
	*c = unitChoice{unit: unit}
	return nil
}

func (Module) TimeUnit(
	loader configs.Loader,
) TimeUnit {
	if unitFlag.unit != "" {
		return TimeUnit(unitFlag.unit)
	}
	if symbol := configs.Get[TimeUnit](loader); symbol != "" && !isAuto(string(symbol)) {
		unit, err := units.ParseUnit(string(symbol))
		if err != nil {
			panic(err)
		}
		return TimeUnit(unit)
	}
	return TimeUnit(defaults.TimeUnit)
}

// AutoUnit reports whether the timeline unit is picked per program.
type AutoUnit bool

func (Module) AutoUnit(
	loader configs.Loader,
) AutoUnit {
	if unitFlag.auto {
		return true
	}
	if unitFlag.unit != "" {
		return false
	}
	return AutoUnit(isAuto(string(configs.Get[TimeUnit](loader))))
}

type HorizontalScale float64

var _ configs.Configurable = HorizontalScale(0)

func (HorizontalScale) ConfigExpr() string {
	return "horizontal_scale"
}

func (Module) HorizontalScale(
	loader configs.Loader,
) HorizontalScale {
	return vars.FirstNonZero(
		HorizontalScale(*scaleFlag),
		configs.Get[HorizontalScale](loader),
		HorizontalScale(defaults.HorizontalScale),
	)
}

type ShowTiming bool

func (Module) ShowTiming(
	loader configs.Loader,
) ShowTiming {
	if *noTimingFlag {
		return false
	}
	if v := configs.First[*bool](loader, "show_timing"); v != nil {
		return ShowTiming(*v)
	}
	return ShowTiming(defaults.ShowTiming)
}

type ShowOpcodes bool

func (Module) ShowOpcodes(
	loader configs.Loader,
) ShowOpcodes {
	if *noOpcodesFlag {
		return false
	}
	if v := configs.First[*bool](loader, "show_opcodes"); v != nil {
		return ShowOpcodes(*v)
	}
	return ShowOpcodes(defaults.ShowOpcodes)
}

func (Module) Settings(
	channelCount ChannelCount,
	timeUnit TimeUnit,
	scale HorizontalScale,
	showTiming ShowTiming,
	showOpcodes ShowOpcodes,
) timelines.Settings {
	return timelines.Settings{
		ChannelCount:    int(channelCount),
		TimeUnit:        units.Unit(timeUnit),
		HorizontalScale: float64(scale),
		ShowTiming:      bool(showTiming),
		ShowOpcodes:     bool(showOpcodes),
	}
}

var ErrJobCount = errors.New("job count must be at least 1")

type jobCount int

func (j *jobCount) UnmarshalText(text []byte) error {
	n, err := strconv.Atoi(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrJobCount, n)
	}
	*j = jobCount(n)
	return nil
}

type ExportConcurrency int

var _ configs.Configurable = ExportConcurrency(0)

func (ExportConcurrency) ConfigExpr() string {
	return "export_concurrency"
}

func (Module) ExportConcurrency(
	loader configs.Loader,
) ExportConcurrency {
	return vars.FirstNonZero(
		ExportConcurrency(*jobsFlag),
		configs.Get[ExportConcurrency](loader),
		ExportConcurrency(runtime.NumCPU()),
	)
}

type ExportFormats []exports.Format

// ExportFormats are the formats named by export arguments, or by the config
// file when none are given.
func (Module) ExportFormats(
	loader configs.Loader,
) ExportFormats {
	if len(*exportFormatArg) > 0 {
		return ExportFormats(*exportFormatArg)
	}
	var ret ExportFormats
	for _, name := range configs.First[[]string](loader, "export_formats") {
		format, err := exports.ParseFormat(name)
		if err != nil {
			panic(err)
		}
		ret = append(ret, format)
	}
	return ret
}
