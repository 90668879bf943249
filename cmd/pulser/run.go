package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/pulser/catalogs"
	"github.com/reusee/pulser/debugs"
	"github.com/reusee/pulser/exports"
	"github.com/reusee/pulser/logs"
	"github.com/reusee/pulser/programs"
	"github.com/reusee/pulser/pulseconfigs"
	"github.com/reusee/pulser/sources"
	"github.com/reusee/pulser/syncs"
	"github.com/reusee/pulser/timelines"
	"github.com/reusee/pulser/units"
	"github.com/reusee/pulser/validations"
	"github.com/reusee/pulser/vars"
)

var ErrNoProgram = errors.New("no program: use -file, -example or -url")

type Run func(ctx context.Context) error

func (Module) Run(
	options Options,
	output Output,
	logger logs.Logger,
	newSpan logs.NewSpan,
	load sources.Load,
	settings timelines.Settings,
	autoUnit pulseconfigs.AutoUnit,
	formats pulseconfigs.ExportFormats,
	concurrency pulseconfigs.ExportConcurrency,
	tap debugs.Tap,
) Run {
	return func(ctx context.Context) error {
		ctx, _ = newSpan(ctx, "")
		settings := settings

		if err := settings.Validate(); err != nil {
			return err
		}

		if options.Examples {
			if err := listExamples(output); err != nil {
				return err
			}
		}

		if options.ExportExamples {
			if err := exportExamples(ctx, logger, options.Out, formats, concurrency); err != nil {
				return err
			}
		}

		if options.Ref == "" {
			if options.Timeline || options.Validate || options.Tap ||
				len(options.At) > 0 || len(formats) > 0 && !options.ExportExamples {
				return ErrNoProgram
			}
			return nil
		}

		program, err := load(ctx, options.Ref)
		if err != nil {
			return err
		}
		if program.TotalLength == nil {
			if with, err := program.WithTotalLength(); err == nil {
				program = with
			}
		}

		if autoUnit {
			settings.TimeUnit = programUnit(program)
		}

		// default action
		showTimeline := options.Timeline
		showWarnings := options.Validate
		if !options.Timeline && !options.Validate && !options.Tap &&
			len(options.At) == 0 && len(formats) == 0 {
			showTimeline = true
			showWarnings = true
		}

		warnings := validations.Check(program.Instructions)
		for _, warning := range warnings {
			logger.WarnContext(ctx, "validation",
				"program", program.Name,
				"warning", warning,
			)
		}

		segments, err := timelines.Build(program.Instructions, settings.ChannelCount)
		if err != nil {
			return err
		}

		if showTimeline {
			if err := printTimeline(output, program, segments, settings); err != nil {
				return err
			}
		}

		for _, t := range options.At {
			channels, ok := timelines.StateAt(segments, t)
			if !ok {
				fmt.Fprintf(output, "%s: outside program\n", units.FormatNanoseconds(t))
				continue
			}
			fmt.Fprintf(output, "%s: %s\n", units.FormatNanoseconds(t), channelString(channels))
		}

		if showWarnings {
			if len(warnings) == 0 {
				fmt.Fprintln(output, "no warnings")
			}
			for _, warning := range warnings {
				fmt.Fprintf(output, "warning: %s\n", warning)
			}
		}

		if !options.ExportExamples {
			for _, format := range formats {
				if err := exportProgram(ctx, logger, output, options.Out, format, program); err != nil {
					return err
				}
			}
		}

		if options.Tap {
			tap(ctx, program.Name, map[string]any{
				"program":  program,
				"segments": segments,
				"warnings": warnings,
			})
		}

		return nil
	}
}

func printTimeline(output Output, program programs.Program, segments []timelines.Segment, settings timelines.Settings) error {
	total, err := program.Total()
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "%s: %d instructions, %s %s\n",
		programName(program),
		len(program.Instructions),
		units.FormatInScale(total, settings.TimeUnit),
		settings.TimeUnit,
	)
	markers := timelines.Markers(total, settings)
	if len(markers) > 0 {
		labels := make([]string, len(markers))
		for i, marker := range markers {
			labels[i] = units.FormatInScale(marker.Time*settings.TimeUnit.Multiplier(), settings.TimeUnit)
		}
		fmt.Fprintf(output, "markers (%s): %s\n", settings.TimeUnit, strings.Join(labels, " "))
	}
	return timelines.Render(output, segments, settings)
}

// programUnit picks a display unit from the instruction durations.
func programUnit(program programs.Program) units.Unit {
	durations := make([]float64, 0, len(program.Instructions))
	for _, inst := range program.Instructions {
		ns, err := inst.Nanoseconds()
		if err != nil {
			continue
		}
		durations = append(durations, ns)
	}
	return units.PickOptimalUnitFor(durations)
}

func channelString(channels []bool) string {
	b := make([]byte, len(channels))
	for i, on := range channels {
		if on {
			b[i] = '#'
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}

func programName(program programs.Program) string {
	if program.Name == "" {
		return "Untitled"
	}
	return program.Name
}

func listExamples(output Output) error {
	for _, program := range catalogs.All() {
		total, err := program.Total()
		if err != nil {
			return err
		}
		// declared length may include idle time after the last instruction
		length := vars.FirstNonZero(vars.DerefOrZero(program.TotalLength), total)
		if _, err := fmt.Fprintf(output, "%s\t%d instructions\t%s\n",
			program.Name,
			len(program.Instructions),
			units.FormatNanoseconds(length),
		); err != nil {
			return err
		}
	}
	return nil
}

func exportProgram(
	ctx context.Context,
	logger logs.Logger,
	output Output,
	outDir string,
	format exports.Format,
	program programs.Program,
) error {
	content, err := exports.Export(format, program)
	if err != nil {
		return err
	}
	if outDir == "" {
		_, err := fmt.Fprintln(output, content)
		return err
	}
	path := filepath.Join(outDir, format.FileName(program))
	if err := exports.WriteFile(path, content); err != nil {
		return err
	}
	logger.InfoContext(ctx, "exported",
		"program", program.Name,
		"format", format,
		"path", path,
	)
	return nil
}

type exportJob struct {
	format  exports.Format
	program programs.Program
}

func exportExamples(
	ctx context.Context,
	logger logs.Logger,
	outDir string,
	formats pulseconfigs.ExportFormats,
	concurrency pulseconfigs.ExportConcurrency,
) error {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if len(formats) == 0 {
		formats = exports.Formats
	}

	var jobs []exportJob
	for _, program := range catalogs.All() {
		for _, format := range formats {
			jobs = append(jobs, exportJob{
				format:  format,
				program: program,
			})
		}
	}

	return syncs.ForEach(syncs.NewSemaphore(int(concurrency)), jobs, func(job exportJob) error {
		return exportProgram(ctx, logger, nil, outDir, job.format, job.program)
	})
}
