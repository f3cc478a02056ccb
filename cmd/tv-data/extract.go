package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"tv-data/internal/extract"
	"tv-data/internal/pattern"
	"tv-data/internal/saver"
)

type extractCmd struct {
	app *App

	patternFile     string
	src             string
	out             string
	tz              string
	numbered        bool
	prefix          string
	pad             int
	force           bool
	continueOnError bool
	format          string
	tsCol           string
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "cut per-window files from a merged CSV" }
func (*extractCmd) Usage() string {
	return `extract -pattern <file> -src <merged.csv> -out <dir>:
  Slice one file per pattern window out of the merged candle series.
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.patternFile, "pattern", "", "pattern file (date,start,entry,exit,end per line)")
	f.StringVar(&c.src, "src", "", "merged candle CSV")
	f.StringVar(&c.out, "out", "", "output directory (default <base>/windows)")
	f.StringVar(&c.tz, "tz", "", "IANA timezone for wall-clock windows (default from TVDATA_TZ)")
	f.BoolVar(&c.numbered, "numbered", false, "name outputs prefixNNN.csv instead of descriptive names")
	f.StringVar(&c.prefix, "prefix", "pattern", "filename prefix for -numbered")
	f.IntVar(&c.pad, "pad", 3, "zero padding width for -numbered")
	f.BoolVar(&c.force, "force", false, "overwrite existing window files")
	f.BoolVar(&c.continueOnError, "continue-on-error", false, "keep going when one window fails")
	f.StringVar(&c.format, "format", "", "output format per window (default csv)")
	f.StringVar(&c.tsCol, "tscol", "", "timestamp column (default time, then ts)")
}

func (c *extractCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.patternFile == "" || c.src == "" {
		slog.Error("extract: -pattern and -src are required")
		return subcommands.ExitUsageError
	}
	tz := c.tz
	if tz == "" {
		tz = c.app.Config.TZ
	}
	out := c.out
	if out == "" {
		out = c.app.Config.WindowsDir()
	}

	lines, err := readLines(c.patternFile)
	if err != nil {
		slog.Error("extract: read pattern file", "path", c.patternFile, "error", err)
		return subcommands.ExitFailure
	}
	windows, err := pattern.ParseLines(lines, tz)
	if err != nil {
		slog.Error("extract: parse pattern file", "error", err)
		return subcommands.ExitFailure
	}
	if len(windows) == 0 {
		slog.Warn("extract: pattern file has no windows", "path", c.patternFile)
		return subcommands.ExitSuccess
	}

	var sink saver.FrameSaver
	if c.format != "" {
		sink = saver.NewFrameSaver(c.format, saver.Options{})
		if sink == nil {
			slog.Error("extract: unsupported format", "format", c.format)
			return subcommands.ExitUsageError
		}
	}

	results, err := extract.Run(c.src, windows, out, extract.Options{
		Numbered:        c.numbered,
		Prefix:          c.prefix,
		Pad:             c.pad,
		Force:           c.force,
		ContinueOnError: c.continueOnError,
		TSColumn:        c.tsCol,
		Saver:           sink,
	})
	if err != nil {
		slog.Error("extract failed", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("extract finished", "windows", len(windows), "written", len(results), "dir", out)
	return subcommands.ExitSuccess
}
