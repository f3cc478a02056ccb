package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"

	"github.com/google/subcommands"

	"tv-data/internal/csvio"
	"tv-data/internal/pattern"
)

type timestampsCmd struct {
	app *App

	patternFile string
	tz          string
	out         string
	pretty      bool
}

func (*timestampsCmd) Name() string     { return "timestamps" }
func (*timestampsCmd) Synopsis() string { return "resolve a pattern file into epoch timestamps" }
func (*timestampsCmd) Usage() string {
	return `timestamps -pattern <file> [-out <file>]:
  Print the pattern windows as JSON records {start,end,entry,exit}.
`
}

func (c *timestampsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.patternFile, "pattern", "", "pattern file (date,start,entry,exit,end per line)")
	f.StringVar(&c.tz, "tz", "", "IANA timezone (default from TVDATA_TZ)")
	f.StringVar(&c.out, "out", "", "output file (default stdout)")
	f.BoolVar(&c.pretty, "pretty", false, "indent the JSON output")
}

func (c *timestampsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.patternFile == "" {
		slog.Error("timestamps: -pattern is required")
		return subcommands.ExitUsageError
	}
	tz := c.tz
	if tz == "" {
		tz = c.app.Config.TZ
	}

	lines, err := readLines(c.patternFile)
	if err != nil {
		slog.Error("timestamps: read pattern file", "path", c.patternFile, "error", err)
		return subcommands.ExitFailure
	}
	records, err := pattern.TimestampRecords(lines, tz)
	if err != nil {
		slog.Error("timestamps: resolve", "error", err)
		return subcommands.ExitFailure
	}

	var data []byte
	if c.pretty {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		slog.Error("timestamps: encode", "error", err)
		return subcommands.ExitFailure
	}

	if c.out == "" {
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}
	if err := csvio.WriteFileAtomic(c.out, append(data, '\n')); err != nil {
		slog.Error("timestamps: write", "path", c.out, "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("timestamps written", "path", c.out, "windows", len(records))
	return subcommands.ExitSuccess
}
