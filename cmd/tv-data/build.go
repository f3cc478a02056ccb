package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"tv-data/internal/pattern"
	"tv-data/internal/slicer"
)

type buildCmd struct {
	app *App

	timestamps string
	src        string
	out        string
	force      bool
	tsCol      string
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "build per-window CSVs from a timestamps JSON" }
func (*buildCmd) Usage() string {
	return `build -timestamps <file.json> -src <merged.csv> -out <dir>:
  Stream the merged CSV once and write one <start>.csv per window.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timestamps, "timestamps", "", "JSON array of {start,end,entry,exit} records")
	f.StringVar(&c.src, "src", "", "merged candle CSV")
	f.StringVar(&c.out, "out", "", "output directory (default <base>/windows)")
	f.BoolVar(&c.force, "force", false, "overwrite existing window files")
	f.StringVar(&c.tsCol, "tscol", "", "timestamp column (default time, then ts)")
}

func (c *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.timestamps == "" || c.src == "" {
		slog.Error("build: -timestamps and -src are required")
		return subcommands.ExitUsageError
	}
	out := c.out
	if out == "" {
		out = c.app.Config.WindowsDir()
	}

	data, err := os.ReadFile(c.timestamps)
	if err != nil {
		slog.Error("build: read timestamps", "path", c.timestamps, "error", err)
		return subcommands.ExitFailure
	}
	var records []pattern.Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("build: decode timestamps", "path", c.timestamps, "error", err)
		return subcommands.ExitFailure
	}

	var ranges []slicer.Range
	skipped := 0
	for _, r := range records {
		outPath := filepath.Join(out, fmt.Sprintf("%d.csv", r.Start))
		if !c.force {
			if _, err := os.Stat(outPath); err == nil {
				skipped++
				continue
			}
		}
		ranges = append(ranges, slicer.Range{StartTS: r.Start, EndTS: r.End, OutPath: outPath})
	}
	if skipped > 0 {
		slog.Info("build: existing windows kept", "skipped", skipped)
	}
	if len(ranges) == 0 {
		slog.Info("build: nothing to do", "windows", len(records))
		return subcommands.ExitSuccess
	}

	counts, err := slicer.SliceCSVChunked(c.src, ranges, c.tsCol)
	if err != nil {
		slog.Error("build failed", "error", err)
		return subcommands.ExitFailure
	}
	total := 0
	for i, n := range counts {
		slog.Info("window written", "path", ranges[i].OutPath, "rows", n)
		total += n
	}
	slog.Info("build done", "windows", len(ranges), "rows", total, "dir", out)
	return subcommands.ExitSuccess
}
