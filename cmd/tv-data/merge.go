package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/subcommands"

	"tv-data/internal/candle"
	"tv-data/internal/csvio"
	"tv-data/internal/fetch"
	"tv-data/internal/indicator"
	"tv-data/internal/saver"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type mergeCmd struct {
	app *App

	inputs         multiFlag
	dir            string
	out            string
	dedupe         string
	dropIncomplete bool
	sortOrder      string
	format         string
	indicators     string
	dryRun         bool
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "merge candle CSVs into one deduplicated series" }
func (*mergeCmd) Usage() string {
	return `merge -in <path|url> [-in ...] [-dir <dir>] -out <file>:
  Normalize, merge, dedupe and sort candle sources into one file.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.inputs, "in", "input CSV path, glob or http(s) URL (repeatable)")
	f.StringVar(&c.dir, "dir", "", "directory of CSV inputs")
	f.StringVar(&c.out, "out", "", "output file")
	f.StringVar(&c.dedupe, "dedupe", candle.DedupeLast, "dedupe strategy: last | first | max_volume")
	f.BoolVar(&c.dropIncomplete, "drop-incomplete", false, "drop rows with any null required column")
	f.StringVar(&c.sortOrder, "sort", candle.SortAsc, "sort order: asc | desc")
	f.StringVar(&c.format, "format", "", "output format (default from TVDATA_FORMAT)")
	f.StringVar(&c.indicators, "indicators", "", "comma-separated indicators to compute: ema,vwap,atr")
	f.BoolVar(&c.dryRun, "dry-run", false, "print the merge summary without writing")
}

func (c *mergeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sources, err := c.sources()
	if err != nil {
		slog.Error("merge: resolve inputs", "error", err)
		return subcommands.ExitUsageError
	}
	if len(sources) == 0 {
		slog.Error("merge: no inputs (use -in or -dir)")
		return subcommands.ExitUsageError
	}

	merged, err := candle.MergeFrames(ctx, sources, candle.MergeOptions{
		DedupeStrategy: c.dedupe,
		DropIncomplete: c.dropIncomplete,
		SortOrder:      c.sortOrder,
	})
	if err != nil {
		slog.Error("merge failed", "error", err)
		return subcommands.ExitFailure
	}

	if c.indicators != "" {
		names := splitList(c.indicators)
		if err := indicator.Enrich(&merged, names, indicator.Options{EmaPeriod: c.app.Config.EmaPeriod}); err != nil {
			slog.Error("merge: indicators", "error", err)
			return subcommands.ExitFailure
		}
	}

	summary := candle.Summarize(merged)
	if c.dryRun {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}

	if c.out == "" {
		slog.Error("merge: -out is required")
		return subcommands.ExitUsageError
	}
	sink := c.app.Saver
	if c.format != "" {
		sink = saver.NewFrameSaver(c.format, saver.Options{})
		if sink == nil {
			slog.Error("merge: unsupported format", "format", c.format)
			return subcommands.ExitUsageError
		}
	}
	if err := sink.Save(merged, c.out); err != nil {
		slog.Error("merge: save", "path", c.out, "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("merged", "path", c.out, "rows", summary.Rows, "sources", len(sources))
	return subcommands.ExitSuccess
}

func (c *mergeCmd) sources() ([]candle.Loader, error) {
	var sources []candle.Loader
	add := func(pathOrGlob string) error {
		paths, err := csvio.Discover(pathOrGlob)
		if err != nil {
			return err
		}
		for _, p := range paths {
			sources = append(sources, csvio.FileSource{Path: p})
		}
		return nil
	}
	for _, in := range c.inputs {
		if strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") {
			sources = append(sources, fetch.Source{URL: in, Client: c.app.Fetch})
			continue
		}
		if err := add(in); err != nil {
			return nil, err
		}
	}
	if c.dir != "" {
		if err := add(c.dir); err != nil {
			return nil, err
		}
	}
	return sources, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
