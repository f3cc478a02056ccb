package main

import (
	"context"
	"flag"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"tv-data/internal/candle"
	"tv-data/internal/csvio"
	"tv-data/internal/saver"
)

type jsonCmd struct {
	app *App

	in     string
	out    string
	camel  bool
	dts    bool
	ndjson bool
	name   string
}

func (*jsonCmd) Name() string     { return "json" }
func (*jsonCmd) Synopsis() string { return "convert candle CSVs to JSON" }
func (*jsonCmd) Usage() string {
	return `json -in <file|dir|glob> [-out <dir>]:
  Convert each CSV to a JSON array of row objects, column order preserved.
`
}

func (c *jsonCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "input CSV file, directory or glob")
	f.StringVar(&c.out, "out", "", "output directory (default next to each input)")
	f.BoolVar(&c.camel, "camel", false, "convert snake_case keys to camelCase")
	f.BoolVar(&c.dts, "dts", false, "emit a TypeScript .d.ts next to each output")
	f.BoolVar(&c.ndjson, "ndjson", false, "write newline-delimited JSON instead of an array")
	f.StringVar(&c.name, "name", "Row", "interface name for -dts")
}

func (c *jsonCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		slog.Error("json: -in is required")
		return subcommands.ExitUsageError
	}
	paths, err := csvio.Discover(c.in)
	if err != nil {
		slog.Error("json: resolve inputs", "error", err)
		return subcommands.ExitFailure
	}

	opts := saver.Options{CamelCase: c.camel, GenerateDTS: c.dts, InterfaceName: c.name}
	var sink saver.FrameSaver = saver.JSONSaver{Options: opts}
	if c.ndjson {
		sink = saver.NDJSONSaver{Options: opts}
	}

	for _, p := range paths {
		table, err := csvio.ReadFrame(p)
		if err != nil {
			slog.Error("json: read", "path", p, "error", err)
			return subcommands.ExitFailure
		}
		// epoch strings become numbers so downstream consumers get ints
		tsCol := "time"
		if !table.HasCol(tsCol) && table.HasCol("ts") {
			tsCol = "ts"
		}
		candle.CoerceTimeColumn(&table, tsCol)

		outPath := c.outPath(p, sink.Extension())
		if err := sink.Save(table, outPath); err != nil {
			slog.Error("json: save", "path", outPath, "error", err)
			return subcommands.ExitFailure
		}
		slog.Info("converted", "in", p, "out", outPath, "rows", table.NumRows())
	}
	return subcommands.ExitSuccess
}

func (c *jsonCmd) outPath(in, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	dir := c.out
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, stem+"."+ext)
}
