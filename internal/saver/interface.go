package saver

import (
	"fmt"
	"strings"

	"tv-data/internal/frame"
)

// FrameSaver is the abstraction for persisting one candle table. High-level
// code (cmd) injects the implementation; the pipeline only depends on the
// interface.
type FrameSaver interface {
	Save(f frame.Frame, path string) error
	Extension() string
}

// Options tunes the JSON-family savers. CSV and parquet ignore them.
type Options struct {
	CamelCase     bool   // snake_case column names -> camelCase keys
	GenerateDTS   bool   // write a TypeScript .d.ts next to each output
	InterfaceName string // interface name for the .d.ts, default "Row"
}

// NewFrameSaver creates an implementation by format (csv, json, ndjson,
// parquet). Returns nil if format not supported.
func NewFrameSaver(format string, opts Options) FrameSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{Options: opts}
	case "ndjson":
		return NDJSONSaver{Options: opts}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// MustFrameSaver is NewFrameSaver but panics on an unsupported format.
func MustFrameSaver(format string, opts Options) FrameSaver {
	s := NewFrameSaver(format, opts)
	if s == nil {
		panic(fmt.Sprintf("saver: unsupported format %q (use: csv, json, ndjson, parquet)", format))
	}
	return s
}
