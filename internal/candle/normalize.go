package candle

import (
	"log/slog"
	"math"

	"github.com/montanaflynn/stats"

	"tv-data/internal/frame"
)

// msThreshold: time medians above this are treated as millisecond epochs.
const msThreshold = 1e12

// DefaultIndicators are the indicator columns auto-detected during
// normalization when no explicit list is given.
var DefaultIndicators = []string{"ema", "vwap", "atr"}

// NormalizeOptions controls Normalize behavior.
type NormalizeOptions struct {
	// DropIncomplete removes rows with a null in any required column.
	DropIncomplete bool
	// Indicators lists indicator columns to coerce to nullable float.
	// nil means auto-detect DefaultIndicators among present columns; an
	// explicit list coerces only its intersection with present columns.
	Indicators []string
}

// Normalize canonicalizes column names, coalesces duplicates, and coerces the
// canonical candle schema: time to integer epoch seconds (millisecond inputs
// detected by median and floor-divided by 1000), open/high/low/close to
// nullable float, volume to nullable int, indicator columns to nullable
// float. Idempotent on frames that already satisfy the canonical schema.
func Normalize(f *frame.Frame, opts NormalizeOptions) (frame.Frame, error) {
	if f == nil {
		return frame.Frame{}, ErrNilFrame
	}
	if f.NumRows() == 0 {
		return frame.New(frame.Required...), nil
	}

	work := frame.Canonicalize(*f)

	var missing []string
	for _, c := range frame.Required {
		if !work.HasCol(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return frame.Frame{}, &MissingColumnsError{Columns: missing}
	}

	coerceTime(&work, "time")

	for _, c := range []string{"open", "high", "low", "close"} {
		coerceFloat(&work, work.Col(c))
	}
	coerceInt(&work, work.Col("volume"))

	if opts.DropIncomplete {
		dropped := dropIncomplete(&work)
		slog.Debug("normalize: dropped incomplete rows", "count", dropped)
	}

	for _, name := range indicatorTargets(work, opts.Indicators) {
		coerceFloat(&work, work.Col(name))
	}

	return work, nil
}

// indicatorTargets resolves which indicator columns to coerce. Requested
// names not present in the frame are silently ignored.
func indicatorTargets(f frame.Frame, requested []string) []string {
	candidates := requested
	if candidates == nil {
		candidates = DefaultIndicators
	}
	var out []string
	for _, name := range candidates {
		if f.HasCol(name) {
			out = append(out, name)
		}
	}
	return out
}

// coerceTime rewrites the named column to integer epoch seconds. The
// second-vs-millisecond decision is made once per table from a single median
// over the numeric cells; a table never mixes units. A column with no
// numeric cell at all is left entirely null.
func coerceTime(f *frame.Frame, name string) {
	col := f.Col(name)
	if col < 0 {
		return
	}
	var numeric []float64
	for _, row := range f.Rows {
		if v, ok := row[col].Float(); ok {
			numeric = append(numeric, v)
		}
	}
	if len(numeric) == 0 {
		for _, row := range f.Rows {
			row[col] = frame.Null()
		}
		return
	}
	median, err := stats.Median(numeric)
	if err != nil {
		return
	}
	ms := median > msThreshold
	if ms {
		slog.Debug("normalize: converted timestamps from ms to s")
	}
	for _, row := range f.Rows {
		v, ok := row[col].Float()
		if !ok {
			row[col] = frame.Null()
			continue
		}
		if ms {
			row[col] = frame.Int(int64(math.Floor(v / 1000)))
		} else {
			row[col] = frame.Int(int64(math.Floor(v)))
		}
	}
}

func coerceFloat(f *frame.Frame, col int) {
	if col < 0 {
		return
	}
	for _, row := range f.Rows {
		if v, ok := row[col].Float(); ok {
			row[col] = frame.Float(v)
		} else {
			row[col] = frame.Null()
		}
	}
}

func coerceInt(f *frame.Frame, col int) {
	if col < 0 {
		return
	}
	for _, row := range f.Rows {
		if v, ok := row[col].Int(); ok {
			row[col] = frame.Int(v)
		} else {
			row[col] = frame.Null()
		}
	}
}

// dropIncomplete removes rows with a null in any required column and returns
// the number of rows removed.
func dropIncomplete(f *frame.Frame) int {
	cols := make([]int, 0, len(frame.Required))
	for _, c := range frame.Required {
		if idx := f.Col(c); idx >= 0 {
			cols = append(cols, idx)
		}
	}
	kept := f.Rows[:0]
	dropped := 0
	for _, row := range f.Rows {
		complete := true
		for _, idx := range cols {
			if row[idx].IsNull() {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		} else {
			dropped++
		}
	}
	f.Rows = kept
	return dropped
}

// CoerceTimeColumn applies the same once-per-table unit heuristic used by
// Normalize to an arbitrary frame, for callers converting raw CSVs that never
// go through full normalization. Missing column is a no-op.
func CoerceTimeColumn(f *frame.Frame, name string) {
	coerceTime(f, name)
}
