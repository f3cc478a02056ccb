// Package indicator computes technical-indicator columns (ema, vwap, atr)
// onto a canonical candle table.
package indicator

import (
	"fmt"
	"log/slog"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/cinar/indicator/v2/volatility"
	"github.com/cinar/indicator/v2/volume"

	"tv-data/internal/frame"
)

// Options sets warm-up periods. Zero values take the library defaults.
type Options struct {
	EmaPeriod int
}

const defaultEmaPeriod = 20

// Enrich computes the named indicator columns from the frame's OHLCV data
// and appends them, front-padded with nulls for the warm-up rows. Unknown
// names are an error; an indicator whose inputs contain nulls is skipped
// with a warning since the series must be contiguous.
func Enrich(f *frame.Frame, names []string, opts Options) error {
	for _, name := range names {
		if f.HasCol(name) {
			slog.Debug("indicator column already present, kept", "indicator", name)
			continue
		}
		switch name {
		case "ema":
			period := opts.EmaPeriod
			if period <= 0 {
				period = defaultEmaPeriod
			}
			closing, ok := series(f, "close")
			if !ok {
				slog.Warn("indicator skipped, input has gaps", "indicator", "ema")
				continue
			}
			ema := trend.NewEmaWithPeriod[float64](period)
			out := helper.ChanToSlice(ema.Compute(helper.SliceToChan(closing)))
			addPadded(f, "ema", out)
		case "vwap":
			closing, okC := series(f, "close")
			volumes, okV := series(f, "volume")
			if !okC || !okV {
				slog.Warn("indicator skipped, input has gaps", "indicator", "vwap")
				continue
			}
			vwap := volume.NewVwap[float64]()
			out := helper.ChanToSlice(vwap.Compute(
				helper.SliceToChan(closing), helper.SliceToChan(volumes)))
			addPadded(f, "vwap", out)
		case "atr":
			high, okH := series(f, "high")
			low, okL := series(f, "low")
			closing, okC := series(f, "close")
			if !okH || !okL || !okC {
				slog.Warn("indicator skipped, input has gaps", "indicator", "atr")
				continue
			}
			atr := volatility.NewAtr[float64]()
			out := helper.ChanToSlice(atr.Compute(
				helper.SliceToChan(high), helper.SliceToChan(low), helper.SliceToChan(closing)))
			addPadded(f, "atr", out)
		default:
			return fmt.Errorf("unknown indicator %q (use: ema, vwap, atr)", name)
		}
	}
	return nil
}

// series extracts a full numeric column; a null or non-numeric cell anywhere
// makes the column unusable for indicator math.
func series(f *frame.Frame, name string) ([]float64, bool) {
	col := f.Col(name)
	if col < 0 {
		return nil, false
	}
	out := make([]float64, 0, f.NumRows())
	for _, row := range f.Rows {
		v, ok := row[col].Float()
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// addPadded appends values as a column, front-padding with nulls so the
// warm-up offset lines rows up with their candles.
func addPadded(f *frame.Frame, name string, values []float64) {
	padded := make([]frame.Value, f.NumRows())
	offset := f.NumRows() - len(values)
	for i := range padded {
		if i < offset {
			padded[i] = frame.Null()
		} else {
			padded[i] = frame.Float(values[i-offset])
		}
	}
	f.AddColumn(name, padded)
}
