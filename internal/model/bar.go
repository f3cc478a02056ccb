package model

import "tv-data/internal/frame"

// Bar is one canonical OHLCV candle in typed form, for sinks that need a
// static schema (parquet). Pointer fields are absent when null.
type Bar struct {
	Time   int64    `json:"t" parquet:"t"` // Unix timestamp in seconds
	Open   *float64 `json:"o" parquet:"o,optional"`
	High   *float64 `json:"h" parquet:"h,optional"`
	Low    *float64 `json:"l" parquet:"l,optional"`
	Close  *float64 `json:"c" parquet:"c,optional"`
	Volume *int64   `json:"v" parquet:"v,optional"`
	EMA    *float64 `json:"ema,omitempty" parquet:"ema,optional"`
	VWAP   *float64 `json:"vwap,omitempty" parquet:"vwap,optional"`
	ATR    *float64 `json:"atr,omitempty" parquet:"atr,optional"`
}

// BarsFromFrame converts a canonical frame into typed bars. Rows whose time
// cell is not an integer are skipped; extra columns beyond the known schema
// are ignored.
func BarsFromFrame(f frame.Frame) []Bar {
	cols := map[string]int{}
	for _, name := range []string{"time", "open", "high", "low", "close", "volume", "ema", "vwap", "atr"} {
		cols[name] = f.Col(name)
	}
	bars := make([]Bar, 0, f.NumRows())
	for _, row := range f.Rows {
		t, ok := cell(row, cols["time"]).Int()
		if !ok {
			continue
		}
		b := Bar{Time: t}
		b.Open = floatPtr(cell(row, cols["open"]))
		b.High = floatPtr(cell(row, cols["high"]))
		b.Low = floatPtr(cell(row, cols["low"]))
		b.Close = floatPtr(cell(row, cols["close"]))
		b.Volume = intPtr(cell(row, cols["volume"]))
		b.EMA = floatPtr(cell(row, cols["ema"]))
		b.VWAP = floatPtr(cell(row, cols["vwap"]))
		b.ATR = floatPtr(cell(row, cols["atr"]))
		bars = append(bars, b)
	}
	return bars
}

func cell(row []frame.Value, col int) frame.Value {
	if col < 0 || col >= len(row) {
		return frame.Null()
	}
	return row[col]
}

func floatPtr(v frame.Value) *float64 {
	f, ok := v.Float()
	if !ok {
		return nil
	}
	return &f
}

func intPtr(v frame.Value) *int64 {
	i, ok := v.Int()
	if !ok {
		return nil
	}
	return &i
}
