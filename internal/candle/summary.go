package candle

import "tv-data/internal/frame"

// Summary is a small derived view over a canonical frame. StartTime and
// EndTime are nil when the frame is empty or its time column is all null.
type Summary struct {
	Rows       int    `json:"rows"`
	StartTime  *int64 `json:"start_time"`
	EndTime    *int64 `json:"end_time"`
	Duplicates int    `json:"duplicates"`
}

// Summarize computes the Summary view. Pure and idempotent: it never mutates
// the frame and always returns the same result for the same input.
func Summarize(f frame.Frame) Summary {
	s := Summary{Rows: f.NumRows()}
	col := f.Col("time")
	if col < 0 || f.NumRows() == 0 {
		return s
	}

	seen := make(map[string]bool)
	var minTS, maxTS int64
	var found bool
	for _, row := range f.Rows {
		key := row[col].String()
		if seen[key] {
			s.Duplicates++
		}
		seen[key] = true

		ts, ok := row[col].Int()
		if !ok {
			continue
		}
		if !found || ts < minTS {
			minTS = ts
		}
		if !found || ts > maxTS {
			maxTS = ts
		}
		found = true
	}
	if found {
		start, end := minTS, maxTS
		s.StartTime = &start
		s.EndTime = &end
	}
	return s
}
