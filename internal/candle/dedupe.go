package candle

import (
	"sort"

	"tv-data/internal/frame"
)

// Dedupe strategies accepted by Deduplicate.
const (
	DedupeLast      = "last"
	DedupeFirst     = "first"
	DedupeMaxVolume = "max_volume"
)

// Deduplicate collapses rows sharing a timestamp according to strategy.
// Surviving rows keep their ascending original order; the result is not
// re-sorted by time. max_volume requires the volume column; rows with a null
// volume never win and a group whose volumes are all null (or whose time is
// null) contributes no row; volume ties keep the first occurrence.
func Deduplicate(f frame.Frame, strategy string) (frame.Frame, error) {
	if f.NumRows() == 0 {
		return f, nil
	}
	timeCol := f.Col("time")
	if timeCol < 0 {
		return frame.Frame{}, &MissingColumnsError{Columns: []string{"time"}}
	}

	var keep []int
	switch strategy {
	case DedupeLast, DedupeFirst:
		chosen := make(map[string]int)
		var order []string
		for i, row := range f.Rows {
			key := row[timeCol].String()
			if _, seen := chosen[key]; !seen {
				order = append(order, key)
				chosen[key] = i
			} else if strategy == DedupeLast {
				chosen[key] = i
			}
		}
		for _, key := range order {
			keep = append(keep, chosen[key])
		}
	case DedupeMaxVolume:
		volCol := f.Col("volume")
		if volCol < 0 {
			return frame.Frame{}, &MissingColumnsError{Columns: []string{"volume"}}
		}
		chosen := make(map[int64]int)
		var order []int64
		for i, row := range f.Rows {
			ts, ok := row[timeCol].Int()
			if !ok {
				continue
			}
			if row[volCol].IsNull() {
				continue
			}
			vol, ok := row[volCol].Int()
			if !ok {
				continue
			}
			best, seen := chosen[ts]
			if !seen {
				order = append(order, ts)
				chosen[ts] = i
				continue
			}
			bestVol, _ := f.Rows[best][volCol].Int()
			if vol > bestVol {
				chosen[ts] = i
			}
		}
		for _, ts := range order {
			keep = append(keep, chosen[ts])
		}
	default:
		return frame.Frame{}, &UnknownStrategyError{Strategy: strategy}
	}

	sort.Ints(keep)
	out := frame.New(f.Columns...)
	for _, idx := range keep {
		out.Rows = append(out.Rows, f.Rows[idx])
	}
	return out, nil
}
