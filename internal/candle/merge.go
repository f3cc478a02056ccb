package candle

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"tv-data/internal/frame"
)

// Loader resolves one merge input into a raw frame. Implementations live in
// the I/O collaborators (local CSV files, remote URLs); the merge engine only
// sees tables.
type Loader interface {
	Load(ctx context.Context) (*frame.Frame, error)
	Name() string
}

// FrameSource wraps an already-loaded frame as a Loader.
type FrameSource struct {
	Frame *frame.Frame
	Label string
}

func (s FrameSource) Load(context.Context) (*frame.Frame, error) { return s.Frame, nil }

func (s FrameSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "frame"
}

// Sort orders accepted by MergeFrames.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// MergeOptions controls MergeFrames.
type MergeOptions struct {
	DedupeStrategy string // defaults to DedupeLast
	DropIncomplete bool
	SortOrder      string // SortAsc unless SortDesc
	Indicators     []string
}

// MergeFrames loads every source, normalizes each independently, drops
// sources that normalize to empty, concatenates the rest in input order,
// deduplicates by timestamp, and sorts by time. Nil sources are skipped. No
// surviving rows at all yields an empty canonical frame, not an error.
func MergeFrames(ctx context.Context, sources []Loader, opts MergeOptions) (frame.Frame, error) {
	strategy := opts.DedupeStrategy
	if strategy == "" {
		strategy = DedupeLast
	}

	var parts []frame.Frame
	for _, src := range sources {
		if src == nil {
			continue
		}
		raw, err := src.Load(ctx)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("load %s: %w", src.Name(), err)
		}
		norm, err := Normalize(raw, NormalizeOptions{
			DropIncomplete: opts.DropIncomplete,
			Indicators:     opts.Indicators,
		})
		if err != nil {
			return frame.Frame{}, fmt.Errorf("normalize %s: %w", src.Name(), err)
		}
		if norm.NumRows() == 0 {
			slog.Debug("merge: source normalized to empty, dropped", "source", src.Name())
			continue
		}
		parts = append(parts, norm)
	}

	if len(parts) == 0 {
		return frame.New(frame.Required...), nil
	}

	combined := concat(parts)
	deduped, err := Deduplicate(combined, strategy)
	if err != nil {
		return frame.Frame{}, err
	}
	sortByTime(&deduped, opts.SortOrder == SortAsc || opts.SortOrder == "")
	return deduped, nil
}

// concat unions columns across parts in first-seen order; cells missing from
// a part are null.
func concat(parts []frame.Frame) frame.Frame {
	var columns []string
	seen := make(map[string]bool)
	for _, p := range parts {
		for _, c := range p.Columns {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	out := frame.New(columns...)
	for _, p := range parts {
		idx := make([]int, len(columns))
		for j, c := range columns {
			idx[j] = p.Col(c)
		}
		for _, row := range p.Rows {
			merged := make([]frame.Value, len(columns))
			for j, src := range idx {
				if src >= 0 {
					merged[j] = row[src]
				} else {
					merged[j] = frame.Null()
				}
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

// sortByTime stable-sorts rows by the time column. Null timestamps sort last
// in either direction.
func sortByTime(f *frame.Frame, asc bool) {
	col := f.Col("time")
	if col < 0 || f.NumRows() == 0 {
		return
	}
	sort.SliceStable(f.Rows, func(i, j int) bool {
		a, aok := f.Rows[i][col].Int()
		b, bok := f.Rows[j][col].Int()
		if !aok || !bok {
			return aok && !bok
		}
		if asc {
			return a < b
		}
		return a > b
	})
}
