// Package slicer extracts inclusive timestamp ranges from candle tables and
// CSV files.
package slicer

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"tv-data/internal/candle"
	"tv-data/internal/csvio"
	"tv-data/internal/frame"
)

// timeColumn picks the timestamp column: the requested name when present,
// otherwise "time" then "ts". Chart exports disagree on which one they use.
func timeColumn(f frame.Frame, tsCol string) (int, error) {
	candidates := []string{tsCol, "time", "ts"}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if idx := f.Col(name); idx >= 0 {
			return idx, nil
		}
	}
	want := tsCol
	if want == "" {
		want = "time"
	}
	return -1, &candle.MissingColumnsError{Columns: []string{want}}
}

// SliceFrame returns the rows whose timestamp falls in [startTS, endTS],
// inclusive on both ends. Rows with a non-numeric timestamp are dropped.
func SliceFrame(f frame.Frame, tsCol string, startTS, endTS int64) (frame.Frame, error) {
	col, err := timeColumn(f, tsCol)
	if err != nil {
		return frame.Frame{}, err
	}
	out := frame.New(f.Columns...)
	for _, row := range f.Rows {
		ts, ok := row[col].Int()
		if !ok {
			continue
		}
		if ts >= startTS && ts <= endTS {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// SliceCSV slices one CSV file into outPath and returns the number of rows
// written.
func SliceCSV(path string, startTS, endTS int64, outPath, tsCol string) (int, error) {
	f, err := csvio.ReadFrame(path)
	if err != nil {
		return 0, err
	}
	sliced, err := SliceFrame(f, tsCol, startTS, endTS)
	if err != nil {
		return 0, err
	}
	if err := csvio.WriteFrame(sliced, outPath); err != nil {
		return 0, err
	}
	return sliced.NumRows(), nil
}

// Range is one output of a chunked slice: rows in [StartTS, EndTS] go to
// OutPath. Ranges may overlap; a row can land in several outputs.
type Range struct {
	StartTS int64
	EndTS   int64
	OutPath string
}

// SliceCSVChunked streams the source CSV once and routes each row to every
// matching range, so a large merged file is never held in memory. Returns
// per-range row counts in input order.
func SliceCSVChunked(path string, ranges []Range, tsCol string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cr := csvio.NewReader(file)
	header, err := cr.Read()
	if err == io.EOF {
		header = nil
	} else if err != nil {
		return nil, err
	}

	headerFrame := frame.New(header...)
	col, err := timeColumn(headerFrame, tsCol)
	if err != nil {
		return nil, err
	}

	bufs := make([]*bytes.Buffer, len(ranges))
	writers := make([]*csv.Writer, len(ranges))
	counts := make([]int, len(ranges))
	for i := range ranges {
		bufs[i] = &bytes.Buffer{}
		writers[i] = csv.NewWriter(bufs[i])
		if err := writers[i].Write(header); err != nil {
			return nil, err
		}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if col >= len(record) {
			continue
		}
		ts, ok := frame.String(record[col]).Int()
		if !ok {
			continue
		}
		for i, r := range ranges {
			if ts >= r.StartTS && ts <= r.EndTS {
				if err := writers[i].Write(record); err != nil {
					return nil, err
				}
				counts[i]++
			}
		}
	}

	for i := range ranges {
		writers[i].Flush()
		if err := writers[i].Error(); err != nil {
			return nil, err
		}
		if err := csvio.WriteFileAtomic(ranges[i].OutPath, bufs[i].Bytes()); err != nil {
			return nil, err
		}
	}
	return counts, nil
}
