// Package extract cuts per-window CSVs out of a merged candle file, driven
// by a parsed pattern file. Failures in one window do not abort the run when
// continue-on-error is set; a run report records both lists.
package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tv-data/internal/csvio"
	"tv-data/internal/pattern"
	"tv-data/internal/saver"
	"tv-data/internal/slicer"
)

// Options controls one extraction run.
type Options struct {
	Numbered        bool
	Prefix          string
	Pad             int
	Force           bool
	ContinueOnError bool
	TSColumn        string
	Saver           saver.FrameSaver // nil means CSV
}

// Result is one produced window file.
type Result struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// Run slices srcCSV into one file per window under outDir. Existing outputs
// are skipped unless Force. Returns the produced files; with
// ContinueOnError, per-window failures land in the run report instead of
// aborting.
func Run(srcCSV string, windows []pattern.Window, outDir string, opts Options) ([]Result, error) {
	f, err := csvio.ReadFrame(srcCSV)
	if err != nil {
		return nil, err
	}
	sink := opts.Saver
	if sink == nil {
		sink = saver.CSVSaver{}
	}
	stem := strings.TrimSuffix(filepath.Base(srcCSV), filepath.Ext(srcCSV))

	var results []Result
	var successList []string
	var failedList []failedEntry
	defer func() {
		if len(successList) > 0 || len(failedList) > 0 {
			if err := writeRunReport(outDir, successList, failedList); err != nil {
				slog.Warn("could not write run report", "error", err)
			}
		}
	}()

	for i, w := range windows {
		name := pattern.WindowFilename(stem, w, opts.Numbered, i+1, opts.Prefix, opts.Pad)
		if ext := sink.Extension(); ext != "csv" {
			name = strings.TrimSuffix(name, ".csv") + "." + ext
		}
		outPath := filepath.Join(outDir, name)

		if !opts.Force {
			if _, err := os.Stat(outPath); err == nil {
				slog.Info("window exists, skip", "path", outPath)
				continue
			}
		}

		sliced, err := slicer.SliceFrame(f, opts.TSColumn, w.StartTS, w.EndTS)
		if err == nil {
			err = sink.Save(sliced, outPath)
		}
		if err != nil {
			failedList = append(failedList, failedEntry{
				Window: windowLabel(w),
				Reason: err.Error(),
			})
			slog.Error("window fail", "window", windowLabel(w), "reason", err)
			if !opts.ContinueOnError {
				return results, err
			}
			continue
		}
		slog.Info("window ok", "path", outPath, "rows", sliced.NumRows())
		successList = append(successList, outPath)
		results = append(results, Result{Path: outPath, Rows: sliced.NumRows()})
	}

	slog.Info("extract done", "success", len(successList), "failed", len(failedList))
	if len(failedList) > 0 {
		slog.Info("extract failures", "count", len(failedList), "reasons", joinFailedReasons(failedList))
	}
	return results, nil
}

func windowLabel(w pattern.Window) string {
	return fmt.Sprintf("%s %s..%s", w.Date, w.Start, w.End)
}
