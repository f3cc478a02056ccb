package saver

import (
	"tv-data/internal/csvio"
	"tv-data/internal/frame"
)

// CSVSaver persists the table as CSV, columns in frame order.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(f frame.Frame, path string) error {
	return csvio.WriteFrame(f, path)
}
