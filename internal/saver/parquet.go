package saver

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"tv-data/internal/frame"
	"tv-data/internal/model"
)

// ParquetSaver persists the table as Parquet using the typed bar schema.
// Columns outside the schema are dropped; use csv or json for passthrough.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(f frame.Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	bars := model.BarsFromFrame(f)
	tmp := path + ".tmp"
	if err := parquet.WriteFile(tmp, bars); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
