package csvio

import (
	"context"
	"path/filepath"

	"tv-data/internal/frame"
)

// FileSource loads one CSV file as a merge input.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (*frame.Frame, error) {
	f, err := ReadFrame(s.Path)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s FileSource) Name() string { return filepath.Base(s.Path) }
