package candle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilFrame is returned when a nil frame is passed where a table is required.
var ErrNilFrame = errors.New("candle: frame must not be nil")

// MissingColumnsError reports required canonical columns absent after
// canonicalization, or a missing time column during deduplication.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// UnknownStrategyError reports an unrecognized dedupe strategy string.
type UnknownStrategyError struct {
	Strategy string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown dedupe strategy: %q", e.Strategy)
}
