package candle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tv-data/internal/frame"
)

func TestSummarize(t *testing.T) {
	f := *ohlcvFrame(300, 100, 100, 200)
	s := Summarize(f)

	assert.Equal(t, 4, s.Rows)
	require.NotNil(t, s.StartTime)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, int64(100), *s.StartTime)
	assert.Equal(t, int64(300), *s.EndTime)
	assert.Equal(t, 1, s.Duplicates)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(frame.New(frame.Required...))
	assert.Zero(t, s.Rows)
	assert.Nil(t, s.StartTime)
	assert.Nil(t, s.EndTime)
}

func TestSummarizePure(t *testing.T) {
	f := *ohlcvFrame(1, 2)
	first := Summarize(f)
	second := Summarize(f)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, f.NumRows())
}
