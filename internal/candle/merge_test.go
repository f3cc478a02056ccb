package candle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tv-data/internal/frame"
)

func ohlcvFrame(times ...int64) *frame.Frame {
	f := frame.New("time", "open", "high", "low", "close", "volume")
	for _, ts := range times {
		f.Append([]frame.Value{
			frame.Int(ts), frame.Float(1), frame.Float(2),
			frame.Float(0.5), frame.Float(1.5), frame.Int(10),
		})
	}
	return &f
}

func times(t *testing.T, f frame.Frame) []int64 {
	t.Helper()
	col := f.Col("time")
	out := make([]int64, 0, f.NumRows())
	for _, row := range f.Rows {
		ts, ok := row[col].Int()
		require.True(t, ok)
		out = append(out, ts)
	}
	return out
}

type failSource struct{}

func (failSource) Load(context.Context) (*frame.Frame, error) {
	return nil, errors.New("boom")
}
func (failSource) Name() string { return "fail" }

func TestMergeFramesSortsAscending(t *testing.T) {
	sources := []Loader{
		FrameSource{Frame: ohlcvFrame(4000, 3940)},
		FrameSource{Frame: ohlcvFrame(4060)},
	}
	out, err := MergeFrames(context.Background(), sources, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{3940, 4000, 4060}, times(t, out))
}

func TestMergeFramesDescending(t *testing.T) {
	sources := []Loader{FrameSource{Frame: ohlcvFrame(1, 3, 2)}}
	out, err := MergeFrames(context.Background(), sources, MergeOptions{SortOrder: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, times(t, out))
}

func TestMergeFramesLastSourceWinsOnOverlap(t *testing.T) {
	a := frame.New("time", "open", "high", "low", "close", "volume")
	a.Append([]frame.Value{frame.Int(100), frame.Float(1), frame.Float(1), frame.Float(1), frame.Float(1), frame.Int(1)})
	b := frame.New("time", "open", "high", "low", "close", "volume")
	b.Append([]frame.Value{frame.Int(100), frame.Float(9), frame.Float(9), frame.Float(9), frame.Float(9), frame.Int(9)})

	out, err := MergeFrames(context.Background(),
		[]Loader{FrameSource{Frame: &a}, FrameSource{Frame: &b}}, MergeOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	open, _ := out.Rows[0][out.Col("open")].Float()
	assert.Equal(t, 9.0, open, "default strategy keeps the later source's row")
}

func TestMergeFramesSkipsNilAndEmptySources(t *testing.T) {
	empty := frame.New("time", "open", "high", "low", "close", "volume")
	sources := []Loader{nil, FrameSource{Frame: &empty}, FrameSource{Frame: ohlcvFrame(50)}}
	out, err := MergeFrames(context.Background(), sources, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{50}, times(t, out))
}

func TestMergeFramesNoSurvivors(t *testing.T) {
	out, err := MergeFrames(context.Background(), nil, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, frame.Required, out.Columns)
	assert.Zero(t, out.NumRows())
}

func TestMergeFramesLoadError(t *testing.T) {
	_, err := MergeFrames(context.Background(), []Loader{failSource{}}, MergeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fail")
}

func TestMergeFramesUnknownStrategy(t *testing.T) {
	sources := []Loader{FrameSource{Frame: ohlcvFrame(1)}}
	_, err := MergeFrames(context.Background(), sources, MergeOptions{DedupeStrategy: "bogus"})
	var us *UnknownStrategyError
	assert.ErrorAs(t, err, &us)
}

func TestMergeFramesColumnUnion(t *testing.T) {
	a := frame.New("time", "open", "high", "low", "close", "volume", "ema")
	a.Append([]frame.Value{frame.Int(1), frame.Float(1), frame.Float(1), frame.Float(1), frame.Float(1), frame.Int(1), frame.Float(0.5)})
	b := ohlcvFrame(2)

	out, err := MergeFrames(context.Background(),
		[]Loader{FrameSource{Frame: &a}, FrameSource{Frame: b}}, MergeOptions{})
	require.NoError(t, err)
	require.True(t, out.HasCol("ema"))
	assert.True(t, out.Rows[1][out.Col("ema")].IsNull(), "source without the column gets nulls")
}
