package slicer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tv-data/internal/candle"
	"tv-data/internal/csvio"
	"tv-data/internal/frame"
)

func tsFrame(col string, times ...int64) frame.Frame {
	f := frame.New(col, "close")
	for _, ts := range times {
		f.Append([]frame.Value{frame.Int(ts), frame.Float(1)})
	}
	return f
}

func TestSliceFrameInclusiveBounds(t *testing.T) {
	f := tsFrame("time", 100, 200, 300, 400)
	out, err := SliceFrame(f, "", 200, 300)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
	first, _ := out.Rows[0][0].Int()
	last, _ := out.Rows[1][0].Int()
	assert.Equal(t, int64(200), first)
	assert.Equal(t, int64(300), last)
}

func TestSliceFrameTSFallback(t *testing.T) {
	f := tsFrame("ts", 100, 200)
	out, err := SliceFrame(f, "", 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}

func TestSliceFrameExplicitColumn(t *testing.T) {
	f := tsFrame("stamp", 100, 200)
	out, err := SliceFrame(f, "stamp", 150, 250)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}

func TestSliceFrameDropsNonNumeric(t *testing.T) {
	f := frame.New("time")
	f.Append([]frame.Value{frame.String("bad")})
	f.Append([]frame.Value{frame.Int(100)})
	out, err := SliceFrame(f, "", 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}

func TestSliceFrameMissingColumn(t *testing.T) {
	f := frame.New("close")
	_, err := SliceFrame(f, "", 0, 1)
	var mc *candle.MissingColumnsError
	assert.ErrorAs(t, err, &mc)
}

func TestSliceCSV(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(src, []byte("time,close\n100,1\n200,2\n300,3\n"), 0644))

	n, err := SliceCSV(src, 150, 300, out, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := csvio.ReadFrame(out)
	require.NoError(t, err)
	assert.Equal(t, 2, f.NumRows())
}

func TestSliceCSVChunked(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src,
		[]byte("time,close\n100,1\n200,2\n300,3\n400,4\n"), 0644))

	ranges := []Range{
		{StartTS: 100, EndTS: 200, OutPath: filepath.Join(dir, "a.csv")},
		{StartTS: 200, EndTS: 400, OutPath: filepath.Join(dir, "b.csv")},
	}
	counts, err := SliceCSVChunked(src, ranges, "")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, counts, "overlapping ranges both receive the shared row")

	a, err := csvio.ReadFrame(ranges[0].OutPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "close"}, a.Columns)
	assert.Equal(t, 2, a.NumRows())
}
