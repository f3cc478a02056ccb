package candle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tv-data/internal/frame"
)

func rawFrame(rows ...[]frame.Value) *frame.Frame {
	f := frame.New("time", "open", "high", "low", "close", "volume")
	for _, r := range rows {
		f.Append(r)
	}
	return &f
}

func strRow(vals ...string) []frame.Value {
	row := make([]frame.Value, len(vals))
	for i, v := range vals {
		if v == "" {
			row[i] = frame.Null()
		} else {
			row[i] = frame.String(v)
		}
	}
	return row
}

func TestNormalizeNilFrame(t *testing.T) {
	_, err := Normalize(nil, NormalizeOptions{})
	assert.ErrorIs(t, err, ErrNilFrame)
}

func TestNormalizeEmptyFrame(t *testing.T) {
	f := frame.New("whatever")
	out, err := Normalize(&f, NormalizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, frame.Required, out.Columns)
	assert.Zero(t, out.NumRows())
}

func TestNormalizeMissingColumnsListsAll(t *testing.T) {
	f := frame.New("time")
	f.Append([]frame.Value{frame.String("100")})

	_, err := Normalize(&f, NormalizeOptions{})
	var mc *MissingColumnsError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, []string{"open", "high", "low", "close", "volume"}, mc.Columns)
}

func TestNormalizeMillisecondTimestamps(t *testing.T) {
	f := rawFrame(
		strRow("1736722800000", "1", "2", "0.5", "1.5", "10"),
		strRow("1736722860000", "1", "2", "0.5", "1.5", "11"),
		strRow("1736722920000", "1", "2", "0.5", "1.5", "12"),
	)
	out, err := Normalize(f, NormalizeOptions{})
	require.NoError(t, err)

	ts, ok := out.Rows[0][out.Col("time")].Int()
	require.True(t, ok)
	assert.Equal(t, int64(1736722800), ts)
}

func TestNormalizeSecondTimestampsUntouched(t *testing.T) {
	f := rawFrame(strRow("1736722800", "1", "2", "0.5", "1.5", "10"))
	out, err := Normalize(f, NormalizeOptions{})
	require.NoError(t, err)

	ts, _ := out.Rows[0][out.Col("time")].Int()
	assert.Equal(t, int64(1736722800), ts)
}

func TestNormalizeNonNumericTimeLeftNull(t *testing.T) {
	f := rawFrame(
		strRow("2024-01-01", "1", "2", "0.5", "1.5", "10"),
		strRow("2024-01-02", "1", "2", "0.5", "1.5", "11"),
	)
	out, err := Normalize(f, NormalizeOptions{})
	require.NoError(t, err)
	for _, row := range out.Rows {
		assert.True(t, row[out.Col("time")].IsNull())
	}
}

func TestNormalizeCoercesTypes(t *testing.T) {
	f := rawFrame(strRow("100", "1.5", "garbage", "0.5", "", "7.0"))
	out, err := Normalize(f, NormalizeOptions{})
	require.NoError(t, err)

	row := out.Rows[0]
	open, ok := row[out.Col("open")].Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, open)
	assert.True(t, row[out.Col("high")].IsNull(), "unparseable float becomes null")
	assert.True(t, row[out.Col("close")].IsNull())

	vol, ok := row[out.Col("volume")].Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), vol, "float-formatted volume floors to int")
}

func TestNormalizeDropIncomplete(t *testing.T) {
	f := rawFrame(
		strRow("100", "1", "2", "0.5", "1.5", "10"),
		strRow("200", "", "2", "0.5", "1.5", "10"),
		strRow("300", "1", "2", "0.5", "1.5", ""),
	)
	out, err := Normalize(f, NormalizeOptions{DropIncomplete: true})
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}

func TestNormalizeIndicatorColumns(t *testing.T) {
	f := frame.New("time", "open", "high", "low", "close", "volume", "ema", "custom")
	f.Append(strRow("100", "1", "2", "0.5", "1.5", "10", "1.23", "keep"))

	out, err := Normalize(&f, NormalizeOptions{})
	require.NoError(t, err)

	ema, ok := out.Rows[0][out.Col("ema")].Float()
	require.True(t, ok, "auto-detected indicator coerced to float")
	assert.Equal(t, 1.23, ema)
	assert.Equal(t, "keep", out.Rows[0][out.Col("custom")].String(), "unknown columns pass through untouched")
}

func TestNormalizeExplicitIndicatorList(t *testing.T) {
	f := frame.New("time", "open", "high", "low", "close", "volume", "ema", "vwap")
	f.Append(strRow("100", "1", "2", "0.5", "1.5", "10", "1.23", "4.56"))

	out, err := Normalize(&f, NormalizeOptions{Indicators: []string{"vwap", "nonexistent"}})
	require.NoError(t, err)

	_, ok := out.Rows[0][out.Col("vwap")].Float()
	assert.True(t, ok)
	assert.Equal(t, frame.KindString, out.Rows[0][out.Col("ema")].Kind(), "ema not in explicit list stays raw")
}

func TestNormalizeIdempotent(t *testing.T) {
	f := rawFrame(
		strRow("1736722800000", "1", "2", "0.5", "1.5", "10"),
		strRow("1736722860000", "", "2", "0.5", "1.5", ""),
	)
	once, err := Normalize(f, NormalizeOptions{})
	require.NoError(t, err)
	twice, err := Normalize(&once, NormalizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
