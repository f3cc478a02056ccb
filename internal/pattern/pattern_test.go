package pattern

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tv-data/internal/timewin"
)

type stubResolver struct {
	available bool
}

func (stubResolver) Resolve(string) (*time.Location, error) {
	return nil, errors.New("unresolvable")
}

func (r stubResolver) Available() bool { return r.available }

func TestParseLinesSkipsHeaderAndBlanks(t *testing.T) {
	lines := []string{
		"Date,Start,Entry,Exit,End",
		"10/13/24,17:00,18:30,2:00,7:00",
		"",
		"10/15/24,17:00,19:00,21:00,7:00",
	}
	windows, err := ParseLines(lines, "UTC")
	require.NoError(t, err)
	require.Len(t, windows, 2)

	w := windows[0]
	assert.Equal(t, "10/13/24", w.Date)
	assert.Equal(t, time.Date(2024, 10, 13, 17, 0, 0, 0, time.UTC).Unix(), w.StartTS)
	assert.Equal(t, time.Date(2024, 10, 14, 7, 0, 0, 0, time.UTC).Unix(), w.EndTS)
}

func TestParseLinesHeaderAfterBlankLines(t *testing.T) {
	lines := []string{
		"",
		"Date,Start,Entry,Exit,End",
		"10/13/24,17:00,18:30,2:00,7:00",
	}
	windows, err := ParseLines(lines, "UTC")
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "10/13/24", windows[0].Date)
}

func TestParseLinesHeaderOnlyOnFirstDataLine(t *testing.T) {
	// "date" later in the file is not a header; it must fail to parse
	lines := []string{
		"10/13/24,17:00,18:30,2:00,7:00",
		"date,start,entry,exit,end",
	}
	_, err := ParseLines(lines, "UTC")
	require.Error(t, err)
}

func TestParseLinesMalformed(t *testing.T) {
	_, err := ParseLines([]string{"10/13/24,17:00,18:30"}, "UTC")
	var ml *MalformedLineError
	require.ErrorAs(t, err, &ml)
	assert.Contains(t, ml.Error(), "10/13/24,17:00,18:30", "raw line echoed")
}

func TestParseLinesBadDate(t *testing.T) {
	_, err := ParseLines([]string{"13-10-2024,17:00,18:30,2:00,7:00"}, "UTC")
	require.Error(t, err)
}

func TestTimestampRecordsAlignment(t *testing.T) {
	// exit 2:00 resolves on the window date, before the 17:00 start, and must
	// be shifted one day forward into the overnight session
	lines := []string{"10/13/24,17:00,18:30,2:00,7:00"}
	records, err := TimestampRecords(lines, "UTC")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, time.Date(2024, 10, 13, 18, 30, 0, 0, time.UTC).Unix(), r.Entry)
	assert.Equal(t, time.Date(2024, 10, 14, 2, 0, 0, 0, time.UTC).Unix(), r.Exit)
	assert.GreaterOrEqual(t, r.Entry, r.Start)
	assert.LessOrEqual(t, r.Exit, r.End)
}

func TestParseLinesWithResolver(t *testing.T) {
	lines := []string{"10/13/24,17:00,18:30,2:00,7:00"}

	// no timezone database on the host: windows degrade to UTC, no error
	windows, err := ParseLinesWith(lines, "America/Chicago", stubResolver{available: false})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, time.Date(2024, 10, 13, 17, 0, 0, 0, time.UTC).Unix(), windows[0].StartTS)

	// database present but the zone cannot be resolved: hard error
	_, err = ParseLinesWith(lines, "America/Chicago", stubResolver{available: true})
	var uz *timewin.UnknownZoneError
	require.ErrorAs(t, err, &uz)
}

func TestTimestampRecordsWithResolver(t *testing.T) {
	lines := []string{"10/13/24,17:00,18:30,2:00,7:00"}
	records, err := TimestampRecordsWith(lines, "America/Chicago", stubResolver{available: false})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.GreaterOrEqual(t, records[0].Entry, records[0].Start)
}

func TestWindowFilenameNumbered(t *testing.T) {
	w := Window{Date: "10/13/24", Start: "17:00", End: "7:00"}
	assert.Equal(t, "pattern007.csv", WindowFilename("es-1m", w, true, 7, "", 0))
	assert.Equal(t, "win0012.csv", WindowFilename("es-1m", w, true, 12, "win", 4))
}

func TestWindowFilenameDescriptive(t *testing.T) {
	w := Window{Date: "10/13/24", Start: "17:00", End: "7:00"}
	assert.Equal(t, "es-1m_2024-10-13_17-00__07-00.csv", WindowFilename("es-1m", w, false, 1, "", 0))
}
