// Package pattern parses trading-pattern files: one comma-separated line per
// session window, `date,start,entry,exit,end`, dates as MM/DD/YY(YY) and
// times as 24-hour wall clock in a configured timezone.
package pattern

import (
	"fmt"
	"strings"

	"tv-data/internal/timewin"
)

// MalformedLineError reports a pattern line with too few fields. The raw
// line is echoed so the offending row is findable in the source file.
type MalformedLineError struct {
	Line string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed pattern line (want date,start,entry,exit,end): %q", e.Line)
}

// Window is one resolved session window.
type Window struct {
	Date  string // MM/DD/YY(YY), as written
	Start string // wall clock HH:MM
	End   string // wall clock HH:MM
	Entry string // wall clock HH:MM
	Exit  string // wall clock HH:MM

	StartTS int64 // epoch seconds, inclusive
	EndTS   int64 // epoch seconds, inclusive; always > StartTS
}

// Record is the JSON form of a resolved window with the entry and exit
// instants aligned into [Start, End].
type Record struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
	Entry int64 `json:"entry"`
	Exit  int64 `json:"exit"`
}

// ParseLines parses pattern lines into windows, resolving each window's
// endpoints in zone. Blank lines are ignored; the first non-blank line is
// skipped as a header when it contains "date". A line with fewer than five
// fields is a hard error echoing the raw line.
func ParseLines(lines []string, zone string) ([]Window, error) {
	return ParseLinesWith(lines, zone, nil)
}

// ParseLinesWith is ParseLines with an injected zone resolver, for callers
// running on hosts whose timezone capability differs from the default.
func ParseLinesWith(lines []string, zone string, resolver timewin.ZoneResolver) ([]Window, error) {
	var windows []Window
	first := true
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.Contains(strings.ToLower(line), "date") {
				continue
			}
		}
		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			return nil, &MalformedLineError{Line: raw}
		}
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		w := Window{
			Date:  fields[0],
			Start: fields[1],
			Entry: fields[2],
			Exit:  fields[3],
			End:   fields[4],
		}
		startTS, endTS, err := timewin.WindowStartEndIn(w.Date, w.Start, w.End, zone, false, resolver)
		if err != nil {
			return nil, err
		}
		w.StartTS = startTS
		w.EndTS = endTS
		windows = append(windows, w)
	}
	return windows, nil
}

// TimestampRecords resolves pattern lines into records with entry and exit
// converted on the window's calendar date and then day-shifted into the
// window, so an exit clock past midnight lands on the following day.
func TimestampRecords(lines []string, zone string) ([]Record, error) {
	return TimestampRecordsWith(lines, zone, nil)
}

// TimestampRecordsWith is TimestampRecords with an injected zone resolver.
func TimestampRecordsWith(lines []string, zone string, resolver timewin.ZoneResolver) ([]Record, error) {
	windows, err := ParseLinesWith(lines, zone, resolver)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(windows))
	for _, w := range windows {
		entry, err := timewin.ToTimestampIn(w.Date, w.Entry, zone, nil, resolver)
		if err != nil {
			return nil, err
		}
		exit, err := timewin.ToTimestampIn(w.Date, w.Exit, zone, nil, resolver)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Start: w.StartTS,
			End:   w.EndTS,
			Entry: timewin.AlignIntoWindow(entry, w.StartTS, w.EndTS),
			Exit:  timewin.AlignIntoWindow(exit, w.StartTS, w.EndTS),
		})
	}
	return records, nil
}

// WindowFilename builds the output filename for one extracted window. With
// numbered set it is prefix plus a zero-padded 1-based index, e.g.
// "pattern007.csv"; otherwise a descriptive name derived from the source
// stem, the ISO date, and the window clocks, e.g.
// "es-1m_2024-10-13_17-00__07-00.csv".
func WindowFilename(stem string, w Window, numbered bool, index int, prefix string, pad int) string {
	if numbered {
		if prefix == "" {
			prefix = "pattern"
		}
		if pad <= 0 {
			pad = 3
		}
		return fmt.Sprintf("%s%0*d.csv", prefix, pad, index)
	}
	return fmt.Sprintf("%s_%s_%s__%s.csv",
		stem, isoDate(w.Date), clockSlug(w.Start), clockSlug(w.End))
}

// isoDate renders an MM/DD/YY(YY) date as YYYY-MM-DD; an unparseable date
// is returned verbatim since filenames must still be produced.
func isoDate(date string) string {
	d, err := timewin.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func clockSlug(clock string) string {
	c, err := timewin.ParseClock(clock)
	if err != nil {
		return strings.ReplaceAll(clock, ":", "-")
	}
	return fmt.Sprintf("%02d-%02d", c.Hour, c.Minute)
}
