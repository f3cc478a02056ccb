// Package timewin resolves wall-clock trading-session windows into absolute
// epoch timestamps, including cross-midnight windows and DST-ambiguous local
// times, and aligns stray timestamps into a window by whole-day shifts.
package timewin

import (
	"strconv"
	"strings"
	"time"
)

const daySeconds = 86400

// Date is a parsed calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Clock is a parsed 24-hour time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseDate parses "MM/DD/YY" or "MM/DD/YYYY". Two-digit years are
// interpreted as 2000+YY.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, &ParseError{Value: s, Reason: "date must be MM/DD/YY or MM/DD/YYYY"}
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, &ParseError{Value: s, Reason: "date must be MM/DD/YY or MM/DD/YYYY"}
		}
		nums[i] = n
	}
	year := nums[2]
	if year < 100 {
		year += 2000
	}
	return Date{Year: year, Month: nums[0], Day: nums[1]}, nil
}

// ParseClock parses "H:MM" or "HH:MM", validating 0 <= hour < 24 and
// 0 <= minute < 60.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Clock{}, &ParseError{Value: s, Reason: "time must be HH:MM"}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, &ParseError{Value: s, Reason: "time must be HH:MM"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, &ParseError{Value: s, Reason: "time must be HH:MM"}
	}
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 {
		return Clock{}, &ParseError{Value: s, Reason: "invalid hour or minute"}
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// ToTimestamp converts a date and time-of-day in the named timezone to epoch
// seconds. fold selects among two instants sharing the same wall clock
// during a DST fall-back transition: 0 picks the earlier, 1 the later; nil
// keeps the platform's default disambiguation.
func ToTimestamp(dateStr, clockStr, zone string, fold *int) (int64, error) {
	return ToTimestampIn(dateStr, clockStr, zone, fold, DefaultResolver)
}

// ToTimestampIn is ToTimestamp with an injected zone resolver. A nil
// resolver falls back to the default.
func ToTimestampIn(dateStr, clockStr, zone string, fold *int, resolver ZoneResolver) (int64, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return 0, err
	}
	c, err := ParseClock(clockStr)
	if err != nil {
		return 0, err
	}
	loc, err := locationFor(zone, resolver)
	if err != nil {
		return 0, err
	}
	t := localTime(d, c, loc)
	if fold != nil {
		early, late := foldCandidates(t, d, c, loc)
		if *fold == 0 {
			t = early
		} else {
			t = late
		}
	}
	return t.Unix(), nil
}

func localTime(d Date, c Clock, loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, c.Hour, c.Minute, 0, 0, loc)
}

// foldCandidates returns the earliest and latest instants whose wall clock
// in loc matches the requested date and time. For unambiguous times both
// equal t. DST shifts of one hour and thirty minutes are probed.
func foldCandidates(t time.Time, d Date, c Clock, loc *time.Location) (early, late time.Time) {
	early, late = t, t
	for _, delta := range []time.Duration{
		-time.Hour, -30 * time.Minute, 30 * time.Minute, time.Hour,
	} {
		alt := t.Add(delta)
		if sameWall(alt, d, c, loc) {
			if alt.Before(early) {
				early = alt
			}
			if alt.After(late) {
				late = alt
			}
		}
	}
	return early, late
}

func sameWall(t time.Time, d Date, c Clock, loc *time.Location) bool {
	lt := t.In(loc)
	return lt.Year() == d.Year && int(lt.Month()) == d.Month && lt.Day() == d.Day &&
		lt.Hour() == c.Hour && lt.Minute() == c.Minute
}

// WindowStartEnd computes both window endpoints on the same calendar date.
// An end at or before the start is reinterpreted as the same wall-clock time
// on the next calendar day, covering overnight sessions (17:00 -> 07:00) and
// the degenerate start == end case, which yields a full-day window. Results
// are epoch seconds, or milliseconds when toMS is set.
func WindowStartEnd(dateStr, startStr, endStr, zone string, toMS bool) (int64, int64, error) {
	return WindowStartEndIn(dateStr, startStr, endStr, zone, toMS, DefaultResolver)
}

// WindowStartEndIn is WindowStartEnd with an injected zone resolver.
func WindowStartEndIn(dateStr, startStr, endStr, zone string, toMS bool, resolver ZoneResolver) (int64, int64, error) {
	start, err := ToTimestampIn(dateStr, startStr, zone, nil, resolver)
	if err != nil {
		return 0, 0, err
	}
	end, err := ToTimestampIn(dateStr, endStr, zone, nil, resolver)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		d, _ := ParseDate(dateStr)
		c, _ := ParseClock(endStr)
		loc, err := locationFor(zone, resolver)
		if err != nil {
			return 0, 0, err
		}
		// next calendar day in the same zone; time.Date normalizes day+1
		end = time.Date(d.Year, time.Month(d.Month), d.Day+1, c.Hour, c.Minute, 0, 0, loc).Unix()
	}
	if toMS {
		return start * 1000, end * 1000, nil
	}
	return start, end, nil
}

// AlignIntoWindow shifts ts by whole days into [startTS, endTS]. A timestamp
// already inside the window is returned unchanged. When the smallest
// whole-day shift that reaches the window's near edge overshoots the far
// edge, alignment is impossible and the original value is returned.
func AlignIntoWindow(ts, startTS, endTS int64) int64 {
	if ts >= startTS && ts <= endTS {
		return ts
	}
	if ts < startTS {
		days := (startTS - ts + daySeconds - 1) / daySeconds
		shifted := ts + days*daySeconds
		if shifted <= endTS {
			return shifted
		}
		return ts
	}
	days := (ts - endTS + daySeconds - 1) / daySeconds
	shifted := ts - days*daySeconds
	if shifted >= startTS {
		return shifted
	}
	return ts
}
