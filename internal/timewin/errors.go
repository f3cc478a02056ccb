package timewin

import "fmt"

// ParseError reports a malformed date or time-of-day token.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed calendar value %q: %s", e.Value, e.Reason)
}

// UnknownZoneError reports a timezone name the available timezone database
// could not resolve. It is never produced when the database itself is
// missing; that case falls back to UTC.
type UnknownZoneError struct {
	Name string
	Err  error
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown timezone %q: %v", e.Name, e.Err)
}

func (e *UnknownZoneError) Unwrap() error { return e.Err }
