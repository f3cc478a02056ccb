package timewin

import (
	"log/slog"
	"sync"
	"time"
)

// ZoneResolver turns IANA timezone names into locations. It is injected so
// the calendar logic works both on hosts with a timezone database and on
// stripped-down hosts without one.
type ZoneResolver interface {
	// Resolve maps a timezone name to a location.
	Resolve(name string) (*time.Location, error)
	// Available reports whether a timezone database is usable at all.
	Available() bool
}

// tzdataResolver resolves through the platform timezone database.
type tzdataResolver struct {
	probe sync.Once
	ok    bool
}

func (r *tzdataResolver) Resolve(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// Available probes once by loading a well-known zone; "UTC" is resolvable
// even without tzdata, so it cannot serve as the probe.
func (r *tzdataResolver) Available() bool {
	r.probe.Do(func() {
		_, err := time.LoadLocation("America/Chicago")
		r.ok = err == nil
	})
	return r.ok
}

// DefaultResolver is the platform-backed resolver used when none is injected.
var DefaultResolver ZoneResolver = &tzdataResolver{}

// locationFor resolves a timezone name per the contract: empty or "UTC"
// means UTC; an unresolvable name is a hard error when a database is
// available; a missing database falls back to UTC with a logged warning.
func locationFor(name string, resolver ZoneResolver) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}
	if resolver == nil {
		resolver = DefaultResolver
	}
	if !resolver.Available() {
		slog.Warn("timezone database unavailable, falling back to UTC", "zone", name)
		return time.UTC, nil
	}
	loc, err := resolver.Resolve(name)
	if err != nil {
		return nil, &UnknownZoneError{Name: name, Err: err}
	}
	return loc, nil
}

// ZonesAvailable reports whether the default resolver has a usable timezone
// database. Exposed so callers (and tests) can branch on the capability.
func ZonesAvailable() bool { return DefaultResolver.Available() }
