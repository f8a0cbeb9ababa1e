package timezone

import (
	"sync/atomic"
	"time"
)

const FallbackTimezone = "America/Mexico_City"

var defaultTZ atomic.Value

// SetDefault replaces the zone used when a branch carries none (or an invalid one).
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultTZ.Store(tz)
	}
}

func Default() string {
	if tz, ok := defaultTZ.Load().(string); ok {
		return tz
	}
	return FallbackTimezone
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Default())
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(Default()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
