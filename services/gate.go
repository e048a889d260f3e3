package services

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultGateZone is the zone the viewing windows are defined in.
const DefaultGateZone = "Asia/Kolkata"

// Clock abstracts the wall clock so gates can be tested with fixed instants.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// TimeGate allows rendering between Start and End local civil time, both
// inclusive, measured as offsets from midnight in Location.
type TimeGate struct {
	Start    time.Duration
	End      time.Duration
	Location *time.Location
	Warning  string
}

// Open reports whether now falls inside the window.
func (g *TimeGate) Open(now time.Time) bool {
	local := now.In(g.Location)
	// Civil clock reading, not elapsed time since midnight.
	offset := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
	return offset >= g.Start && offset <= g.End
}

// LoadGateLocation resolves the zone name, falling back to a fixed +05:30 offset
// when the zone database has no entry for it.
func LoadGateLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultGateZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60), fmt.Errorf("gate: load location %q: %w", name, err)
	}
	return loc, nil
}
