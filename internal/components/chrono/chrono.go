package chrono

import (
	"time"
	_ "time/tzdata"
)

// API is where anything needing the current time should get it from.
type API interface {
	Now() time.Time
	Location() *time.Location
}

// StandardImpl reports the wall clock in the publication's time zone.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl loads America/Toronto, the zone Montréal observes.
func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation("America/Toronto")
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always reports the same instant.
type FixedImpl struct {
	Time time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.Time
}

func (f FixedImpl) Location() *time.Location {
	return f.Time.Location()
}
