package data

import (
	"errors"
	"strconv"
	"time"
)

// ErrInvalidReleaseDateFormat is returned when unmarshaling a release
// date that is not a "YYYY-MM-DD" JSON string.
var ErrInvalidReleaseDateFormat = errors.New(`release date must be a "YYYY-MM-DD" string`)

// earliestReleaseDate is the inclusive lower bound for release dates.
var earliestReleaseDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ReleaseDate is a calendar date with day precision. It marshals to and
// from JSON as a "YYYY-MM-DD" string, so the stored representation and
// the wire representation are identical. The zero value means the date
// was not provided.
type ReleaseDate struct {
	time.Time
}

// NewReleaseDate returns the ReleaseDate for a calendar day.
func NewReleaseDate(year int, month time.Month, day int) ReleaseDate {
	return ReleaseDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String returns the date in "YYYY-MM-DD" form.
func (d ReleaseDate) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d ReleaseDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string. An empty string
// decodes to the zero value, so a blank date field is reported by the
// validation rules rather than as a malformed request. Any other shape
// yields ErrInvalidReleaseDateFormat.
func (d *ReleaseDate) UnmarshalJSON(jsonValue []byte) error {
	unquoted, err := strconv.Unquote(string(jsonValue))
	if err != nil {
		return ErrInvalidReleaseDateFormat
	}

	if unquoted == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(time.DateOnly, unquoted)
	if err != nil {
		return ErrInvalidReleaseDateFormat
	}

	d.Time = t
	return nil
}

// today returns the current calendar day as a UTC date. Release dates
// carry no time of day, so comparing against this value compares the
// (year, month, day) triples regardless of wall clock or zone.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
