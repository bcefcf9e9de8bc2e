package exifmeta

import "errors"

var (
	// ErrDivisionByZero is returned when a rational has a zero denominator.
	ErrDivisionByZero = errors.New("exifmeta: division by zero")
	// ErrMalformedGPS is returned when GPS values do not have the expected shape.
	ErrMalformedGPS = errors.New("exifmeta: malformed GPS data")
	// ErrMalformedTimestamp is returned for timestamps that are not "YYYY:MM:DD HH:MM:SS" or are out of range.
	ErrMalformedTimestamp = errors.New("exifmeta: malformed timestamp")
)
