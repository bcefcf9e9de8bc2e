package exifmeta

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DisplayLayout renders normalized timestamps, e.g. "Tue May 14 10:30:00 2019".
const DisplayLayout = time.ANSIC

// ParseTimestamp parses an EXIF "YYYY:MM:DD HH:MM:SS" string. ':' and ' '
// are interchangeable separators and exactly six integer fields are required.
// The result is in UTC since EXIF timestamps carry no zone.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))

	fields := strings.Split(strings.ReplaceAll(s, " ", ":"), ":")
	if len(fields) != 6 {
		return time.Time{}, fmt.Errorf("%q has %d fields: %w", s, len(fields), ErrMalformedTimestamp)
	}

	var n [6]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q: field %d is not an integer: %w", s, i+1, ErrMalformedTimestamp)
		}
		n[i] = v
	}

	year, month, day, hour, minute, second := n[0], n[1], n[2], n[3], n[4], n[5]

	switch {
	case year < 1 || year > 9999:
		return time.Time{}, fmt.Errorf("%q: year %d out of range: %w", s, year, ErrMalformedTimestamp)
	case month < 1 || month > 12:
		return time.Time{}, fmt.Errorf("%q: month %d out of range: %w", s, month, ErrMalformedTimestamp)
	case hour < 0 || hour > 23:
		return time.Time{}, fmt.Errorf("%q: hour %d out of range: %w", s, hour, ErrMalformedTimestamp)
	case minute < 0 || minute > 59:
		return time.Time{}, fmt.Errorf("%q: minute %d out of range: %w", s, minute, ErrMalformedTimestamp)
	case second < 0 || second > 59:
		return time.Time{}, fmt.Errorf("%q: second %d out of range: %w", s, second, ErrMalformedTimestamp)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)

	// time.Date normalizes overflowing days, e.g. Feb 30 becomes Mar 2.
	if day < 1 || t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%q: day %d out of range: %w", s, day, ErrMalformedTimestamp)
	}

	return t, nil
}

// NormalizeTimestamp reparses an EXIF timestamp and renders it with DisplayLayout.
func NormalizeTimestamp(s string) (string, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayLayout), nil
}
