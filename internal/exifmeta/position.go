package exifmeta

import (
	"fmt"
	"strings"

	"photomap/internal/models"
)

// ExtractPosition reads the GPS latitude and longitude out of m.
//
// Missing GPS data is not an error: the result is (nil, nil) when there is no
// GPSInfo entry or when either axis lacks its value or its reference. Both
// axes are returned together or not at all. A non-nil error means GPS data is
// present but unusable (ErrMalformedGPS or ErrDivisionByZero).
func ExtractPosition(m Metadata) (*models.Coordinate, error) {
	gps, ok, malformed := m.GPS()
	if malformed {
		return nil, fmt.Errorf("%s is not a mapping: %w", TagGPSInfo, ErrMalformedGPS)
	}
	if !ok {
		return nil, nil
	}

	latValue, latRef := gps.Lookup(TagGPSLatitude), refValue(gps.Lookup(TagGPSLatitudeRef))
	lonValue, lonRef := gps.Lookup(TagGPSLongitude), refValue(gps.Lookup(TagGPSLongitudeRef))

	if isEmpty(latValue) || latRef == "" || isEmpty(lonValue) || lonRef == "" {
		return nil, nil
	}

	lat, err := position(latValue, latRef, Latitude)
	if err != nil {
		return nil, err
	}

	lon, err := position(lonValue, lonRef, Longitude)
	if err != nil {
		return nil, err
	}

	return &models.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func position(value any, ref string, axis Axis) (float64, error) {
	s, err := ParseSexagesimal(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", axis, err)
	}

	v, err := ConvertDegrees(s, ref, axis)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", axis, err)
	}
	return v, nil
}

// ParseSexagesimal accepts the rational triple shapes produced by metadata
// readers: []Rational, [3]Rational, [][2]int64 and [][]int64.
func ParseSexagesimal(value any) (Sexagesimal, error) {
	var parts []Rational

	switch v := value.(type) {
	case Sexagesimal:
		return v, nil
	case []Rational:
		parts = v
	case [3]Rational:
		parts = v[:]
	case [][2]int64:
		for _, p := range v {
			parts = append(parts, Rational{Num: p[0], Den: p[1]})
		}
	case [][]int64:
		for _, p := range v {
			if len(p) != 2 {
				return Sexagesimal{}, fmt.Errorf("rational with %d members: %w", len(p), ErrMalformedGPS)
			}
			parts = append(parts, Rational{Num: p[0], Den: p[1]})
		}
	default:
		return Sexagesimal{}, fmt.Errorf("unsupported value type %T: %w", value, ErrMalformedGPS)
	}

	if len(parts) != 3 {
		return Sexagesimal{}, fmt.Errorf("expected 3 rationals, got %d: %w", len(parts), ErrMalformedGPS)
	}

	return Sexagesimal{Degrees: parts[0], Minutes: parts[1], Seconds: parts[2]}, nil
}

func refValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(strings.TrimRight(v, "\x00"))
	case []byte:
		return strings.TrimSpace(strings.TrimRight(string(v), "\x00"))
	}
	return ""
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case []Rational:
		return len(v) == 0
	case [][2]int64:
		return len(v) == 0
	case [][]int64:
		return len(v) == 0
	}
	return false
}
