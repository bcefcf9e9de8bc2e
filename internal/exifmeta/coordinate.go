package exifmeta

import "fmt"

// Rational is an exact fraction as stored in EXIF RATIONAL fields.
type Rational struct {
	Num int64
	Den int64
}

// Float64 divides the numerator by the denominator.
func (r Rational) Float64() (float64, error) {
	if r.Den == 0 {
		return 0, fmt.Errorf("%d/%d: %w", r.Num, r.Den, ErrDivisionByZero)
	}
	return float64(r.Num) / float64(r.Den), nil
}

// Sexagesimal is an unsigned degrees/minutes/seconds angle.
type Sexagesimal struct {
	Degrees Rational
	Minutes Rational
	Seconds Rational
}

// Decimal converts the angle to decimal degrees, dividing each component
// separately before summing.
func (s Sexagesimal) Decimal() (float64, error) {
	deg, err := s.Degrees.Float64()
	if err != nil {
		return 0, fmt.Errorf("degrees: %w", err)
	}
	minutes, err := s.Minutes.Float64()
	if err != nil {
		return 0, fmt.Errorf("minutes: %w", err)
	}
	seconds, err := s.Seconds.Float64()
	if err != nil {
		return 0, fmt.Errorf("seconds: %w", err)
	}
	return deg + (minutes / 60.0) + (seconds / 3600.0), nil
}

// Axis selects which hemisphere reference makes a coordinate negative.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// NegativeRef is "S" for latitude and "W" for longitude.
func (a Axis) NegativeRef() string {
	if a == Longitude {
		return "W"
	}
	return "S"
}

func (a Axis) String() string {
	if a == Longitude {
		return "longitude"
	}
	return "latitude"
}

// ConvertDegrees converts s to signed decimal degrees, negating the result
// when ref is the negative hemisphere for axis.
func ConvertDegrees(s Sexagesimal, ref string, axis Axis) (float64, error) {
	value, err := s.Decimal()
	if err != nil {
		return 0, err
	}
	if ref == axis.NegativeRef() {
		value = -value
	}
	return value, nil
}
