// Package geo aggregates image coordinates into map extents.
package geo

import (
	"errors"
	"math"

	"photomap/internal/models"
)

// ErrEmptyAggregate is returned when no coordinate was folded into a Bounds.
var ErrEmptyAggregate = errors.New("geo: no coordinates to aggregate")

// Bounds accumulates the running extrema of a set of coordinates. The zero
// value is empty and ready to use. Bounds is a value type; each aggregation
// owns its own.
type Bounds struct {
	north, south, east, west float64
	count                    int
}

// Extend returns b grown to include c.
func (b Bounds) Extend(c models.Coordinate) Bounds {
	if b.count == 0 {
		return Bounds{north: c.Latitude, south: c.Latitude, east: c.Longitude, west: c.Longitude, count: 1}
	}

	b.north = math.Max(b.north, c.Latitude)
	b.south = math.Min(b.south, c.Latitude)
	b.east = math.Max(b.east, c.Longitude)
	b.west = math.Min(b.west, c.Longitude)
	b.count++

	return b
}

// Union merges two partial aggregates.
func (b Bounds) Union(o Bounds) Bounds {
	switch {
	case o.count == 0:
		return b
	case b.count == 0:
		return o
	}

	return Bounds{
		north: math.Max(b.north, o.north),
		south: math.Min(b.south, o.south),
		east:  math.Max(b.east, o.east),
		west:  math.Min(b.west, o.west),
		count: b.count + o.count,
	}
}

// IsEmpty reports whether no coordinate has been folded in.
func (b Bounds) IsEmpty() bool {
	return b.count == 0
}

// Len returns the number of coordinates folded in.
func (b Bounds) Len() int {
	return b.count
}

// Extent returns the bounding box, or ErrEmptyAggregate when b is empty.
func (b Bounds) Extent() (models.GeoExtent, error) {
	if b.count == 0 {
		return models.GeoExtent{}, ErrEmptyAggregate
	}

	return models.GeoExtent{North: b.north, South: b.south, East: b.east, West: b.west}, nil
}

// Aggregate folds the coordinates of records into an extent. Records without
// a coordinate are skipped. The result does not depend on record order.
func Aggregate(records []models.ImageRecord) (models.GeoExtent, error) {
	var b Bounds
	for _, r := range records {
		if r.Coordinate != nil {
			b = b.Extend(*r.Coordinate)
		}
	}
	return b.Extent()
}
