package models

import "time"

// Coordinate is a signed decimal-degree position. Southern latitudes and western longitudes are negative.
type Coordinate struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
}

// ImageRecord describes a single photograph ready to be placed on a map.
// Coordinate is nil when the image carries no usable GPS data.
type ImageRecord struct {
	Path       string      `json:"path" yaml:"path"`
	Timestamp  string      `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	TakenAt    *time.Time  `json:"taken_at,omitempty" yaml:"taken_at,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty" yaml:"coordinate,omitempty"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Annotation string      `json:"annotation,omitempty" yaml:"annotation,omitempty"`
	Artist     string      `json:"artist,omitempty" yaml:"artist,omitempty"`
}

// HasCoordinate reports whether the record can be placed on a map.
func (r ImageRecord) HasCoordinate() bool {
	return r.Coordinate != nil
}

// GeoExtent is the bounding box enclosing a set of coordinates.
type GeoExtent struct {
	North float64 `json:"north" yaml:"north"`
	South float64 `json:"south" yaml:"south"`
	East  float64 `json:"east" yaml:"east"`
	West  float64 `json:"west" yaml:"west"`
}

// Center returns the midpoint of the extent.
func (e GeoExtent) Center() Coordinate {
	return Coordinate{
		Latitude:  (e.North + e.South) / 2,
		Longitude: (e.East + e.West) / 2,
	}
}

// SkippedImage names an image that was left out of a PhotoMap and why.
type SkippedImage struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// PhotoMap is everything a map renderer needs for one album.
// Extent and Center are nil when no image carries a coordinate.
type PhotoMap struct {
	Images  []ImageRecord  `json:"images" yaml:"images"`
	Extent  *GeoExtent     `json:"extent" yaml:"extent"`
	Center  *Coordinate    `json:"center" yaml:"center"`
	Skipped []SkippedImage `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
