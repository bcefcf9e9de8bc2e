package geo

import (
	"photomap/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Bound converts an extent to an orb.Bound (x is longitude, y is latitude).
func Bound(e models.GeoExtent) orb.Bound {
	return orb.Bound{
		Min: orb.Point{e.West, e.South},
		Max: orb.Point{e.East, e.North},
	}
}

// Point converts a coordinate to an orb.Point.
func Point(c models.Coordinate) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// FeatureCollection renders every record with a coordinate as a Point
// feature. The collection carries a bbox when extent is not nil.
func FeatureCollection(records []models.ImageRecord, extent *models.GeoExtent) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, r := range records {
		if r.Coordinate == nil {
			continue
		}

		f := geojson.NewFeature(Point(*r.Coordinate))
		f.Properties["path"] = r.Path
		if r.Timestamp != "" {
			f.Properties["datetime"] = r.Timestamp
		}
		if r.Title != "" {
			f.Properties["title"] = r.Title
		}
		if r.Annotation != "" {
			f.Properties["annotation"] = r.Annotation
		}
		if r.Artist != "" {
			f.Properties["artist"] = r.Artist
		}

		fc.Append(f)
	}

	if extent != nil {
		fc.BBox = geojson.NewBBox(Bound(*extent))
	}

	return fc
}
