package exifmeta

import (
	"testing"
	"time"

	"photomap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecord(t *testing.T) {
	gps := GPSInfo{
		"GPSLatitude":     kanazawaLat,
		"GPSLatitudeRef":  "N",
		"GPSLongitude":    kanazawaLon,
		"GPSLongitudeRef": "E",
	}
	takenAt := time.Date(2019, time.May, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		metadata    Metadata
		expected    models.ImageRecord
		expectError bool
	}{
		{
			name:     "empty metadata",
			metadata: Metadata{},
			expected: models.ImageRecord{Path: "img/a.jpg"},
		},
		{
			name: "full record",
			metadata: Metadata{
				"GPSInfo":          gps,
				"DateTimeOriginal": "2019:05:14 10:30:00",
				"ImageDescription": "Kenroku-en ",
				"Artist":           "Tarima",
				"UserComment":      append([]byte("ASCII\x00\x00\x00"), []byte("snow lanterns")...),
			},
			expected: models.ImageRecord{
				Path:       "img/a.jpg",
				Timestamp:  "Tue May 14 10:30:00 2019",
				TakenAt:    &takenAt,
				Coordinate: &models.Coordinate{Latitude: 36.55, Longitude: 136.65833333333333},
				Title:      "Kenroku-en",
				Annotation: "snow lanterns",
				Artist:     "Tarima",
			},
		},
		{
			name: "digitized time is used when original is missing",
			metadata: Metadata{
				"DateTimeDigitized": "2019:05:14 10:30:00",
				"DateTime":          "2020:01:01 00:00:00",
			},
			expected: models.ImageRecord{
				Path:      "img/a.jpg",
				Timestamp: "Tue May 14 10:30:00 2019",
				TakenAt:   &takenAt,
			},
		},
		{
			name: "blank original time is treated as missing",
			metadata: Metadata{
				"GPSInfo":          gps,
				"DateTimeOriginal": "    :  :     :  :  ",
			},
			expected: models.ImageRecord{
				Path:       "img/a.jpg",
				Coordinate: &models.Coordinate{Latitude: 36.55, Longitude: 136.65833333333333},
			},
		},
		{
			name: "blank original time falls back to digitized",
			metadata: Metadata{
				"DateTimeOriginal":  "    :  :     :  :  \x00",
				"DateTimeDigitized": "2019:05:14 10:30:00",
			},
			expected: models.ImageRecord{
				Path:      "img/a.jpg",
				Timestamp: "Tue May 14 10:30:00 2019",
				TakenAt:   &takenAt,
			},
		},
		{
			name: "malformed GPS keeps the rest of the record",
			metadata: Metadata{
				"GPSInfo": GPSInfo{
					"GPSLatitude":     []Rational{{36, 0}, {33, 1}, {0, 1}},
					"GPSLatitudeRef":  "N",
					"GPSLongitude":    kanazawaLon,
					"GPSLongitudeRef": "E",
				},
				"DateTimeOriginal": "2019:05:14 10:30:00",
				"ImageDescription": "Kenroku-en",
			},
			expected: models.ImageRecord{
				Path:      "img/a.jpg",
				Timestamp: "Tue May 14 10:30:00 2019",
				TakenAt:   &takenAt,
				Title:     "Kenroku-en",
			},
		},
		{
			name: "comment without character code",
			metadata: Metadata{
				"UserComment": "plain text",
			},
			expected: models.ImageRecord{Path: "img/a.jpg", Annotation: "plain text"},
		},
		{
			name: "unicode comment is not rendered",
			metadata: Metadata{
				"UserComment": append([]byte("UNICODE\x00"), 0x00, 0x41),
			},
			expected: models.ImageRecord{Path: "img/a.jpg"},
		},
		{
			name: "malformed timestamp fails the record",
			metadata: Metadata{
				"GPSInfo":          gps,
				"DateTimeOriginal": "2019:13:14 10:30:00",
			},
			expectError: true,
		},
		{
			name: "non string timestamp fails the record",
			metadata: Metadata{
				"DateTimeOriginal": int64(1557829800),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BuildRecord("img/a.jpg", tt.metadata)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrMalformedTimestamp)
				assert.ErrorContains(t, err, "img/a.jpg")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected.Path, result.Path)
			assert.Equal(t, tt.expected.Timestamp, result.Timestamp)
			assert.Equal(t, tt.expected.TakenAt, result.TakenAt)
			assert.Equal(t, tt.expected.Title, result.Title)
			assert.Equal(t, tt.expected.Annotation, result.Annotation)
			assert.Equal(t, tt.expected.Artist, result.Artist)

			if tt.expected.Coordinate == nil {
				assert.Nil(t, result.Coordinate)
			} else if assert.NotNil(t, result.Coordinate) {
				assert.InDelta(t, tt.expected.Coordinate.Latitude, result.Coordinate.Latitude, 1e-9)
				assert.InDelta(t, tt.expected.Coordinate.Longitude, result.Coordinate.Longitude, 1e-9)
			}
		})
	}
}
