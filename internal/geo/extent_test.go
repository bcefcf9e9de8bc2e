package geo

import (
	"math/rand"
	"testing"

	"photomap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(lat, lon float64) models.ImageRecord {
	return models.ImageRecord{Coordinate: &models.Coordinate{Latitude: lat, Longitude: lon}}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name           string
		records        []models.ImageRecord
		expected       models.GeoExtent
		expectedCenter models.Coordinate
		expectError    error
	}{
		{
			name:           "two records",
			records:        []models.ImageRecord{record(10, 20), record(-5, 30)},
			expected:       models.GeoExtent{North: 10, South: -5, East: 30, West: 20},
			expectedCenter: models.Coordinate{Latitude: 2.5, Longitude: 25},
		},
		{
			name:           "single record",
			records:        []models.ImageRecord{record(36.55, 136.65)},
			expected:       models.GeoExtent{North: 36.55, South: 36.55, East: 136.65, West: 136.65},
			expectedCenter: models.Coordinate{Latitude: 36.55, Longitude: 136.65},
		},
		{
			name:           "records without coordinates are skipped",
			records:        []models.ImageRecord{{Path: "a"}, record(-10, -20), {Path: "b"}, record(-30, -40)},
			expected:       models.GeoExtent{North: -10, South: -30, East: -20, West: -40},
			expectedCenter: models.Coordinate{Latitude: -20, Longitude: -30},
		},
		{
			name:        "no coordinates",
			records:     []models.ImageRecord{{Path: "a"}, {Path: "b"}},
			expectError: ErrEmptyAggregate,
		},
		{
			name:        "no records",
			records:     nil,
			expectError: ErrEmptyAggregate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Aggregate(tt.records)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, models.GeoExtent{}, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.expectedCenter, result.Center())
		})
	}
}

func TestAggregate_OrderInvariant(t *testing.T) {
	records := []models.ImageRecord{
		record(36.55, 136.65),
		{Path: "no-gps.jpg"},
		record(-33.87, 151.21),
		record(51.5, -0.12),
		record(64.14, -21.94),
		{Path: "no-gps-2.jpg"},
		record(-54.8, -68.3),
	}

	expected, err := Aggregate(records)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]models.ImageRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		result, err := Aggregate(shuffled)
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	}
}

func TestBounds_Union(t *testing.T) {
	var left, right, all Bounds
	coords := []models.Coordinate{{Latitude: 10, Longitude: 20}, {Latitude: -5, Longitude: 30}, {Latitude: 40, Longitude: -70}, {Latitude: -60, Longitude: 5}}

	for i, c := range coords {
		all = all.Extend(c)
		if i%2 == 0 {
			left = left.Extend(c)
		} else {
			right = right.Extend(c)
		}
	}

	merged := left.Union(right)
	assert.Equal(t, all, merged)
	assert.Equal(t, all, right.Union(left))
	assert.Equal(t, 4, merged.Len())

	assert.Equal(t, left, left.Union(Bounds{}))
	assert.Equal(t, right, Bounds{}.Union(right))
}

func TestBounds_Empty(t *testing.T) {
	var b Bounds
	assert.True(t, b.IsEmpty())

	_, err := b.Extent()
	assert.ErrorIs(t, err, ErrEmptyAggregate)

	// A real extent at the origin is distinct from the empty aggregate.
	b = b.Extend(models.Coordinate{})
	assert.False(t, b.IsEmpty())
	extent, err := b.Extent()
	assert.NoError(t, err)
	assert.Equal(t, models.GeoExtent{}, extent)
}
