package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"photomap/internal/exifmeta"
	"photomap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockImageSource is a mock implementation of the ImageSource interface.
// Opened images contain their own key so the extractor mock can tell them apart.
type MockImageSource struct {
	mock.Mock
}

func (m *MockImageSource) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

func (m *MockImageSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(key)), nil
}

// MockMetadataExtractor is a mock implementation of the MetadataExtractor interface
type MockMetadataExtractor struct {
	mock.Mock
}

func (m *MockMetadataExtractor) Extract(r io.Reader) (exifmeta.RawMetadata, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	args := m.Called(string(body))
	raw, _ := args.Get(0).(exifmeta.RawMetadata)
	return raw, args.Error(1)
}

func geotagged(lat int64, latRef string, lon int64, lonRef string) exifmeta.RawMetadata {
	return exifmeta.RawMetadata{
		exifmeta.GPSInfoTagID: exifmeta.RawMetadata{
			0x0001: latRef,
			0x0002: []exifmeta.Rational{{Num: lat, Den: 1}, {Num: 0, Den: 1}, {Num: 0, Den: 1}},
			0x0003: lonRef,
			0x0004: []exifmeta.Rational{{Num: lon, Den: 1}, {Num: 0, Den: 1}, {Num: 0, Den: 1}},
		},
		0x9003: "2019:05:14 10:30:00",
	}
}

func TestPhotoMapService_BuildMap(t *testing.T) {
	described := geotagged(5, "S", 30, "E")
	described[0x010e] = "Kenroku-en"

	src := new(MockImageSource)
	src.On("List", mock.Anything).Return([]string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}, nil)
	for _, key := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"} {
		src.On("Open", mock.Anything, key).Return(nil)
	}
	src.On("Open", mock.Anything, "e.jpg").Return(assert.AnError)

	extractor := new(MockMetadataExtractor)
	extractor.On("Extract", "a.jpg").Return(geotagged(10, "N", 20, "E"), nil)
	extractor.On("Extract", "b.jpg").Return(exifmeta.RawMetadata{}, nil)
	extractor.On("Extract", "c.jpg").Return(described, nil)
	extractor.On("Extract", "d.jpg").Return(exifmeta.RawMetadata{0x9003: "2019:13:14 10:30:00"}, nil)

	svc := NewPhotoMapService(src, extractor, PhotoMapOptions{PathPrefix: "img/", AlbumTitle: "Kanazawa", Workers: 3})

	result, err := svc.BuildMap(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Images, 3)
	assert.Equal(t, "img/a.jpg", result.Images[0].Path)
	assert.Equal(t, "Kanazawa (1)", result.Images[0].Title)
	assert.Equal(t, "Tue May 14 10:30:00 2019", result.Images[0].Timestamp)
	assert.Equal(t, &models.Coordinate{Latitude: 10, Longitude: 20}, result.Images[0].Coordinate)

	assert.Equal(t, "img/b.jpg", result.Images[1].Path)
	assert.Equal(t, "Kanazawa (2)", result.Images[1].Title)
	assert.Nil(t, result.Images[1].Coordinate)

	assert.Equal(t, "Kenroku-en", result.Images[2].Title)

	require.Len(t, result.Skipped, 2)
	assert.Equal(t, "img/d.jpg", result.Skipped[0].Path)
	assert.Contains(t, result.Skipped[0].Reason, "malformed timestamp")
	assert.Equal(t, "img/e.jpg", result.Skipped[1].Path)

	assert.Equal(t, &models.GeoExtent{North: 10, South: -5, East: 30, West: 20}, result.Extent)
	assert.Equal(t, &models.Coordinate{Latitude: 2.5, Longitude: 25}, result.Center)

	src.AssertExpectations(t)
	extractor.AssertExpectations(t)
}

func TestPhotoMapService_BuildMap_NoGeodata(t *testing.T) {
	src := new(MockImageSource)
	src.On("List", mock.Anything).Return([]string{"a.jpg"}, nil)
	src.On("Open", mock.Anything, "a.jpg").Return(nil)

	extractor := new(MockMetadataExtractor)
	extractor.On("Extract", "a.jpg").Return(exifmeta.RawMetadata{0x9003: "2019:05:14 10:30:00"}, nil)

	svc := NewPhotoMapService(src, extractor, PhotoMapOptions{})

	result, err := svc.BuildMap(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Images, 1)
	assert.Equal(t, "", result.Images[0].Title)
	assert.Nil(t, result.Extent)
	assert.Nil(t, result.Center)
	assert.Empty(t, result.Skipped)
}

func TestPhotoMapService_BuildMap_Errors(t *testing.T) {
	t.Run("list error", func(t *testing.T) {
		src := new(MockImageSource)
		src.On("List", mock.Anything).Return(nil, assert.AnError)

		svc := NewPhotoMapService(src, new(MockMetadataExtractor), PhotoMapOptions{})

		result, err := svc.BuildMap(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, result)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := new(MockImageSource)
		src.On("List", mock.Anything).Return([]string{"a.jpg", "b.jpg"}, nil)

		svc := NewPhotoMapService(src, new(MockMetadataExtractor), PhotoMapOptions{Workers: 2})

		result, err := svc.BuildMap(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
		src.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})
}

func TestPhotoMapService_Inspect(t *testing.T) {
	tests := []struct {
		name        string
		raw         exifmeta.RawMetadata
		rawErr      error
		expected    *models.Coordinate
		expectError bool
	}{
		{
			name:     "geotagged upload",
			raw:      geotagged(36, "N", 136, "E"),
			expected: &models.Coordinate{Latitude: 36, Longitude: 136},
		},
		{
			name: "upload without GPS",
			raw:  exifmeta.RawMetadata{},
		},
		{
			name:        "unreadable metadata",
			rawErr:      assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := new(MockMetadataExtractor)
			extractor.On("Extract", "upload").Return(tt.raw, tt.rawErr)

			svc := NewPhotoMapService(new(MockImageSource), extractor, PhotoMapOptions{})

			record, err := svc.Inspect(context.Background(), strings.NewReader("upload"), "photo.jpg")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, record)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "photo.jpg", record.Path)
			assert.Equal(t, tt.expected, record.Coordinate)
			extractor.AssertExpectations(t)
		})
	}
}
