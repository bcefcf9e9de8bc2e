package service

import (
	"context"
	"errors"
	"fmt"

	"photomap/internal/models"
)

// ErrInvalidExtent is returned for search extents outside the valid coordinate ranges.
var ErrInvalidExtent = errors.New("service: invalid extent")

// PhotoSearchService contains the business logic for searching stored photos by location
type PhotoSearchService struct {
	repo PhotoSearchRepository
}

// PhotoSearchRepository interface for dependency injection
type PhotoSearchRepository interface {
	FindPhotosInExtent(ctx context.Context, extent models.GeoExtent) ([]models.ImageRecord, error)
}

// NewPhotoSearchService creates a new photo search service
func NewPhotoSearchService(repo PhotoSearchRepository) *PhotoSearchService {
	return &PhotoSearchService{repo: repo}
}

// SearchByExtent returns the stored photos whose coordinate lies inside extent.
// Extents crossing the antimeridian (west > east) are rejected.
func (s *PhotoSearchService) SearchByExtent(ctx context.Context, extent models.GeoExtent) ([]models.ImageRecord, error) {
	if extent.South < -90 || extent.North > 90 {
		return nil, fmt.Errorf("%w: latitude out of range [%f, %f]", ErrInvalidExtent, extent.South, extent.North)
	}
	if extent.West < -180 || extent.East > 180 {
		return nil, fmt.Errorf("%w: longitude out of range [%f, %f]", ErrInvalidExtent, extent.West, extent.East)
	}
	if extent.South > extent.North {
		return nil, fmt.Errorf("%w: south %f is above north %f", ErrInvalidExtent, extent.South, extent.North)
	}
	if extent.West > extent.East {
		return nil, fmt.Errorf("%w: west %f is east of %f", ErrInvalidExtent, extent.West, extent.East)
	}

	photos, err := s.repo.FindPhotosInExtent(ctx, extent)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search photos: %w", err)
	}

	return photos, nil
}
