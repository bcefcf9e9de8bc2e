package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"photomap/internal/exifmeta"
	"photomap/internal/geo"
	"photomap/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ImageSource interface for dependency injection
type ImageSource interface {
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MetadataExtractor interface for dependency injection
type MetadataExtractor interface {
	Extract(r io.Reader) (exifmeta.RawMetadata, error)
}

// PhotoMapOptions configures how records are labelled and how many images are read at once.
type PhotoMapOptions struct {
	// PathPrefix is prepended to every image key, e.g. "img/".
	PathPrefix string
	// AlbumTitle titles images without an ImageDescription as "<AlbumTitle> (<n>)".
	AlbumTitle string
	// Workers bounds concurrent image reads. Values below 1 mean 1.
	Workers int
}

// PhotoMapService builds map records for every image in a source
type PhotoMapService struct {
	source    ImageSource
	extractor MetadataExtractor
	opts      PhotoMapOptions
}

// NewPhotoMapService creates a new photo map service
func NewPhotoMapService(source ImageSource, extractor MetadataExtractor, opts PhotoMapOptions) *PhotoMapService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &PhotoMapService{source: source, extractor: extractor, opts: opts}
}

type imageResult struct {
	record models.ImageRecord
	err    error
}

// BuildMap reads every image in the source and aggregates the geotagged ones.
// Images that cannot be read or carry a malformed timestamp are skipped and
// reported in PhotoMap.Skipped. Only listing failures and cancellation are errors.
func (s *PhotoMapService) BuildMap(ctx context.Context) (*models.PhotoMap, error) {
	keys, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list images: %w", err)
	}

	results := make([]imageResult, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := s.readRecord(gctx, key)
			results[i] = imageResult{record: record, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service: failed to build photo map: %w", err)
	}

	photoMap := &models.PhotoMap{
		Images: make([]models.ImageRecord, 0, len(keys)),
	}

	for i, res := range results {
		if res.err != nil {
			log.Warn().Err(res.err).Str("image", keys[i]).Msg("skipping image")
			photoMap.Skipped = append(photoMap.Skipped, models.SkippedImage{
				Path:   s.path(keys[i]),
				Reason: res.err.Error(),
			})
			continue
		}

		record := res.record
		if record.Title == "" && s.opts.AlbumTitle != "" {
			record.Title = fmt.Sprintf("%s (%d)", s.opts.AlbumTitle, i+1)
		}
		photoMap.Images = append(photoMap.Images, record)
	}

	extent, err := geo.Aggregate(photoMap.Images)
	switch {
	case errors.Is(err, geo.ErrEmptyAggregate):
		log.Info().Int("images", len(photoMap.Images)).Msg("no geotagged images")
	case err != nil:
		return nil, fmt.Errorf("service: failed to aggregate extent: %w", err)
	default:
		center := extent.Center()
		photoMap.Extent = &extent
		photoMap.Center = &center
	}

	return photoMap, nil
}

// Inspect builds the record for a single uploaded image.
func (s *PhotoMapService) Inspect(ctx context.Context, r io.Reader, name string) (*models.ImageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.buildRecord(r, name)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *PhotoMapService) readRecord(ctx context.Context, key string) (models.ImageRecord, error) {
	r, err := s.source.Open(ctx, key)
	if err != nil {
		return models.ImageRecord{}, fmt.Errorf("service: failed to open image: %w", err)
	}
	defer r.Close()

	return s.buildRecord(r, s.path(key))
}

func (s *PhotoMapService) buildRecord(r io.Reader, path string) (models.ImageRecord, error) {
	raw, err := s.extractor.Extract(r)
	if err != nil {
		return models.ImageRecord{}, fmt.Errorf("service: failed to read metadata: %w", err)
	}

	record, err := exifmeta.BuildRecord(path, exifmeta.Decode(raw))
	if err != nil {
		return models.ImageRecord{}, fmt.Errorf("service: failed to build record: %w", err)
	}

	return record, nil
}

func (s *PhotoMapService) path(key string) string {
	return s.opts.PathPrefix + key
}
