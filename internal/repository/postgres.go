package repository

import (
	"context"
	"fmt"
	"time"

	"photomap/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores image records in PostgreSQL with PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS photos (
		id BIGSERIAL PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		taken_at TIMESTAMPTZ,
		datetime TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		annotation TEXT NOT NULL DEFAULT '',
		artist TEXT NOT NULL DEFAULT '',
		geom GEOGRAPHY(POINT, 4326)
	);

	CREATE INDEX IF NOT EXISTS photos_geom_idx ON photos USING GIST ((geom::geometry));
`

// CreateSchema creates the photos table and its spatial index if they do not exist
func (r *Repository) CreateSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// SavePhotos upserts records by path. Rows are bulk copied into a staging
// table and merged in a single transaction.
func (r *Repository) SavePhotos(ctx context.Context, records []models.ImageRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		CREATE TEMP TABLE photos_staging (
			path TEXT,
			taken_at TIMESTAMPTZ,
			datetime TEXT,
			title TEXT,
			annotation TEXT,
			artist TEXT,
			lat DOUBLE PRECISION,
			lon DOUBLE PRECISION
		) ON COMMIT DROP
	`)
	if err != nil {
		return fmt.Errorf("repository: failed to create staging table: %w", err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"photos_staging"},
		[]string{"path", "taken_at", "datetime", "title", "annotation", "artist", "lat", "lon"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			var lat, lon *float64
			if rec.Coordinate != nil {
				lat, lon = &rec.Coordinate.Latitude, &rec.Coordinate.Longitude
			}
			return []any{rec.Path, rec.TakenAt, rec.Timestamp, rec.Title, rec.Annotation, rec.Artist, lat, lon}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("repository: failed to copy photos: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO photos (path, taken_at, datetime, title, annotation, artist, geom)
		SELECT
			path,
			taken_at,
			datetime,
			title,
			annotation,
			artist,
			CASE WHEN lat IS NULL THEN NULL
				ELSE ST_SetSRID(ST_MakePoint(lon, lat), 4326)::geography -- PostGIS order: lon lat
			END
		FROM photos_staging
		ON CONFLICT (path) DO UPDATE SET
			taken_at = EXCLUDED.taken_at,
			datetime = EXCLUDED.datetime,
			title = EXCLUDED.title,
			annotation = EXCLUDED.annotation,
			artist = EXCLUDED.artist,
			geom = EXCLUDED.geom
	`)
	if err != nil {
		return fmt.Errorf("repository: failed to merge photos: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit photos: %w", err)
	}

	return nil
}

// FindPhotosInExtent returns the geotagged photos inside extent, boundary included, ordered by path
func (r *Repository) FindPhotosInExtent(ctx context.Context, extent models.GeoExtent) ([]models.ImageRecord, error) {
	sql := `
		SELECT
			path,
			taken_at,
			datetime,
			title,
			annotation,
			artist,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM photos
		WHERE geom IS NOT NULL
			AND ST_Covers(ST_MakeEnvelope($1, $2, $3, $4, 4326), geom::geometry)
		ORDER BY path
	`

	rows, err := r.db.Query(ctx, sql, extent.West, extent.South, extent.East, extent.North)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute extent query: %w", err)
	}
	defer rows.Close()

	photos := []models.ImageRecord{}
	for rows.Next() {
		var (
			rec     models.ImageRecord
			takenAt *time.Time
			coord   models.Coordinate
		)
		err := rows.Scan(
			&rec.Path,
			&takenAt,
			&rec.Timestamp,
			&rec.Title,
			&rec.Annotation,
			&rec.Artist,
			&coord.Latitude,
			&coord.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan photo: %w", err)
		}
		if takenAt != nil {
			utc := takenAt.UTC()
			rec.TakenAt = &utc
		}
		rec.Coordinate = &coord
		photos = append(photos, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return photos, nil
}

// CountPhotos returns the number of stored photos
func (r *Repository) CountPhotos(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM photos").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count photos: %w", err)
	}
	return count, nil
}
