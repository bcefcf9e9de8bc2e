package main

import (
	"context"
	"flag"
	"os"

	"photomap/internal/config"
	"photomap/internal/repository"
	"photomap/internal/service"
	"photomap/internal/source"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	bucket := flag.String("bucket", "", "Image bucket URL to import (defaults to IMAGE_BUCKET)")
	configDir := flag.String("config", "configs", "Directory containing app.env")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load config
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *bucket != "" {
		cfg.ImageBucket = *bucket
	}

	ctx := context.Background()

	log.Info().Str("bucket", cfg.ImageBucket).Msg("starting import")

	images, err := source.OpenBlobSource(ctx, cfg.ImageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open image bucket")
	}
	defer images.Close()

	svc := service.NewPhotoMapService(images, source.NewExifExtractor(), service.PhotoMapOptions{
		PathPrefix: cfg.ImagePathPrefix,
		AlbumTitle: cfg.AlbumTitle,
		Workers:    cfg.Workers,
	})

	photoMap, err := svc.BuildMap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build photo map")
	}

	log.Info().
		Int("images", len(photoMap.Images)).
		Int("skipped", len(photoMap.Skipped)).
		Msg("parsed images")

	// Connect to DB
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)

	// Ensure table exists
	if err := repo.CreateSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot create schema")
	}

	if err := repo.SavePhotos(ctx, photoMap.Images); err != nil {
		log.Fatal().Err(err).Msg("cannot save photos")
	}

	// Verify data
	count, err := repo.CountPhotos(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot verify import")
	}

	event := log.Info().Int("imported", len(photoMap.Images)).Int("stored", count)
	if photoMap.Extent != nil {
		event = event.Interface("extent", photoMap.Extent).Interface("center", photoMap.Center)
	}
	event.Msg("import finished")
}
