package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"photomap/internal/config"
	"photomap/internal/geo"
	"photomap/internal/models"
	"photomap/internal/service"
	"photomap/internal/source"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	configDir string
	bucket    string
	prefix    string
	album     string
	workers   int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "exifmap",
		Short: "Build photo maps from the EXIF data of an image folder",
		Long: `exifmap reads the EXIF block of every JPEG and TIFF image in a bucket,
converts GPS tags to decimal degrees and prints the resulting records
together with the extent and center of the geotagged images.

Buckets are gocloud.dev URLs such as file:///srv/photos.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config", "./configs", "directory containing app.env")
	flags.StringVar(&opts.bucket, "bucket", "", "image bucket URL (default IMAGE_BUCKET)")
	flags.StringVar(&opts.prefix, "prefix", "", "path prefix for image records (default IMAGE_PATH_PREFIX)")
	flags.StringVar(&opts.album, "album", "", "title for images without a description (default ALBUM_TITLE)")
	flags.IntVar(&opts.workers, "workers", 0, "concurrent image reads (default WORKERS)")

	cmd.AddCommand(newRecordsCmd(opts))
	cmd.AddCommand(newGeoJSONCmd(opts))

	return cmd
}

func newRecordsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Print the photo map as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			photoMap, err := buildMap(cmd.Context(), opts)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			enc.SetIndent(2)

			if err := enc.Encode(photoMap); err != nil {
				return fmt.Errorf("failed to encode records: %w", err)
			}
			return nil
		},
	}
}

func newGeoJSONCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "geojson",
		Short: "Print the geotagged images as a GeoJSON FeatureCollection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			photoMap, err := buildMap(cmd.Context(), opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if err := enc.Encode(geo.FeatureCollection(photoMap.Images, photoMap.Extent)); err != nil {
				return fmt.Errorf("failed to encode geojson: %w", err)
			}
			return nil
		},
	}
}

func buildMap(ctx context.Context, opts *options) (*models.PhotoMap, error) {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return nil, err
	}
	opts.apply(&cfg)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(cfg.Level())

	src, err := source.OpenBlobSource(ctx, cfg.ImageBucket)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	svc := service.NewPhotoMapService(src, source.NewExifExtractor(), service.PhotoMapOptions{
		PathPrefix: cfg.ImagePathPrefix,
		AlbumTitle: cfg.AlbumTitle,
		Workers:    cfg.Workers,
	})

	photoMap, err := svc.BuildMap(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("images", len(photoMap.Images)).
		Int("skipped", len(photoMap.Skipped)).
		Msg("photo map built")

	return photoMap, nil
}

// apply overrides config values with the flags that were set.
func (o *options) apply(cfg *config.Config) {
	if o.bucket != "" {
		cfg.ImageBucket = o.bucket
	}
	if o.prefix != "" {
		cfg.ImagePathPrefix = o.prefix
	}
	if o.album != "" {
		cfg.AlbumTitle = o.album
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
}
