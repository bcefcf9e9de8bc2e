package main

import (
	"context"
	"net/http"

	"photomap/internal/config"
	"photomap/internal/handler"
	"photomap/internal/repository"
	"photomap/internal/service"
	"photomap/internal/source"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	zerolog.SetGlobalLevel(config.Level())

	ctx := context.Background()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Image bucket
	images, err := source.OpenBlobSource(ctx, config.ImageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open image bucket")
	}
	defer images.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	photoMapService := service.NewPhotoMapService(images, source.NewExifExtractor(), service.PhotoMapOptions{
		PathPrefix: config.ImagePathPrefix,
		AlbumTitle: config.AlbumTitle,
		Workers:    config.Workers,
	})
	photoSearchService := service.NewPhotoSearchService(repo)

	mapHandler := handler.NewMapHandler(photoMapService)
	uploadHandler := handler.NewUploadHandler(photoMapService)
	photosHandler := handler.NewPhotosHandler(photoSearchService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/maps", mapHandler.Map)
	r.POST("/upload", uploadHandler.Upload)
	r.GET("/photos", photosHandler.Photos)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
