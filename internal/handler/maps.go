package handler

import (
	"context"
	"net/http"

	"photomap/internal/geo"
	"photomap/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MapHandler serves the aggregated photo map
type MapHandler struct {
	service PhotoMapBuilder
}

// PhotoMapBuilder interface for dependency injection
type PhotoMapBuilder interface {
	BuildMap(context.Context) (*models.PhotoMap, error)
}

// NewMapHandler creates a new map handler
func NewMapHandler(svc PhotoMapBuilder) *MapHandler {
	return &MapHandler{service: svc}
}

// Map handles GET /maps requests. With ?format=geojson the images are
// rendered as a FeatureCollection instead of a PhotoMap.
func (h *MapHandler) Map(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "geojson" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format, use 'json' or 'geojson'"})
		return
	}

	photoMap, err := h.service.BuildMap(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build photo map")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if format == "geojson" {
		c.JSON(http.StatusOK, geo.FeatureCollection(photoMap.Images, photoMap.Extent))
		return
	}

	c.JSON(http.StatusOK, photoMap)
}
