package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"photomap/internal/models"
	"photomap/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PhotosHandler handles searches over stored photos
type PhotosHandler struct {
	service PhotoSearcher
}

// PhotoSearcher interface for dependency injection
type PhotoSearcher interface {
	SearchByExtent(context.Context, models.GeoExtent) ([]models.ImageRecord, error)
}

// NewPhotosHandler creates a new photos handler
func NewPhotosHandler(svc PhotoSearcher) *PhotosHandler {
	return &PhotosHandler{service: svc}
}

// Photos handles GET /photos?north=&south=&east=&west= requests
func (h *PhotosHandler) Photos(c *gin.Context) {
	var bounds [4]float64
	for i, name := range []string{"north", "south", "east", "west"} {
		raw := c.Query(name)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'north', 'south', 'east' and 'west'"})
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format"})
			return
		}
		bounds[i] = v
	}

	extent := models.GeoExtent{North: bounds[0], South: bounds[1], East: bounds[2], West: bounds[3]}

	photos, err := h.service.SearchByExtent(c.Request.Context(), extent)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExtent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to search photos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, photos)
}
