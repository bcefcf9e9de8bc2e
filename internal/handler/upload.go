package handler

import (
	"context"
	"io"
	"net/http"

	"photomap/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UploadHandler reports the map record of a single uploaded image
type UploadHandler struct {
	service ImageInspector
}

// ImageInspector interface for dependency injection
type ImageInspector interface {
	Inspect(ctx context.Context, r io.Reader, name string) (*models.ImageRecord, error)
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc ImageInspector) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Upload handles POST /upload requests with a multipart "file" field
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required form file 'file'"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer f.Close()

	record, err := h.service.Inspect(c.Request.Context(), f, fh.Filename)
	if err != nil {
		log.Debug().Err(err).Str("file", fh.Filename).Msg("rejecting upload")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unreadable image metadata"})
		return
	}

	if !record.HasCoordinate() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no GPS information"})
		return
	}

	c.JSON(http.StatusOK, record)
}
