package handler

import (
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
)

// Media streams stored images back to clients.
type Media struct {
	storage model.Storage
	logger  *logger.Logger
}

// NewMedia creates a new Media handler.
func NewMedia(storage model.Storage, logger *logger.Logger) *Media {
	return &Media{storage: storage, logger: logger}
}

var contentTypesByExtension = map[string]string{
	".png":  "image/png",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpg",
}

// GetImage streams a stored image by key.
func (h *Media) GetImage(c echo.Context) error {
	key := c.Param("key")

	contentType, ok := contentTypesByExtension[path.Ext(key)]
	if !ok {
		return handleError(c, apperror.NewNotFound("could not find image for provided key"))
	}

	exists, err := h.storage.Exists(c.Request().Context(), key)
	if err != nil {
		h.logger.Error("Media handler: failed to stat image",
			"image_key", key,
			"error", err.Error())
		return handleError(c, err)
	}
	if !exists {
		return handleError(c, apperror.NewNotFound("could not find image for provided key"))
	}

	reader, err := h.storage.Download(c.Request().Context(), key)
	if err != nil {
		h.logger.Error("Media handler: failed to download image",
			"image_key", key,
			"error", err.Error())
		return handleError(c, err)
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, reader)
}
