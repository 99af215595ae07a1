package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placemark/placemark-server/internal/apperror"
)

// handleError translates a failure kind into an HTTP status with a
// single human-readable message. Unclassified errors become 500 without
// leaking internals.
func handleError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindConflict:
		status = http.StatusUnprocessableEntity
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindForbidden:
		status = http.StatusForbidden
	case apperror.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperror.KindGeocodeFailed:
		status = http.StatusBadGateway
	}

	return c.JSON(status, map[string]string{"message": apperror.MessageOf(err)})
}
