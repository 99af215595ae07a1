package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placemark/placemark-server/internal/api/http/httpctx"
	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
)

// PlaceService defines place read and mutation operations.
type PlaceService interface {
	CreatePlace(ctx context.Context, params model.CreatePlaceParams) (model.Place, error)
	UpdatePlace(ctx context.Context, params model.UpdatePlaceParams) (model.Place, error)
	DeletePlace(ctx context.Context, ownerID uuid.UUID, placeID uuid.UUID) error
	GetPlace(ctx context.Context, placeID uuid.UUID) (model.Place, error)
	GetPlacesByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error)
}

// Place handles HTTP endpoints for places.
type Place struct {
	placeService PlaceService
	storage      model.Storage
	logger       *logger.Logger
}

// NewPlace creates a new Place handler.
func NewPlace(placeService PlaceService, storage model.Storage, logger *logger.Logger) *Place {
	return &Place{
		placeService: placeService,
		storage:      storage,
		logger:       logger,
	}
}

type placeResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Image       string  `json:"image"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Creator     string  `json:"creator"`
}

type updatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toPlaceResponse(place model.Place) placeResponse {
	return placeResponse{
		ID:          place.ID.String(),
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Image:       imageURL(place.ImageKey),
		Lat:         place.Location.Lat,
		Lng:         place.Location.Lng,
		Creator:     place.OwnerID.String(),
	}
}

// GetPlace returns a single place by id.
func (h *Place) GetPlace(c echo.Context) error {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handleError(c, apperror.NewNotFound("could not find place for provided id"))
	}

	place, err := h.placeService.GetPlace(c.Request().Context(), placeID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]placeResponse{"place": toPlaceResponse(place)})
}

// GetPlacesByUser returns all places owned by a user.
func (h *Place) GetPlacesByUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return handleError(c, apperror.NewNotFound("could not find user for provided id"))
	}

	places, err := h.placeService.GetPlacesByOwner(c.Request().Context(), userID)
	if err != nil {
		return handleError(c, err)
	}

	response := make([]placeResponse, 0, len(places))
	for _, place := range places {
		response = append(response, toPlaceResponse(place))
	}

	return c.JSON(http.StatusOK, map[string][]placeResponse{"places": response})
}

// CreatePlace creates a place from a multipart form carrying title,
// description, address and an image file. The caller identity from the
// verified token becomes the owner.
func (h *Place) CreatePlace(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := httpctx.IdentityFromContext(ctx)
	if !ok {
		return handleError(c, apperror.NewMissingToken())
	}

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	address := strings.TrimSpace(c.FormValue("address"))

	if err := validatePlaceFields(title, description, address); err != nil {
		return handleError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return handleError(c, apperror.NewValidation("image is required"))
	}

	imageKey, err := storeImage(ctx, h.storage, fileHeader)
	if err != nil {
		h.logger.Error("Place handler: failed to store place image",
			"owner_id", identity.UserID,
			"error", err.Error())
		return handleError(c, err)
	}

	place, err := h.placeService.CreatePlace(ctx, model.CreatePlaceParams{
		OwnerID:     identity.UserID,
		Title:       title,
		Description: description,
		Address:     address,
		ImageKey:    imageKey,
	})
	if err != nil {
		h.logger.Error("Place handler: create place failed",
			"owner_id", identity.UserID,
			"error", err.Error())
		h.discardImage(ctx, imageKey)
		return handleError(c, err)
	}

	h.logger.Info("Place handler: place created",
		"place_id", place.ID,
		"owner_id", place.OwnerID)

	return c.JSON(http.StatusCreated, map[string]placeResponse{"place": toPlaceResponse(place)})
}

// UpdatePlace updates title and description of an owned place.
func (h *Place) UpdatePlace(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := httpctx.IdentityFromContext(ctx)
	if !ok {
		return handleError(c, apperror.NewMissingToken())
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handleError(c, apperror.NewNotFound("could not find place for provided id"))
	}

	var req updatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, apperror.NewValidation("invalid request body"))
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" {
		return handleError(c, apperror.NewValidation("title must not be empty"))
	}
	if len(description) < 5 {
		return handleError(c, apperror.NewValidation("description must be at least 5 characters"))
	}

	place, err := h.placeService.UpdatePlace(ctx, model.UpdatePlaceParams{
		OwnerID:     identity.UserID,
		PlaceID:     placeID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		h.logger.Error("Place handler: update place failed",
			"place_id", placeID,
			"owner_id", identity.UserID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]placeResponse{"place": toPlaceResponse(place)})
}

// DeletePlace deletes an owned place.
func (h *Place) DeletePlace(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := httpctx.IdentityFromContext(ctx)
	if !ok {
		return handleError(c, apperror.NewMissingToken())
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handleError(c, apperror.NewNotFound("could not find place for provided id"))
	}

	if err := h.placeService.DeletePlace(ctx, identity.UserID, placeID); err != nil {
		h.logger.Error("Place handler: delete place failed",
			"place_id", placeID,
			"owner_id", identity.UserID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "deleted place"})
}

func (h *Place) discardImage(ctx context.Context, key string) {
	if err := h.storage.Delete(ctx, key); err != nil {
		h.logger.Error("Place handler: failed to discard image",
			"image_key", key,
			"error", err.Error())
	}
}

func validatePlaceFields(title string, description string, address string) error {
	if title == "" {
		return apperror.NewValidation("title must not be empty")
	}
	if len(description) < 5 {
		return apperror.NewValidation("description must be at least 5 characters")
	}
	if address == "" {
		return apperror.NewValidation("address must not be empty")
	}
	return nil
}
