package handler

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
)

// AuthService defines user registration, authentication and listing
// operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error)
	Authenticate(ctx context.Context, email string, password string) (model.AuthResult, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Auth handles HTTP endpoints for users and authentication.
type Auth struct {
	authService AuthService
	storage     model.Storage
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, storage model.Storage, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		storage:     storage,
		logger:      logger,
	}
}

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type userResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a user from a multipart form carrying name, email,
// password and an image file.
func (h *Auth) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	if err := validateSignup(name, email, password); err != nil {
		return handleError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return handleError(c, apperror.NewValidation("image is required"))
	}

	imageKey, err := storeImage(ctx, h.storage, fileHeader)
	if err != nil {
		h.logger.Error("Auth handler: failed to store signup image",
			"email", email,
			"error", err.Error())
		return handleError(c, err)
	}

	result, err := h.authService.Register(ctx, model.RegisterParams{
		Name:     name,
		Email:    email,
		Password: password,
		ImageKey: imageKey,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", email,
			"error", err.Error())
		h.discardImage(ctx, imageKey)
		return handleError(c, err)
	}

	h.logger.Info("Auth handler: signup completed",
		"email", result.Email,
		"user_id", result.UserID)

	return c.JSON(http.StatusCreated, authResponse{
		UserID: result.UserID.String(),
		Email:  result.Email,
		Token:  result.Token,
	})
}

// Login authenticates a user from a JSON body.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, apperror.NewValidation("invalid request body"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	result, err := h.authService.Authenticate(c.Request().Context(), email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", email)
		return handleError(c, err)
	}

	h.logger.Info("Auth handler: login completed",
		"email", result.Email,
		"user_id", result.UserID)

	return c.JSON(http.StatusCreated, authResponse{
		UserID: result.UserID.String(),
		Email:  result.Email,
		Token:  result.Token,
	})
}

// ListUsers returns all users without credential material.
func (h *Auth) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Error("Auth handler: failed to list users",
			"error", err.Error())
		return handleError(c, err)
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		placeIDs := make([]string, 0, len(user.PlaceIDs))
		for _, id := range user.PlaceIDs {
			placeIDs = append(placeIDs, id.String())
		}
		response = append(response, userResponse{
			ID:     user.ID.String(),
			Name:   user.Name,
			Email:  user.Email,
			Image:  imageURL(user.ImageKey),
			Places: placeIDs,
		})
	}

	return c.JSON(http.StatusOK, map[string][]userResponse{"users": response})
}

// discardImage removes an uploaded image after the surrounding operation
// failed. Best-effort only.
func (h *Auth) discardImage(ctx context.Context, key string) {
	if err := h.storage.Delete(ctx, key); err != nil {
		h.logger.Error("Auth handler: failed to discard image",
			"image_key", key,
			"error", err.Error())
	}
}

func validateSignup(name string, email string, password string) error {
	if name == "" {
		return apperror.NewValidation("name must not be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.NewValidation("email must be a valid address")
	}
	if len(password) < 6 {
		return apperror.NewValidation("password must be at least 6 characters")
	}
	return nil
}
