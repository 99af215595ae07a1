package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
)

// Auth implements registration and credential verification. Password
// hashes are bcrypt with a cost chosen so verification takes on the
// order of 100ms.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	bcryptCost   int
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	bcryptCost int,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		bcryptCost:   bcryptCost,
		logger:       logger,
	}
}

// Register creates a user with a hashed password and issues a token
// bound to it.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	existingUser, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return model.AuthResult{}, apperror.NewEmailTaken(params.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		ImageKey:     params.ImageKey,
		PlaceIDs:     []uuid.UUID{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	savedUser, err := a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := a.tokenManager.Generate(savedUser.ID, savedUser.Email)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed",
		"email", savedUser.Email,
		"user_id", savedUser.ID)

	return model.AuthResult{
		UserID: savedUser.ID,
		Email:  savedUser.Email,
		Token:  tokenString,
	}, nil
}

// Authenticate verifies credentials and issues a token. The unknown-email
// and wrong-password paths return the same error so callers cannot
// enumerate accounts; bcrypt's verify handles the constant-time compare.
func (a *Auth) Authenticate(ctx context.Context, email string, password string) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting user authentication",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, apperror.ErrNotFound) {
		return model.AuthResult{}, apperror.NewInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"email", email)
		return model.AuthResult{}, apperror.NewInvalidCredentials()
	}

	tokenString, err := a.tokenManager.Generate(user.ID, user.Email)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user authenticated",
		"email", user.Email,
		"user_id", user.ID)

	return model.AuthResult{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

// ListUsers returns all users. Password hashes are stripped before the
// result leaves the service.
func (a *Auth) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := a.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		users[i].PasswordHash = nil
	}

	return users, nil
}
