package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/placemark/placemark-server/internal/api/http/httpctx"
	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
)

// Authenticate verifies bearer tokens and injects the caller identity
// into the request context. Verification is stateless: the token's
// signature and expiry are checked, no storage is consulted.
type Authenticate struct {
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, logger: logger}
}

// Handle parses the Authorization header, verifies the token and passes
// the identity downstream. OPTIONS preflight requests bypass the gate;
// that is a CORS convention, not an authorization decision.
func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodOptions {
			return next(c)
		}

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusForbidden, apperror.NewMissingToken().Message)
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		identity, err := m.tokenManager.Parse(tokenString)
		if err != nil {
			m.logger.Info("Authenticate middleware: token rejected",
				"error", err.Error())
			return echo.NewHTTPError(http.StatusForbidden, apperror.NewInvalidToken().Message)
		}

		ctx := httpctx.SetIdentity(c.Request().Context(), identity)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
