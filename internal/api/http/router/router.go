package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/placemark/placemark-server/internal/api/http/handler"
	"github.com/placemark/placemark-server/internal/api/http/middleware"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
	"github.com/placemark/placemark-server/internal/service"
)

// Router wires HTTP routes, middleware and handlers.
type Router struct {
	authService  *service.Auth
	placeService *service.Place
	tokenManager model.TokenManager
	storage      model.Storage
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	placeService *service.Place,
	tokenManager model.TokenManager,
	storage model.Storage,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:  authService,
		placeService: placeService,
		tokenManager: tokenManager,
		storage:      storage,
		logger:       logger,
	}
}

// Register builds the echo instance with all routes and middleware.
// Place mutations sit behind the authentication gate; reads, signup and
// login do not.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.logger)

	e.Use(logging.Handle)
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderXRequestedWith, echo.HeaderContentType,
			echo.HeaderAccept, echo.HeaderAuthorization,
		},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
	}))

	authHandler := handler.NewAuth(r.authService, r.storage, r.logger)
	placeHandler := handler.NewPlace(r.placeService, r.storage, r.logger)
	mediaHandler := handler.NewMedia(r.storage, r.logger)

	users := e.Group("/api/users")
	users.GET("", authHandler.ListUsers)
	users.POST("/signup", authHandler.Signup)
	users.POST("/login", authHandler.Login)

	places := e.Group("/api/places")
	places.GET("/:id", placeHandler.GetPlace)
	places.GET("/user/:uid", placeHandler.GetPlacesByUser)

	protected := places.Group("", authenticate.Handle)
	protected.POST("", placeHandler.CreatePlace)
	protected.PATCH("/:id", placeHandler.UpdatePlace)
	protected.DELETE("/:id", placeHandler.DeletePlace)

	e.GET("/uploads/images/:key", mediaHandler.GetImage)

	return e
}
