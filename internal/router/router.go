package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/config"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/handler"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check and the Prometheus metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems probe /healthz to verify
	// the service is up.
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication endpoints.  Register and
// login live under /v1/auth and need no token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterCatalog registers browse and administration endpoints for
// movies, theaters, halls and shows.  Reads are public so guests can
// browse before signing up; writes require a valid token.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string) {
	// Public browse endpoints.
	e.GET("/v1/movies", h.ListMovies)
	e.GET("/v1/movies/:id", h.GetMovie)
	e.GET("/v1/movies/:id/shows", h.ListShowsByMovie)
	e.GET("/v1/theaters", h.ListTheaters)
	e.GET("/v1/halls/:id", h.GetHall)
	e.GET("/v1/halls/:id/seats", h.ListHallSeats)
	e.GET("/v1/shows/:id/seats", h.GetShowSeatMap)

	// Catalog writes.
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.POST("/movies", h.CreateMovie)
	g.POST("/theaters", h.CreateTheater)
	g.POST("/halls", h.CreateHall)
	g.POST("/shows", h.CreateShow)
	g.POST("/shows/:id/cancel", h.CancelShow)
}

// RegisterBooking registers the booking endpoints under /v1.  All of
// them require a valid JWT; the booking mutations are additionally
// rate limited per user.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	// Availability and search reads.
	g.GET("/shows/:id/availability", h.CheckAvailability)
	g.GET("/shows/:id/consecutive", h.FindConsecutive)
	g.GET("/movies/:id/alternatives", h.FindAlternatives)

	// Booking queries.
	g.GET("/bookings", h.ListMine)
	g.GET("/bookings/:id", h.Get)
	g.GET("/bookings/reference/:reference", h.GetByReference)
	g.GET("/shows/:id/bookings", h.ListByShow)

	// Booking mutations sit behind the rate limiter.
	limited := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RateLimit(rlCfg, rdb))
	limited.POST("/bookings/single", h.BookSingle)
	limited.POST("/bookings/group", h.BookGroup)
	limited.POST("/bookings/consecutive", h.BookConsecutive)
	limited.POST("/bookings/:id/cancel", h.Cancel)
}
