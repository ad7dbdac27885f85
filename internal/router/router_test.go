package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/config"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/handler"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, &handler.AuthHandler{})
	RegisterCatalog(e, handler.NewCatalogHandler(nil, nil), "secret")
	RegisterBooking(e, handler.NewBookingHandler(nil, nil, nil), "secret", config.RateLimitConfig{}, nil)

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestBookingRoutesRegistered(t *testing.T) {
	routes := registeredRoutes(t)

	for _, want := range []string{
		http.MethodPost + " /v1/bookings/single",
		http.MethodPost + " /v1/bookings/group",
		http.MethodPost + " /v1/bookings/consecutive",
		http.MethodPost + " /v1/bookings/:id/cancel",
		http.MethodGet + " /v1/bookings",
		http.MethodGet + " /v1/bookings/:id",
		http.MethodGet + " /v1/bookings/reference/:reference",
		http.MethodGet + " /v1/shows/:id/bookings",
		http.MethodGet + " /v1/shows/:id/availability",
		http.MethodGet + " /v1/shows/:id/consecutive",
		http.MethodGet + " /v1/movies/:id/alternatives",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestCatalogRoutesRegistered(t *testing.T) {
	routes := registeredRoutes(t)

	for _, want := range []string{
		http.MethodGet + " /v1/movies",
		http.MethodGet + " /v1/halls/:id",
		http.MethodGet + " /v1/halls/:id/seats",
		http.MethodGet + " /v1/shows/:id/seats",
		http.MethodPost + " /v1/shows",
		http.MethodPost + " /v1/shows/:id/cancel",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}
