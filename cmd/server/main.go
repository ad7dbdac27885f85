package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/config"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/database"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/handler"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/queue"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/repository"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; with no client the rate limiter is a no-op.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	rlCfg := config.LoadRateLimitConfig()

	catalog := repository.NewCatalog(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	engine := allocation.NewEngine(catalog, bookings)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog, bookings), cfg.JWTSecret)
	router.RegisterBooking(e, handler.NewBookingHandler(engine, bookings, catalog), cfg.JWTSecret, rlCfg, rdb)

	// Background consumer appends confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
