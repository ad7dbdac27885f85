package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/config"
)

// RateLimit returns a fixed-window limiter backed by Redis.  Each
// (client, route) pair gets a counter keyed by the current window; the
// first increment sets the window's expiry so counters clean themselves
// up.  With a nil Redis client or the limiter disabled the middleware
// is a no-op, so a Redis outage never blocks bookings.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateKey(cfg, c)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// fail open on Redis errors
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}

			remaining := int64(cfg.Requests) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Requests) {
				ttl, err := rdb.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = cfg.Window
				}
				secs := int(ttl / time.Second)
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"message":     "rate limit exceeded",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

// rateKey buckets requests by client identity, route and window.  An
// authenticated user is keyed by id so one busy user cannot exhaust a
// shared NAT address's budget; anonymous requests fall back to IP.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	who := "ip:" + c.RealIP()
	if uid := UserID(c); uid != 0 {
		who = "user:" + strconv.FormatUint(uid, 10)
	}
	window := time.Now().Unix() / int64(cfg.Window/time.Second)
	return fmt.Sprintf("%s:%s:%s %s:%d", cfg.Prefix, who, c.Request().Method, c.Path(), window)
}
