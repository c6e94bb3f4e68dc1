package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per request. Prometheus scrapes hit
// /metrics every few seconds, so that route is skipped.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			if req.URL.Path == "/metrics" {
				return err
			}
			log.Printf("%s %s from %s - %d in %s",
				req.Method,
				req.RequestURI,
				c.RealIP(),
				c.Response().Status,
				time.Since(start),
			)

			return err
		}
	}
}
