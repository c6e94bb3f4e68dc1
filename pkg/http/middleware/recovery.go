package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a 500 response in the standard
// envelope shape, so a crashing advice request never drops the connection.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					log.Printf("panic recovered: %v\n%s", err, debug.Stack())
					_ = c.JSON(http.StatusOK, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": http.StatusText(http.StatusInternalServerError),
						"data":    "Something went wrong",
					})
				}
			}()
			return next(c)
		}
	}
}
