package http

import "github.com/labstack/echo/v4"

// Handler registers a set of routes on the server's Echo instance. The
// server wires exactly one handler; route grouping is the handler's job.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
