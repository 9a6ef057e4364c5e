package hours

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Middleware short-circuits requests outside the service window with a 503.
// Mount it on the API group; status endpoints stay outside the gate so
// availability can always be reported.
func Middleware(gate *Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if gate.AvailableNow() {
				return next(c)
			}
			open, close := gate.Window()
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error":   "Service unavailable",
				"message": fmt.Sprintf("The service is available from %02d:00 to %02d:00", open, close),
			})
		}
	}
}
