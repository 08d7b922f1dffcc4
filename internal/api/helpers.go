package api

import (
	"errors"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// errorJSON translates service errors into HTTP responses. Validation
// and availability errors are safe to show; anything else becomes a
// generic failure with the detail kept in the server log.
func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrWeakPassword):
		return c.JSON(400, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(401, map[string]string{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(403, map[string]string{"error": "Not authorized"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(404, map[string]string{"error": "Not found"})
	case errors.Is(err, service.ErrUserExists):
		return c.JSON(409, map[string]string{"error": service.ErrUserExists.Error()})
	case errors.Is(err, service.ErrUnavailable):
		return c.JSON(503, map[string]string{"error": err.Error()})
	default:
		logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Request failed")
		return c.JSON(500, map[string]string{"error": "Something went wrong"})
	}
}
