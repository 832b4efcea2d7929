package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"visitgate/internal/domain/appointment"
)

// ---- helpers ----

// notFoundBody is the one uniform payload for every not-found outcome; an
// unknown code and a capability mismatch must be byte-identical.
var notFoundBody = map[string]string{"error": "not found"}

// writeDomainError maps domain sentinels to HTTP codes.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		return c.JSON(http.StatusNotFound, notFoundBody)
	case errors.Is(err, appointment.ErrInvalidTransition):
		// caller may re-read the current status and retry
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "status no longer allows this transition"})
	case errors.Is(err, appointment.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
