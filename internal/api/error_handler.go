package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/diasys/diasys-api/internal/api/handler"
	"github.com/diasys/diasys-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with the full per-field violation list.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Per-field validation failures carry their structured violation list.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{
			Status:  "error",
			Message: "Validasi data gagal",
			Details: map[string]any{"errors": ve.Violations},
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Status: "error", Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors map to deterministic HTTP codes.
	var bmiErr *domain.BMIOutOfRangeError
	switch {
	case errors.As(err, &bmiErr):
		return http.StatusBadRequest, errorResponse{Status: "error", Message: bmiErr.Error()}
	case errors.Is(err, domain.ErrModelUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Status: "error", Message: "ML model tidak tersedia"}
	case errors.Is(err, domain.ErrInference):
		return http.StatusInternalServerError, errorResponse{Status: "error", Message: fmt.Sprintf("Error saat prediksi: %v", err)}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "Invalid token"}
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "User not found"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "Email atau password salah"}
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusBadRequest, errorResponse{Status: "error", Message: "Email sudah terdaftar"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Status: "error", Message: "internal server error"}
}
