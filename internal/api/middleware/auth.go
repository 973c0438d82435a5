package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/diasys/diasys-api/internal/api/handler"
	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

// Auth gates protected routes. It extracts the bearer token, resolves it to
// an account via SessionService.AuthenticateAccess and injects the account
// into the request context. Failures are returned as domain errors and
// rendered by the centralized HTTP error handler.
func Auth(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrInvalidToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrInvalidToken
			}

			account, err := sessions.AuthenticateAccess(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			handler.SetCtxAccount(c, account)
			return next(c)
		}
	}
}
