package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diasys/diasys-api/internal/core/domain"
)

// accountContextKey is where the auth middleware stores the resolved account.
const accountContextKey = "account"

// ctxAccount extracts the account injected by the Auth middleware. Its
// absence means the middleware did not run on this route; treat as
// unauthenticated rather than panicking.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, _ := c.Get(accountContextKey).(*domain.Account)
	if account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return account, nil
}

// SetCtxAccount stores the resolved account on the request context.
// Called by the Auth middleware only.
func SetCtxAccount(c echo.Context, account *domain.Account) {
	c.Set(accountContextKey, account)
}
