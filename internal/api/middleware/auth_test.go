package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

type stubSessions struct {
	account *domain.Account
	err     error
	token   string
}

func (s *stubSessions) AuthenticateAccess(_ context.Context, accessToken string) (*domain.Account, error) {
	s.token = accessToken
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

func (s *stubSessions) Register(context.Context, string, string, string) (*domain.Account, error) {
	return nil, nil
}
func (s *stubSessions) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, nil
}
func (s *stubSessions) Refresh(context.Context, string) (*ports.RefreshResult, error) {
	return nil, nil
}
func (s *stubSessions) Logout(context.Context, *domain.Account) error { return nil }
func (s *stubSessions) AccessTTL() time.Duration                      { return 30 * time.Minute }
func (s *stubSessions) RefreshTTL() time.Duration                     { return 7 * 24 * time.Hour }

func newAuthContext(authorization string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	sessions := &stubSessions{account: &domain.Account{Name: "Ana", Email: "ana@x.com"}}
	c := newAuthContext("Bearer signed-access-token")

	called := false
	handler := Auth(sessions)(func(c echo.Context) error {
		called = true
		account, _ := c.Get("account").(*domain.Account)
		if account == nil || account.Email != "ana@x.com" {
			t.Fatalf("account not injected: %+v", account)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if sessions.token != "signed-access-token" {
		t.Fatalf("unexpected token passed to service: %q", sessions.token)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	sessions := &stubSessions{account: &domain.Account{Email: "ana@x.com"}}
	c := newAuthContext("")

	handler := Auth(sessions)(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	sessions := &stubSessions{account: &domain.Account{Email: "ana@x.com"}}
	c := newAuthContext("Token abc")

	handler := Auth(sessions)(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	sessions := &stubSessions{err: domain.ErrInvalidToken}
	c := newAuthContext("Bearer expired-or-wrong-type")

	handler := Auth(sessions)(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthMiddleware_AccountGone(t *testing.T) {
	sessions := &stubSessions{err: domain.ErrAccountNotFound}
	c := newAuthContext("Bearer valid-but-orphaned")

	handler := Auth(sessions)(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
