package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diasys/diasys-api/internal/api/metrics"
	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorEnvelope
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Format data tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusBadRequest, errorEnvelope{
				Status:  "error",
				Message: "Email sudah terdaftar",
			})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, apiResponse{
		Status:  "success",
		Message: "Registrasi berhasil",
		Data: registerData{
			UserID:   account.ID,
			Name:     account.Name,
			Email:    account.Email,
			NextStep: "Silakan login menggunakan email dan password Anda",
		},
	})
}

// Login authenticates an account and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  errorEnvelope
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Format data tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorEnvelope{
				Status:  "error",
				Message: "Email atau password salah",
			})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, apiResponse{
		Status:  "success",
		Message: "Login berhasil",
		Data: loginData{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			TokenType:    "bearer",
			User: userData{
				UserID: result.Account.ID,
				Name:   result.Account.Name,
				Email:  result.Account.Email,
			},
			ExpiresIn: tokenPairExpiry{
				AccessToken:  humanizeTTL(h.sessions.AccessTTL()),
				RefreshToken: humanizeTTL(h.sessions.RefreshTTL()),
			},
		},
	})
}

// Refresh exchanges a valid refresh token for a new access token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  errorEnvelope
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Format data tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.TokenRefreshesTotal.WithLabelValues("invalid_token").Inc()
			return c.JSON(http.StatusUnauthorized, errorEnvelope{
				Status:  "error",
				Message: "Invalid refresh token",
			})
		}
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, apiResponse{
		Status:  "success",
		Message: "Access token berhasil diperbarui",
		Data: refreshData{
			AccessToken: result.AccessToken,
			TokenType:   "bearer",
			User: userData{
				UserID: result.Account.ID,
				Name:   result.Account.Name,
				Email:  result.Account.Email,
			},
			ExpiresIn: humanizeTTL(h.sessions.AccessTTL()),
		},
	})
}

// Logout clears the account's stored refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  errorEnvelope
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), account); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apiResponse{
		Status:  "success",
		Message: "Logout berhasil",
		Data: logoutData{
			Info: "Token telah dihapus. Silakan login kembali untuk mengakses sistem.",
		},
	})
}

// humanizeTTL renders a token lifetime the way clients display it,
// e.g. "30 minutes" or "7 days".
func humanizeTTL(d time.Duration) string {
	if d >= 24*time.Hour && d%(24*time.Hour) == 0 {
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	minutes := int(d / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
