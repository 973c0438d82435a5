package ports

import (
	"context"
	"time"

	"github.com/diasys/diasys-api/internal/core/domain"
)

// LoginResult carries the freshly minted token pair.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Account      *domain.Account
}

// RefreshResult carries the replacement access token. The refresh token
// itself is rotated only on login.
type RefreshResult struct {
	AccessToken string
	Account     *domain.Account
}

// SessionService is the token lifecycle state machine: issuance on login,
// in-place refresh, and single-session revocation by replacing or clearing
// the one stored refresh token.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	Logout(ctx context.Context, account *domain.Account) error
	AuthenticateAccess(ctx context.Context, accessToken string) (*domain.Account, error)

	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
