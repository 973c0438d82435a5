package ports

import (
	"context"

	"github.com/diasys/diasys-api/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
// SetRefreshToken replaces the stored refresh token in a single atomic
// document update; passing "" clears it.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	SetRefreshToken(ctx context.Context, email, refreshToken string) error
}
