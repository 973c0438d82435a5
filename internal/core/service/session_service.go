package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
	"github.com/diasys/diasys-api/internal/core/token"
)

// SessionService implements registration, login, token refresh and logout.
// Revocation works by replacement: each account stores at most one refresh
// token, and minting a new one (or clearing it on logout) invalidates every
// previously issued refresh token for that account.
type SessionService struct {
	repo    ports.AccountRepository
	access  *token.Codec
	refresh *token.Codec
	log     zerolog.Logger
}

func NewSessionService(repo ports.AccountRepository, access, refresh *token.Codec, log zerolog.Logger) *SessionService {
	return &SessionService{repo: repo, access: access, refresh: refresh, log: log}
}

func (s *SessionService) AccessTTL() time.Duration  { return s.access.TTL() }
func (s *SessionService) RefreshTTL() time.Duration { return s.refresh.TTL() }

func (s *SessionService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Msg("account registered")
	return created, nil
}

// Login verifies credentials and mints a fresh token pair. The new refresh
// token replaces whatever the account stored before, so any earlier session's
// refresh token is revoked the moment this one is issued. An unknown email
// and a wrong password produce the same error to prevent account enumeration.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Debug().Str("email", email).Msg("login for unknown account")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("email", email).Msg("login with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.access.Issue(account.Email, token.TypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Issue(account.Email, token.TypeRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetRefreshToken(ctx, account.Email, refreshToken); err != nil {
		return nil, err
	}
	account.RefreshToken = refreshToken

	s.log.Info().Str("email", account.Email).Msg("login succeeded")
	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}

// Refresh mints a new access token against a presented refresh token. The
// token must verify under the refresh secret, carry type=refresh, and be
// byte-equal to the account's stored value. A superseded refresh token is
// rejected even before its expiry.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	claims, err := s.refresh.Verify(refreshToken)
	if err != nil {
		s.log.Debug().Msg("refresh token failed verification")
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != token.TypeRefresh {
		s.log.Debug().Str("type", claims.TokenType).Msg("refresh with wrong token type")
		return nil, domain.ErrInvalidToken
	}

	account, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if account.RefreshToken != refreshToken {
		s.log.Debug().Str("email", account.Email).Msg("refresh with superseded token")
		return nil, domain.ErrInvalidToken
	}

	accessToken, err := s.access.Issue(account.Email, token.TypeAccess)
	if err != nil {
		return nil, err
	}

	return &ports.RefreshResult{AccessToken: accessToken, Account: account}, nil
}

// Logout clears the stored refresh token, closing the account's session.
func (s *SessionService) Logout(ctx context.Context, account *domain.Account) error {
	if err := s.repo.SetRefreshToken(ctx, account.Email, ""); err != nil {
		return err
	}
	account.RefreshToken = ""
	s.log.Info().Str("email", account.Email).Msg("logout")
	return nil
}

// AuthenticateAccess resolves an access token to its account. Every protected
// operation passes through here first.
func (s *SessionService) AuthenticateAccess(ctx context.Context, accessToken string) (*domain.Account, error) {
	claims, err := s.access.Verify(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != token.TypeAccess {
		s.log.Debug().Str("type", claims.TokenType).Msg("access gate with wrong token type")
		return nil, domain.ErrInvalidToken
	}

	account, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return account, nil
}
