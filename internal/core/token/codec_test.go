package token

import (
	"errors"
	"testing"
	"time"

	"github.com/diasys/diasys-api/internal/core/domain"
)

func TestCodec_IssueAndVerify(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	signed, err := c.Issue("ana@x.com", TypeAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "ana@x.com" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.TokenType != TypeAccess {
		t.Fatalf("unexpected type: %s", claims.TokenType)
	}
}

func TestCodec_IssueDistinctBackToBack(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	// Two tokens minted for the same subject within the same second must
	// still differ; stored refresh-token revocation compares byte equality.
	first, err := c.Issue("ana@x.com", TypeRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := c.Issue("ana@x.com", TypeRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if first == second {
		t.Fatalf("identical tokens issued back-to-back")
	}

	claims, err := c.Verify(second)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("issued token carries no jti")
	}
}

func TestCodec_VerifyWrongSecret(t *testing.T) {
	access := NewCodec("access-secret", time.Hour)
	refresh := NewCodec("refresh-secret", time.Hour)

	signed, err := refresh.Issue("ana@x.com", TypeRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := access.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_VerifyExpired(t *testing.T) {
	c := NewCodec("secret", -time.Minute)

	signed, err := c.Issue("ana@x.com", TypeAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := c.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_VerifyMalformed(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	for _, s := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := c.Verify(s); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", s, err)
		}
	}
}

func TestCodec_TypePreservedNotEnforced(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	signed, err := c.Issue("ana@x.com", TypeRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Verify succeeds under the right secret; the type check is the caller's.
	claims, err := c.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.TokenType != TypeRefresh {
		t.Fatalf("expected refresh type, got %s", claims.TokenType)
	}
}
