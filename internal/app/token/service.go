/*
Package token implements the bearer token service: issuing signed session
tokens, verifying them, and revoking them against the credential store's
live session list.

A token is only valid when both checks pass: the signature (and expiry)
verifies against the service secret, and the token is still present in the
owning user's session list. Revocation removes it from the list, which
invalidates it immediately even though the signature would still verify.
*/
package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"accountd/internal/app/account"
)

const (
	// SessionExpiration bounds a token's lifetime. Revocation through the
	// session list is the primary invalidation mechanism; expiry is a backstop.
	SessionExpiration = 7 * 24 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "accountd"
)

// ErrInvalidToken reports a token that failed signature or expiry checks,
// is bound to a user that no longer exists, or has been revoked.
var ErrInvalidToken = errors.New("token: invalid or expired token")

// Service issues and validates session tokens for the credential store.
type Service struct {
	secret   []byte
	ttl      time.Duration
	accounts *account.Store
}

// NewService constructs a token Service signing with the given shared secret.
func NewService(secret string, accounts *account.Store) *Service {
	return &Service{
		secret:   []byte(secret),
		ttl:      SessionExpiration,
		accounts: accounts,
	}
}

// Generate creates a signed token bound to the user's id, appends it to the
// user's session list, and returns the token string.
func (s *Service) Generate(ctx context.Context, u *account.User) (string, error) {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID,
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Issuer:    TokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err := s.accounts.AppendToken(ctx, u, signed); err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns the bound user id.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Authenticate resolves a token string to its user. Beyond Verify, the user
// must still exist and the token must be present in the user's live session
// list.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*account.User, error) {
	userID, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	u, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	ok, err := s.accounts.HasToken(ctx, userID, tokenString)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidToken
	}

	return u, nil
}

// Revoke removes the matching token from the user's session list. Other
// sessions stay valid.
func (s *Service) Revoke(ctx context.Context, u *account.User, tokenString string) error {
	_, err := s.accounts.RemoveToken(ctx, u, tokenString)
	return err
}

// RevokeAll clears the user's entire session list.
func (s *Service) RevokeAll(ctx context.Context, u *account.User) error {
	return s.accounts.ClearTokens(ctx, u)
}
