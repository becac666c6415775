package usecase

import (
	"context"
	"strings"

	"github.com/waytodrive/orderadmin/internal/config"
	domainErrors "github.com/waytodrive/orderadmin/internal/domain/errors"
	pkgAuth "github.com/waytodrive/orderadmin/internal/pkg/auth"
)

// AuthUseCase validates the single configured operator and manages tokens.
// There is no user table: all durable state lives in the external order
// feed, so the operator account comes from configuration alone.
type AuthUseCase struct {
	login        string
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewAuthUseCase hashes the configured operator password once at startup.
func NewAuthUseCase(cfg *config.Config, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) (*AuthUseCase, error) {
	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	return &AuthUseCase{
		login:        cfg.AdminLogin,
		passwordHash: hash,
		hasher:       hasher,
		tokens:       strategy,
	}, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(_ context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	if !strings.EqualFold(login, u.login) {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.tokens.IssueToken(u.login)
}

// ParseToken extracts the operator login from a token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
