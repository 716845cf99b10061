package usecase

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"dataitjobs/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type AdminAuthUsecase interface {
	Login(ctx context.Context, username, password string) (AdminToken, error)
}

type AdminToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AdminAuth checks the single configured operator account. Without a
// password hash every login is refused.
type AdminAuth struct {
	username     string
	passwordHash []byte
	jwt          jwt.Service
}

func NewAdminAuth(username, passwordHash string, jwtSvc jwt.Service) *AdminAuth {
	return &AdminAuth{
		username:     strings.TrimSpace(username),
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		jwt:          jwtSvc,
	}
}

func (u *AdminAuth) Login(ctx context.Context, username, password string) (AdminToken, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return AdminToken{}, ErrInvalidInput
	}
	if u == nil || len(u.passwordHash) == 0 || u.jwt == nil {
		return AdminToken{}, ErrUnauthorized
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.username)) == 1
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil || !userOK {
		return AdminToken{}, ErrUnauthorized
	}

	token, exp, err := u.jwt.GenerateAccessToken(u.username, jwt.RoleAdmin)
	if err != nil {
		return AdminToken{}, ErrInternal
	}
	return AdminToken{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp}, nil
}
