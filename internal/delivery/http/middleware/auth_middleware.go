package middleware

import (
	"errors"
	"strings"

	"dataitjobs/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUsernameKey = "username"
	CtxRoleKey     = "role"
)

type AuthMiddleware struct {
	jwt  jwt.Service
	role string
}

// NewAuthMiddleware guards routes with a bearer token carrying role.
func NewAuthMiddleware(jwtSvc jwt.Service, role string) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, role: role}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if m.role != "" && claims.Role != m.role {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}

		c.Locals(CtxUsernameKey, claims.Username)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
