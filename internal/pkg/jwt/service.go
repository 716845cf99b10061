package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess = "access"
	RoleAdmin       = "admin"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(username, role string) (string, time.Time, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration, issuer string) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		issuer:    issuer,
		now:       time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(username, role string) (string, time.Time, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 {
		return "", time.Time{}, ErrTokenInvalid
	}
	now := s.now().UTC()
	exp := now.Add(s.expiresIn)

	c := Claims{
		Username:  username,
		Role:      role,
		TokenType: TokenTypeAccess,
		IssuedAt:  now,
		ExpiredAt: exp,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   username,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if !c.ExpiredAt.IsZero() && s.now().UTC().After(c.ExpiredAt.UTC()) {
		return Claims{}, ErrTokenExpired
	}
	if c.TokenType != TokenTypeAccess {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
