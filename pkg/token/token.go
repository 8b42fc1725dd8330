package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid signing key")
)

// Claims represents the payload of a Storefront access token.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SessionID returns the jti claim, which references the stored session.
func (c *Claims) SessionID() string {
	return c.ID
}

// Service handles access token operations.
type Service struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// Config holds token service configuration.
type Config struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// NewService creates a new token service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrInvalidKey
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Hour
	}
	return &Service{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: cfg.Expiration,
	}, nil
}

// Sign creates a signed token. Standard claims are filled in: issuer,
// issued-at, expiry, and a fresh jti when none is set.
func (s *Service) Sign(claims Claims) (string, error) {
	now := time.Now()

	claims.Issuer = s.issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiration))
	}
	if claims.ID == "" {
		claims.ID = uuid.New().String()
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string and returns its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Expiration returns the configured token lifetime.
func (s *Service) Expiration() time.Duration {
	return s.expiration
}
