package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/pkg/token"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128
)

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// AuthService handles authentication operations.
type AuthService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	tokens      *token.Service
}

// AuthServiceConfig holds configuration for the auth service.
type AuthServiceConfig struct {
	UserRepo    UserRepository
	SessionRepo SessionRepository
	Tokens      *token.Service
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:    cfg.UserRepo,
		sessionRepo: cfg.SessionRepo,
		tokens:      cfg.Tokens,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
}

// Register creates a new user account with email/password.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Hash:      hash,
		Firstname: stringPtr(strings.TrimSpace(req.Firstname)),
		Lastname:  stringPtr(strings.TrimSpace(req.Lastname)),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult represents a successful login.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresIn int // seconds
}

// Login authenticates a user and issues a session-backed access token.
// Every credential failure maps to ErrInvalidCredentials; the response
// never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(req.Password, user.Hash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	sessionID := uuid.New().String()

	signed, err := s.tokens.Sign(token.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: sessionID,
			ID:      sessionID,
		},
	})
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: hashToken(signed),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokens.Expiration()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:      user,
		Token:     signed,
		ExpiresIn: int(s.tokens.Expiration().Seconds()),
	}, nil
}

// Logout revokes the session referenced by the given token. The signature
// must check out before a session row is touched.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return ErrInvalidSession
	}
	return s.sessionRepo.Revoke(ctx, claims.SessionID())
}

// Verify validates a token and resolves the caller's identity. A token is
// accepted only when the signature and expiry check out AND the referenced
// session row is present, unrevoked, unexpired, and bound to this exact
// token string.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*model.Identity, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidSession
	}
	if session.TokenHash != hashToken(tokenString) {
		return nil, ErrInvalidSession
	}
	now := time.Now()
	if session.Revoked {
		return nil, ErrSessionRevoked
	}
	if session.Expired(now) {
		return nil, ErrSessionExpired
	}

	return &model.Identity{
		UserID:    session.UserID,
		Email:     claims.Email,
		SessionID: session.ID,
	}, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// hashToken creates a SHA-256 hash of the token for storage, so a leaked
// sessions table does not yield usable credentials.
func hashToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
