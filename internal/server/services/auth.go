// Package services contains server-side business logic. This file implements
// AuthService, which composes the credential hasher, the token issuer and
// the user store into the register / login / verify-session flows.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/server/auth"
	"github.com/dmitrijs2005/authvault/internal/server/config"
	"github.com/dmitrijs2005/authvault/internal/server/models"
	"github.com/dmitrijs2005/authvault/internal/server/repositories/users"
)

const minPasswordLength = 6

// TokenInfo describes the claims of a verified session token.
type TokenInfo struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is the result of a successful VerifySession: the user's current
// record plus the timing claims of the presented token.
type Session struct {
	User  models.PublicUser
	Token TokenInfo
}

// AuthService provides authentication operations:
//   - Register: create a user and mint a token
//   - Login: verify credentials and mint a token
//   - VerifySession: validate a bearer token and re-fetch its subject
type AuthService struct {
	users    users.Repository
	hasher   auth.PasswordHasher
	secret   []byte
	tokenTTL time.Duration
	logger   logging.Logger

	// mu serializes the exists-check + insert sequence in Register so two
	// concurrent registrations for the same email cannot both pass the
	// uniqueness check.
	mu sync.Mutex
}

// NewAuthService constructs an AuthService from the user store, hasher and
// server config.
func NewAuthService(repo users.Repository, hasher auth.PasswordHasher, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		users:    repo,
		hasher:   hasher,
		secret:   []byte(cfg.SecretKey),
		tokenTTL: cfg.TokenValidityDuration,
		logger:   logger.With("module", "auth_service"),
	}
}

// Register creates a new user and returns a token bound to it. Fails with
// common.ErrValidation on missing fields or a short password, and with
// common.ErrAlreadyExists when the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *models.PublicUser, error) {
	s.logger.Info(ctx, "registration attempt", "email", email, "password_length", len(password))

	if name == "" || email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return "", nil, s.internal(ctx, "existence check failed", email, err)
	}
	if exists {
		s.logger.Warn(ctx, "registration conflict", "email", email)
		return "", nil, fmt.Errorf("%w: user already exists with this email", common.ErrAlreadyExists)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, s.internal(ctx, "password hashing failed", email, err)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return "", nil, s.internal(ctx, "store count failed", email, err)
	}

	user := &models.User{
		ID:           strconv.Itoa(count + 1),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return "", nil, fmt.Errorf("%w: user already exists with this email", common.ErrAlreadyExists)
		}
		return "", nil, s.internal(ctx, "insert failed", email, err)
	}

	token, err := auth.IssueToken(user.ID, user.Email, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, s.internal(ctx, "token issuance failed", email, err)
	}

	s.logger.Info(ctx, "user registered", "id", user.ID, "email", user.Email)
	public := user.Public()
	return token, &public, nil
}

// Login verifies credentials and returns a fresh token. Any credential
// failure yields common.ErrUnauthorized without distinguishing "no such
// user" from "wrong password".
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.PublicUser, error) {
	s.logger.Info(ctx, "login attempt", "email", email)

	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "login failed: user not found", "email", email)
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, s.internal(ctx, "lookup failed", email, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, s.internal(ctx, "password verification failed", email, err)
	}
	if !ok {
		s.logger.Warn(ctx, "login failed: invalid password", "email", email)
		return "", nil, common.ErrUnauthorized
	}

	token, err := auth.IssueToken(user.ID, user.Email, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, s.internal(ctx, "token issuance failed", email, err)
	}

	s.logger.Info(ctx, "login successful", "email", user.Email)
	public := user.Public()
	return token, &public, nil
}

// VerifySession validates the Authorization header value, which must be
// exactly "Bearer <token>", and re-fetches the token's subject from the
// store. Token failures of any kind yield common.ErrUnauthorized; a valid
// token whose subject no longer exists yields common.ErrNotFound.
func (s *AuthService) VerifySession(ctx context.Context, authorization string) (*Session, error) {
	tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || tokenString == "" {
		s.logger.Warn(ctx, "missing or malformed authorization header")
		return nil, fmt.Errorf("%w: authorization token required", common.ErrUnauthorized)
	}

	claims, err := auth.VerifyToken(tokenString, s.secret)
	if err != nil {
		// The precise reason (malformed / bad signature / expired) is for
		// the log only; the caller gets the generic category.
		s.logger.Warn(ctx, "token verification failed", "reason", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "token subject no longer exists", "user_id", claims.UserID)
			return nil, fmt.Errorf("%w: user not found", common.ErrNotFound)
		}
		return nil, s.internal(ctx, "lookup failed", claims.Email, err)
	}

	s.logger.Info(ctx, "session verified", "id", user.ID, "email", user.Email)
	return &Session{
		User: user.Public(),
		Token: TokenInfo{
			UserID:    claims.UserID,
			Email:     claims.Email,
			IssuedAt:  claims.IssuedAt.Time,
			ExpiresAt: claims.ExpiresAt.Time,
		},
	}, nil
}

// internal logs the detailed failure server-side and returns the sanitized
// taxonomy error.
func (s *AuthService) internal(ctx context.Context, msg, email string, err error) error {
	s.logger.Error(ctx, msg, "email", email, "error", err.Error())
	if errors.Is(err, common.ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrInternal, err)
}
