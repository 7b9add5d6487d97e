// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing the
// access tokens that gate photo ownership.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/server/auth"
	"github.com/dmitrijs2005/musefuse/internal/server/config"
	"github.com/dmitrijs2005/musefuse/internal/server/models"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/repomanager"
)

// bcryptGenerateFromPassword is a seam for testing hash failures.
var bcryptGenerateFromPassword = bcrypt.GenerateFromPassword

// Token bundles an issued access token with its lifetime in whole seconds,
// as reported to clients in the login response.
type Token struct {
	Value     string
	ExpiresIn int
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token
// - Refresh: re-issue a token for an already-authenticated caller
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt hash of the given password.
// A taken username yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the provided password against the stored bcrypt hash and,
// on success, returns a fresh access token. Unknown users and wrong
// passwords are indistinguishable: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*Token, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issueToken(user.ID)
}

// Refresh re-issues a token for a caller that already holds a valid one.
// Credentials are not re-checked and previously issued tokens stay valid
// until their own expiry; there is no revocation list.
func (s *UserService) Refresh(userID int64) (*Token, error) {
	return s.issueToken(userID)
}

func (s *UserService) issueToken(userID int64) (*Token, error) {
	value, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Token{
		Value:     value,
		ExpiresIn: int(s.accessTokenValidityDuration.Seconds()),
	}, nil
}
