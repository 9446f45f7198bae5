// Package services holds the server's business logic on top of the
// repositories: authentication, the diary and tag operations, and exports.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/auth"
	"github.com/dmitrijs2005/diarykeeper/internal/server/config"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a rotating refresh token.
// Registered is set by Login when the account was created by that call.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Registered   bool
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService; cfg supplies the JWT secret and
// token lifetimes.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// GetSalt returns the stored salt for account. Unknown accounts get a fresh
// random salt and exists=false; a subsequent Login with it registers them.
func (s *UserService) GetSalt(ctx context.Context, account string) ([]byte, bool, error) {
	user, err := s.repomanager.Users(s.db).GetUserByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.GenerateRandByteArray(cryptox.SaltSize), false, nil
		}
		return nil, false, common.ErrorInternal
	}
	return user.Salt, true, nil
}

// Login authenticates account, creating it on first use with the given salt
// and verifier. A wrong verifier for an existing account yields
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, account string, salt, verifier []byte) (*TokenPair, error) {
	users := s.repomanager.Users(s.db)

	user, err := users.GetUserByAccount(ctx, account)
	switch {
	case err == nil:
		return s.loginExisting(ctx, user, verifier)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrorInternal
	}

	created, err := users.Create(ctx, &models.User{Account: account, Salt: salt, Verifier: verifier})
	if err != nil {
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		// Lost a registration race; the winner's row is authoritative.
		user, err = users.GetUserByAccount(ctx, account)
		if err != nil {
			return nil, common.ErrorInternal
		}
		return s.loginExisting(ctx, user, verifier)
	}

	pair, err := s.generateTokenPair(ctx, created.ID, s.db)
	if err != nil {
		return nil, err
	}
	pair.Registered = true
	return pair, nil
}

func (s *UserService) loginExisting(ctx context.Context, user *models.User, verifier []byte) (*TokenPair, error) {
	if subtle.ConstantTimeCompare(user.Verifier, verifier) != 1 {
		return nil, common.ErrInvalidCredentials
	}
	return s.generateTokenPair(ctx, user.ID, s.db)
}

// RefreshToken consumes refreshToken and issues a new pair in one transaction.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, db dbx.DBTX) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
