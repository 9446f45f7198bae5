// Package services contains the application services of the DiaryKeeper CLI.
// This file defines authentication: login-or-register, session restore and
// logout.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/diarykeeper/internal/client/client"
	"github.com/dmitrijs2005/diarykeeper/internal/client/models"
	"github.com/dmitrijs2005/diarykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate (registering unknown accounts) and persist the session.
//   - Restore: reload the persisted session, client.ErrNoSession if none.
//   - SaveTokens: persist the current, possibly rotated, token pair.
//   - Logout: forget the session locally.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, account string, password []byte) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	SaveTokens(ctx context.Context) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client
	meta   metadata.Repository
}

// NewAuthService constructs an AuthService bound to the given API client and
// local metadata store.
func NewAuthService(client client.Client, meta metadata.Repository) AuthService {
	return &authService{client: client, meta: meta}
}

// Login fetches the account salt, derives the master key and verifier from
// password, and logs in. Unknown accounts are registered by the same call;
// Session.Registered reports that. The session key and tokens are persisted
// locally.
func (a *authService) Login(ctx context.Context, account string, password []byte) (*models.Session, error) {
	account = strings.TrimSpace(account)
	if account == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: account and password are required", common.ErrorValidation)
	}

	salt, _, err := a.client.GetSalt(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	masterKey := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(masterKey)

	registered, err := a.client.Login(ctx, account, salt, cryptox.MakeVerifier(masterKey))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	session := &models.Session{Account: account, Key: cryptox.SessionKey(masterKey), Registered: registered}

	access, refresh := a.client.Tokens()
	err = a.meta.SetMany(ctx, map[string][]byte{
		metadata.KeyAccount:      []byte(session.Account),
		metadata.KeySessionKey:   []byte(session.Key),
		metadata.KeyAccessToken:  []byte(access),
		metadata.KeyRefreshToken: []byte(refresh),
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	return session, nil
}

func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	values := make(map[string]string, 4)
	for _, k := range []string{metadata.KeyAccount, metadata.KeySessionKey, metadata.KeyAccessToken, metadata.KeyRefreshToken} {
		v, err := a.meta.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		values[k] = string(v)
	}

	account, key := values[metadata.KeyAccount], values[metadata.KeySessionKey]
	if account == "" || key == "" {
		return nil, client.ErrNoSession
	}

	a.client.SetTokens(values[metadata.KeyAccessToken], values[metadata.KeyRefreshToken])
	return &models.Session{Account: account, Key: key}, nil
}

// SaveTokens writes the client's current token pair unless it is empty or
// already stored.
func (a *authService) SaveTokens(ctx context.Context) error {
	access, refresh := a.client.Tokens()
	if access == "" && refresh == "" {
		return nil
	}

	storedAccess, err := a.meta.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return err
	}
	storedRefresh, err := a.meta.Get(ctx, metadata.KeyRefreshToken)
	if err != nil {
		return err
	}
	if string(storedAccess) == access && string(storedRefresh) == refresh {
		return nil
	}

	return a.meta.SetMany(ctx, map[string][]byte{
		metadata.KeyAccessToken:  []byte(access),
		metadata.KeyRefreshToken: []byte(refresh),
	})
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetTokens("", "")
	return a.meta.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}
