package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/diarykeeper/internal/client/client"
	"github.com/dmitrijs2005/diarykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginRegistersUnknownAccount(t *testing.T) {
	fc := newFakeClient()
	meta := newMetadataRepo(t)
	svc := NewAuthService(fc, meta)
	ctx := context.Background()

	session, err := svc.Login(ctx, " alice ", []byte("pw"))
	require.NoError(t, err)
	assert.True(t, session.Registered)
	assert.Equal(t, "alice", session.Account)

	salt := fc.salts["alice"]
	want := cryptox.SessionKey(cryptox.DeriveMasterKey([]byte("pw"), salt))
	assert.Equal(t, want, session.Key)

	// The verifier is not the key.
	assert.NotEqual(t, want, string(fc.verifiers["alice"]))

	stored, err := meta.Get(ctx, metadata.KeySessionKey)
	require.NoError(t, err)
	assert.Equal(t, want, string(stored))

	token, err := meta.Get(ctx, metadata.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-alice", string(token))
}

func TestAuth_LoginExistingAccount(t *testing.T) {
	fc := newFakeClient()
	svc := NewAuthService(fc, newMetadataRepo(t))
	ctx := context.Background()

	first, err := svc.Login(ctx, "bob", []byte("secret"))
	require.NoError(t, err)

	second, err := svc.Login(ctx, "bob", []byte("secret"))
	require.NoError(t, err)
	assert.False(t, second.Registered)
	assert.Equal(t, first.Key, second.Key)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	fc := newFakeClient()
	meta := newMetadataRepo(t)
	svc := NewAuthService(fc, meta)
	ctx := context.Background()

	_, err := svc.Login(ctx, "bob", []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	_, err = svc.Login(ctx, "bob", []byte("guess"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Restore(ctx)
	assert.ErrorIs(t, err, client.ErrNoSession)
}

func TestAuth_LoginValidation(t *testing.T) {
	svc := NewAuthService(newFakeClient(), newMetadataRepo(t))

	_, err := svc.Login(context.Background(), "  ", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Login(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestAuth_LoginServerDown(t *testing.T) {
	fc := newFakeClient()
	fc.saltErr = client.ErrUnavailable
	svc := NewAuthService(fc, newMetadataRepo(t))

	_, err := svc.Login(context.Background(), "alice", []byte("pw"))
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestAuth_RestoreLoadsSessionAndTokens(t *testing.T) {
	meta := newMetadataRepo(t)
	ctx := context.Background()

	first := newFakeClient()
	session, err := NewAuthService(first, meta).Login(ctx, "carol", []byte("pw"))
	require.NoError(t, err)

	second := newFakeClient()
	restored, err := NewAuthService(second, meta).Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Account, restored.Account)
	assert.Equal(t, session.Key, restored.Key)

	access, refresh := second.Tokens()
	assert.Equal(t, "access-carol", access)
	assert.Equal(t, "refresh-carol", refresh)
}

func TestAuth_RestoreWithoutSession(t *testing.T) {
	svc := NewAuthService(newFakeClient(), newMetadataRepo(t))

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, client.ErrNoSession)
}

func TestAuth_SaveTokensPersistsRotation(t *testing.T) {
	fc := newFakeClient()
	meta := newMetadataRepo(t)
	svc := NewAuthService(fc, meta)
	ctx := context.Background()

	_, err := svc.Login(ctx, "dave", []byte("pw"))
	require.NoError(t, err)

	fc.SetTokens("A2", "R2")
	require.NoError(t, svc.SaveTokens(ctx))

	v, err := meta.Get(ctx, metadata.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A2", string(v))
}

func TestAuth_LogoutClearsEverything(t *testing.T) {
	fc := newFakeClient()
	meta := newMetadataRepo(t)
	svc := NewAuthService(fc, meta)
	ctx := context.Background()

	_, err := svc.Login(ctx, "erin", []byte("pw"))
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assertNoMetadata(t, meta)

	access, refresh := fc.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	// Nothing to persist after logout.
	require.NoError(t, svc.SaveTokens(ctx))
	assertNoMetadata(t, meta)

	_, err = svc.Restore(ctx)
	assert.ErrorIs(t, err, client.ErrNoSession)
}

func TestAuth_SaveTokensSkipsUnchangedPair(t *testing.T) {
	fc := newFakeClient()
	meta := &countingMeta{Repository: newMetadataRepo(t)}
	svc := NewAuthService(fc, meta)
	ctx := context.Background()

	_, err := svc.Login(ctx, "frank", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, 1, meta.writes)

	require.NoError(t, svc.SaveTokens(ctx))
	assert.Equal(t, 1, meta.writes)

	fc.SetTokens("A3", "R3")
	require.NoError(t, svc.SaveTokens(ctx))
	assert.Equal(t, 2, meta.writes)

	restored := newFakeClient()
	_, err = NewAuthService(restored, meta).Restore(ctx)
	require.NoError(t, err)
	access, refresh := restored.Tokens()
	assert.Equal(t, "A3", access)
	assert.Equal(t, "R3", refresh)
}

func TestAuth_PingAndClose(t *testing.T) {
	fc := newFakeClient()
	svc := NewAuthService(fc, newMetadataRepo(t))

	require.NoError(t, svc.Ping(context.Background()))
	fc.pingErr = errors.New("down")
	assert.Error(t, svc.Ping(context.Background()))

	require.NoError(t, svc.Close())
	assert.True(t, fc.closed)
}

type countingMeta struct {
	metadata.Repository
	writes int
}

func (m *countingMeta) SetMany(ctx context.Context, values map[string][]byte) error {
	m.writes++
	return m.Repository.SetMany(ctx, values)
}

func assertNoMetadata(t *testing.T, meta metadata.Repository) {
	t.Helper()
	for _, k := range []string{metadata.KeyAccount, metadata.KeySessionKey, metadata.KeyAccessToken, metadata.KeyRefreshToken} {
		v, err := meta.Get(context.Background(), k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}
}
