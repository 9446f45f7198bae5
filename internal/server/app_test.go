package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/diarykeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.DatabaseDSN = ""
	c.S3Bucket = ""
	c.LogLevel = "error"
	return &c
}

func TestNewApp_MemoryStorage(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.db)
	assert.Nil(t, app.redis)
	assert.NotNil(t, app.grpc)
	assert.Empty(t, app.checkers())
}

func TestNewApp_RedisConfigured(t *testing.T) {
	c := memoryConfig()
	c.RedisURL = "redis://127.0.0.1:6379/0"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.redis)
	assert.Contains(t, app.checkers(), "redis")
}

func TestNewApp_BadRedisURL(t *testing.T) {
	c := memoryConfig()
	c.RedisURL = "://nope"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestNewApp_DatabaseError(t *testing.T) {
	orig := openDB
	openDB = func(context.Context, string) (*sql.DB, error) { return nil, errors.New("refused") }
	defer func() { openDB = orig }()

	c := memoryConfig()
	c.DatabaseDSN = "postgres://x"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestRun_StopsOnCancel(t *testing.T) {
	c := memoryConfig()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()
	<-done
}
