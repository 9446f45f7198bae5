package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/client/client"
	"github.com/dmitrijs2005/diarykeeper/internal/client/config"
	"github.com/dmitrijs2005/diarykeeper/internal/client/models"
	"github.com/dmitrijs2005/diarykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/diarykeeper/internal/client/services"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

type App struct {
	config  *config.Config
	auth    services.AuthService
	diaries services.DiaryService
	logger  logging.Logger
	db      *sql.DB

	reader *bufio.Reader
	out    io.Writer

	session *models.Session

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the local database, dials the server and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, "text", c.LogLevel).With("module", "cli")

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(c,
		services.NewAuthService(apiClient, metadata.NewSQLiteRepository(db)),
		services.NewDiaryService(apiClient, logger),
		logger, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, auth services.AuthService, diaries services.DiaryService,
	logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		auth:    auth,
		diaries: diaries,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores the saved session, starts the connectivity watcher and blocks
// in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	a.restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	a.printf("Welcome to DiaryKeeper (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) restore(ctx context.Context) {
	session, err := a.auth.Restore(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrNoSession) {
			a.logger.Warn(ctx, "session restore failed", "error", err)
		}
		return
	}
	a.session = session
	a.printf("Welcome back, %s\n", session.Account)
}

func (a *App) persistSession(ctx context.Context) {
	if err := a.auth.SaveTokens(ctx); err != nil {
		a.logger.Warn(ctx, "saving tokens failed", "error", err)
	}
}

func (a *App) close() {
	ctx := context.Background()
	if a.isLoggedIn() {
		a.persistSession(ctx)
	}
	if err := a.auth.Close(); err != nil {
		a.logger.Warn(ctx, "closing client failed", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.auth.Ping(pctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.Account + " "
	}
	if m := a.getMode(); m != "" {
		s += string(m)
	}
	if s = strings.TrimSpace(s); s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
