// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/config"
	"github.com/dmitrijs2005/finplanner/internal/server/mail"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/memory"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/finplanner/internal/server/rest"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/middleware"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.Env)

	db, m, err := OpenStorage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	sender, err := newMailSender(ctx, c, logger)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("mail init error: %w", err)
	}

	hasher := auth.NewHasher(0)
	tokens := auth.NewIssuer(c.SecretKey, c.TokenValidity)

	users := services.NewUserService(db, m, tokens, hasher, c.PasswordMinLen, logger)
	resets := services.NewResetService(db, m, hasher, sender, services.ResetConfig{
		Validity:       c.ResetTokenValidity,
		FrontendOrigin: c.FrontendOrigin,
		PasswordMinLen: c.PasswordMinLen,
	}, logger)

	router := rest.NewRouter(rest.Dependencies{
		Config:        c,
		Users:         users,
		Resets:        resets,
		Todos:         services.NewTodoService(db, m, logger),
		Notes:         services.NewNoteService(db, m, logger),
		Records:       services.NewRecordService(db, m, logger),
		Authenticator: middleware.NewAuthenticator(tokens, users, logger),
		Logger:        logger,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: rest.NewHTTPServer(c.HTTPAddr, router, c.RequestTimeout, logger),
	}, nil
}

// OpenStorage connects to Postgres and applies migrations, or returns the
// in-memory store for MemoryDSN (db is then nil).
func OpenStorage(ctx context.Context, c *config.Config, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		return nil, repomanager.NewMemoryRepositoryManager(memory.NewStore()), nil
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	return db, m, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func newMailSender(ctx context.Context, c *config.Config, logger logging.Logger) (mail.Sender, error) {
	switch c.MailProvider {
	case config.MailProviderSES:
		s, err := mail.NewSESSender(ctx, mail.SESConfig{
			Region:          c.SESRegion,
			AccessKeyID:     c.SESAccessKeyID,
			SecretAccessKey: c.SESSecretAccessKey,
			Endpoint:        c.SESEndpoint,
			From:            c.MailFrom,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.MailProviderLog, "":
		return mail.NewLogSender(logger), nil
	default:
		return nil, errors.New("unknown mail provider " + c.MailProvider)
	}
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves HTTP until a termination signal arrives or ctx is cancelled,
// then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := app.initSignalHandler(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env)

	var wg sync.WaitGroup
	var runErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "HTTP server failed", "error", err)
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	closeDB(app.db)
	app.logger.Info(context.Background(), "App stopped")
	return runErr
}

// Exit prints err to stderr and terminates the process with status 1.
func Exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
