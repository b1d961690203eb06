package main

import (
	"context"
	"database/sql"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "account_ledger/docs"
	"account_ledger/internal/config"
	"account_ledger/internal/handlers"
	"account_ledger/internal/logger"
	"account_ledger/internal/repository"
	"account_ledger/internal/repository/db"
	"account_ledger/internal/server"
	"account_ledger/internal/service"
	"account_ledger/internal/session"
)

const shutdownTimeout = 10 * time.Second

// @title                       Account Ledger API
// @version                     1.0
// @description                 Personal ledger of asset, liability, equity and revenue accounts with cookie sessions.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        ledger_session
func main() {
	// load config.yml (path override: LEDGER_CONFIG)
	cfg, err := config.Load(os.Getenv("LEDGER_CONFIG"))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to init session store", "store", cfg.Session.Store, "err", err)
	}
	defer func() { _ = closeStore.Close() }()

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		log.Warnw("session.secret not set; generated a random key, sessions end on restart")
		secret = service.RandomSecret()
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, store, service.Options{
		BcryptCost:    cfg.Security.BcryptCost,
		SessionTTL:    cfg.Session.TTL,
		SessionSecret: secret,
	}, log)
	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		CookieName:         cfg.Session.CookieName,
		SecureCookie:       cfg.Session.SecureCookie,
		SessionTTL:         cfg.Session.TTL,
		LoginRatePerMinute: cfg.Security.LoginRatePerMinute,
		LoginBurst:         cfg.Security.LoginBurst,
		TrustedProxies:     cfg.Security.TrustedProxies,
	})

	// expired session sweeper
	go services.Sweeper.Run(ctx, cfg.Session.SweepInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSessionStore builds the configured session registry.
func openSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (session.Store, io.Closer, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		rs, err := session.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("session store: redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return rs, rs, nil
	default:
		log.Infow("session store: memory")
		return session.NewMemoryStore(), nopCloser{}, nil
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
