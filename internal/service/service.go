package service

import (
	"context"
	"time"

	"account_ledger/internal/logger"
	"account_ledger/internal/models"
	"account_ledger/internal/repository"
	"account_ledger/internal/session"
)

// Authorization is the credential store and verifier.
type Authorization interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
	// UserByID re-reads the authoritative user record; nil when it no longer exists.
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Sessions issues, resolves and destroys opaque session tokens.
type Sessions interface {
	CreateSession(ctx context.Context, userID int64) (token string, expiresAt time.Time, err error)
	// ResolveSession never fails: any problem with the token means "no identity".
	ResolveSession(ctx context.Context, token string) (userID int64, ok bool)
	DestroySession(ctx context.Context, token string) error
}

// Ledger is the owner-scoped account store plus the derived summary.
type Ledger interface {
	CreateAccount(ctx context.Context, ownerID int64, in AccountInput) (models.Account, error)
	ListAccounts(ctx context.Context, ownerID int64) ([]models.Account, error)
	UpdateAccount(ctx context.Context, ownerID int64, ref string, in AccountInput) (models.Account, error)
	DeleteAccount(ctx context.Context, ownerID int64, ref string) error
	Summary(ctx context.Context, ownerID int64) (models.Summary, error)
}

// Sweeper runs the background removal of expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, interval time.Duration)
}

type Service struct {
	Authorization
	Sessions
	Ledger
	Sweeper
}

// Options carries the tunables read from configuration.
type Options struct {
	BcryptCost    int
	SessionTTL    time.Duration
	SessionSecret []byte
}

// NewService wires the repositories and the session registry into the
// concrete services.
func NewService(repos *repository.Repository, store session.Store, opts Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	sessions := NewSessionService(store, opts.SessionSecret, opts.SessionTTL, log.Named("session"))
	return &Service{
		Authorization: NewAuthService(repos.Users, opts.BcryptCost),
		Sessions:      sessions,
		Ledger:        NewLedgerService(repos.Accounts, log.Named("ledger")),
		Sweeper:       sessions,
	}
}
