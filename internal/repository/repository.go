package repository

import (
	"context"
	"database/sql"

	"account_ledger/internal/models"
)

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Accounts stores ledger accounts. Every read and write except Create is
// filtered by the owning user id.
type Accounts interface {
	Create(ctx context.Context, a models.Account) (models.Account, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Account, error)
	Update(ctx context.Context, a models.Account) (models.Account, error)
	Delete(ctx context.Context, ownerID int64, id string) error
}

type Repository struct {
	Users    Users
	Accounts Accounts
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Accounts: NewAccountRepository(db),
	}
}
