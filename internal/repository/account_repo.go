package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"account_ledger/internal/models"

	"github.com/google/uuid"
)

type AccountSQLite struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountSQLite {
	return &AccountSQLite{db: db}
}

var _ Accounts = (*AccountSQLite)(nil)

const (
	accountColumns = `id, user_id, account_id, name, main_account_type, main_account_category, notes, balance, created_at, updated_at`

	insertAccountSQL = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectAccountsByOwnerSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = ? ORDER BY created_at ASC, id ASC`

	selectAccountSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ? AND user_id = ?`

	updateAccountSQL = `
		UPDATE accounts SET
			account_id = ?,
			name = ?,
			main_account_type = ?,
			main_account_category = ?,
			notes = ?,
			balance = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	deleteAccountSQL = `DELETE FROM accounts WHERE id = ? AND user_id = ?`
)

// nullableAccountID maps the empty external id to NULL so that it never
// collides with another account's missing id.
func nullableAccountID(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a. If ID or the timestamps are empty they are set; the
// stored record is returned.
func (r *AccountSQLite) Create(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.CreatedAt

	_, err := r.db.ExecContext(ctx, insertAccountSQL,
		a.ID,
		a.UserID,
		nullableAccountID(a.AccountID),
		a.Name,
		string(a.MainAccountType),
		a.MainAccountCategory,
		a.Notes,
		a.Balance,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts.account_id") {
			return models.Account{}, ErrAccountIDTaken
		}
		return models.Account{}, fmt.Errorf("insert account for user %d: %w", a.UserID, err)
	}
	return a, nil
}

// ListByOwner returns every account owned by ownerID, oldest first.
// The result is never nil.
func (r *AccountSQLite) ListByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccountsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Account, 0, 16)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account for user %d: %w", ownerID, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts for user %d: %w", ownerID, err)
	}
	return out, nil
}

// Update overwrites every mutable field of the account identified by
// (a.ID, a.UserID). An id that is absent or owned by someone else yields
// ErrAccountNotFound. Concurrent updates are last-write-wins.
func (r *AccountSQLite) Update(ctx context.Context, a models.Account) (models.Account, error) {
	res, err := r.db.ExecContext(ctx, updateAccountSQL,
		nullableAccountID(a.AccountID),
		a.Name,
		string(a.MainAccountType),
		a.MainAccountCategory,
		a.Notes,
		a.Balance,
		time.Now().UTC(),
		a.ID,
		a.UserID,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts.account_id") {
			return models.Account{}, ErrAccountIDTaken
		}
		return models.Account{}, fmt.Errorf("update account %q: %w", a.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Account{}, fmt.Errorf("rows affected for account %q: %w", a.ID, err)
	}
	if n == 0 {
		return models.Account{}, ErrAccountNotFound
	}

	updated, err := scanAccount(r.db.QueryRowContext(ctx, selectAccountSQL, a.ID, a.UserID))
	if err != nil {
		// deleted between the update and the read
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, fmt.Errorf("reload account %q: %w", a.ID, err)
	}
	return updated, nil
}

// Delete removes the account id owned by ownerID. Deleting an absent or
// foreign account yields ErrAccountNotFound.
func (r *AccountSQLite) Delete(ctx context.Context, ownerID int64, id string) error {
	res, err := r.db.ExecContext(ctx, deleteAccountSQL, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete account %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for account %q: %w", id, err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		a         models.Account
		accountID sql.NullString
		typ       string
	)
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&accountID,
		&a.Name,
		&typ,
		&a.MainAccountCategory,
		&a.Notes,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return models.Account{}, err
	}
	a.AccountID = accountID.String
	a.MainAccountType = models.AccountType(typ)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
