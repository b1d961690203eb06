package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"account_ledger/internal/logger"
	"account_ledger/internal/models"
	"account_ledger/internal/repository"

	"github.com/google/uuid"
)

type LedgerService struct {
	accounts repository.Accounts
	log      *logger.Logger
}

func NewLedgerService(accounts repository.Accounts, log *logger.Logger) *LedgerService {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerService{accounts: accounts, log: log}
}

// normalize trims the text fields and rejects input that must not be stored.
func normalize(in AccountInput) (AccountInput, error) {
	in.AccountID = strings.TrimSpace(in.AccountID)
	in.Name = strings.TrimSpace(in.Name)
	in.MainAccountCategory = strings.TrimSpace(in.MainAccountCategory)
	in.MainAccountType = models.AccountType(strings.TrimSpace(string(in.MainAccountType)))

	if in.Name == "" {
		return in, invalid("name", "required")
	}
	if in.MainAccountType == "" {
		return in, invalid("main_account_type", "required")
	}
	if !in.MainAccountType.Valid() {
		return in, invalid("main_account_type", fmt.Sprintf("must be one of %v", models.AccountTypes))
	}
	if in.MainAccountCategory == "" {
		return in, invalid("main_account_category", "required")
	}
	if math.IsNaN(in.Balance) || math.IsInf(in.Balance, 0) {
		in.Balance = 0
	}
	return in, nil
}

func (in AccountInput) account(ownerID int64) models.Account {
	return models.Account{
		UserID:              ownerID,
		AccountID:           in.AccountID,
		Name:                in.Name,
		MainAccountType:     in.MainAccountType,
		MainAccountCategory: in.MainAccountCategory,
		Notes:               in.Notes,
		Balance:             in.Balance,
	}
}

func (s *LedgerService) CreateAccount(ctx context.Context, ownerID int64, in AccountInput) (models.Account, error) {
	in, err := normalize(in)
	if err != nil {
		return models.Account{}, err
	}
	a, err := s.accounts.Create(ctx, in.account(ownerID))
	if err != nil {
		return models.Account{}, mapAccountErr(err)
	}
	s.log.Infow("account_created", "user_id", ownerID, "account", a.ID, "type", a.MainAccountType)
	return a, nil
}

func (s *LedgerService) ListAccounts(ctx context.Context, ownerID int64) ([]models.Account, error) {
	return s.accounts.ListByOwner(ctx, ownerID)
}

// UpdateAccount replaces every editable field of the account ref owned by
// ownerID. It never creates: a ref that does not resolve yields
// ErrAccountNotFound.
func (s *LedgerService) UpdateAccount(ctx context.Context, ownerID int64, ref string, in AccountInput) (models.Account, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return models.Account{}, ErrAccountNotFound
	}
	in, err := normalize(in)
	if err != nil {
		return models.Account{}, err
	}
	a := in.account(ownerID)
	a.ID = ref
	updated, err := s.accounts.Update(ctx, a)
	if err != nil {
		return models.Account{}, mapAccountErr(err)
	}
	return updated, nil
}

func (s *LedgerService) DeleteAccount(ctx context.Context, ownerID int64, ref string) error {
	if _, err := uuid.Parse(ref); err != nil {
		return ErrAccountNotFound
	}
	if err := s.accounts.Delete(ctx, ownerID, ref); err != nil {
		return mapAccountErr(err)
	}
	s.log.Infow("account_deleted", "user_id", ownerID, "account", ref)
	return nil
}

// Summary recomputes the totals from the owner's current accounts.
func (s *LedgerService) Summary(ctx context.Context, ownerID int64) (models.Summary, error) {
	accounts, err := s.accounts.ListByOwner(ctx, ownerID)
	if err != nil {
		return models.Summary{}, err
	}
	sum, err := Summarize(accounts)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize %d accounts of user %d: %w", len(accounts), ownerID, err)
	}
	if sum.Unclassified > 0 {
		s.log.Warnw("summary_unclassified_accounts", "user_id", ownerID, "count", sum.Unclassified)
	}
	return sum, nil
}

func mapAccountErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repository.ErrAccountIDTaken):
		return ErrDuplicateAccountID
	default:
		return err
	}
}
