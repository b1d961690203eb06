package service

import "account_ledger/internal/models"

// AccountInput carries the caller-editable fields of an account.
// Ownership is never part of it.
type AccountInput struct {
	AccountID           string
	Name                string
	MainAccountType     models.AccountType
	MainAccountCategory string
	Notes               string
	Balance             float64
}
