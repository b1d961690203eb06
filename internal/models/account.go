package models

import "time"

// AccountType is the main classification of a ledger account.
type AccountType string

const (
	AccountTypeAsset       AccountType = "Asset"
	AccountTypeLiabilities AccountType = "Liabilities"
	AccountTypeEquity      AccountType = "Equity"
	AccountTypeRevenue     AccountType = "Revenue"
)

// AccountTypes lists the accepted main account types in display order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiabilities,
	AccountTypeEquity,
	AccountTypeRevenue,
}

// Valid reports whether t is one of the enumerated account types.
// Matching is exact; "asset" is not an AccountType.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiabilities, AccountTypeEquity, AccountTypeRevenue:
		return true
	default:
		return false
	}
}

// Account is a ledger entry owned by exactly one user.
type Account struct {
	ID                  string      `json:"id"`
	UserID              int64       `json:"user"`
	AccountID           string      `json:"account_id,omitempty"` // optional, unique across all users
	Name                string      `json:"name"`
	MainAccountType     AccountType `json:"main_account_type"`
	MainAccountCategory string      `json:"main_account_category"`
	Notes               string      `json:"notes,omitempty"`
	Balance             float64     `json:"balance"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
