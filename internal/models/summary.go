package models

// Summary holds totals derived from a user's accounts. It is never stored.
type Summary struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	TotalEquity      float64 `json:"total_equity"`
	TotalRevenue     float64 `json:"total_revenue"`
	NetWorth         float64 `json:"net_worth"`
	EquationBalanced bool    `json:"equation_balanced"` // assets == liabilities + equity
	Accounts         int     `json:"accounts"`
	Unclassified     int     `json:"unclassified,omitempty"` // accounts with an unknown type, excluded from totals
}
